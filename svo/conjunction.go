package svo

const conjunctionAnd = "and"

func hasAnd(tokens []*Token) bool {
	for _, t := range tokens {
		if t.Lower() == conjunctionAnd {
			return true
		}
	}
	return false
}

// nounsFromConjunctions returns, for each item coordinated with "and", its
// first coordinated noun. Only one conjunct is taken per item and the new
// items are not expanded again.
//
// A conjunct of a prepositional phrase keeps the preposition ("on me and my
// child" gives "on child"); any other conjunct keeps its possessive
// determiner ("me and my sister" gives "my sister").
func nounsFromConjunctions(items []Item, labels labelSet) []Item {
	var more []Item
	for _, item := range items {
		rights := item.Rights()
		if !hasAnd(rights) {
			continue
		}

		for _, r := range rights {
			if !labels.has(r.Dep()) && r.Pos() != posNoun {
				continue
			}

			if p, ok := item.(*Phrase); ok && p.Preposition() != nil {
				more = append(more, newPrepositionalPhrase(p.Preposition(), r))
			} else {
				more = append(more, withPossessive(r))
			}
			break
		}
	}

	return more
}

// verbsFromConjunctions returns the first verb coordinated with verb by "and".
func verbsFromConjunctions(verb *Token) []*Token {
	rights := verb.Rights()
	if !hasAnd(rights) {
		return nil
	}

	for _, r := range rights {
		if r.Pos() == posVerb {
			return []*Token{r}
		}
	}

	return nil
}
