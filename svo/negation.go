package svo

// isNegated reports whether a dependent of the item belongs to the negation
// lexicon. For the root, a negation on the first dependent that has its own
// dependents also counts ("I have no money": the "no" hangs from "money").
func isNegated(item Item) bool {
	return negated(item, map[Item]bool{})
}

func negated(item Item, visited map[Item]bool) bool {
	visited[item] = true

	lefts, rights := item.Lefts(), item.Rights()
	for _, c := range lefts {
		if negations[c.Lower()] {
			return true
		}
	}
	for _, c := range rights {
		if negations[c.Lower()] {
			return true
		}
	}

	for _, children := range [][]*Token{lefts, rights} {
		for _, c := range children {
			if !c.Head().isRoot() || !c.hasChildren() {
				continue
			}
			if visited[c] {
				return false
			}
			return negated(c, visited)
		}
	}

	return false
}
