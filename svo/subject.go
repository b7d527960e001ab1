package svo

// allSubjects returns the subjects of verb and whether the verb is negated.
// A verb without a local subject borrows one from the clause it is embedded
// in, see findSubjects.
func (r *resolver) allSubjects(verb *Token) ([]Item, bool) {
	verbNegated := isNegated(verb)

	var subjects []Item
	for _, l := range verb.Lefts() {
		if subjectLabels.has(l.Dep()) && l.Pos() != posDet {
			subjects = append(subjects, l)
		}
	}

	if len(subjects) > 0 {
		subjects = append(subjects, nounsFromConjunctions(subjects, subjectLabels)...)
		return subjects, verbNegated
	}

	return r.findSubjects(verb)
}

// findSubjects climbs the head chain of verb. The first verb ancestor with
// subjects lends them, together with its own negation. A noun ancestor is
// itself the subject (relative clauses: "the man that hurt me").
func (r *resolver) findSubjects(verb *Token) ([]Item, bool) {
	visited := map[*Token]bool{verb: true}

	token := verb
	for {
		head := token.Head()
		for head.Pos() != posVerb && head.Pos() != posNoun && !head.isHeadOfItself() {
			if visited[head] {
				r.log.Warn().Int("index", verb.Index()).Str("verb", verb.Text()).Msg("Cycle in head chain")
				return nil, false
			}
			visited[head] = true
			head = head.Head()
		}

		switch head.Pos() {
		case posVerb:
			var subjects []Item
			for _, l := range head.Lefts() {
				if subjectLabels.has(l.Dep()) && l.Pos() != posDet {
					subjects = append(subjects, l)
				}
			}

			if len(subjects) > 0 {
				subjects = append(subjects, nounsFromConjunctions(subjects, subjectLabels)...)
				return subjects, isNegated(head)
			}

			if head.isHeadOfItself() {
				return nil, false
			}

			if visited[head] {
				r.log.Warn().Int("index", verb.Index()).Str("verb", verb.Text()).Msg("Cycle in head chain")
				return nil, false
			}
			visited[head] = true
			token = head

		case posNoun:
			return []Item{head}, isNegated(verb)

		default:
			return nil, false
		}
	}
}
