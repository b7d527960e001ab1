package svo

import "strings"

// allObjects runs the object strategies over the right dependents of verb:
// direct objects (and adjectives if configured), prepositional objects,
// phrasal verbs and finally a controlled clause, which replaces everything
// found before it.
func (r *resolver) allObjects(verb *Token) []Item {
	rights := verb.Rights()

	var objects []Item
	for _, t := range rights {
		if objectLabels.has(t.Dep()) || (r.cfg.AdjectiveAsObject && t.Pos() == posAdj) {
			objects = append(objects, t)
		}
	}

	objects = append(objects, prepositionalObjects(rights)...)
	objects = append(objects, phrasalVerbObjects(rights)...)

	// "I wanted to kill him": the clause is the object, as a unit
	if clause := controlledClause(rights); clause != nil {
		return []Item{clause}
	}

	if len(objects) > 0 {
		objects = append(objects, nounsFromConjunctions(objects, objectLabels)...)
	}

	return objects
}

// conjunctionObjects is allObjects with a fallback: a verb without objects
// shares those of the verb coordinated with it ("he beat and hurt me").
func (r *resolver) conjunctionObjects(verb *Token) []Item {
	objects := r.allObjects(verb)
	if len(objects) > 0 {
		return objects
	}

	for _, v := range verbsFromConjunctions(verb) {
		objects = append(objects, r.allObjects(v)...)
	}

	return objects
}

func prepositionalObjects(dependents []*Token) []Item {
	var objects []Item
	for _, d := range dependents {
		if d.Pos() != posAdp {
			continue
		}

		for _, t := range d.Rights() {
			if objectLabels.has(t.Dep()) || prepObjectLabels.has(t.Dep()) || (t.Pos() == posPron && t.Lower() == "me") {
				objects = append(objects, newPrepositionalPhrase(d, t))
				break
			}
		}
	}

	return objects
}

func phrasalVerbObjects(dependents []*Token) []Item {
	var objects []Item
	for _, d := range dependents {
		if d.Pos() != posVerb {
			continue
		}

		for _, l := range d.Lefts() {
			if particleLabels.has(l.Dep()) {
				objects = append(objects, newClausePhrase(l, d))
				break
			}
		}
	}

	return objects
}

// controlledClause returns the first open complement with both an opener
// (subject or auxiliary) and an object, as one phrase. Otherwise nil.
func controlledClause(dependents []*Token) *Phrase {
	for _, d := range dependents {
		if d.Pos() != posVerb || !isControlledClause(d) {
			continue
		}

		var openers, objects []*Token
		for _, l := range d.Lefts() {
			if clauseOpenerLabels.has(l.Dep()) {
				openers = append(openers, l)
			}
		}
		for _, t := range d.Rights() {
			if objectLabels.has(t.Dep()) {
				objects = append(objects, t)
			}
		}

		if len(openers) == 0 || len(objects) == 0 {
			continue
		}

		tokens := make([]*Token, 0, len(openers)+1+len(objects))
		tokens = append(tokens, openers...)
		tokens = append(tokens, d)
		tokens = append(tokens, objects...)
		return newClausePhrase(tokens...)
	}

	return nil
}

func isControlledClause(t *Token) bool {
	return strings.EqualFold(t.Dep(), depXcomp)
}
