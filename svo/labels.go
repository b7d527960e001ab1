package svo

import "strings"

// coarse grammatical classes (universal POS tags)
const (
	posVerb = "VERB"
	posAux  = "AUX"
	posNoun = "NOUN"
	posPron = "PRON"
	posAdj  = "ADJ"
	posAdp  = "ADP"
	posDet  = "DET"
)

const (
	depXcomp = "xcomp"
	depRoot  = "root"
)

// labelSet is a closed set of dependency labels. Both the spaCy English
// labels and their Universal Dependencies counterparts are listed so trees
// from CoNLL-U parsers resolve the same way.
type labelSet map[string]bool

func newLabelSet(labels ...string) labelSet {
	s := make(labelSet, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}

func (s labelSet) has(dep string) bool {
	return s[strings.ToLower(dep)]
}

var (
	subjectLabels = newLabelSet("nsubj", "nsubjpass", "csubj", "csubjpass", "agent", "expl", "nsubj:pass", "csubj:pass")

	objectLabels = newLabelSet("dobj", "dative", "attr", "oprd", "obj", "iobj")

	// object of a preposition
	prepObjectLabels = newLabelSet("pobj")

	auxLabels = newLabelSet("aux", "auxpass", "aux:pass")

	particleLabels = newLabelSet("prt", "compound:prt")

	possessiveLabels = newLabelSet("poss", "nmod:poss")

	// left dependents of a controlled clause verb that open the clause phrase
	clauseOpenerLabels = newLabelSet("nsubj", "nsubjpass", "csubj", "csubjpass", "agent", "expl", "nsubj:pass", "csubj:pass", "aux", "auxpass", "aux:pass")
)

// negations is the closed negation lexicon, compared against lowercase text.
var negations = map[string]bool{
	"no":    true,
	"not":   true,
	"n't":   true,
	"never": true,
	"none":  true,
}
