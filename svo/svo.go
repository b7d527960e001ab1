// Package svo extracts subject-verb-object triples and subject-verb pairs
// from the dependency tree of a sentence.
//
// The rules are heuristics over spaCy style labels (Universal Dependencies
// labels are accepted too). A verb without a resolvable subject produces
// nothing, a verb without a resolvable object produces only SV pairs.
//
//	tree, _ := svo.NewTree(sentence.Tokens)
//	res := svo.New().Extract(tree, svo.Config{})
//	// "he did not kill me" -> {he, did not kill, me}
package svo

import (
	"github.com/rs/zerolog"
)

// Config is read once per extraction call.
type Config struct {
	// AdjectiveAsObject makes adjectival right dependents of a verb objects:
	// "The car is red" -> {car, is, red}.
	AdjectiveAsObject bool `json:"adjective_as_object" yaml:"adjective_as_object"`
}

// Triple is a subject-verb-object relation. All fields are lowercase.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Pair is a subject-verb relation. All fields are lowercase.
type Pair struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
}

// Result holds the relations of one sentence, in tree order.
type Result struct {
	SVOs []Triple `json:"svos"`
	SVs  []Pair   `json:"svs"`
}

// Extractor is stateless: it is safe for concurrent use and the
// configuration is passed on each call.
type Extractor struct {
	log zerolog.Logger
}

type Option func(*Extractor)

// WithLogger sets the logger used to report malformed trees.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// resolver carries the state of one extraction call.
type resolver struct {
	cfg Config
	log zerolog.Logger
}

func (e *Extractor) resolver(cfg Config) *resolver {
	return &resolver{cfg: cfg, log: e.log}
}

// Extract returns both the SVO triples and the SV pairs of the tree.
func (e *Extractor) Extract(t *Tree, cfg Config) Result {
	return Result{
		SVOs: e.SVOs(t, cfg),
		SVs:  e.SVs(t),
	}
}

// SVOs returns the triples of the tree: for each verb (controlled clauses
// excluded, they are objects of their governor) the cross product of its
// subjects and objects.
func (e *Extractor) SVOs(t *Tree, cfg Config) []Triple {
	r := e.resolver(cfg)

	svos := []Triple{}
	for _, verb := range t.Tokens() {
		if !isVerb(verb) || isControlledClause(verb) {
			continue
		}

		subjects, verbNegated := r.allSubjects(verb)
		if len(subjects) == 0 {
			r.log.Debug().Int("index", verb.Index()).Str("verb", verb.Text()).Msg("Verb without subject")
			continue
		}

		objects := r.conjunctionObjects(verb)
		for _, sub := range subjects {
			for _, obj := range objects {
				negated := verbNegated || isNegated(obj)
				svos = append(svos, Triple{
					Subject:   sub.Lower(),
					Predicate: predicate(verb, negated),
					Object:    obj.Lower(),
				})
			}
		}
	}

	return svos
}

// SVs returns the subject-verb pairs of the tree. Objects are not consulted.
func (e *Extractor) SVs(t *Tree) []Pair {
	r := e.resolver(Config{})

	svs := []Pair{}
	for _, verb := range t.Tokens() {
		if !isVerb(verb) {
			continue
		}

		subjects, verbNegated := r.allSubjects(verb)
		for _, sub := range subjects {
			svs = append(svs, Pair{
				Subject:   sub.Lower(),
				Predicate: predicate(verb, verbNegated),
			})
		}
	}

	return svs
}

// predicate formats the verb with its negation and its auxiliary:
// "did" + "not kill" -> "did not kill".
func predicate(verb *Token, negated bool) string {
	p := verb.Lower()
	if negated {
		p = "not " + p
	}

	for _, l := range verb.Lefts() {
		if auxLabels.has(l.Dep()) {
			return l.Lower() + " " + p
		}
	}

	return p
}

func isVerb(t *Token) bool {
	return t.Pos() == posVerb || t.Pos() == posAux
}
