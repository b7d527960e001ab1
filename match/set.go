package match

import (
	"github.com/revelaction/relex/svo"
)

// PatternSet is a named group of patterns. A relation matches the set if it
// matches one or more of its patterns.
type PatternSet struct {
	Name     string    `yaml:"-"`
	Patterns []Pattern `yaml:"patterns"`
}

// Library is a collection of PatternSet
type Library []PatternSet

func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for _, ps := range l {
		names = append(names, ps.Name)
	}
	return names
}

// Get returns the set with the given name.
func (l Library) Get(name string) (PatternSet, bool) {
	for _, ps := range l {
		if ps.Name == name {
			return ps, true
		}
	}
	return PatternSet{}, false
}

// Match reports whether a relation matches the set. An empty set matches
// everything.
func (ps PatternSet) Match(subject, predicate, object string) bool {
	if len(ps.Patterns) == 0 {
		return true
	}

	for _, p := range ps.Patterns {
		if p.Match(subject, predicate, object) {
			return true
		}
	}

	return false
}

// Filter keeps the relations of res matching the set, in order.
func (ps PatternSet) Filter(res svo.Result) svo.Result {
	out := svo.Result{SVOs: []svo.Triple{}, SVs: []svo.Pair{}}
	for _, t := range res.SVOs {
		if ps.Match(t.Subject, t.Predicate, t.Object) {
			out.SVOs = append(out.SVOs, t)
		}
	}

	for _, sv := range res.SVs {
		if ps.Match(sv.Subject, sv.Predicate, "") {
			out.SVs = append(out.SVs, sv)
		}
	}

	return out
}
