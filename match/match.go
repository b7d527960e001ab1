// Package match filters extracted relations with patterns.
//
// A pattern has up to three fields, subject predicate object, separated by
// spaces. Missing trailing fields match anything. A field is one of:
//
//	_          any value
//	word       the value is word, or word is one of its words
//	a|b        any of the alternatives
//	!word      the value is not word and does not contain it, !a|b
//	           excludes both
//
// "_ kill _" matches {he, did not kill, me}; "_ !not _" drops negated
// relations.
package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/revelaction/relex/svo"
	"gopkg.in/yaml.v3"
)

const (
	Any    = "_"
	negate = "!"
	or     = "|"
)

var ErrEmptyPattern = errors.New("empty pattern")

// Pattern matches the subject, predicate and object of a relation.
type Pattern struct {
	Subject   string
	Predicate string
	Object    string
}

// Parse builds a pattern from its text form.
func Parse(expr string) (Pattern, error) {
	fields := strings.Fields(strings.ToLower(expr))
	switch {
	case len(fields) == 0:
		return Pattern{}, ErrEmptyPattern
	case len(fields) > 3:
		return Pattern{}, fmt.Errorf("pattern %q has %d fields, at most 3 allowed", expr, len(fields))
	}

	for len(fields) < 3 {
		fields = append(fields, Any)
	}

	for _, f := range fields {
		if err := validField(f); err != nil {
			return Pattern{}, fmt.Errorf("pattern %q: %w", expr, err)
		}
	}

	return Pattern{Subject: fields[0], Predicate: fields[1], Object: fields[2]}, nil
}

func validField(f string) error {
	if f == negate {
		return errors.New("negation without word")
	}

	for _, alt := range strings.Split(strings.TrimPrefix(f, negate), or) {
		if alt == "" {
			return fmt.Errorf("empty alternative in %q", f)
		}
	}

	return nil
}

func (p Pattern) String() string {
	return strings.Join([]string{p.Subject, p.Predicate, p.Object}, " ")
}

// Match reports whether the three relation fields match the pattern. Pairs
// have an empty object.
func (p Pattern) Match(subject, predicate, object string) bool {
	return isFieldMatch(subject, p.Subject) &&
		isFieldMatch(predicate, p.Predicate) &&
		isFieldMatch(object, p.Object)
}

func (p Pattern) MatchTriple(t svo.Triple) bool {
	return p.Match(t.Subject, t.Predicate, t.Object)
}

func (p Pattern) MatchPair(sv svo.Pair) bool {
	return p.Match(sv.Subject, sv.Predicate, "")
}

// Words returns the words of the non negated fields.
func (p Pattern) Words() []string {
	var words []string
	for _, f := range []string{p.Subject, p.Predicate, p.Object} {
		if f == Any || strings.HasPrefix(f, negate) {
			continue
		}
		words = append(words, strings.Split(f, or)...)
	}

	return words
}

func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	var expr string
	if err := value.Decode(&expr); err != nil {
		return err
	}

	parsed, err := Parse(expr)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

func (p Pattern) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func isFieldMatch(value, field string) bool {
	if field == Any {
		return true
	}

	negated := strings.HasPrefix(field, negate)

	// If no "|" just one value
	matched := false
	for _, alt := range strings.Split(strings.TrimPrefix(field, negate), or) {
		if isTermMatch(value, alt) {
			matched = true
			break
		}
	}

	return matched != negated
}

// isTermMatch reports whether term is the value or one of its words.
func isTermMatch(value, term string) bool {
	if value == term {
		return true
	}

	for _, w := range strings.Fields(value) {
		if w == term {
			return true
		}
	}

	return false
}
