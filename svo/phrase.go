package svo

import "strings"

// Item is what the resolvers read: a parsed Token or a composed Phrase.
// Dependents are always parsed tokens.
type Item interface {
	Text() string
	Lower() string
	Lefts() []*Token
	Rights() []*Token
}

// Phrase is a read only composition of tokens presented as a single Item.
// Phrases only live during one extraction call.
type Phrase struct {
	parts []Item

	// prep is set for prepositional phrases
	prep *Token

	lefts  []*Token
	rights []*Token
}

var _ Item = (*Phrase)(nil)

func (p *Phrase) Text() string {
	words := make([]string, len(p.parts))
	for i, part := range p.parts {
		words[i] = part.Text()
	}
	return strings.Join(words, " ")
}

func (p *Phrase) Lower() string {
	words := make([]string, len(p.parts))
	for i, part := range p.parts {
		words[i] = part.Lower()
	}
	return strings.Join(words, " ")
}

func (p *Phrase) Lefts() []*Token  { return p.lefts }
func (p *Phrase) Rights() []*Token { return p.rights }

// Preposition returns the preposition of a prepositional phrase, or nil.
func (p *Phrase) Preposition() *Token { return p.prep }

// newClausePhrase concatenates tokens. The phrase has no dependents.
func newClausePhrase(tokens ...*Token) *Phrase {
	parts := make([]Item, len(tokens))
	for i, t := range tokens {
		parts[i] = t
	}
	return &Phrase{parts: parts}
}

// newPrepositionalPhrase joins a preposition and its object. The phrase
// takes the dependents of the object, so coordinated objects are still found.
func newPrepositionalPhrase(prep *Token, obj Item) *Phrase {
	return &Phrase{
		parts:  []Item{prep, obj},
		prep:   prep,
		lefts:  obj.Lefts(),
		rights: obj.Rights(),
	}
}

// newPossessivePhrase prefixes a noun with its possessive determiner.
func newPossessivePhrase(det, noun *Token) *Phrase {
	return &Phrase{
		parts:  []Item{det, noun},
		lefts:  noun.Lefts(),
		rights: noun.Rights(),
	}
}

// withPossessive returns the noun prefixed by its possessive determiner, or
// the noun itself if it has none.
func withPossessive(noun *Token) Item {
	for _, l := range noun.Lefts() {
		if possessiveLabels.has(l.Dep()) {
			return newPossessivePhrase(l, noun)
		}
	}
	return noun
}
