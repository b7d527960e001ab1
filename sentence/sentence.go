package sentence

import (
	"strconv"
	"strings"

	"github.com/twmb/murmur3"
)

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels    []string   `json:"labels,omitempty"`
	Sentences []Sentence `json:"sentences"`
}

// Library is a collection of Doc
type Library []Doc

// Sentence is the unit of extraction: the tokens of one parsed sentence.
type Sentence struct {
	// Id is the index of the sentence inside of the doc.
	Id int `json:"id"`

	DocId int `json:"-"`

	Tokens []Token `json:"tokens"`
}

// Token represents a word of the sentence, with POS and dependency data.
type Token struct {
	Id int `json:"id"`

	// Head is the Index of the governing token. The root token points to
	// itself.
	Head       int    `json:"head"`
	SentenceId int    `json:"sent"`
	Pos        string `json:"pos"`
	Dep        string `json:"dep"`

	// A string containing detailed POS data
	Tag string `json:"tag,omitempty"`

	// the index of the start character of the token in the source text (set by spacy, stanza)
	Idx int `json:"idx"`

	// The unmodified word
	Text string `json:"text"`

	// The lemma of the word
	Lemma string `json:"lemma,omitempty"`

	// The index of the word in the sentence, starting at 0.
	Index int `json:"index"`
}

// Text joins the token texts with single spaces.
func (s Sentence) Text() string {
	words := make([]string, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		words = append(words, t.Text)
	}

	return strings.Join(words, " ")
}

// Lemmas returns the unique non empty lemmas of the sentence, in order of
// appearance.
func (s Sentence) Lemmas() []string {
	seen := make(map[string]bool)
	var lemmas []string
	for _, t := range s.Tokens {
		if t.Lemma == "" || seen[t.Lemma] {
			continue
		}
		seen[t.Lemma] = true
		lemmas = append(lemmas, t.Lemma)
	}

	return lemmas
}

// Hash is a fingerprint of the parse: two sentences with the same words,
// tags, labels and heads have the same hash.
func (s Sentence) Hash() uint64 {
	hash := murmur3.New64()
	for _, t := range s.Tokens {
		_, _ = hash.Write([]byte(t.Text))
		_, _ = hash.Write([]byte{0})
		_, _ = hash.Write([]byte(t.Pos))
		_, _ = hash.Write([]byte{0})
		_, _ = hash.Write([]byte(t.Dep))
		_, _ = hash.Write([]byte{0})
		_, _ = hash.Write([]byte(strconv.Itoa(t.Head)))
		_, _ = hash.Write([]byte{1})
	}

	return hash.Sum64()
}
