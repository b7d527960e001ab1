package sentence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSentence() Sentence {
	return Sentence{
		Id: 3,
		Tokens: []Token{
			{Index: 0, Head: 1, Text: "They", Lemma: "they", Pos: "PRON", Dep: "nsubj"},
			{Index: 1, Head: 1, Text: "ate", Lemma: "eat", Pos: "VERB", Dep: "ROOT"},
			{Index: 2, Head: 3, Text: "the", Lemma: "the", Pos: "DET", Dep: "det"},
			{Index: 3, Head: 1, Text: "pizza", Lemma: "pizza", Pos: "NOUN", Dep: "dobj"},
			{Index: 4, Head: 3, Text: "the", Lemma: "the", Pos: "DET", Dep: "det"},
		},
	}
}

func TestSentenceText(t *testing.T) {
	require.Equal(t, "They ate the pizza the", sampleSentence().Text())
}

func TestSentenceLemmasUnique(t *testing.T) {
	require.Equal(t, []string{"they", "eat", "the", "pizza"}, sampleSentence().Lemmas())
}

func TestSentenceHash(t *testing.T) {
	s := sampleSentence()
	require.Equal(t, s.Hash(), sampleSentence().Hash())

	// the id is not part of the parse
	s.Id = 7
	require.Equal(t, sampleSentence().Hash(), s.Hash())

	s.Tokens[3].Head = 2
	require.NotEqual(t, sampleSentence().Hash(), s.Hash())
}
