package svo

import (
	"testing"

	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/relex/sentence"
)

func TestNewTreeChildrenOrder(t *testing.T) {
	tree := parse(t, brothers)
	tokens := tree.Tokens()

	shot := tokens[4]
	require.Same(t, shot, tree.Root())
	require.Same(t, shot, shot.Head())

	lefts := shot.Lefts()
	require.Len(t, lefts, 1)
	require.Equal(t, "he", lefts[0].Text())

	var rights []string
	for _, r := range tokens[5].Rights() {
		rights = append(rights, r.Text())
	}
	require.Equal(t, []string{"and", "sister"}, rights)
	require.NoError(t, tree.Validate())
}

func TestNewTreeErrors(t *testing.T) {
	_, err := NewTree([]sent.Token{{Index: 0, Head: 3, Text: "a"}})
	require.Error(t, err)

	_, err = NewTree([]sent.Token{{Index: 1, Head: 1, Text: "a"}})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, parse(t, "a/VERB/ROOT/0 b/VERB/ROOT/1").Validate(), ErrMultipleRoots)
	require.ErrorIs(t, parse(t, "a/VERB/ROOT/0 b/NOUN/dobj/2 c/NOUN/conj/1").Validate(), ErrCycle)

	empty, err := NewTree(nil)
	require.NoError(t, err)
	require.NoError(t, empty.Validate())
	require.Nil(t, empty.Root())
}

func TestPhrases(t *testing.T) {
	tree := parse(t, "he/PRON/nsubj/1 spit/VERB/ROOT/1 on/ADP/prep/1 My/PRON/poss/4 Child/NOUN/pobj/2")
	tokens := tree.Tokens()

	poss := withPossessive(tokens[4])
	require.Equal(t, "My Child", poss.Text())
	require.Equal(t, "my child", poss.Lower())
	require.Equal(t, tokens[4].Lefts(), poss.Lefts())

	prep := newPrepositionalPhrase(tokens[2], poss)
	require.Equal(t, "on my child", prep.Lower())
	require.Same(t, tokens[2], prep.Preposition())

	clause := newClausePhrase(tokens[0], tokens[1])
	require.Equal(t, "he spit", clause.Lower())
	require.Empty(t, clause.Lefts())
	require.Empty(t, clause.Rights())
	require.Nil(t, clause.Preposition())

	// a noun without possessive is returned as is
	require.Same(t, tokens[0], withPossessive(tokens[0]))
}

func TestPredicate(t *testing.T) {
	tree := parse(t, "he/PRON/nsubj/3 did/AUX/aux/3 not/PART/neg/3 kill/VERB/ROOT/3")
	kill := tree.Tokens()[3]

	require.Equal(t, "did kill", predicate(kill, false))
	require.Equal(t, "did not kill", predicate(kill, true))
	require.Equal(t, "not he", predicate(tree.Tokens()[0], true))
}
