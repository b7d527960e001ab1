package query

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/svo"
)

const pizzaJSON = `{
  "title": "pizza",
  "sentences": [
    {"id": 0, "tokens": [
      {"id": 0, "head": 1, "pos": "PRON", "dep": "nsubj", "text": "They", "lemma": "they", "index": 0},
      {"id": 1, "head": 1, "pos": "VERB", "dep": "ROOT", "text": "ate", "lemma": "eat", "index": 1},
      {"id": 2, "head": 1, "pos": "NOUN", "dep": "dobj", "text": "pizza", "lemma": "pizza", "index": 2}
    ]},
    {"id": 1, "tokens": [
      {"id": 3, "head": 0, "pos": "VERB", "dep": "ROOT", "text": "Eat", "lemma": "eat", "index": 0}
    ]}
  ]
}`

func newHandler(t *testing.T) (*Handler, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pizza.json"), []byte(pizzaJSON), 0o600))

	store, err := filesystem.NewDocStore(dir)
	require.NoError(t, err)

	meals, err := match.Parse("_ ate pizza")
	require.NoError(t, err)
	lib := match.Library{{Name: "meals", Patterns: []match.Pattern{meals}}}

	var buf bytes.Buffer
	r := render.NewRenderer()
	r.Out = &buf

	return NewHandler(store, lib, r, svo.New(), svo.Config{}), &buf
}

func TestParse(t *testing.T) {
	h, _ := newHandler(t)

	req, err := h.Parse("meals Eat pizza")
	require.NoError(t, err)
	require.NotNil(t, req.Set)
	require.Equal(t, "meals", req.Set.Name)
	require.Equal(t, []string{"eat", "pizza"}, req.Lemmas)

	req, err = h.Parse("  eat ")
	require.NoError(t, err)
	require.Nil(t, req.Set)
	require.Equal(t, []string{"eat"}, req.Lemmas)

	_, err = h.Parse("   ")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestQuery(t *testing.T) {
	h, buf := newHandler(t)

	require.NoError(t, h.Query("eat"))
	require.Equal(t, "They ate pizza\n    they ate pizza\n    they ate\nEat\n2 sentences\n", buf.String())
}

func TestQueryWithPatternSet(t *testing.T) {
	h, buf := newHandler(t)

	require.NoError(t, h.Query("meals eat"))
	require.Equal(t, "They ate pizza\n    they ate pizza\n1 sentences\n", buf.String())
}

func TestQueryLimit(t *testing.T) {
	h, buf := newHandler(t)
	h.Limit = 1

	require.NoError(t, h.Query("eat"))
	require.Contains(t, buf.String(), "1 sentences\n")
	require.NotContains(t, buf.String(), "Eat\n")
}

func TestComplete(t *testing.T) {
	h, _ := newHandler(t)

	s := h.Complete("me")
	require.Len(t, s, 1)
	require.Equal(t, "meals", s[0].Text)

	s = h.Complete("meals pi")
	require.Len(t, s, 1)
	require.Equal(t, "pizza", s[0].Text)
	require.Equal(t, "meals: _ ate pizza", s[0].Description)

	require.Empty(t, h.Complete(""))
	require.Empty(t, h.Complete("meals "))
}
