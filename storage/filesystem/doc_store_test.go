package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revelaction/relex/match"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

const pizzaJSON = `{
  "title": "pizza",
  "labels": ["food", "lunch"],
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

const sleepConllu = "1\tI\tI\tPRON\tPRP\t_\t2\tnsubj\t_\t_\n2\tslept\tsleep\tVERB\tVBD\t_\t0\troot\t_\t_\n"

func newTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_pizza.json"), []byte(pizzaJSON), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_sleep.conllu"), []byte(sleepConllu), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))
	return dir
}

func TestDocStoreListAndRead(t *testing.T) {
	store, err := NewDocStore(newTestDir(t))
	require.NoError(t, err)

	docs, err := store.List("")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "a_pizza.json", docs[0].Title)
	require.Equal(t, 1, docs[1].Id)

	docs, err = store.List("foo")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, []string{"food", "lunch"}, docs[0].Labels)

	doc, err := store.Read(1)
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)
	require.Equal(t, 1, doc.Sentences[0].DocId)
	require.Equal(t, "slept", doc.Sentences[0].Tokens[1].Text)

	_, err = store.Read(2)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, store.Write(sent.Doc{}), storage.ErrReadOnly)
}

func TestDocStoreFindCandidates(t *testing.T) {
	store, err := NewDocStore(newTestDir(t))
	require.NoError(t, err)

	var texts []string
	collect := func(s sent.Sentence) error {
		texts = append(texts, s.Text())
		return nil
	}

	cursor, err := store.FindCandidates([]string{"eat"}, 0, 10, collect)
	require.NoError(t, err)
	require.Equal(t, []string{"They ate pizza", "Eat"}, texts)

	// nothing left after the cursor
	next, err := store.FindCandidates([]string{"eat"}, cursor, 10, collect)
	require.NoError(t, err)
	require.Equal(t, cursor, next)

	// pages of one sentence, no lemma filter
	texts = nil
	cursor = 0
	for i := 0; i < 5; i++ {
		next, err := store.FindCandidates(nil, cursor, 1, collect)
		require.NoError(t, err)
		if next == cursor {
			break
		}
		cursor = next
	}
	require.Equal(t, []string{"They ate pizza", "Eat", "I slept"}, texts)
}

func TestDocStorePreload(t *testing.T) {
	store, err := NewDocStore(newTestDir(t))
	require.NoError(t, err)

	var names []string
	require.NoError(t, store.Preload(func(current, total int, name string) {
		require.Equal(t, 2, total)
		names = append(names, name)
	}))
	require.Equal(t, []string{"a_pizza.json", "b_sleep.conllu"}, names)
}

func TestReadDocErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	_, err := ReadDoc(bad)
	require.Error(t, err)

	_, err = ReadDoc(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestPatternStore(t *testing.T) {
	store := NewPatternStore(t.TempDir())

	kill, err := match.Parse("_ kill")
	require.NoError(t, err)
	require.NoError(t, store.Write(match.PatternSet{Name: "violence", Patterns: []match.Pattern{kill}}))

	lib, err := store.ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"violence"}, lib.Names())
	require.Equal(t, kill, lib[0].Patterns[0])

	_, err = store.Read("missing")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.Error(t, store.Write(match.PatternSet{}))
}
