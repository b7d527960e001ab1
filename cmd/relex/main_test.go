package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revelaction/relex/render"
)

const pizzaJSON = `{
  "title": "pizza",
  "labels": ["food"],
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

// The car is red.
const carConllu = "1\tThe\tthe\tDET\tDT\t_\t2\tdet\t_\t_\n" +
	"2\tcar\tcar\tNOUN\tNN\t_\t3\tnsubj\t_\t_\n" +
	"3\tis\tbe\tAUX\tVBZ\t_\t0\tROOT\t_\t_\n" +
	"4\tred\tred\tADJ\tJJ\t_\t3\tacomp\t_\tSpaceAfter=No\n" +
	"5\t.\t.\tPUNCT\t.\t_\t3\tpunct\t_\t_\n"

// clearEnv isolates the tests from the configuration of the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RELEX_DOC_PATH", "RELEX_PATTERN_PATH", "RELEX_ADJ_AS_OBJECT", "RELEX_CONFIG_FILE", "RELEX_REDIS_ADDR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("RELEX_LOG_LEVEL", "ERROR")
}

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{In: strings.NewReader(stdin), Out: &out, Err: &errOut}
	err := run(append([]string{"relex"}, args...), ui)
	return out.String(), err
}

func newDocDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pizza.json"), []byte(pizzaJSON), 0o600))
	return dir
}

func TestExtractStdinJSON(t *testing.T) {
	clearEnv(t)

	out, err := runCmd(t, pizzaJSON, "extract", "--format", "json")
	require.NoError(t, err)

	var results []render.JSONResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	require.Equal(t, "They ate pizza", results[0].Text)
	require.Len(t, results[0].SVOs, 1)
	require.Equal(t, "pizza", results[0].SVOs[0].Object)
	require.Equal(t, 1, results[1].SentenceId)
	require.Empty(t, results[1].SVOs)
}

func TestExtractConllFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "car.conllu")
	require.NoError(t, os.WriteFile(path, []byte(carConllu), 0o600))

	out, err := runCmd(t, "", "extract", path)
	require.NoError(t, err)
	require.Equal(t, "The car is red.\n    car is\n", out)

	out, err = runCmd(t, "", "--adj-as-object", "extract", path)
	require.NoError(t, err)
	require.Equal(t, "The car is red.\n    car is red\n    car is\n", out)

	// stdin, CoNLL
	out, err = runCmd(t, carConllu, "--adj-as-object", "extract", "--pattern", "car _ red")
	require.NoError(t, err)
	require.Equal(t, "The car is red.\n    car is red\n", out)
}

func TestExtractErrors(t *testing.T) {
	clearEnv(t)

	_, err := runCmd(t, pizzaJSON, "extract", "--format", "xml")
	require.Error(t, err)

	_, err = runCmd(t, pizzaJSON, "extract", "--pattern", "a b c d")
	require.Error(t, err)

	_, err = runCmd(t, "{", "extract")
	require.Error(t, err)
}

func TestDocAndSentence(t *testing.T) {
	clearEnv(t)
	dir := newDocDir(t)

	out, err := runCmd(t, "", "--repo", dir, "doc")
	require.NoError(t, err)
	require.Equal(t, "📖 0 pizza.json\n", out)

	out, err = runCmd(t, "", "--repo", dir, "doc", "--label", "sport")
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = runCmd(t, "", "--repo", dir, "doc", "--start", "1", "0")
	require.NoError(t, err)
	require.Equal(t, "✍  1 Eat\n", out)

	out, err = runCmd(t, "", "--repo", dir, "sentence", "0", "0")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "✍  0 They ate pizza\n"))
	require.True(t, strings.HasSuffix(out, "they ate pizza\nthey ate\n"))

	_, err = runCmd(t, "", "--repo", dir, "sentence", "0", "9")
	require.Error(t, err)

	_, err = runCmd(t, "", "--repo", dir, "sentence", "0")
	require.Error(t, err)
}

func TestMissingRepository(t *testing.T) {
	clearEnv(t)

	_, err := runCmd(t, "", "doc")
	require.ErrorIs(t, err, errNoRepo)

	_, err = runCmd(t, "", "--repo", filepath.Join(t.TempDir(), "missing"), "doc")
	require.Error(t, err)
}

func TestImportIndexRelations(t *testing.T) {
	clearEnv(t)
	dir := newDocDir(t)
	db := filepath.Join(t.TempDir(), "docs.db")

	out, err := runCmd(t, "", "import", "--from", dir, "--to", db, "--quiet")
	require.NoError(t, err)
	require.Contains(t, out, "Successfully imported 1 docs")

	out, err = runCmd(t, "", "--repo", db, "index", "--quiet")
	require.NoError(t, err)
	require.Equal(t, "Indexed 2 sentences of 1 docs: 2 relations\n", out)

	// indexing again replaces the relations
	_, err = runCmd(t, "", "--repo", db, "index", "--quiet", "--doc", "1")
	require.NoError(t, err)

	out, err = runCmd(t, "", "--repo", db, "relations", "--no-prefix")
	require.NoError(t, err)
	require.Equal(t, "they ate pizza\nthey ate\n", out)

	out, err = runCmd(t, "", "--repo", db, "relations", "--no-prefix", "_ eat|ate pizza")
	require.NoError(t, err)
	require.Equal(t, "they ate pizza\n", out)

	out, err = runCmd(t, "", "--repo", db, "relations", "--no-prefix", "--kind", "sv")
	require.NoError(t, err)
	require.Equal(t, "they ate\n", out)

	out, err = runCmd(t, "", "--repo", db, "relations", "--no-prefix", "--limit", "1")
	require.NoError(t, err)
	require.Equal(t, "they ate pizza\n", out)

	out, err = runCmd(t, "", "--repo", db, "relations")
	require.NoError(t, err)
	require.Contains(t, out, "pizza.json")

	_, err = runCmd(t, "", "--repo", db, "relations", "--kind", "xyz")
	require.Error(t, err)

	// a directory has no relations
	_, err = runCmd(t, "", "--repo", dir, "relations")
	require.ErrorIs(t, err, errNotSqliteDoc)
}

func TestStat(t *testing.T) {
	clearEnv(t)
	dir := newDocDir(t)

	out, err := runCmd(t, "", "--repo", dir, "stat")
	require.NoError(t, err)
	require.Contains(t, out, "Num sentences 2, with triples 1, invalid trees 0\n")
	require.Contains(t, out, "[    1] ate\n")

	out, err = runCmd(t, "", "--repo", dir, "stat", "pizza")
	require.NoError(t, err)
	require.Contains(t, out, "Num sentences 1,")
}

func TestPatterns(t *testing.T) {
	clearEnv(t)
	patterns := filepath.Join(t.TempDir(), "patterns")
	dir := newDocDir(t)
	db := filepath.Join(t.TempDir(), "docs.db")

	_, err := runCmd(t, "", "--patterns", patterns, "patterns", "add", "meals", "_ ate pizza", "_ drank")
	require.NoError(t, err)

	out, err := runCmd(t, "", "--patterns", patterns, "patterns", "ls")
	require.NoError(t, err)
	require.Equal(t, "🔖 meals (2)\n", out)

	out, err = runCmd(t, "", "--patterns", patterns, "patterns", "show", "meals")
	require.NoError(t, err)
	require.Equal(t, "_ ate pizza\n_ drank _\n", out)

	_, err = runCmd(t, "", "--patterns", patterns, "patterns", "add", "meals", "a b c d")
	require.Error(t, err)

	_, err = runCmd(t, "", "import", "--from", dir, "--to", db, "-q")
	require.NoError(t, err)
	_, err = runCmd(t, "", "--repo", db, "index", "-q")
	require.NoError(t, err)

	t.Setenv("RELEX_PATTERN_PATH", patterns)
	out, err = runCmd(t, "", "--repo", db, "relations", "--no-prefix", "--set", "meals")
	require.NoError(t, err)
	require.Equal(t, "they ate pizza\n", out)
}

func TestVersionAndBash(t *testing.T) {
	clearEnv(t)

	out, err := runCmd(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "relex version dev (commit: none)\n", out)

	out, err = runCmd(t, "", "bash")
	require.NoError(t, err)
	require.Contains(t, out, "complete -o bashdefault -o default -o nospace -F _relex_autocomplete relex")
}
