package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/svo"
)

// The car is red.
const carBody = `{"tokens": [
  {"index": 0, "head": 1, "pos": "DET", "dep": "det", "text": "The"},
  {"index": 1, "head": 2, "pos": "NOUN", "dep": "nsubj", "text": "car"},
  {"index": 2, "head": 2, "pos": "AUX", "dep": "ROOT", "text": "is"},
  {"index": 3, "head": 2, "pos": "ADJ", "dep": "acomp", "text": "red"}
]`

type mapCache struct {
	results  map[string]svo.Result
	computed int
	err      error
}

func (m *mapCache) GetOrCompute(_ context.Context, key string, compute func() svo.Result) (svo.Result, error) {
	if m.err != nil {
		return svo.Result{}, m.err
	}
	if res, ok := m.results[key]; ok {
		return res, nil
	}
	m.computed++
	res := compute()
	m.results[key] = res
	return res, nil
}

func key(s sent.Sentence, cfg svo.Config) string {
	return s.Tokens[0].Text + ":" + map[bool]string{true: "adj", false: "plain"}[cfg.AdjectiveAsObject]
}

func newHandler() *Handler {
	h := NewHandler(svo.New(), svo.Config{})
	h.Logger = zerolog.Nop()
	return h
}

func post(t *testing.T, h *Handler, body string) (*httptest.ResponseRecorder, svo.Result) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, ExtractPath, strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewMux(h).ServeHTTP(rec, req)

	var res svo.Result
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec, res
}

func TestExtract(t *testing.T) {
	rec, res := post(t, newHandler(), carBody+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Empty(t, res.SVOs)
	require.Equal(t, []svo.Pair{{Subject: "car", Predicate: "is"}}, res.SVs)
}

func TestExtractAdjectiveOverride(t *testing.T) {
	_, res := post(t, newHandler(), carBody+`, "adjective_as_object": true}`)
	require.Equal(t, []svo.Triple{{Subject: "car", Predicate: "is", Object: "red"}}, res.SVOs)

	h := newHandler()
	h.Config.AdjectiveAsObject = true
	_, res = post(t, h, carBody+`, "adjective_as_object": false}`)
	require.Empty(t, res.SVOs)
}

func TestExtractMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, ExtractPath, nil)
	rec := httptest.NewRecorder()
	NewMux(newHandler()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestExtractBadRequest(t *testing.T) {
	rec, _ := post(t, newHandler(), `{"tokens": [`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// head out of range
	rec, _ = post(t, newHandler(), `{"tokens": [{"index": 0, "head": 5, "text": "a"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// two roots
	rec, _ = post(t, newHandler(), `{"tokens": [{"index": 0, "head": 0, "text": "a"}, {"index": 1, "head": 1, "text": "b"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractCache(t *testing.T) {
	c := &mapCache{results: map[string]svo.Result{}}
	h := newHandler().WithCache(c, key)

	_, first := post(t, h, carBody+`}`)
	_, second := post(t, h, carBody+`}`)
	require.Equal(t, 1, c.computed)
	require.Equal(t, first, second)

	// the config is part of the key
	_, adj := post(t, h, carBody+`, "adjective_as_object": true}`)
	require.Equal(t, 2, c.computed)
	require.Len(t, adj.SVOs, 1)
}

func TestExtractCacheUnavailable(t *testing.T) {
	c := &mapCache{err: errors.New("connection refused")}
	h := newHandler().WithCache(c, key)

	rec, res := post(t, h, carBody+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, res.SVs, 1)
}
