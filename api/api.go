// Package api serves the extractor over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/svo"
)

const ExtractPath = "/extract"

// Cache stores results by key. *cache.Client implements it.
type Cache interface {
	GetOrCompute(ctx context.Context, key string, compute func() svo.Result) (svo.Result, error)
}

// KeyFunc returns the cache key of a sentence under a config.
type KeyFunc func(s sent.Sentence, cfg svo.Config) string

// ExtractRequest is the body of POST /extract. AdjectiveAsObject overrides
// the server configuration when present.
type ExtractRequest struct {
	Tokens            []sent.Token `json:"tokens"`
	AdjectiveAsObject *bool        `json:"adjective_as_object,omitempty"`
}

type Handler struct {
	Extractor *svo.Extractor
	Config    svo.Config

	// Cache is optional
	Cache Cache
	Key   KeyFunc

	Logger zerolog.Logger
}

func NewHandler(ex *svo.Extractor, cfg svo.Config) *Handler {
	return &Handler{
		Extractor: ex,
		Config:    cfg,
		Logger:    defaultLogger,
	}
}

// WithCache enables result caching.
func (h *Handler) WithCache(c Cache, key KeyFunc) *Handler {
	h.Cache = c
	h.Key = key
	return h
}

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(h.Logger, r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not decode request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	cfg := h.Config
	if req.AdjectiveAsObject != nil {
		cfg.AdjectiveAsObject = *req.AdjectiveAsObject
	}

	tree, err := svo.NewTree(req.Tokens)
	if err == nil {
		err = tree.Validate()
	}
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Invalid tree")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	compute := func() svo.Result {
		return h.Extractor.Extract(tree, cfg)
	}

	var res svo.Result
	if h.Cache != nil {
		key := h.Key(sent.Sentence{Tokens: req.Tokens}, cfg)
		res, err = h.Cache.GetOrCompute(r.Context(), key, compute)
		if err != nil {
			// the cache is an optimization
			logger.Warn().Err(err).Str("key", key).Msg("Cache unavailable")
			res = compute()
		}
	} else {
		res = compute()
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		logger.Err(err).Msg("Could not write response")
		return
	}

	logger.Info().Int("status", http.StatusOK).Int("svos", len(res.SVOs)).Int("svs", len(res.SVs)).Msg("Finished processing request")
}

func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(ExtractPath, h.Extract)
	return mux
}
