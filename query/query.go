// Package query runs an interactive prompt over a document repository: each
// line selects the sentences containing some lemmas and prints the relations
// extracted from them, optionally filtered by a pattern set.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/relex/match"
	"github.com/revelaction/relex/render"
	"github.com/revelaction/relex/search"
	"github.com/revelaction/relex/storage"
	"github.com/revelaction/relex/svo"
)

const (
	// DefaultLimit is the number of sentences printed per query.
	DefaultLimit = 200

	quit = "quit"
)

var ErrEmptyQuery = errors.New("empty query")

type Handler struct {
	DocRepo   storage.DocReader
	Library   match.Library
	Renderer  *render.Renderer
	Extractor *svo.Extractor
	Config    svo.Config
	Limit     int
}

func NewHandler(dr storage.DocReader, lib match.Library, r *render.Renderer, ex *svo.Extractor, cfg svo.Config) *Handler {
	return &Handler{
		DocRepo:   dr,
		Library:   lib,
		Renderer:  r,
		Extractor: ex,
		Config:    cfg,
		Limit:     DefaultLimit,
	}
}

// Request is a parsed prompt line: an optional pattern set name followed by
// lemmas.
type Request struct {
	Set    *match.PatternSet
	Lemmas []string
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.Renderer.Out, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("relex query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.Out, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Renderer.Out, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if strings.TrimSpace(in) == quit {
			return nil
		}

		history = append(history, in)

		if err := h.Query(in); err != nil {
			if errors.Is(err, ErrEmptyQuery) {
				continue
			}
			fmt.Fprintf(h.Renderer.Out, "Error: %v\n", err)
		}
	}
}

// Query runs one prompt line and renders its results.
func (h *Handler) Query(in string) error {
	req, err := h.Parse(in)
	if err != nil {
		return err
	}

	docList, err := h.DocRepo.List("")
	if err != nil {
		return fmt.Errorf("listing docs: %w", err)
	}
	for _, d := range docList {
		h.Renderer.AddDocName(d.Id, d.Title)
	}

	s := search.New(h.DocRepo, h.Extractor, h.Config)
	if req.Set != nil {
		s.WithPatterns(*req.Set)
	}

	var results []*search.SentenceResult
	cursor := storage.Cursor(0)
	for len(results) < h.Limit {
		next, err := s.Sentences(req.Lemmas, cursor, search.PageSize, func(res *search.SentenceResult) error {
			if len(results) < h.Limit {
				results = append(results, res)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if next == cursor {
			break
		}
		cursor = next
	}

	if err := h.Renderer.Render(results); err != nil {
		return err
	}

	fmt.Fprintf(h.Renderer.Out, "%d sentences\n", len(results))
	return nil
}

// Parse splits a prompt line. The first word names a pattern set if one
// exists with that name, the remaining words are lowercased lemmas.
func (h *Handler) Parse(in string) (Request, error) {
	words := strings.Fields(in)
	if len(words) == 0 {
		return Request{}, ErrEmptyQuery
	}

	var req Request
	if ps, ok := h.Library.Get(words[0]); ok {
		req.Set = &ps
		words = words[1:]
	}

	for _, w := range words {
		req.Lemmas = append(req.Lemmas, strings.ToLower(w))
	}

	return req, nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		return h.Complete(in.TextBeforeCursor())
	}
}

// Complete suggests pattern set names for the first word and pattern words
// for the following ones.
func (h *Handler) Complete(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	// nothing to complete
	if befCursor == "" || strings.HasSuffix(befCursor, " ") {
		return s
	}

	tokens := strings.Split(befCursor, " ")
	last := strings.ToLower(tokens[len(tokens)-1])

	if len(tokens) == 1 {
		for _, ps := range h.Library {
			if strings.HasPrefix(ps.Name, last) {
				s = append(s, prompt.Suggest{Text: ps.Name, Description: "🔖 " + ps.Name})
			}
		}
	}

	seen := map[string]bool{}
	for _, ps := range h.Library {
		for _, p := range ps.Patterns {
			for _, w := range p.Words() {
				if seen[w] || !strings.HasPrefix(w, last) {
					continue
				}
				seen[w] = true
				s = append(s, prompt.Suggest{Text: w, Description: ps.Name + ": " + p.String()})
			}
		}
	}

	return s
}
