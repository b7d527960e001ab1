package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/relex/search"
	"github.com/revelaction/relex/svo"
)

// JSONResult is the serialized form of a search.SentenceResult.
type JSONResult struct {
	DocId      int          `json:"doc_id"`
	SentenceId int          `json:"sent_id"`
	Text       string       `json:"text"`
	SVOs       []svo.Triple `json:"svos"`
	SVs        []svo.Pair   `json:"svs"`
	Invalid    string       `json:"invalid,omitempty"`
}

// JSONRenderer writes SentenceResult values as a JSON array to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes sentence results as a JSON array.
func (r *JSONRenderer) Render(results []*search.SentenceResult) error {
	out := make([]JSONResult, 0, len(results))
	for _, res := range results {
		jr := JSONResult{
			DocId:      res.Sentence.DocId,
			SentenceId: res.Sentence.Id,
			Text:       sentence(res.Sentence.Tokens),
			SVOs:       res.SVOs,
			SVs:        res.SVs,
		}
		if jr.SVOs == nil {
			jr.SVOs = []svo.Triple{}
		}
		if jr.SVs == nil {
			jr.SVs = []svo.Pair{}
		}
		if res.Invalid != nil {
			jr.Invalid = res.Invalid.Error()
		}
		out = append(out, jr)
	}

	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// compile-time interface check
var _ ResultsRenderer = (*JSONRenderer)(nil)
