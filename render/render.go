package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/relex/search"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/stat"
	"github.com/revelaction/relex/storage"
)

const (
	FormatAll = "all"
	FormatSVO = "svo"
	FormatSV  = "sv"

	Defaultformat = FormatAll
)

var (
	Red       = "\033[1;31m"
	Teal      = "\033[1;36m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{FormatAll, FormatSVO, FormatSV}
}

// ResultsRenderer writes extraction results.
type ResultsRenderer interface {
	Render(results []*search.SentenceResult) error
}

type Renderer struct {
	Out io.Writer

	HasColor bool

	HasPrefix bool

	// Format determines which relations are printed
	//
	// all: triples and pairs
	// svo: triples only
	// sv: pairs only
	Format string

	DocNames map[int]string
}

var _ ResultsRenderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{
		Out:      os.Stdout,
		Format:   Defaultformat,
		DocNames: map[int]string{},
	}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Render prints each sentence followed by its relations.
func (r *Renderer) Render(results []*search.SentenceResult) error {
	for _, res := range results {
		if err := r.Result(res); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) Result(res *search.SentenceResult) error {
	prefix := r.buildPrefix(res.Sentence)
	if _, err := fmt.Fprintf(r.Out, "%s%s\n", prefix, r.SentenceString(res.Sentence.Tokens)); err != nil {
		return err
	}

	if res.Invalid != nil {
		fmt.Fprintf(r.Out, "    %s\n", r.color(Red, "invalid tree: "+res.Invalid.Error()))
	}

	if r.Format != FormatSV {
		for _, t := range res.SVOs {
			fmt.Fprintf(r.Out, "    %s %s %s\n", r.color(Green256, t.Subject), r.color(Yellow256, t.Predicate), r.color(Teal, t.Object))
		}
	}

	if r.Format != FormatSVO {
		for _, sv := range res.SVs {
			fmt.Fprintf(r.Out, "    %s %s\n", r.color(Green256, sv.Subject), r.color(Yellow256, sv.Predicate))
		}
	}

	return nil
}

// Relations prints stored relations, one per line.
func (r *Renderer) Relations(rels []storage.Relation) {
	for _, rel := range rels {
		prefix := ""
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%s %2d %5d] %-3s ", r.title(rel.DocId), rel.DocId, rel.SentenceId, rel.Kind)
		}

		line := r.color(Green256, rel.Subject) + " " + r.color(Yellow256, rel.Predicate)
		if rel.Object != "" {
			line += " " + r.color(Teal, rel.Object)
		}

		fmt.Fprintf(r.Out, "%s%s\n", prefix, line)
	}
}

// Sentence prints the text of the sentence.
func (r *Renderer) Sentence(s []sent.Token, prefix string) {
	fmt.Fprintf(r.Out, "%s%s\n", prefix, r.SentenceString(s))
}

// Tokens prints one line per token with its parse.
func (r *Renderer) Tokens(s []sent.Token) {
	for _, token := range s {
		fmt.Fprintf(r.Out, "%20q %15q %8s %6d %6d %8s %s\n", token.Text, token.Lemma, token.Pos, token.Index, token.Head, token.Dep, token.Tag)
	}
}

// Stats prints the extraction statistics and the top predicates.
func (r *Renderer) Stats(stats stat.Stats, top []stat.PredicateCount) {
	fmt.Fprintf(r.Out, "Num sentences %d, with triples %d, invalid trees %d\n", stats.NumSentences, stats.NumSentencesWithTriples, stats.NumInvalid)
	fmt.Fprintf(r.Out, "Num triples %d, num pairs %d, num tokens per sentence %d\n", stats.NumTriples, stats.NumPairs, stats.TokensPerSentenceMean)
	for _, pc := range top {
		fmt.Fprintf(r.Out, "[%5d] %s\n", pc.Count, r.color(Yellow256, pc.Predicate))
	}
}

// SentenceString returns the sentence text on one line.
func (r *Renderer) SentenceString(s []sent.Token) string {
	return strings.ReplaceAll(sentence(s), "\n", " ")
}

func sentence(s []sent.Token) string {
	if !hasOffsets(s) {
		words := make([]string, len(s))
		for i, token := range s {
			words[i] = token.Text
		}
		return strings.Join(words, " ")
	}

	var str strings.Builder
	var lastIdx, lastLen int
	for i, token := range s {
		if i > 0 {
			// Parts of a multi token word share the idx (the rune offset in
			// the source text) of the word: only the word is written.
			diff := token.Idx - lastIdx
			if diff <= 0 {
				continue
			}
			str.WriteString(strings.Repeat(" ", max(diff-lastLen, 0)))
		}

		str.WriteString(token.Text)
		lastIdx = token.Idx
		lastLen = len([]rune(token.Text))
	}

	return str.String()
}

func hasOffsets(s []sent.Token) bool {
	for _, token := range s {
		if token.Idx > 0 {
			return true
		}
	}
	return false
}

func (r *Renderer) color(c, text string) string {
	if !r.HasColor {
		return text
	}
	return c + text + Off
}

func (r *Renderer) buildPrefix(s sent.Sentence) string {
	if !r.HasPrefix {
		return ""
	}

	return fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(s.DocId), s.DocId, s.Id)
}

func (r *Renderer) title(docId int) string {
	title := r.DocNames[docId]
	var part string
	if len([]rune(title)) <= 20 {
		part = fmt.Sprintf("%-20s", title)
	} else {
		part = string([]rune(title)[:20])
	}

	return r.color(Grey256, part)
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {
	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			r.Format = supported[(i+1)%len(supported)]
			return
		}
	}

	r.Format = supported[0]
}

func (r *Renderer) NextPrefix() {
	// toggle
	r.HasPrefix = !r.HasPrefix
}
