package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/relex/conll"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
)

// DocStore is a read-only repository over a directory of JSON and CoNLL
// documents. Document ids are the positions of the files in name order.
type DocStore struct {
	docDir string

	// In-memory cache, contents loaded on first Read or by Preload
	docs   []sent.Doc
	loaded []bool
}

var _ storage.DocReader = (*DocStore)(nil)
var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document handler.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]sent.Doc, 0, len(files))

	idx := 0
	for _, file := range files {
		if file.IsDir() || !IsDocFile(file.Name()) {
			continue
		}

		docs = append(docs, sent.Doc{
			Id:    idx,
			Title: file.Name(),
		})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// IsDocFile reports whether the file name has a document extension.
func IsDocFile(name string) bool {
	return filepath.Ext(name) == ".json" || conll.IsConll(name)
}

// Preload loads all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc := &h.docs[id] // pointer to modify in place
	fullDoc, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return err
	}

	// Title and Id are already set
	doc.Labels = fullDoc.Labels
	doc.Sentences = fullDoc.Sentences
	// sentence ids are positions in the doc
	for i := range doc.Sentences {
		doc.Sentences[i].Id = i
		doc.Sentences[i].DocId = id
	}

	h.loaded[id] = true
	return nil
}

func (h *DocStore) List(labelMatch string) ([]sent.Doc, error) {
	var docs []sent.Doc
	for i := range h.docs {
		if labelMatch != "" {
			// labels live in the file
			if err := h.load(i); err != nil {
				return nil, err
			}
			if !hasLabel(h.docs[i].Labels, labelMatch) {
				continue
			}
		}

		docs = append(docs, sent.Doc{Id: h.docs[i].Id, Title: h.docs[i].Title, Labels: h.docs[i].Labels})
	}

	return docs, nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

func (h *DocStore) Read(id int) (sent.Doc, error) {
	if id < 0 || id >= len(h.docs) {
		return sent.Doc{}, fmt.Errorf("doc %d: %w", id, storage.ErrNotFound)
	}

	if err := h.load(id); err != nil {
		return sent.Doc{}, err
	}

	return h.docs[id], nil
}

// FindCandidates has no lemma index: the cursor counts the sentences of the
// whole directory and a sentence is a candidate if it contains all lemmas.
func (h *DocStore) FindCandidates(lemmas []string, after storage.Cursor, limit int, onCandidate func(sent.Sentence) error) (storage.Cursor, error) {
	pos := storage.Cursor(0)
	cursor := after
	found := 0

	for i := range h.docs {
		if err := h.load(i); err != nil {
			return after, err
		}

		for _, s := range h.docs[i].Sentences {
			pos++
			if pos <= after {
				continue
			}

			if limit > 0 && found >= limit {
				return cursor, nil
			}

			cursor = pos
			if !hasLemmas(s, lemmas) {
				continue
			}

			found++
			if err := onCandidate(s); err != nil {
				return after, err
			}
		}
	}

	return cursor, nil
}

func hasLemmas(s sent.Sentence, lemmas []string) bool {
	if len(lemmas) == 0 {
		return true
	}

	present := make(map[string]bool, len(s.Tokens))
	for _, t := range s.Tokens {
		present[t.Lemma] = true
	}

	for _, l := range lemmas {
		if !present[l] {
			return false
		}
	}

	return true
}

func (h *DocStore) Write(doc sent.Doc) error {
	return storage.ErrReadOnly
}

// ReadDoc reads a JSON or CoNLL document from the given path.
func ReadDoc(path string) (sent.Doc, error) {
	if conll.IsConll(path) {
		return conll.ReadFile(path)
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sent.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}
