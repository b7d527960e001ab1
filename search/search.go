package search

import (
	"github.com/rs/zerolog"

	"github.com/revelaction/relex/match"
	sent "github.com/revelaction/relex/sentence"
	"github.com/revelaction/relex/storage"
	"github.com/revelaction/relex/svo"
)

// PageSize is the number of candidates fetched per storage call by All.
const PageSize = 500

// SentenceResult holds the relations extracted from one stored sentence.
type SentenceResult struct {
	Sentence sent.Sentence
	svo.Result

	// Invalid is set when the tree failed to build or validate. Relations of
	// a tree that built but failed validation are still reported.
	Invalid error
}

// HasRelations reports whether any triple or pair was extracted.
func (r *SentenceResult) HasRelations() bool {
	return len(r.SVOs) > 0 || len(r.SVs) > 0
}

// Search orchestrates the strategy selection for running the extraction
// over the sentences of a document repository.
type Search struct {
	repo      storage.DocReader
	extractor *svo.Extractor
	cfg       svo.Config
	log       zerolog.Logger

	docID    *int
	patterns *match.PatternSet
}

// New creates a new Search over the repository.
func New(dr storage.DocReader, ex *svo.Extractor, cfg svo.Config) *Search {
	return &Search{
		repo:      dr,
		extractor: ex,
		cfg:       cfg,
		log:       zerolog.Nop(),
	}
}

// WithDocID restricts the search to a single document ID.
// If set, the single-document strategy (Read) will be favored over
// the indexed strategy (FindCandidates).
func (s *Search) WithDocID(id int) *Search {
	s.docID = &id
	return s
}

// WithPatterns keeps only the relations matching the set. Sentences left
// without relations are not reported.
func (s *Search) WithPatterns(ps match.PatternSet) *Search {
	s.patterns = &ps
	return s
}

func (s *Search) WithLogger(l zerolog.Logger) *Search {
	s.log = l
	return s
}

// Sentences extracts the relations of the sentences containing all lemmas,
// one page at a time. It returns the cursor of the next page, equal to
// cursor when there is nothing left.
func (s *Search) Sentences(lemmas []string, cursor storage.Cursor, limit int, onResult func(*SentenceResult) error) (storage.Cursor, error) {
	// Strategy 1: Single Document (No Index)
	if s.docID != nil {
		if cursor > 0 {
			return cursor, nil
		}

		doc, err := s.repo.Read(*s.docID)
		if err != nil {
			return cursor, err
		}

		for _, sentence := range doc.Sentences {
			if !containsLemmas(sentence, lemmas) {
				continue
			}

			sentence.DocId = *s.docID
			if err := s.report(sentence, onResult); err != nil {
				return cursor, err
			}
		}

		// a document is a single page
		return 1, nil
	}

	// Strategy 2: Find candidates (indexed search). The page is buffered so
	// that onResult may use the repository.
	var page []sent.Sentence
	newCursor, err := s.repo.FindCandidates(lemmas, cursor, limit, func(sentence sent.Sentence) error {
		page = append(page, sentence)
		return nil
	})
	if err != nil {
		return cursor, err
	}

	for _, sentence := range page {
		if err := s.report(sentence, onResult); err != nil {
			return cursor, err
		}
	}

	return newCursor, nil
}

// All runs Sentences until the repository is exhausted.
func (s *Search) All(lemmas []string, onResult func(*SentenceResult) error) error {
	cursor := storage.Cursor(0)
	for {
		next, err := s.Sentences(lemmas, cursor, PageSize, onResult)
		if err != nil {
			return err
		}

		if next == cursor {
			return nil
		}
		cursor = next
	}
}

func (s *Search) report(sentence sent.Sentence, onResult func(*SentenceResult) error) error {
	res := s.Extract(sentence)
	if s.patterns != nil {
		res.Result = s.patterns.Filter(res.Result)
		if !res.HasRelations() {
			return nil
		}
	}

	return onResult(res)
}

// Extract builds the tree of the sentence and runs the extractor on it.
func (s *Search) Extract(sentence sent.Sentence) *SentenceResult {
	res := &SentenceResult{Sentence: sentence}

	tree, err := svo.NewTree(sentence.Tokens)
	if err != nil {
		s.log.Warn().Err(err).Int("doc", sentence.DocId).Int("sentence", sentence.Id).Msg("Could not build tree")
		res.Invalid = err
		res.Result = svo.Result{SVOs: []svo.Triple{}, SVs: []svo.Pair{}}
		return res
	}

	if err := tree.Validate(); err != nil {
		s.log.Warn().Err(err).Int("doc", sentence.DocId).Int("sentence", sentence.Id).Msg("Invalid tree")
		res.Invalid = err
	}

	res.Result = s.extractor.Extract(tree, s.cfg)
	return res
}

func containsLemmas(s sent.Sentence, lemmas []string) bool {
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

// Relations converts a result to storage relations, triples first.
func Relations(res *SentenceResult) []storage.Relation {
	rels := make([]storage.Relation, 0, len(res.SVOs)+len(res.SVs))
	for _, t := range res.SVOs {
		rels = append(rels, storage.Relation{
			DocId:      res.Sentence.DocId,
			SentenceId: res.Sentence.Id,
			Kind:       storage.KindSVO,
			Subject:    t.Subject,
			Predicate:  t.Predicate,
			Object:     t.Object,
		})
	}

	for _, sv := range res.SVs {
		rels = append(rels, storage.Relation{
			DocId:      res.Sentence.DocId,
			SentenceId: res.Sentence.Id,
			Kind:       storage.KindSV,
			Subject:    sv.Subject,
			Predicate:  sv.Predicate,
		})
	}

	return rels
}
