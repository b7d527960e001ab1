package stat

import (
	"sort"

	"github.com/revelaction/relex/search"
)

type Handler struct {
	stats      Stats
	predicates map[string]int
}

type Stats struct {
	NumSentences            int
	NumSentencesWithTriples int
	NumTriples              int
	NumPairs                int
	NumInvalid              int
	NumTokens               int
	TokensPerSentenceMean   int
	TriplesPerSentenceDis   map[int]int
}

// PredicateCount is the number of triples with a given predicate.
type PredicateCount struct {
	Predicate string
	Count     int
}

func (h *Handler) Get() Stats {
	if h.stats.NumSentences > 0 {
		h.stats.TokensPerSentenceMean = h.stats.NumTokens / h.stats.NumSentences
	}
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TriplesPerSentenceDis: map[int]int{}}
	return &Handler{
		stats:      stats,
		predicates: map[string]int{},
	}
}

// Aggregate adds the result of one sentence.
func (h *Handler) Aggregate(res *search.SentenceResult) {
	h.stats.NumSentences++
	h.stats.NumTokens += len(res.Sentence.Tokens)
	h.stats.NumTriples += len(res.SVOs)
	h.stats.NumPairs += len(res.SVs)
	h.stats.TriplesPerSentenceDis[len(res.SVOs)]++

	if len(res.SVOs) > 0 {
		h.stats.NumSentencesWithTriples++
	}

	if res.Invalid != nil {
		h.stats.NumInvalid++
	}

	for _, t := range res.SVOs {
		h.predicates[t.Predicate]++
	}
}

// TopPredicates returns the n most frequent triple predicates, by count and
// then alphabetically. n <= 0 returns all.
func (h *Handler) TopPredicates(n int) []PredicateCount {
	counts := make([]PredicateCount, 0, len(h.predicates))
	for p, c := range h.predicates {
		counts = append(counts, PredicateCount{Predicate: p, Count: c})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Predicate < counts[j].Predicate
	})

	if n > 0 && n < len(counts) {
		counts = counts[:n]
	}

	return counts
}
