package storage

import (
	"errors"

	"github.com/revelaction/relex/match"
	sent "github.com/revelaction/relex/sentence"
)

var (
	ErrNotFound = errors.New("not found")
	ErrReadOnly = errors.New("read-only storage")
)

// Cursor for paginated sentence queries
type Cursor int64

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Sentences) is not loaded.
	List(labelMatch string) ([]sent.Doc, error)

	// Read returns a document by ID
	Read(id int) (sent.Doc, error)

	// FindCandidates calls onCandidate for the sentences containing ALL given
	// lemmas, resuming after the given cursor. Without lemmas every sentence
	// is a candidate. Returns the new cursor, equal to after when there is
	// nothing left.
	FindCandidates(lemmas []string, after Cursor, limit int, onCandidate func(sent.Sentence) error) (Cursor, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sentences/lemmas to storage
	Write(doc sent.Doc) error
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

const (
	KindSVO = "svo"
	KindSV  = "sv"
)

// Relation is an extracted relation of a stored sentence. Object is empty
// for KindSV.
type Relation struct {
	DocId      int    `json:"doc_id"`
	SentenceId int    `json:"sent_id"`
	Kind       string `json:"kind"`
	Subject    string `json:"subject"`
	Predicate  string `json:"predicate"`
	Object     string `json:"object,omitempty"`
}

// RelationQuery filters stored relations. Zero values do not filter.
type RelationQuery struct {
	DocId *int
	Kind  string
	Limit int
}

// RelationReader defines read operations for relation storage
type RelationReader interface {
	// Relations calls onRelation for each stored relation matching q, in
	// document and sentence order.
	Relations(q RelationQuery, onRelation func(Relation) error) error
}

// RelationWriter defines write operations for relation storage
type RelationWriter interface {
	// WriteRelations replaces the relations of one sentence.
	WriteRelations(docId, sentId int, rels []Relation) error
}

// RelationRepository combines read and write operations
type RelationRepository interface {
	RelationReader
	RelationWriter
}

// PatternReader defines read operations for pattern set storage
type PatternReader interface {
	// ReadAll returns all pattern sets from storage
	ReadAll() (match.Library, error)

	// Read returns a single pattern set by name
	Read(name string) (match.PatternSet, error)
}

// PatternWriter defines write operations for pattern set storage
type PatternWriter interface {
	// Write persists a pattern set to storage
	Write(ps match.PatternSet) error
}

// PatternRepository combines read and write operations
type PatternRepository interface {
	PatternReader
	PatternWriter
}
