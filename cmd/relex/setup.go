package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/relex/storage"
	"github.com/revelaction/relex/storage/filesystem"
	"github.com/revelaction/relex/storage/sqlite/zombiezen"
)

var (
	errNoRepo       = errors.New("no document repository: use --repo or RELEX_DOC_PATH")
	errNotSqliteDoc = errors.New("relations are only stored in a sqlite repository")
)

// isDir reports whether path is a directory. It fails if path does not exist.
func isDir(path string) (bool, error) {
	if path == "" {
		return false, errNoRepo
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("repository not found: %s", path)
	}

	return info.IsDir(), nil
}

// NewDocRepository returns a filesystem store for a directory, a sqlite store
// otherwise.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	dir, err := isDir(path)
	if err != nil {
		return nil, err
	}

	if dir {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

func NewRelationRepository(p *Pool, path string) (storage.RelationRepository, error) {
	dir, err := isDir(path)
	if err != nil {
		return nil, err
	}

	if dir {
		return nil, errNotSqliteDoc
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewRelationStore(pool), nil
}

func NewPatternRepository(path string) storage.PatternRepository {
	return filesystem.NewPatternStore(path)
}
