package main

import (
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/relex/storage/sqlite/zombiezen"
)

// Pool opens the sqlite file once per run.
type Pool struct {
	p    *sqlitex.Pool
	path string
}

func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil && p.path == path {
		return p.p, nil
	}

	if err := p.Close(); err != nil {
		return nil, err
	}

	pool, err := zombiezen.NewPool(path)
	if err != nil {
		return nil, err
	}

	// relations are created on read too: an imported file may not have been
	// indexed yet
	if err := zombiezen.CreateSchemas(pool, zombiezen.DocsSchema, zombiezen.RelationsSchema); err != nil {
		pool.Close()
		return nil, err
	}

	p.p = pool
	p.path = path
	return p.p, nil
}

func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}

	err := p.p.Close()
	p.p = nil
	return err
}
