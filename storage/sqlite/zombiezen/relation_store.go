package zombiezen

import (
	"context"
	"fmt"
	"strings"

	"github.com/revelaction/relex/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type RelationStore struct {
	pool *sqlitex.Pool
}

var _ storage.RelationRepository = (*RelationStore)(nil)

func NewRelationStore(pool *sqlitex.Pool) *RelationStore {
	return &RelationStore{pool: pool}
}

func (h *RelationStore) WriteRelations(docId, sentId int, rels []storage.Relation) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM relations WHERE doc_id = ? AND sent_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{docId, sentId},
	})
	if err != nil {
		return fmt.Errorf("failed to delete relations: %w", err)
	}

	const insert = `INSERT INTO relations (sentence_rowid, doc_id, sent_id, kind, subject, predicate, object)
		VALUES ((SELECT rowid FROM sentences WHERE doc_id = ? AND sent_id = ?), ?, ?, ?, ?, ?, ?)`

	for _, r := range rels {
		err = sqlitex.Execute(conn, insert, &sqlitex.ExecOptions{
			Args: []interface{}{docId, sentId, docId, sentId, r.Kind, r.Subject, r.Predicate, r.Object},
		})
		if err != nil {
			return fmt.Errorf("failed to insert relation: %w", err)
		}
	}

	return nil
}

func (h *RelationStore) Relations(q storage.RelationQuery, onRelation func(storage.Relation) error) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	var where []string
	var args []interface{}
	if q.DocId != nil {
		where = append(where, "doc_id = ?")
		args = append(args, *q.DocId)
	}
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, q.Kind)
	}

	query := "SELECT doc_id, sent_id, kind, subject, predicate, object FROM relations"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY doc_id, sent_id, id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			return onRelation(storage.Relation{
				DocId:      stmt.ColumnInt(0),
				SentenceId: stmt.ColumnInt(1),
				Kind:       stmt.ColumnText(2),
				Subject:    stmt.ColumnText(3),
				Predicate:  stmt.ColumnText(4),
				Object:     stmt.ColumnText(5),
			})
		},
	})
}
