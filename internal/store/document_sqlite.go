package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"meteradmin/internal/domain"
)

const documentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	fields     TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, id)
);
`

// DocumentSQLiteStore keeps documents as JSON text in a SQLite table. Each
// Update reads, patches and writes the row inside one transaction.
type DocumentSQLiteStore struct {
	db *sql.DB
}

// OpenDocumentSQLiteStore opens (and if needed creates) the database at path.
func OpenDocumentSQLiteStore(path string) (*DocumentSQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps SQLITE_BUSY away.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(documentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &DocumentSQLiteStore{db: db}, nil
}

// Get returns the document with id.
func (s *DocumentSQLiteStore) Get(ctx context.Context, c domain.Collection, id domain.OwnerID) (domain.Document, error) {
	fields, err := s.read(ctx, s.db, c, id)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *DocumentSQLiteStore) read(ctx context.Context, q queryer, c domain.Collection, id domain.OwnerID) (map[string]any, error) {
	var raw string
	err := q.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection = ? AND id = ?`,
		c.String(), id.String(),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", c, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read " + c.String(), Err: err}
	}
	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &domain.PersistenceError{Op: "decode " + c.String() + "/" + id.String(), Err: err}
	}
	return fields, nil
}

// Create inserts a new document; an existing id is rejected.
func (s *DocumentSQLiteStore) Create(ctx context.Context, c domain.Collection, doc domain.Document) error {
	if err := validCollection(c); err != nil {
		return err
	}
	if doc.ID == "" {
		return domain.Invalid("id", "document id must not be empty")
	}
	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return domain.Invalid("fields", "%v", err)
	}
	if doc.Fields == nil {
		raw = []byte("{}")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, fields) VALUES (?, ?, ?)`,
		c.String(), doc.ID.String(), string(raw),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "create " + c.String(), Err: err}
	}
	return nil
}

// Update applies patch to the document with id inside one transaction.
func (s *DocumentSQLiteStore) Update(ctx context.Context, c domain.Collection, id domain.OwnerID, patch domain.Patch) error {
	return s.UpdateFunc(ctx, c, id, func(map[string]any) (domain.Patch, error) { return patch, nil })
}

// UpdateFunc reads the row, builds its patch with fn and writes it back in
// the same transaction.
func (s *DocumentSQLiteStore) UpdateFunc(ctx context.Context, c domain.Collection, id domain.OwnerID, fn func(map[string]any) (domain.Patch, error)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "update " + c.String(), Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	fields, err := s.read(ctx, tx, c, id)
	if err != nil {
		return err
	}
	patch, err := fn(fields)
	if err != nil {
		return err
	}
	next, err := applyPatch(fields, patch)
	if err != nil {
		return domain.Invalid("patch", "%v", err)
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return domain.Invalid("patch", "%v", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET fields = ?, updated_at = CURRENT_TIMESTAMP WHERE collection = ? AND id = ?`,
		string(raw), c.String(), id.String(),
	); err != nil {
		return &domain.PersistenceError{Op: "update " + c.String(), Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "update " + c.String(), Err: err}
	}
	return nil
}

// Query returns the documents matching filter ordered by id.
func (s *DocumentSQLiteStore) Query(ctx context.Context, c domain.Collection, filter domain.Filter) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM documents WHERE collection = ? ORDER BY id`,
		c.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c, err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("query %s: %w", c, err)
		}
		fields := make(map[string]any)
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c, id, err)
		}
		ok, err := matches(fields, filter)
		if err != nil {
			return nil, domain.Invalid("filter", "%v", err)
		}
		if ok {
			out = append(out, domain.Document{ID: domain.OwnerID(id), Fields: fields})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", c, err)
	}
	sortDocuments(out)
	return out, nil
}

// Delete removes the listed documents in one transaction and returns how
// many existed.
func (s *DocumentSQLiteStore) Delete(ctx context.Context, c domain.Collection, ids ...domain.OwnerID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "delete " + c.String(), Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	n := 0
	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM documents WHERE collection = ? AND id = ?`,
			c.String(), id.String(),
		)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "delete " + c.String(), Err: err}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, &domain.PersistenceError{Op: "delete " + c.String(), Err: err}
		}
		n += int(affected)
	}
	if err := tx.Commit(); err != nil {
		return 0, &domain.PersistenceError{Op: "delete " + c.String(), Err: err}
	}
	return n, nil
}

// Close closes the database connection.
func (s *DocumentSQLiteStore) Close() error {
	return s.db.Close()
}

// Compile-time assertion that DocumentSQLiteStore implements domain.DocumentStore.
var _ domain.DocumentStore = (*DocumentSQLiteStore)(nil)
