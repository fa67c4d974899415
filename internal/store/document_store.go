package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"meteradmin/internal/domain"
)

// DocumentFileStore keeps each collection in one JSON file under dir,
// mapping document id to its fields. Every write replaces the file through
// a temp file and rename, so a patch lands whole or not at all.
type DocumentFileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewDocumentFileStore returns a DocumentFileStore rooted at dir.
func NewDocumentFileStore(dir string) *DocumentFileStore {
	return &DocumentFileStore{dir: dir}
}

type collectionFile map[domain.OwnerID]map[string]any

func (s *DocumentFileStore) path(c domain.Collection) string {
	return filepath.Join(s.dir, "collections", c.String()+".json")
}

func (s *DocumentFileStore) load(c domain.Collection) (collectionFile, error) {
	docs := make(collectionFile)
	if err := readJSON(s.path(c), &docs); err != nil {
		return nil, &domain.PersistenceError{Op: "read " + c.String(), Err: err}
	}
	return docs, nil
}

func (s *DocumentFileStore) save(op string, c domain.Collection, docs collectionFile) error {
	if err := writeJSON(s.path(c), docs, 0o600); err != nil {
		return &domain.PersistenceError{Op: op + " " + c.String(), Err: err}
	}
	return nil
}

// Get returns the document with id.
func (s *DocumentFileStore) Get(ctx context.Context, c domain.Collection, id domain.OwnerID) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, err := s.load(c)
	if err != nil {
		return domain.Document{}, err
	}
	fields, ok := docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%s/%s: %w", c, id, domain.ErrNotFound)
	}
	return domain.Document{ID: id, Fields: fields}, nil
}

// Create stores a new document; an existing id is rejected.
func (s *DocumentFileStore) Create(ctx context.Context, c domain.Collection, doc domain.Document) error {
	if err := validCollection(c); err != nil {
		return err
	}
	if doc.ID == "" {
		return domain.Invalid("id", "document id must not be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fields, err := normalizeFields(doc.Fields)
	if err != nil {
		return domain.Invalid("fields", "%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(c)
	if err != nil {
		return err
	}
	if _, exists := docs[doc.ID]; exists {
		return &domain.PersistenceError{Op: "create " + c.String(), Err: fmt.Errorf("document %s already exists", doc.ID)}
	}
	docs[doc.ID] = fields
	return s.save("create", c, docs)
}

// Update applies patch to the document with id in one file replacement.
func (s *DocumentFileStore) Update(ctx context.Context, c domain.Collection, id domain.OwnerID, patch domain.Patch) error {
	return s.UpdateFunc(ctx, c, id, func(map[string]any) (domain.Patch, error) { return patch, nil })
}

// UpdateFunc loads the document, builds its patch with fn and saves the
// result while holding the write lock.
func (s *DocumentFileStore) UpdateFunc(ctx context.Context, c domain.Collection, id domain.OwnerID, fn func(map[string]any) (domain.Patch, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(c)
	if err != nil {
		return err
	}
	fields, ok := docs[id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", c, id, domain.ErrNotFound)
	}
	patch, err := fn(fields)
	if err != nil {
		return err
	}
	next, err := applyPatch(fields, patch)
	if err != nil {
		return domain.Invalid("patch", "%v", err)
	}
	docs[id] = next
	return s.save("update", c, docs)
}

// Query returns the documents matching filter ordered by id.
func (s *DocumentFileStore) Query(ctx context.Context, c domain.Collection, filter domain.Filter) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs, err := s.load(c)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(docs))
	for id, fields := range docs {
		ok, err := matches(fields, filter)
		if err != nil {
			return nil, domain.Invalid("filter", "%v", err)
		}
		if ok {
			out = append(out, domain.Document{ID: id, Fields: fields})
		}
	}
	sortDocuments(out)
	return out, nil
}

// Delete removes the listed documents in one write and returns how many
// existed. Unknown ids are skipped.
func (s *DocumentFileStore) Delete(ctx context.Context, c domain.Collection, ids ...domain.OwnerID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.load(c)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if _, ok := docs[id]; ok {
			delete(docs, id)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.save("delete", c, docs); err != nil {
		return 0, err
	}
	return n, nil
}

// Close is a no-op; every call opens and closes its own file.
func (s *DocumentFileStore) Close() error { return nil }

// Compile-time assertion that DocumentFileStore implements domain.DocumentStore.
var _ domain.DocumentStore = (*DocumentFileStore)(nil)
