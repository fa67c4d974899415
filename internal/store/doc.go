// Package store provides file-based and SQLite persistence for meteradmin.
//
// It contains concrete implementations of the domain storage interfaces.
// File stores serialise data as JSON and replace whole files through a temp
// file and rename, so each write is atomic. All methods are concurrency-safe
// via internal locking.
//
// The package includes:
//   - Owner documents (DocumentFileStore, DocumentSQLiteStore)
//   - Login accounts and password hashes (CredentialFileStore)
//   - The CLI's saved admin session (SessionFileStore)
//   - The token signing key (LoadOrCreateSecret)
package store
