package app

import (
	"net/http"

	"go.uber.org/zap"

	"meteradmin/internal/api"
	"meteradmin/internal/domain"
	authsvc "meteradmin/internal/services/auth"
	meterssvc "meteradmin/internal/services/meters"
	ownerssvc "meteradmin/internal/services/owners"
	"meteradmin/internal/store"
)

// Wire bundles the stores and services behind the server.
type Wire struct {
	Documents   domain.DocumentStore
	Credentials domain.CredentialStore
	Auth        *authsvc.Service
	Owners      domain.OwnerService
	Meters      domain.MeterGateway
	API         *api.Server
}

// NewWire constructs the dependency graph from cfg. Callers must Close the
// returned Wire.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	// Document store
	var docs domain.DocumentStore
	switch cfg.Backend {
	case BackendSQLite:
		db, err := store.OpenDocumentSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		docs = db
	default:
		docs = store.NewDocumentFileStore(cfg.DataDir)
	}
	creds := store.NewCredentialFileStore(cfg.DataDir)

	secret, err := store.LoadOrCreateSecret(cfg.TokenSecretFile)
	if err != nil {
		_ = docs.Close()
		return nil, err
	}

	// High-level services
	authSvc := authsvc.New(docs, creds, secret, cfg.TokenTTL, log.Named("auth"))
	ownerSvc := ownerssvc.New(docs, creds, log.Named("owners"))
	meterSvc := meterssvc.New(docs, log.Named("meters"))

	return &Wire{
		Documents:   docs,
		Credentials: creds,
		Auth:        authSvc,
		Owners:      ownerSvc,
		Meters:      meterSvc,
		API:         api.New(authSvc, ownerSvc, meterSvc, cfg.AllowedOrigins, log.Named("http")),
	}, nil
}

// Handler returns the HTTP handler for the API.
func (w *Wire) Handler() http.Handler { return w.API.Handler() }

// Close releases the document store.
func (w *Wire) Close() error { return w.Documents.Close() }
