package interfaces

import (
	"context"

	domaintypes "meteradmin/internal/domain/types"
)

// DocumentStore keeps owner documents grouped by collection.
//
// Update applies a whole Patch to one document as a single write: either
// every field change lands or none does.
type DocumentStore interface {
	Get(
		ctx context.Context,
		collection domaintypes.Collection,
		id domaintypes.OwnerID,
	) (domaintypes.Document, error)
	Create(
		ctx context.Context,
		collection domaintypes.Collection,
		doc domaintypes.Document,
	) error
	Update(
		ctx context.Context,
		collection domaintypes.Collection,
		id domaintypes.OwnerID,
		patch domaintypes.Patch,
	) error
	// UpdateFunc reads the document and applies the patch fn builds from its
	// current fields, all under the same write lock. A missing document
	// yields ErrNotFound without calling fn; an error from fn is returned
	// as is and nothing is written.
	UpdateFunc(
		ctx context.Context,
		collection domaintypes.Collection,
		id domaintypes.OwnerID,
		fn func(fields map[string]any) (domaintypes.Patch, error),
	) error
	Query(
		ctx context.Context,
		collection domaintypes.Collection,
		filter domaintypes.Filter,
	) ([]domaintypes.Document, error)
	Delete(
		ctx context.Context,
		collection domaintypes.Collection,
		ids ...domaintypes.OwnerID,
	) (int, error)
	Close() error
}

// CredentialStore holds login accounts, unique by e-mail.
type CredentialStore interface {
	CreateAccount(account domaintypes.Account) error
	AccountByEmail(email string) (domaintypes.Account, error)
	Account(uid domaintypes.OwnerID) (domaintypes.Account, error)
	SetPasswordHash(uid domaintypes.OwnerID, hash string) error
	DeleteAccounts(uids ...domaintypes.OwnerID) error
}

// SessionStore persists the CLI's admin session between invocations.
type SessionStore interface {
	SaveSession(session domaintypes.AdminSession) error
	LoadSession() (domaintypes.AdminSession, bool, error)
	ClearSession() error
}
