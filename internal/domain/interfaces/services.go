package interfaces

import (
	"context"

	domaintypes "meteradmin/internal/domain/types"
)

// AuthService logs admins in, verifies their tokens and rotates passwords.
type AuthService interface {
	Login(ctx context.Context, email, password string) (domaintypes.AdminSession, error)
	Authenticate(ctx context.Context, token string) (domaintypes.Claims, error)
	ChangePassword(
		ctx context.Context,
		uid domaintypes.OwnerID,
		change domaintypes.PasswordChange,
	) error
}

// OwnerService manages officer and user records.
type OwnerService interface {
	RegisterOfficer(ctx context.Context, in domaintypes.OfficerInput) (domaintypes.Owner, error)
	RegisterUser(ctx context.Context, in domaintypes.UserInput) (domaintypes.Owner, error)
	GetOwner(ctx context.Context, id domaintypes.OwnerID) (domaintypes.Owner, error)
	EditOfficer(ctx context.Context, id domaintypes.OwnerID, edit domaintypes.OfficerEdit) error
	EditUser(ctx context.Context, id domaintypes.OwnerID, edit domaintypes.UserEdit) error
	ListOwners(
		ctx context.Context,
		role domaintypes.Role,
		query domaintypes.ListQuery,
	) (domaintypes.ListResult, error)
	SearchOwners(
		ctx context.Context,
		role domaintypes.Role,
		query domaintypes.ListQuery,
	) ([]domaintypes.Owner, error)
	DeleteOwners(ctx context.Context, role domaintypes.Role, ids []domaintypes.OwnerID) (int, error)
}

// MeterGateway replaces an owner's whole meter collection in one write.
// The payload must be dense: slots 1..N.
type MeterGateway interface {
	ReplaceMeters(ctx context.Context, owner domaintypes.OwnerID, payload domaintypes.Meters) error
}
