package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meteradmin/internal/domain"
	"meteradmin/internal/services/auth"
	"meteradmin/internal/store"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type fixture struct {
	svc   *auth.Service
	docs  *store.DocumentFileStore
	creds *store.CredentialFileStore
	uid   domain.OwnerID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	docs := store.NewDocumentFileStore(dir)
	creds := store.NewCredentialFileStore(dir)
	svc := auth.New(docs, creds, secret, 0, zap.NewNop())

	uid, err := svc.BootstrapAdmin(context.Background(), "Root", "Admin@Example.com", "s3cretpass")
	require.NoError(t, err)
	return fixture{svc: svc, docs: docs, creds: creds, uid: uid}
}

func TestLogin_Succeeds(t *testing.T) {
	f := newFixture(t)
	before := time.Now()

	sess, err := f.svc.Login(context.Background(), "  ADMIN@example.com ", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, f.uid, sess.UID)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
	assert.Equal(t, "admin@example.com", sess.Email)
	assert.WithinDuration(t, before.Add(auth.DefaultTokenTTL), sess.ExpiresAt, time.Minute)

	claims, err := f.svc.Authenticate(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, f.uid, claims.UID)
}

func TestLogin_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "admin@example.com", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, "admin@example.com", "short")
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Login(ctx, "not-an-email", "s3cretpass")
	assert.True(t, domain.IsValidation(err))
}

func TestLogin_RequiresAdminRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.docs.Update(ctx, domain.CollectionAdmin, f.uid, domain.Patch{
		Set: map[string]any{"role": "officer"},
	}))
	_, err := f.svc.Login(ctx, "admin@example.com", "s3cretpass")
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestAuthenticate_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	other := auth.New(f.docs, f.creds, []byte("a different secret of 32 bytes!!"), time.Hour, zap.NewNop())
	sess, err := other.Login(ctx, "admin@example.com", "s3cretpass")
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	sess, err = f.svc.Login(ctx, "admin@example.com", "s3cretpass")
	require.NoError(t, err)
	_, err = f.docs.Delete(ctx, domain.CollectionAdmin, f.uid)
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrNotAdmin)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		change domain.PasswordChange
	}{
		{"missing", domain.PasswordChange{CurrentPassword: "s3cretpass"}},
		{"short", domain.PasswordChange{CurrentPassword: "s3cretpass", NewPassword: "abc", ConfirmPassword: "abc"}},
		{"mismatch", domain.PasswordChange{CurrentPassword: "s3cretpass", NewPassword: "newpass123", ConfirmPassword: "newpass124"}},
		{"wrong current", domain.PasswordChange{CurrentPassword: "nope-nope", NewPassword: "newpass123", ConfirmPassword: "newpass123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.svc.ChangePassword(ctx, f.uid, tt.change)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}

	require.NoError(t, f.svc.ChangePassword(ctx, f.uid, domain.PasswordChange{
		CurrentPassword: "s3cretpass", NewPassword: "newpass123", ConfirmPassword: "newpass123",
	}))
	_, err := f.svc.Login(ctx, "admin@example.com", "s3cretpass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "admin@example.com", "newpass123")
	assert.NoError(t, err)
}

func TestBootstrapAdmin_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.BootstrapAdmin(context.Background(), "Two", "admin@example.com", "anotherpass")
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}
