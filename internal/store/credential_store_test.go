package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteradmin/internal/domain"
	"meteradmin/internal/store"
)

func TestCredentialFileStore_Lifecycle(t *testing.T) {
	s := store.NewCredentialFileStore(t.TempDir())

	require.NoError(t, s.CreateAccount(domain.Account{UID: "a1", Email: " Admin@Example.com ", PasswordHash: "h1"}))

	got, err := s.AccountByEmail("ADMIN@example.COM")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerID("a1"), got.UID)
	assert.Equal(t, "admin@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero())

	err = s.CreateAccount(domain.Account{UID: "a2", Email: "admin@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	require.NoError(t, s.SetPasswordHash("a1", "h2"))
	got, err = s.Account("a1")
	require.NoError(t, err)
	assert.Equal(t, "h2", got.PasswordHash)

	assert.ErrorIs(t, s.SetPasswordHash("nope", "x"), domain.ErrNotFound)

	require.NoError(t, s.DeleteAccounts("a1", "nope"))
	_, err = s.Account("a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionFileStore(t *testing.T) {
	s := store.NewSessionFileStore(t.TempDir())

	_, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.AdminSession{Token: "tok", Role: domain.RoleAdmin, Email: "a@b.co", UID: "a1"}
	require.NoError(t, s.SaveSession(want))

	got, ok, err := s.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Token, got.Token)
	assert.Equal(t, want.UID, got.UID)

	require.NoError(t, s.ClearSession())
	require.NoError(t, s.ClearSession())
	_, ok, err = s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadOrCreateSecret(t *testing.T) {
	path := t.TempDir() + "/token.key"
	first, err := store.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := store.LoadOrCreateSecret(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
