package crypto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meteradmin/internal/crypto"
	"meteradmin/internal/domain"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := crypto.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := crypto.VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = crypto.VerifyPassword("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := crypto.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")
}

func TestVerifyPassword_EmptyAndMalformed(t *testing.T) {
	ok, err := crypto.VerifyPassword("anything", "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = crypto.VerifyPassword("anything", "$bcrypt$nope")
	assert.ErrorIs(t, err, crypto.ErrMalformedHash)
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tok, exp, err := crypto.IssueToken(secret, "admin-1", "a@b.co", domain.RoleAdmin, 24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), exp)

	claims, err := crypto.ParseToken(secret, tok, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerID("admin-1"), claims.UID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.True(t, exp.Equal(claims.ExpiresAt))
}

func TestParseToken_Rejects(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()
	tok, _, err := crypto.IssueToken(secret, "admin-1", "a@b.co", domain.RoleAdmin, time.Hour, now)
	require.NoError(t, err)

	_, err = crypto.ParseToken([]byte("another secret of enough length!"), tok, now)
	assert.Error(t, err, "wrong secret")

	_, err = crypto.ParseToken(secret, tok, now.Add(2*time.Hour))
	assert.Error(t, err, "expired")

	_, err = crypto.ParseToken(secret, "not.a.token", now)
	assert.Error(t, err, "garbage")
}

func TestFingerprintAndWipe(t *testing.T) {
	fp := crypto.Fingerprint([]byte("token"))
	assert.Len(t, fp, 20)
	assert.Equal(t, fp, crypto.Fingerprint([]byte("token")))

	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
}
