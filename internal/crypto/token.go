package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"meteradmin/internal/domain"
)

const tokenIssuer = "meteradmin"

// TokenClaims is the JWT body carried by an admin session token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// IssueToken signs an HS256 token for uid that expires after ttl.
func IssueToken(secret []byte, uid domain.OwnerID, email string, role domain.Role, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expires := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   uid.String(),
			Audience:  jwt.ClaimStrings{tokenIssuer},
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseToken validates signature, issuer, audience and expiry and returns
// the session claims.
func ParseToken(secret []byte, token string, now time.Time) (domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return domain.Claims{}, err
	}
	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return domain.Claims{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return domain.Claims{}, errors.New("token has no subject")
	}
	return domain.Claims{
		UID:       domain.OwnerID(claims.Subject),
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
