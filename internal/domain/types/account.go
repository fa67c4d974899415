package types

import "time"

// Account is a login identity held by the credential store. Officer and
// user accounts carry no password hash and cannot log in.
type Account struct {
	UID          OwnerID   `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminSession is what a successful login hands to the client.
type AdminSession struct {
	Token     string    `json:"token"`
	Role      Role      `json:"role"`
	Email     string    `json:"email"`
	UID       OwnerID   `json:"uid"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s AdminSession) Expired(now time.Time) bool {
	return s.Token == "" || !now.Before(s.ExpiresAt)
}

// PasswordChange carries a password rotation request.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Claims is the verified content of a bearer token.
type Claims struct {
	UID       OwnerID
	Email     string
	Role      Role
	ExpiresAt time.Time
}
