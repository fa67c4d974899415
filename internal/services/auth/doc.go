// Package auth logs admins in, verifies their bearer tokens and rotates
// passwords.
//
// It enforces the password policy, checks the admin document's role on every
// login and token, and signs HS256 tokens with the server secret.
package auth
