// Package crypto exposes the minimal primitives used by meteradmin.
//
// Contents
//
//   - Argon2id password hashing and verification (HashPassword,
//     VerifyPassword)
//   - HS256 session tokens (IssueToken, ParseToken)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short fingerprints of tokens for display/logging (Fingerprint)
//
// # Notes
//
// Password hashes are self-describing PHC strings, so parameters can change
// without invalidating existing accounts. Callers should never log a raw
// token; log its Fingerprint instead.
package crypto
