package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"meteradmin/internal/crypto"
	"meteradmin/internal/domain"
	"meteradmin/internal/util/words"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8

	// DefaultTokenTTL is how long a login stays valid.
	DefaultTokenTTL = 24 * time.Hour
)

// Service authenticates admins against the credential store and the admin
// collection.
type Service struct {
	docs   domain.DocumentStore
	creds  domain.CredentialStore
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
}

// New returns an auth service. A zero ttl means DefaultTokenTTL.
func New(docs domain.DocumentStore, creds domain.CredentialStore, secret []byte, ttl time.Duration, log *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{docs: docs, creds: creds, secret: secret, ttl: ttl, log: log, now: time.Now}
}

// Login checks email and password, requires the admin role and issues a
// session token.
func (s *Service) Login(ctx context.Context, email, password string) (domain.AdminSession, error) {
	email = words.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.AdminSession{}, domain.Invalid("", "email and password are required")
	}
	if !words.IsEmail(email) {
		return domain.AdminSession{}, domain.Invalid("email", "invalid email format")
	}
	if len(password) < MinPasswordLength {
		return domain.AdminSession{}, domain.Invalid("password", "must be at least %d characters", MinPasswordLength)
	}

	account, err := s.creds.AccountByEmail(email)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown account"))
		return domain.AdminSession{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.AdminSession{}, err
	}
	ok, err := crypto.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return domain.AdminSession{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Info("login rejected", zap.String("email", email), zap.String("reason", "bad password"))
		return domain.AdminSession{}, domain.ErrInvalidCredentials
	}
	if err := s.requireAdmin(ctx, account.UID); err != nil {
		s.log.Warn("login rejected", zap.String("email", email), zap.Error(err))
		return domain.AdminSession{}, err
	}

	token, expires, err := crypto.IssueToken(s.secret, account.UID, account.Email, domain.RoleAdmin, s.ttl, s.now())
	if err != nil {
		return domain.AdminSession{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.Info("admin logged in",
		zap.String("uid", account.UID.String()),
		zap.String("token", crypto.Fingerprint([]byte(token))),
	)
	return domain.AdminSession{
		Token:     token,
		Role:      domain.RoleAdmin,
		Email:     account.Email,
		UID:       account.UID,
		ExpiresAt: expires,
	}, nil
}

// Authenticate verifies token and returns its claims. The admin document is
// re-checked so a demoted or deleted admin loses access immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Claims, error) {
	if token == "" {
		return domain.Claims{}, domain.ErrUnauthenticated
	}
	claims, err := crypto.ParseToken(s.secret, token, s.now())
	if err != nil {
		s.log.Debug("token rejected",
			zap.String("token", crypto.Fingerprint([]byte(token))),
			zap.Error(err),
		)
		return domain.Claims{}, domain.ErrUnauthenticated
	}
	if claims.Role != domain.RoleAdmin {
		return domain.Claims{}, domain.ErrNotAdmin
	}
	if err := s.requireAdmin(ctx, claims.UID); err != nil {
		return domain.Claims{}, err
	}
	return claims, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one.
func (s *Service) ChangePassword(ctx context.Context, uid domain.OwnerID, change domain.PasswordChange) error {
	if change.CurrentPassword == "" || change.NewPassword == "" || change.ConfirmPassword == "" {
		return domain.Invalid("", "all password fields are required")
	}
	if len(change.NewPassword) < MinPasswordLength {
		return domain.Invalid("newPassword", "must be at least %d characters", MinPasswordLength)
	}
	if change.NewPassword != change.ConfirmPassword {
		return domain.Invalid("confirmPassword", "new passwords do not match")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	account, err := s.creds.Account(uid)
	if err != nil {
		return err
	}
	ok, err := crypto.VerifyPassword(change.CurrentPassword, account.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.Invalid("currentPassword", "current password is incorrect")
	}
	hash, err := crypto.HashPassword(change.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.creds.SetPasswordHash(uid, hash); err != nil {
		return err
	}
	s.log.Info("password changed", zap.String("uid", uid.String()))
	return nil
}

// BootstrapAdmin creates an admin account and its admin document. It is used
// to seed the first admin directly against the data directory.
func (s *Service) BootstrapAdmin(ctx context.Context, name, email, password string) (domain.OwnerID, error) {
	email = words.NormalizeEmail(email)
	if !words.IsEmail(email) {
		return "", domain.Invalid("email", "invalid email format")
	}
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("password", "must be at least %d characters", MinPasswordLength)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	uid := domain.OwnerID(ulid.Make().String())
	if err := s.creds.CreateAccount(domain.Account{UID: uid, Email: email, PasswordHash: hash, CreatedAt: now}); err != nil {
		return "", err
	}
	doc := domain.Document{ID: uid, Fields: map[string]any{
		"name":      strings.TrimSpace(name),
		"email":     email,
		"role":      domain.RoleAdmin.String(),
		"createdAt": now.Format(time.RFC3339),
	}}
	if err := s.docs.Create(ctx, domain.CollectionAdmin, doc); err != nil {
		if derr := s.creds.DeleteAccounts(uid); derr != nil {
			s.log.Error("orphaned admin account", zap.String("uid", uid.String()), zap.Error(derr))
		}
		return "", err
	}
	s.log.Info("admin created", zap.String("uid", uid.String()), zap.String("email", email))
	return uid, nil
}

func (s *Service) requireAdmin(ctx context.Context, uid domain.OwnerID) error {
	doc, err := s.docs.Get(ctx, domain.CollectionAdmin, uid)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotAdmin
	}
	if err != nil {
		return err
	}
	if role, _ := doc.Fields["role"].(string); domain.Role(role) != domain.RoleAdmin {
		return domain.ErrNotAdmin
	}
	return nil
}

// Compile-time assertion that Service implements domain.AuthService.
var _ domain.AuthService = (*Service)(nil)
