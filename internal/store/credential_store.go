package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"meteradmin/internal/domain"
	"meteradmin/internal/util/words"
)

const accountsFilename = "accounts.json"

// CredentialFileStore persists login accounts to disk, keyed by uid.
type CredentialFileStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

// NewCredentialFileStore returns a CredentialFileStore rooted at dir.
func NewCredentialFileStore(dir string) *CredentialFileStore {
	return &CredentialFileStore{dir: dir, now: time.Now}
}

func (s *CredentialFileStore) load() (map[domain.OwnerID]domain.Account, error) {
	accounts := make(map[domain.OwnerID]domain.Account)
	if err := readJSON(filepath.Join(s.dir, accountsFilename), &accounts); err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	return accounts, nil
}

func (s *CredentialFileStore) save(op string, accounts map[domain.OwnerID]domain.Account) error {
	if err := writeJSON(filepath.Join(s.dir, accountsFilename), accounts, 0o600); err != nil {
		return &domain.PersistenceError{Op: op, Err: err}
	}
	return nil
}

// CreateAccount stores a new account; the e-mail must be unused.
func (s *CredentialFileStore) CreateAccount(account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return err
	}
	account.Email = words.NormalizeEmail(account.Email)
	for _, a := range accounts {
		if a.Email == account.Email {
			return domain.ErrEmailExists
		}
	}
	if _, ok := accounts[account.UID]; ok {
		return &domain.PersistenceError{Op: "create account", Err: fmt.Errorf("uid %s already exists", account.UID)}
	}
	now := s.now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	accounts[account.UID] = account
	return s.save("create account", accounts)
}

// AccountByEmail looks an account up by e-mail, ignoring case.
func (s *CredentialFileStore) AccountByEmail(email string) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return domain.Account{}, err
	}
	email = words.NormalizeEmail(email)
	for _, a := range accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("account %s: %w", email, domain.ErrNotFound)
}

// Account returns the account with uid.
func (s *CredentialFileStore) Account(uid domain.OwnerID) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return domain.Account{}, err
	}
	a, ok := accounts[uid]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s: %w", uid, domain.ErrNotFound)
	}
	return a, nil
}

// SetPasswordHash replaces the stored password hash for uid.
func (s *CredentialFileStore) SetPasswordHash(uid domain.OwnerID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return err
	}
	a, ok := accounts[uid]
	if !ok {
		return fmt.Errorf("account %s: %w", uid, domain.ErrNotFound)
	}
	a.PasswordHash = hash
	a.UpdatedAt = s.now().UTC()
	accounts[uid] = a
	return s.save("set password", accounts)
}

// DeleteAccounts removes the listed accounts in one write. Unknown uids are
// skipped.
func (s *CredentialFileStore) DeleteAccounts(uids ...domain.OwnerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.load()
	if err != nil {
		return err
	}
	removed := false
	for _, uid := range uids {
		if _, ok := accounts[uid]; ok {
			delete(accounts, uid)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.save("delete accounts", accounts)
}

// Compile-time assertion that CredentialFileStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*CredentialFileStore)(nil)
