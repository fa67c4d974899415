package store

import (
	"crypto/rand"
	"fmt"
)

const secretBytes = 32

// LoadOrCreateSecret returns the key stored at path, generating and saving a
// random one on first use.
func LoadOrCreateSecret(path string) ([]byte, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	if b != nil {
		if len(b) < secretBytes {
			return nil, fmt.Errorf("secret %s is shorter than %d bytes", path, secretBytes)
		}
		return b, nil
	}
	key := make([]byte, secretBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	if err := writeFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return key, nil
}
