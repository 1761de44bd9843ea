package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "studentpro"

// ErrNotFound is returned by Get when no credential exists for the key.
var ErrNotFound = errors.New("credential not found")

// Ring stores string credentials in the system keyring.
type Ring struct {
	ring keyring.Keyring
}

// Open returns a Ring on the first available system backend, falling back
// to an encrypted file under fileDir.
func Open(fileDir string) (*Ring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("studentpro-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Ring{ring: ring}, nil
}

// New wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func New(ring keyring.Keyring) *Ring {
	return &Ring{ring: ring}
}

// Get retrieves a credential value by key.
func (r *Ring) Get(key string) (string, error) {
	item, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key.
func (r *Ring) Set(key string, value string) error {
	err := r.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key. Deleting an absent key succeeds.
func (r *Ring) Delete(key string) error {
	err := r.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
