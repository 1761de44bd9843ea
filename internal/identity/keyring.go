package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/studentpro/internal/credential"
	"github.com/nhle/studentpro/internal/session"
)

// KeyringStore keeps the identity in the system keyring.
type KeyringStore struct {
	ring *credential.Ring
}

// NewKeyringStore wraps ring.
func NewKeyringStore(ring *credential.Ring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

func (k *KeyringStore) Get(_ context.Context) (session.Session, error) {
	userID, err := k.ring.Get(KeyUserID)
	if errors.Is(err, credential.ErrNotFound) {
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("reading identity: %w", err)
	}

	token, err := k.ring.Get(KeyToken)
	if err != nil && !errors.Is(err, credential.ErrNotFound) {
		return session.Session{}, fmt.Errorf("reading token: %w", err)
	}

	return session.Session{UserID: userID, Token: token}, nil
}

func (k *KeyringStore) Set(_ context.Context, userID, token string) error {
	if err := k.ring.Set(KeyUserID, userID); err != nil {
		return err
	}
	if token == "" {
		return k.ring.Delete(KeyToken)
	}
	return k.ring.Set(KeyToken, token)
}

func (k *KeyringStore) Clear(_ context.Context) error {
	// Remove both keys even when the first removal fails.
	return errors.Join(k.ring.Delete(KeyUserID), k.ring.Delete(KeyToken))
}

func (k *KeyringStore) Close() error {
	return nil
}
