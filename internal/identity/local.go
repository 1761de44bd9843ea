package identity

import (
	"context"
	"fmt"

	"github.com/nhle/studentpro/internal/session"
	"github.com/nhle/studentpro/internal/store"
)

// LocalStore keeps the identity in the local key-value database.
type LocalStore struct {
	kv store.Store
}

// NewLocalStore wraps kv. The store is closed by Close.
func NewLocalStore(kv store.Store) *LocalStore {
	return &LocalStore{kv: kv}
}

func (l *LocalStore) Get(ctx context.Context) (session.Session, error) {
	userID, ok, err := l.kv.GetItem(ctx, KeyUserID)
	if err != nil {
		return session.Session{}, fmt.Errorf("reading identity: %w", err)
	}
	if !ok || userID == "" {
		return session.Session{}, nil
	}

	token, _, err := l.kv.GetItem(ctx, KeyToken)
	if err != nil {
		return session.Session{}, fmt.Errorf("reading token: %w", err)
	}

	return session.Session{UserID: userID, Token: token}, nil
}

func (l *LocalStore) Set(ctx context.Context, userID, token string) error {
	if err := l.kv.SetItem(ctx, KeyUserID, userID); err != nil {
		return err
	}
	if token == "" {
		return l.kv.RemoveItem(ctx, KeyToken)
	}
	return l.kv.SetItem(ctx, KeyToken, token)
}

func (l *LocalStore) Clear(ctx context.Context) error {
	return l.kv.RemoveItem(ctx, KeyUserID, KeyToken)
}

func (l *LocalStore) Close() error {
	return l.kv.Close()
}
