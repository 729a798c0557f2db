package session

import (
	"context"
	"sync"

	"github.com/lyng148/thien-nguyet-dong-phu-sub000/internal/core/domain"
)

// MemoryStore is a process-local CredentialStore.
type MemoryStore struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{creds: make(map[string]domain.Credential)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (*domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cred, ok := m.creds[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyCredential(cred), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, cred *domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[key] = *copyCredential(*cred)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, key)
	return nil
}

func copyCredential(c domain.Credential) *domain.Credential {
	if c.User != nil {
		u := *c.User
		c.User = &u
	}
	return &c
}
