package account

import (
	"context"
	"sync"
	"time"

	"github.com/hkato/wanidash/internal/domain"
)

// MemoryAccountRepository implements Repository with a mutex-guarded map.
// This is the default backend: state lives in process memory and is gone
// after restart, which is exactly what the mock API wants.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	nextID   int64
}

var _ Repository = (*MemoryAccountRepository)(nil)

// NewMemoryAccountRepository creates an empty in-memory account repository.
func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[string]*domain.Account),
		nextID:   1,
	}
}

// CreateAccount implements Repository.CreateAccount.
func (r *MemoryAccountRepository) CreateAccount(ctx context.Context, username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[username]; exists {
		return domain.ErrAccountExists
	}

	r.accounts[username] = &domain.Account{
		ID:        r.nextID,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().Unix(),
	}
	r.nextID++

	return nil
}

// GetAccountByUsername implements Repository.GetAccountByUsername.
func (r *MemoryAccountRepository) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, exists := r.accounts[username]
	if !exists {
		return nil, false, domain.ErrAccountNotFound
	}

	return account, true, nil
}

// Close implements Repository.Close. Nothing to release.
func (r *MemoryAccountRepository) Close() error {
	return nil
}
