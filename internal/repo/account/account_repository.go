package account

import (
	"context"
	"fmt"

	"github.com/hkato/wanidash/internal/domain"
)

// Repository defines the interface for account storage.
// Implementations hold state for the process lifetime only.
type Repository interface {
	// CreateAccount adds a new account to the repository.
	// Returns ErrAccountExists if the username is already taken.
	CreateAccount(ctx context.Context, username, password string) error

	// GetAccountByUsername retrieves an account by its username.
	// Returns the account and true if found, or nil and false if not found.
	// Returns an error if the operation fails.
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, bool, error)

	// Close releases any resources held by the repository.
	// Returns an error if cleanup fails.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)

// RepositoryConfig selects and configures the account storage backend.
type RepositoryConfig struct {
	// Backend selects the storage backend ("memory" or "sqlite")
	Backend string `env:"BACKEND" default:"memory"`

	SQLite SQLiteAccountRepositoryConfig `envPrefix:"SQLITE_"`
}

// Factory creates a RepositoryFactory for the backend named in cfg.
func Factory(cfg RepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		switch cfg.Backend {
		case "memory":
			return NewMemoryAccountRepository(), nil
		case "sqlite":
			return NewSQLiteAccountRepository(cfg.SQLite)
		default:
			return nil, fmt.Errorf("unknown account backend %q", cfg.Backend)
		}
	}
}
