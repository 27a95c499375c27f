package mockapi

import (
	"context"
	"crypto/hmac"
	"errors"
	"fmt"

	"github.com/hkato/wanidash/internal/domain"
	"github.com/hkato/wanidash/internal/infra/logging"
	"github.com/hkato/wanidash/internal/repo/account"
)

// AccountService provides signup and login for the mock API.
// Passwords are stored and compared as given; this is a development stub and
// must never be treated as production-grade auth.
type AccountService struct {
	Accounts account.Repository
	Sessions *SessionRegistry
	Log      logging.Logger
}

// NewAccountService creates a new AccountService with the given account
// repository factory and session registry.
// Returns an error if the account repository cannot be created.
func NewAccountService(repoFactory account.RepositoryFactory, sessions *SessionRegistry) (*AccountService, error) {
	log := logging.GetLogger("svc.mockapi.account_service")

	accountRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new account repo: %w", err)
	}

	return &AccountService{
		Accounts: accountRepo,
		Sessions: sessions,
		Log:      log,
	}, nil
}

// Signup creates a new account with the given username and password.
// Returns an error wrapping domain.ErrAccountExists if the username is taken.
func (s *AccountService) Signup(ctx context.Context, username, password string) (err error) {
	log := s.Log.With(logging.Group("account", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "signup failed", "error", err)
		} else {
			log.DebugContext(ctx, "account created")
		}
	}()

	if err := s.Accounts.CreateAccount(ctx, username, password); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

// Login verifies the credentials and issues a fresh bearer token.
// Each call issues a new token; earlier tokens stay valid.
// Returns domain.ErrInvalidCredentials for an unknown username or a password
// mismatch, without distinguishing the two.
func (s *AccountService) Login(ctx context.Context, username, password string) (_ string, err error) {
	log := s.Log.With(logging.Group("account", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "login failed", "error", err)
		} else {
			log.DebugContext(ctx, "login successful")
		}
	}()

	acc, ok, err := s.Accounts.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", errors.Join(domain.ErrInvalidCredentials, err)
		}

		return "", fmt.Errorf("get account: %w", err)
	} else if !ok {
		return "", domain.ErrInvalidCredentials
	}

	if !hmac.Equal([]byte(password), []byte(acc.Password)) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.Sessions.Issue(username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// Close releases resources held by the service, such as database connections.
// Returns an error if cleanup fails.
func (s *AccountService) Close() error {
	if err := s.Accounts.Close(); err != nil {
		return fmt.Errorf("close account repo: %w", err)
	}

	return nil
}
