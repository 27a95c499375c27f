package domain

import "errors"

var (
	// ErrAccountExists is returned when signing up with a username that is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when looking up a non-existent account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials is returned when the username/password combination is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account represents a registered user of the mock API.
// Accounts are immutable once created and live only for the process lifetime.
type Account struct {
	ID        int64  // Unique identifier
	Username  string // Login username, case-sensitive
	Password  string // Password, stored as given
	CreatedAt int64  // Unix timestamp of signup
}
