package mockapi

import (
	"context"
	"fmt"
	"sync"

	http_ "github.com/hkato/wanidash/internal/infra/transport/http"
	"github.com/hkato/wanidash/internal/util/encoding"
	"github.com/hkato/wanidash/internal/util/uuid"
)

// SessionRegistry issues opaque bearer tokens and resolves them back to
// usernames. Tokens never expire and are never revoked; they live until the
// process exits. Every token maps to exactly one username.
type SessionRegistry struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> username
}

var _ http_.TokenValidator = (*SessionRegistry)(nil)

// NewSessionRegistry creates an empty session registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		tokens: make(map[string]string),
	}
}

// Issue generates a fresh unique token for the given username and records it.
// Repeated calls for the same username issue distinct tokens that are all
// valid concurrently.
func (sr *SessionRegistry) Issue(username string) (string, error) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	for {
		id, err := uuid.New(uuid.UUIDv4)
		if err != nil {
			return "", fmt.Errorf("new token: %w", err)
		}

		token := encoding.EncodeCrockfordB32LC(id.Bytes())

		// Re-draw on the (negligible) collision so tokens are unique for
		// the process lifetime.
		if _, taken := sr.tokens[token]; taken {
			continue
		}

		sr.tokens[token] = username

		return token, nil
	}
}

// Validate implements the transport layer's TokenValidator.
// Returns the username the token was issued for and whether it is known.
func (sr *SessionRegistry) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	sr.mu.RLock()
	defer sr.mu.RUnlock()

	username, ok := sr.tokens[token]

	return username, ok, nil
}

// Len reports the number of live sessions.
func (sr *SessionRegistry) Len() int {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	return len(sr.tokens)
}
