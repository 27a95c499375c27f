package context

// contextKey is a private key type so values stored by this package cannot
// collide with keys from other packages.
type contextKey string
