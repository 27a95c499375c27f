package domain

import "errors"

// ErrNoAuthToken is returned when an authentication token is required but not provided.
var ErrNoAuthToken = errors.New("no auth token")

// TokenResponse is the login response body carrying a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
