package auth

import "github.com/pkg/errors"

var (
	// ErrInvalidToken means the session token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrInvalidAPIKey means the integration API key did not match.
	ErrInvalidAPIKey = errors.New("invalid API key")
)
