// Package auth resolves the upstream bearer credential from out-of-band
// sources. The query engine never sees the credential; it is installed on
// the API client at construction.
package auth

import "errors"

// ErrTokenNotFound indicates that no source could supply a bearer token.
var ErrTokenNotFound = errors.New("auth: bearer token not found")

// TokenSource supplies a bearer token from one storage backend.
type TokenSource interface {
	// Token returns the stored bearer token, or ErrTokenNotFound.
	Token() (string, error)

	// Name identifies the source for logging.
	Name() string
}

// Resolve walks the sources in order and returns the first token found.
func Resolve(sources ...TokenSource) (string, error) {
	for _, source := range sources {
		token, err := source.Token()
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrTokenNotFound
}

// MaskToken masks all but the first and last 4 characters of a token so it
// can appear in logs.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
