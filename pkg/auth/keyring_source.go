package auth

import (
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "likestats"
	keyringUser    = "bearer_token"
)

// KeyringSource reads the bearer token from the OS keychain.
type KeyringSource struct {
	service string
	user    string
}

// NewKeyringSource creates a keychain-backed token source.
func NewKeyringSource() *KeyringSource {
	return &KeyringSource{
		service: keyringService,
		user:    keyringUser,
	}
}

func (s *KeyringSource) Token() (string, error) {
	token, err := keyring.Get(s.service, s.user)
	if err != nil {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (s *KeyringSource) Name() string {
	return "keyring"
}

// Store saves the bearer token in the OS keychain.
func (s *KeyringSource) Store(token string) error {
	return keyring.Set(s.service, s.user, token)
}

// Delete removes the bearer token from the OS keychain.
func (s *KeyringSource) Delete() error {
	return keyring.Delete(s.service, s.user)
}
