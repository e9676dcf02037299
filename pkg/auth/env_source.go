package auth

import "os"

// envTokenKey is the environment variable holding the bearer token.
const envTokenKey = "LIKESTATS_BEARER_TOKEN"

// EnvSource reads the bearer token from the environment.
type EnvSource struct {
	key string
}

// NewEnvSource creates an environment-backed token source.
func NewEnvSource() *EnvSource {
	return &EnvSource{key: envTokenKey}
}

func (s *EnvSource) Token() (string, error) {
	token := os.Getenv(s.key)
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (s *EnvSource) Name() string {
	return "environment"
}
