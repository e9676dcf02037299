package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	token string
	err   error
}

func (s *staticSource) Token() (string, error) { return s.token, s.err }
func (s *staticSource) Name() string           { return "static" }

func TestResolveFirstMatchWins(t *testing.T) {
	token, err := Resolve(
		&staticSource{err: ErrTokenNotFound},
		&staticSource{token: "from-second"},
		&staticSource{token: "from-third"},
	)

	require.NoError(t, err)
	assert.Equal(t, "from-second", token)
}

func TestResolveNoSources(t *testing.T) {
	_, err := Resolve()
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResolveAllEmpty(t *testing.T) {
	_, err := Resolve(
		&staticSource{err: ErrTokenNotFound},
		&staticSource{token: ""},
	)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestEnvSource(t *testing.T) {
	t.Setenv("LIKESTATS_BEARER_TOKEN", "env-token")

	source := NewEnvSource()
	token, err := source.Token()

	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
	assert.Equal(t, "environment", source.Name())
}

func TestEnvSourceMissing(t *testing.T) {
	t.Setenv("LIKESTATS_BEARER_TOKEN", "")

	_, err := NewEnvSource().Token()
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "AAAA...ZZZZ", MaskToken("AAAAbbbbccccZZZZ"))
	assert.Equal(t, "********", MaskToken("short"))
	assert.Equal(t, "********", MaskToken(""))
}
