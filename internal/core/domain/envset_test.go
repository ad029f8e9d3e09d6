package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
)

func TestNewEnvSet_Defaults(t *testing.T) {
	env := domain.NewEnvSet("/app", nil)

	val, ok := env.Lookup("PYTHONDONTWRITEBYTECODE")
	require.True(t, ok)
	assert.Equal(t, "1", val)

	val, ok = env.Lookup("PYTHONUNBUFFERED")
	require.True(t, ok)
	assert.Equal(t, "1", val)

	val, ok = env.Lookup("UV_COMPILE_BYTECODE")
	require.True(t, ok)
	assert.Equal(t, "1", val)

	val, ok = env.Lookup("PYTHONPATH")
	require.True(t, ok)
	assert.Equal(t, "/app", val)
}

// The isolated dependency environment must win PATH resolution over system
// interpreters.
func TestNewEnvSet_PathPrefersVenv(t *testing.T) {
	env := domain.NewEnvSet("/app", nil)

	val, ok := env.Lookup("PATH")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(val, "/app/.venv/bin:"), "PATH should start with the venv bin dir, got %q", val)
}

func TestNewEnvSet_ExtraOverrides(t *testing.T) {
	env := domain.NewEnvSet("/app", map[string]string{
		"APP_MODE":   "prod",
		"PYTHONPATH": "/override",
	})

	val, ok := env.Lookup("APP_MODE")
	require.True(t, ok)
	assert.Equal(t, "prod", val)

	// User-declared variables take precedence over defaults.
	val, ok = env.Lookup("PYTHONPATH")
	require.True(t, ok)
	assert.Equal(t, "/override", val)
}

// Pairs must be deterministic: the env feeds cache keys, so iteration order
// differences between builds would invalidate every delta.
func TestEnvSet_PairsAreSortedAndCopied(t *testing.T) {
	env := domain.NewEnvSet("/app", map[string]string{"ZZZ": "1", "AAA": "2"})

	pairs := env.Pairs()
	for i := 1; i < len(pairs); i++ {
		assert.LessOrEqual(t, pairs[i-1], pairs[i])
	}

	pairs[0] = "MUTATED=1"
	fresh := env.Pairs()
	assert.NotEqual(t, "MUTATED=1", fresh[0])
}

func TestEnvSet_LookupMissing(t *testing.T) {
	env := domain.NewEnvSet("/app", nil)
	_, ok := env.Lookup("NOPE")
	assert.False(t, ok)
}
