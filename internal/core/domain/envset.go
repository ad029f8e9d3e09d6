package domain

import (
	"path"
	"slices"
	"strings"
)

// EnvSet is the immutable environment variable set established at the base
// stage and inherited unchanged by every descendant stage. It is passed
// explicitly to each delta-application step rather than held as ambient
// process state.
type EnvSet struct {
	pairs []string // "KEY=VALUE", sorted by key
}

// NewEnvSet builds the stage environment for the given working directory and
// user-declared extra variables. It always contains the interpreter flags
// required for a reproducible, cache-friendly artifact: bytecode persistence
// disabled, unbuffered output, bytecode precompilation for installed
// dependencies, a PATH that prioritizes the isolated dependency environment,
// and a module-resolution root pointing at the working directory.
func NewEnvSet(workDir string, extra map[string]string) EnvSet {
	m := map[string]string{
		"PYTHONDONTWRITEBYTECODE": "1",
		"PYTHONUNBUFFERED":        "1",
		"UV_COMPILE_BYTECODE":     "1",
		"PYTHONPATH":              workDir,
		"PATH":                    path.Join(workDir, ".venv", "bin") + ":/usr/local/bin:/usr/bin:/bin",
	}
	for k, v := range extra {
		m[k] = v
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+m[k])
	}
	return EnvSet{pairs: pairs}
}

// Pairs returns the environment as "KEY=VALUE" strings in canonical order.
// The returned slice is a copy.
func (e EnvSet) Pairs() []string {
	return slices.Clone(e.pairs)
}

// Lookup returns the value for the given key.
func (e EnvSet) Lookup(key string) (string, bool) {
	prefix := key + "="
	for _, p := range e.pairs {
		if strings.HasPrefix(p, prefix) {
			return strings.TrimPrefix(p, prefix), true
		}
	}
	return "", false
}

// Len returns the number of variables in the set.
func (e EnvSet) Len() int {
	return len(e.pairs)
}
