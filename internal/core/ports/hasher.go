package ports

import "go.trai.ch/strata/internal/core/domain"

// Hasher computes cache keys for deltas.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeDeltaKey derives the cache key from the delta's definition, the
	// stage environment, and the root-relative path and content of every
	// resolved input file. The key covers exactly the subset of inputs the
	// delta declares: changing only the application payload must not change
	// a sync delta's key, and vice versa. Renaming an input changes the key
	// even when its content is unchanged.
	ComputeDeltaKey(delta *domain.Delta, env []string, root string, resolvedInputs []string) (string, error)
}

// InputResolver expands a delta's declared inputs into concrete file paths.
type InputResolver interface {
	// ResolveInputs resolves paths relative to root into a sorted list of
	// files. Directories are walked recursively. A missing input is an error.
	ResolveInputs(inputs []string, root string) ([]string, error)
}
