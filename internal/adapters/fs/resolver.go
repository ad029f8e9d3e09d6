package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver implements ports.InputResolver.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver using the given walker.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs resolves the declared inputs relative to root into a sorted,
// deduplicated list of absolute file paths. Directories are walked
// recursively. A missing input is fatal: the build cannot proceed without
// its declared files.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInputResolutionFailed.Error())
	}

	seen := make(map[string]struct{})
	var resolved []string

	for _, input := range inputs {
		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(rootAbs, input)
		}
		abs = filepath.Clean(abs)

		rel, err := filepath.Rel(rootAbs, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, zerr.With(domain.ErrInputOutsideRoot, "input", input)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, zerr.With(domain.ErrInputNotFound, "input", input)
		}

		if !info.IsDir() {
			if _, ok := seen[abs]; !ok {
				seen[abs] = struct{}{}
				resolved = append(resolved, abs)
			}
			continue
		}

		files, err := r.walker.WalkFiles(abs)
		if err != nil {
			return nil, zerr.With(err, "input", input)
		}
		for _, f := range files {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				resolved = append(resolved, f)
			}
		}
	}

	slices.Sort(resolved)
	return resolved, nil
}
