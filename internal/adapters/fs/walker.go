// Package fs implements file system adapters: input resolution, cache key
// hashing, and payload copying.
package fs

import (
	"io/fs"
	"path/filepath"
	"slices"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker collects regular files under a path.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles returns all regular files under path, sorted lexically. If path
// is itself a regular file, it is returned as the only element. Internal
// state directories (.strata) are skipped.
func (w *Walker) WalkFiles(path string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == domain.StrataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrPathStatFailed.Error())
	}

	slices.Sort(files)
	return files, nil
}
