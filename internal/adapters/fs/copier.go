package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Copier implements ports.PayloadLoader by copying files and trees on the
// local file system.
type Copier struct{}

// NewCopier creates a new Copier.
func NewCopier() *Copier {
	return &Copier{}
}

// Copy copies each path (relative to root) into destRoot, preserving the
// relative layout and file modes. Directories are copied recursively.
func (c *Copier) Copy(root string, paths []string, destRoot string) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
	}

	for _, p := range paths {
		src := filepath.Clean(filepath.Join(rootAbs, p))

		rel, err := filepath.Rel(rootAbs, src)
		if err != nil || strings.HasPrefix(rel, "..") {
			return zerr.With(domain.ErrInputOutsideRoot, "path", p)
		}

		info, err := os.Stat(src)
		if err != nil {
			return zerr.With(domain.ErrInputNotFound, "path", p)
		}

		dest := filepath.Join(destRoot, rel)
		if info.IsDir() {
			if err := copyTree(src, dest); err != nil {
				return zerr.With(err, "path", p)
			}
			continue
		}
		if err := copyFile(src, dest, info.Mode()); err != nil {
			return zerr.With(err, "path", p)
		}
	}

	return nil
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			return os.MkdirAll(target, domain.DirPerm)
		}
		if !d.Type().IsRegular() {
			// Symlinks and specials are not part of the payload contract.
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return zerr.Wrap(err, domain.ErrPathStatFailed.Error())
		}
		return copyFile(p, target, info.Mode())
	})
}

func copyFile(src, dest string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
	}

	//nolint:gosec // src was validated against the project root
	in, err := os.Open(src)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFileOpenFailed.Error())
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // dest lives under the stage root we created
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
	}
	return out.Close()
}
