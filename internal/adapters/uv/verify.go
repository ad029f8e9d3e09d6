// Package uv implements the dependency lock synchronizer on top of the uv
// resolution tool. The manifest (pyproject.toml) and lock file (uv.lock) are
// owned by uv; this package reads them only to check mutual consistency
// before any install runs.
package uv

import (
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// manifest mirrors the subset of pyproject.toml we validate.
type manifest struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]string `toml:"dependency-groups"`
}

// lockFile mirrors the subset of uv.lock we validate.
type lockFile struct {
	Version  int `toml:"version"`
	Packages []struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
}

// Verify checks that the manifest and lock file exist and that every declared
// dependency, including dev groups, is pinned to an exact version in the
// lock. A dependency missing from the lock is fatal: installing it would
// require re-resolution and break the reproducibility invariant.
func (s *Synchronizer) Verify(manifestPath, lockPath string) error {
	m, err := readManifest(manifestPath)
	if err != nil {
		return err
	}

	l, err := readLock(lockPath)
	if err != nil {
		return err
	}

	pinned := make(map[string]string, len(l.Packages))
	for _, p := range l.Packages {
		pinned[normalizeName(p.Name)] = p.Version
	}

	declared := make([]string, 0, len(m.Project.Dependencies))
	declared = append(declared, m.Project.Dependencies...)
	for _, group := range m.DependencyGroups {
		declared = append(declared, group...)
	}

	for _, req := range declared {
		name := requirementName(req)
		if name == "" {
			continue
		}
		version, ok := pinned[name]
		if !ok || version == "" {
			err := zerr.With(domain.ErrLockMismatch, "dependency", name)
			return zerr.With(err, "requirement", req)
		}
	}

	return nil
}

func readManifest(path string) (*manifest, error) {
	//nolint:gosec // path comes from the validated recipe
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.ErrInputNotFound, "manifest", path)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}
	return &m, nil
}

func readLock(path string) (*lockFile, error) {
	//nolint:gosec // path comes from the validated recipe
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(domain.ErrInputNotFound, "lock", path)
	}

	var l lockFile
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLockParseFailed.Error())
	}
	return &l, nil
}

// requirementName extracts the distribution name from a PEP 508 requirement
// string, e.g. "fastapi[standard]>=0.100 ; python_version >= '3.10'".
func requirementName(req string) string {
	name := strings.TrimSpace(req)
	for _, sep := range []string{";", "==", ">=", "<=", "~=", "!=", ">", "<", "==="} {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	return normalizeName(strings.TrimSpace(name))
}

// normalizeName canonicalizes a distribution name per PEP 503: lowercase,
// runs of "-", "_" and "." collapse to a single "-".
func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	prevDash := false
	for _, r := range strings.ToLower(name) {
		if r == '-' || r == '_' || r == '.' {
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
			continue
		}
		prevDash = false
		b.WriteRune(r)
	}
	return strings.Trim(b.String(), "-")
}
