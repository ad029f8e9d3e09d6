package fs

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher implements ports.Hasher using xxhash.
//
// The key covers the delta's identity and definition, the stage environment,
// and the root-relative path plus content (not metadata) of every resolved
// input file. Touching a file without changing its bytes does not change the
// key; renaming it does, so a rebuild re-materializes moved files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher using the given walker.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeDeltaKey derives the cache key for a delta.
func (h *Hasher) ComputeDeltaKey(delta *domain.Delta, env []string, root string, resolvedInputs []string) (string, error) {
	digest := xxhash.New()

	writeField := func(s string) error {
		// Length-prefix each field so concatenations cannot collide.
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
		if _, err := digest.Write(lenBuf[:]); err != nil {
			return zerr.Wrap(err, domain.ErrWriteHashFailed.Error())
		}
		if _, err := digest.WriteString(s); err != nil {
			return zerr.Wrap(err, domain.ErrWriteHashFailed.Error())
		}
		return nil
	}

	fields := make([]string, 0, 3+len(delta.Definition)+len(env))
	fields = append(fields, delta.ID.String(), string(delta.Stage), string(delta.Kind))
	fields = append(fields, delta.Definition...)
	fields = append(fields, env...)

	for _, f := range fields {
		if err := writeField(f); err != nil {
			return "", err
		}
	}

	// Inputs are pre-sorted by the resolver. Each input contributes its
	// root-relative path and a content hash; metadata stays out so the key
	// is stable across checkouts with differing mtimes.
	for _, path := range resolvedInputs {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrInputOutsideRoot.Error()), "file", path)
		}
		if err := writeField(filepath.ToSlash(rel)); err != nil {
			return "", err
		}

		fileHash, err := hashFile(path)
		if err != nil {
			return "", err
		}
		if err := writeField(strconv.FormatUint(fileHash, 16)); err != nil {
			return "", err
		}
	}

	return strconv.FormatUint(digest.Sum64(), 16), nil
}

func hashFile(path string) (uint64, error) {
	//nolint:gosec // path was resolved and validated against the project root
	f, err := os.Open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "file", path)
	}
	defer func() { _ = f.Close() }()

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "file", path)
	}
	return digest.Sum64(), nil
}
