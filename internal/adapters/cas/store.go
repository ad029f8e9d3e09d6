// Package cas implements the content-addressed delta record store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SnapshotStore using a file-per-delta strategy under
// .strata/store. Records are append-only across builds; a rebuild overwrites
// a delta's record only after the delta has successfully re-executed.
type Store struct{}

// NewStore creates a new SnapshotStore.
func NewStore() (*Store, error) {
	return &Store{}, nil
}

// Get retrieves the record for a delta within a stage.
func (s *Store) Get(root, stage, delta string) (*domain.DeltaRecord, error) {
	filename := s.getFilename(root, stage, delta)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var rec domain.DeltaRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &rec, nil
}

// Put stores the record.
func (s *Store) Put(root string, rec domain.DeltaRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, rec.Stage, rec.Delta)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, stage, delta string) string {
	hash := sha256.Sum256([]byte(stage + "/" + delta))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hexHash+".json")
}
