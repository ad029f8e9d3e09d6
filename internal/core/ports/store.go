package ports

import "go.trai.ch/strata/internal/core/domain"

// SnapshotStore defines the interface for storing and retrieving committed
// delta records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type SnapshotStore interface {
	// Get retrieves the record for a delta within a stage.
	// Returns nil, nil if not found.
	Get(root, stage, delta string) (*domain.DeltaRecord, error)

	// Put stores the record.
	Put(root string, rec domain.DeltaRecord) error
}
