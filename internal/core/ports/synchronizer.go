package ports

import (
	"context"
	"io"

	"go.trai.ch/strata/internal/core/domain"
)

// LockSynchronizer installs the pinned dependency set described by a
// manifest and lock file pair into an isolated environment.
//
// Synchronization is idempotent: re-running against an already satisfied
// environment is a no-op. A mismatch between manifest and lock file is fatal;
// the synchronizer never silently re-resolves.
//
//go:generate mockgen -source=synchronizer.go -destination=mocks/mock_synchronizer.go -package=mocks
type LockSynchronizer interface {
	// Verify checks that the manifest and lock file exist and are mutually
	// consistent: every declared dependency must be pinned in the lock.
	Verify(manifestPath, lockPath string) error

	// Sync installs the locked set into dir according to mode.
	Sync(ctx context.Context, dir string, mode domain.SyncMode, env []string, stdout, stderr io.Writer) error
}
