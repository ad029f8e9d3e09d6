package uv

import (
	"context"
	"io"
	"strconv"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// uvBinary is the resolution tool binary. Overridable in tests.
var uvBinary = "uv"

// Synchronizer implements ports.LockSynchronizer.
//
// The heavy lifting is delegated to uv: `uv sync --locked` installs exactly
// the pinned set and refuses to run if the lock is stale, which preserves the
// reproducibility invariant even if our own Verify pass and the lock file
// disagree about an edge case. Re-running against a satisfied environment is
// a no-op inside uv, so Sync is idempotent.
type Synchronizer struct {
	executor ports.Executor

	// requestGroup collapses concurrent identical syncs. The local uv cache
	// is safe for concurrent readers but concurrent writers are arbitration
	// the external tool does not promise.
	requestGroup singleflight.Group
}

// NewSynchronizer creates a new Synchronizer using the given executor.
func NewSynchronizer(executor ports.Executor) *Synchronizer {
	return &Synchronizer{executor: executor}
}

// Sync installs the locked set into dir according to mode.
func (s *Synchronizer) Sync(
	ctx context.Context,
	dir string,
	mode domain.SyncMode,
	env []string,
	stdout, stderr io.Writer,
) error {
	key := dir + "|" + strconv.FormatBool(mode.NoProject) + "|" + strconv.FormatBool(mode.Dev)

	_, err, _ := s.requestGroup.Do(key, func() (any, error) {
		argv := []string{uvBinary, "sync", "--locked"}
		if mode.NoProject {
			argv = append(argv, "--no-install-project")
		}
		if !mode.Dev {
			argv = append(argv, "--no-dev")
		}

		cmd := &domain.Command{Argv: argv, Dir: dir}
		if err := s.executor.Execute(ctx, cmd, env, stdout, stderr); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSyncFailed.Error())
		}
		return nil, nil
	})

	return err
}
