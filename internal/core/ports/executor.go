// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/strata/internal/core/domain"
)

// Executor defines the interface for running external commands on behalf of
// a delta.
//
// The env parameter contains environment variables in "KEY=VALUE" format,
// typically the stage EnvSet. The external resolution calls made through the
// executor (OS package fetch, dependency resolution fetch) are synchronous,
// all-or-nothing operations: either the command succeeds or the delta aborts.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for completion.
	// It returns an error if the command exits non-zero.
	Execute(ctx context.Context, cmd *domain.Command, env []string, stdout, stderr io.Writer) error
}
