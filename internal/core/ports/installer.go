package ports

import (
	"context"
	"io"
)

// PackageInstaller installs native OS packages for the base stage.
//
// Install and cache pruning happen in the same atomic delta so that removed
// files never persist in an intermediate snapshot. Any resolution failure is
// fatal to the build; no partial installation is committed.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type PackageInstaller interface {
	// Install installs the given packages and prunes package-manager caches.
	Install(ctx context.Context, packages []string, env []string, stdout, stderr io.Writer) error
}
