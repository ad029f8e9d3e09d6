// Package syspkg installs native OS packages through the system package
// manager.
package syspkg

import (
	"context"
	"io"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// aptGet is the package manager binary. Overridable in tests.
var aptGet = "apt-get"

// Installer implements ports.PackageInstaller on top of apt.
//
// Install and cache pruning run back to back within the same delta, so the
// pruned metadata never survives into a committed snapshot. Any failure in
// the sequence aborts the delta; nothing is committed.
type Installer struct {
	executor ports.Executor
}

// NewInstaller creates a new Installer using the given executor.
func NewInstaller(executor ports.Executor) *Installer {
	return &Installer{executor: executor}
}

// Install installs the given packages and prunes package-manager caches.
// An empty package list is a no-op.
func (i *Installer) Install(
	ctx context.Context,
	packages []string,
	env []string,
	stdout, stderr io.Writer,
) error {
	if len(packages) == 0 {
		return nil
	}

	installArgv := append(
		[]string{aptGet, "install", "-y", "--no-install-recommends"},
		packages...,
	)

	commands := [][]string{
		{aptGet, "update"},
		installArgv,
		{aptGet, "clean"},
		{"rm", "-rf", "/var/lib/apt/lists"},
	}

	for _, argv := range commands {
		cmd := &domain.Command{Argv: argv}
		if err := i.executor.Execute(ctx, cmd, env, stdout, stderr); err != nil {
			return zerr.Wrap(err, domain.ErrPackageInstallFailed.Error())
		}
	}

	return nil
}
