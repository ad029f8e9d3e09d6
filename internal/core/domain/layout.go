package domain

import "path/filepath"

const (
	// StrataDirName is the name of the internal state directory.
	StrataDirName = ".strata"

	// StoreDirName is the name of the delta record store directory.
	StoreDirName = "store"

	// StagesDirName is the name of the directory holding materialized stage roots.
	StagesDirName = "stages"

	// RecipeFileName is the name of the build recipe file.
	RecipeFileName = "strata.yaml"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// EnvFileName is the name of the environment file written into a stage root.
	EnvFileName = ".strata-env"

	// EntrypointFileName is the name of the entrypoint metadata file written
	// into the final stage root.
	EntrypointFileName = ".strata-entrypoint.json"

	// PackagesFileName is the name of the installed-package manifest written
	// into the base stage root.
	PackagesFileName = ".strata-packages"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStrataPath returns the default root directory for strata metadata.
func DefaultStrataPath() string {
	return StrataDirName
}

// DefaultStorePath returns the default path for the delta record store.
// It joins .strata and store.
func DefaultStorePath() string {
	return filepath.Join(StrataDirName, StoreDirName)
}

// DefaultStagesPath returns the default path for materialized stage roots.
// It joins .strata and stages.
func DefaultStagesPath() string {
	return filepath.Join(StrataDirName, StagesDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .strata and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(StrataDirName, DebugLogFile)
}
