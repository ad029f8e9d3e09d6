package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownStage is returned when a build target names a stage outside
	// the base/prod/dev chain.
	ErrUnknownStage = zerr.New("unknown stage")

	// ErrRecipeNotFound is returned when no strata.yaml can be found walking
	// up from the working directory.
	ErrRecipeNotFound = zerr.New("could not find strata.yaml")

	// ErrRecipeReadFailed is returned when the recipe file cannot be read.
	ErrRecipeReadFailed = zerr.New("failed to read recipe file")

	// ErrRecipeParseFailed is returned when the recipe file cannot be parsed.
	ErrRecipeParseFailed = zerr.New("failed to parse recipe file")

	// ErrRecipeInvalid is returned when a required recipe field is missing or
	// malformed.
	ErrRecipeInvalid = zerr.New("invalid recipe")

	// ErrInputNotFound is returned when a declared input file or directory is
	// not found. Missing manifest, lock or config files are fatal before any
	// delta executes.
	ErrInputNotFound = zerr.New("input not found")

	// ErrInputOutsideRoot is returned when a declared input escapes the
	// project root.
	ErrInputOutsideRoot = zerr.New("input path is outside project root")

	// ErrManifestParseFailed is returned when the dependency manifest cannot
	// be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse dependency manifest")

	// ErrLockParseFailed is returned when the lock file cannot be parsed.
	ErrLockParseFailed = zerr.New("failed to parse lock file")

	// ErrLockMismatch is returned when the manifest and lock file disagree.
	// The synchronizer refuses to re-resolve: an unpinned install would break
	// the reproducibility invariant.
	ErrLockMismatch = zerr.New("lock file does not cover the declared dependency set")

	// ErrPackageInstallFailed is returned when native package resolution or
	// installation fails. The delta is not committed.
	ErrPackageInstallFailed = zerr.New("native package installation failed")

	// ErrSyncFailed is returned when the dependency lock synchronization fails.
	ErrSyncFailed = zerr.New("dependency synchronization failed")

	// ErrPayloadCopyFailed is returned when copying the application payload
	// into a stage root fails.
	ErrPayloadCopyFailed = zerr.New("failed to copy payload")

	// ErrDeltaFailed is returned when a delta application fails. No snapshot
	// is committed for a failed delta and no later stage runs.
	ErrDeltaFailed = zerr.New("delta application failed")

	// ErrStageCommitFailed is returned when a completed stage root cannot be
	// committed into place.
	ErrStageCommitFailed = zerr.New("failed to commit stage")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrStoreCreateFailed is returned when the delta record store directory
	// cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create delta record store directory")

	// ErrStoreReadFailed is returned when a delta record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read delta record")

	// ErrStoreUnmarshalFailed is returned when a delta record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal delta record")

	// ErrStoreMarshalFailed is returned when a delta record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal delta record")

	// ErrStoreWriteFailed is returned when a delta record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write delta record")

	// ErrInputResolutionFailed is returned when input resolution fails.
	ErrInputResolutionFailed = zerr.New("failed to resolve inputs")

	// ErrKeyComputationFailed is returned when cache key computation fails.
	ErrKeyComputationFailed = zerr.New("failed to compute cache key")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrWriteHashFailed is returned when writing the hash to the digest fails.
	ErrWriteHashFailed = zerr.New("failed to write hash to digest")
)
