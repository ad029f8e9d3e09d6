package domain

// DeltaKind classifies the atomic units of change applied to a stage.
type DeltaKind string

const (
	// KindPackages installs native OS packages and prunes the package
	// manager caches in the same delta.
	KindPackages DeltaKind = "packages"

	// KindEnv establishes the process-wide environment variable set.
	KindEnv DeltaKind = "env"

	// KindConfigCopy copies the manifest, lock file and opaque runtime
	// configuration files into the stage root.
	KindConfigCopy DeltaKind = "config-copy"

	// KindSync installs the locked dependency set into the stage root.
	KindSync DeltaKind = "sync"

	// KindSourceCopy copies the application source trees into the stage root.
	KindSourceCopy DeltaKind = "source-copy"

	// KindEntrypoint binds the default executable invocation to the stage.
	KindEntrypoint DeltaKind = "entrypoint"
)

// SyncMode selects how the lock synchronizer runs for a sync delta.
type SyncMode struct {
	// NoProject installs only the locked third-party set, before the
	// application payload is present. This populates the dependency cache
	// layer so payload-only rebuilds keep their cache hit.
	NoProject bool

	// Dev includes the locked dev-only dependency groups.
	Dev bool
}

// Delta is one atomic unit of change applied to a stage. Deltas are planned
// by the composer in a fixed order; each carries exactly the inputs that
// determine its cache key.
type Delta struct {
	// ID uniquely identifies the delta within the chain, e.g. "prod:sync-deps".
	ID InternedString

	// Stage is the stage this delta belongs to.
	Stage StageName

	// Kind selects the operation.
	Kind DeltaKind

	// Inputs are paths, relative to the recipe root, whose content feeds the
	// cache key. Changing a file outside a delta's inputs must not invalidate
	// that delta.
	Inputs []InternedString

	// Definition is the non-file portion of the cache key: package names,
	// environment pairs, sync flags, entrypoint argv. Order is significant
	// and must be canonical.
	Definition []string

	// Sync is set for KindSync deltas.
	Sync SyncMode
}

// Command describes one external process invocation performed by a delta.
type Command struct {
	Argv []string
	Dir  string
}
