package domain

import "time"

// DeltaRecord stores the committed result of a delta application. A record
// whose cache key and parent key both match the current computation means the
// delta's effect is already present in the materialized stage root and the
// delta may be skipped.
type DeltaRecord struct {
	// Stage is the stage the delta belongs to.
	Stage string `json:"stage"`

	// Delta is the delta identifier, e.g. "prod:sync-deps".
	Delta string `json:"delta"`

	// CacheKey is the key derived from the delta's definition and the content
	// of its declared inputs.
	CacheKey string `json:"cache_key"`

	// ParentKey is the cache key of the preceding delta in the chain. Chaining
	// parent keys gives layer semantics: invalidating an earlier delta
	// invalidates everything after it, while later-only changes leave earlier
	// records intact.
	ParentKey string `json:"parent_key"`

	// Timestamp is when the delta was committed.
	Timestamp time.Time `json:"timestamp"`
}

// Entrypoint is the metadata bound to the final stage by the entrypoint
// selector. It is written verbatim into the stage root.
type Entrypoint struct {
	Argv    []string `json:"argv"`
	WorkDir string   `json:"workdir"`
}

// BuildSummary is returned after a successful composition.
type BuildSummary struct {
	Target     StageName
	Executed   int
	Cached     int
	Entrypoint []string
	StageRoot  string
	Duration   time.Duration
}
