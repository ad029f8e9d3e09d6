package ports

// PayloadLoader copies parts of the project tree into a stage root.
//
// Configuration and lock files are copied and dependency-synced before the
// full source tree so that the two copy operations keep separate cache keys.
//
//go:generate mockgen -source=payload.go -destination=mocks/mock_payload.go -package=mocks
type PayloadLoader interface {
	// Copy copies each path (relative to root) into destRoot, preserving
	// relative layout and file modes. Directories are copied recursively.
	// Paths escaping root are rejected.
	Copy(root string, paths []string, destRoot string) error
}
