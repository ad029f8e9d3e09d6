package domain

// StageName identifies a stage in the build chain.
type StageName string

const (
	// StageBase is the internal scaffold stage: OS packages plus the
	// interpreter environment. It is never deployed on its own.
	StageBase StageName = "base"

	// StageProd is the deployable stage: base plus the locked non-dev
	// dependency set and the application payload.
	StageProd StageName = "prod"

	// StageDev extends prod with the locked dev-only dependency set.
	StageDev StageName = "dev"
)

// stageOrder fixes the linear parent chain. Each stage's filesystem state is
// its parent's state plus the stage's own deltas.
var stageOrder = []StageName{StageBase, StageProd, StageDev}

// Valid reports whether s names a known stage.
func (s StageName) Valid() bool {
	switch s {
	case StageBase, StageProd, StageDev:
		return true
	}
	return false
}

// Parent returns the stage's parent in the chain, or false for the base stage.
func (s StageName) Parent() (StageName, bool) {
	for i, name := range stageOrder {
		if name == s && i > 0 {
			return stageOrder[i-1], true
		}
	}
	return "", false
}

// Chain returns the ordered list of stages required to build the target,
// beginning at base. Building a later stage transitively builds every
// predecessor; no transition skips a stage.
func Chain(target StageName) []StageName {
	for i, name := range stageOrder {
		if name == target {
			chain := make([]StageName, i+1)
			copy(chain, stageOrder[:i+1])
			return chain
		}
	}
	return nil
}
