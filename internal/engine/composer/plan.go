package composer

import (
	"go.trai.ch/strata/internal/core/domain"
)

// planDeltas expands the recipe into the fixed, ordered delta chain for the
// given stages. The order never varies: OS packages, then environment, then
// configuration copy, then dependency sync, then payload copy, because later
// deltas depend on the effects of earlier ones. Each delta declares exactly
// the inputs that feed its cache key, so a payload-only change cannot
// invalidate the dependency sync and a lock change cannot be absorbed
// silently.
func planDeltas(recipe *domain.Recipe, chain []domain.StageName) []*domain.Delta {
	envPairs := domain.NewEnvSet(recipe.WorkDir, recipe.Environment).Pairs()

	var deltas []*domain.Delta
	for _, stage := range chain {
		switch stage {
		case domain.StageBase:
			deltas = append(deltas,
				&domain.Delta{
					ID:         domain.NewInternedString("base:packages"),
					Stage:      domain.StageBase,
					Kind:       domain.KindPackages,
					Definition: append([]string{recipe.Interpreter}, recipe.Packages...),
				},
				&domain.Delta{
					ID:         domain.NewInternedString("base:env"),
					Stage:      domain.StageBase,
					Kind:       domain.KindEnv,
					Definition: append([]string{recipe.Interpreter, recipe.WorkDir}, envPairs...),
				},
			)

		case domain.StageProd:
			configPaths := make([]string, 0, 2+len(recipe.Configs))
			configPaths = append(configPaths, recipe.Manifest, recipe.Lock)
			configPaths = append(configPaths, recipe.Configs...)

			deltas = append(deltas,
				&domain.Delta{
					ID:     domain.NewInternedString("prod:config-copy"),
					Stage:  domain.StageProd,
					Kind:   domain.KindConfigCopy,
					Inputs: domain.NewInternedStrings(configPaths),
				},
				&domain.Delta{
					ID:         domain.NewInternedString("prod:sync-deps"),
					Stage:      domain.StageProd,
					Kind:       domain.KindSync,
					Inputs:     domain.NewInternedStrings([]string{recipe.Manifest, recipe.Lock}),
					Definition: []string{"no-project"},
					Sync:       domain.SyncMode{NoProject: true},
				},
				&domain.Delta{
					ID:     domain.NewInternedString("prod:source-copy"),
					Stage:  domain.StageProd,
					Kind:   domain.KindSourceCopy,
					Inputs: domain.NewInternedStrings(recipe.Sources),
				},
				&domain.Delta{
					ID:         domain.NewInternedString("prod:sync-project"),
					Stage:      domain.StageProd,
					Kind:       domain.KindSync,
					Inputs:     domain.NewInternedStrings(append([]string{recipe.Manifest, recipe.Lock}, recipe.Sources...)),
					Definition: []string{"project"},
					Sync:       domain.SyncMode{},
				},
				&domain.Delta{
					ID:         domain.NewInternedString("prod:entrypoint"),
					Stage:      domain.StageProd,
					Kind:       domain.KindEntrypoint,
					Definition: append([]string{recipe.WorkDir}, recipe.Entrypoint...),
				},
			)

		case domain.StageDev:
			deltas = append(deltas,
				&domain.Delta{
					ID:         domain.NewInternedString("dev:sync-dev"),
					Stage:      domain.StageDev,
					Kind:       domain.KindSync,
					Inputs:     domain.NewInternedStrings(append([]string{recipe.Manifest, recipe.Lock}, recipe.Sources...)),
					Definition: []string{"project", "dev"},
					Sync:       domain.SyncMode{Dev: true},
				},
			)
		}
	}

	return deltas
}
