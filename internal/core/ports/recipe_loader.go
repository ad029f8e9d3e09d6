package ports

import "go.trai.ch/strata/internal/core/domain"

// RecipeLoader defines the interface for loading the build recipe.
//
//go:generate mockgen -source=recipe_loader.go -destination=mocks/mock_recipe_loader.go -package=mocks
type RecipeLoader interface {
	// Load walks up from cwd to find strata.yaml, parses and validates it,
	// and returns the recipe with all paths resolved against the root.
	Load(cwd string) (*domain.Recipe, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing strata.yaml.
	DiscoverRoot(cwd string) (string, error)
}
