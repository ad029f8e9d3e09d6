package config

// RecipeFile represents the structure of the strata.yaml build recipe.
type RecipeFile struct {
	Version     string            `yaml:"version"`
	Interpreter string            `yaml:"interpreter"`
	Root        string            `yaml:"root"`
	WorkDir     string            `yaml:"workdir"`
	Packages    []string          `yaml:"packages"`
	Environment map[string]string `yaml:"environment"`
	Manifest    string            `yaml:"manifest"`
	Lock        string            `yaml:"lock"`
	Configs     []string          `yaml:"configs"`
	Sources     []string          `yaml:"sources"`
	Entrypoint  []string          `yaml:"entrypoint"`
}
