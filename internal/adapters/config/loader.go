// Package config provides the build recipe loader for strata.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.RecipeLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the recipe from the nearest strata.yaml at or above cwd,
// validates it, and resolves all paths against the recipe root.
func (l *Loader) Load(cwd string) (*domain.Recipe, error) {
	recipePath, err := l.findRecipe(cwd)
	if err != nil {
		return nil, err
	}

	var file RecipeFile
	if err := readAndUnmarshalYAML(recipePath, &file); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		Root:        resolveRoot(recipePath, file.Root),
		Interpreter: file.Interpreter,
		WorkDir:     file.WorkDir,
		Packages:    file.Packages,
		Environment: file.Environment,
		Manifest:    file.Manifest,
		Lock:        file.Lock,
		Configs:     file.Configs,
		Sources:     file.Sources,
		Entrypoint:  file.Entrypoint,
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := checkInputsExist(recipe); err != nil {
		return nil, err
	}

	return recipe, nil
}

// DiscoverRoot walks up from cwd to find the directory containing strata.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	recipePath, err := l.findRecipe(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(recipePath), nil
}

func (l *Loader) findRecipe(cwd string) (string, error) {
	currentDir := cwd

	for {
		recipePath := filepath.Join(currentDir, domain.RecipeFileName)
		if _, err := os.Stat(recipePath); err == nil {
			return recipePath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrRecipeNotFound, "cwd", cwd)
}

func validateRecipe(r *domain.Recipe) error {
	required := []struct {
		name  string
		empty bool
	}{
		{"interpreter", r.Interpreter == ""},
		{"workdir", r.WorkDir == ""},
		{"manifest", r.Manifest == ""},
		{"lock", r.Lock == ""},
		{"entrypoint", len(r.Entrypoint) == 0},
		{"sources", len(r.Sources) == 0},
	}

	for _, f := range required {
		if f.empty {
			return zerr.With(domain.ErrRecipeInvalid, "missing_field", f.name)
		}
	}

	if !filepath.IsAbs(r.WorkDir) {
		err := zerr.With(domain.ErrRecipeInvalid, "field", "workdir")
		return zerr.With(err, "reason", "must be an absolute path")
	}

	return nil
}

// checkInputsExist verifies all declared input files are present. A missing
// manifest, lock or config file is fatal before any delta executes.
func checkInputsExist(r *domain.Recipe) error {
	inputs := make([]string, 0, 2+len(r.Configs)+len(r.Sources))
	inputs = append(inputs, r.Manifest, r.Lock)
	inputs = append(inputs, r.Configs...)
	inputs = append(inputs, r.Sources...)

	for _, input := range inputs {
		if _, err := os.Stat(filepath.Join(r.Root, input)); err != nil {
			return zerr.With(domain.ErrInputNotFound, "input", input)
		}
	}
	return nil
}

func resolveRoot(recipePath, configuredRoot string) string {
	recipeDir := filepath.Dir(recipePath)
	if configuredRoot == "" {
		return filepath.Clean(recipeDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(recipeDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target
// struct. Unknown keys are rejected so a misspelled recipe field fails loudly
// instead of being silently dropped.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is validated by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrRecipeReadFailed.Error())
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrRecipeParseFailed.Error())
	}

	return nil
}
