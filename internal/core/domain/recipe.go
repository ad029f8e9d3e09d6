package domain

// Recipe is the declarative build definition loaded from strata.yaml.
// It is immutable per build invocation.
type Recipe struct {
	// Root is the absolute path of the project root (the directory holding
	// the recipe file, unless overridden).
	Root string

	// Interpreter is the target interpreter version, e.g. "3.13".
	Interpreter string

	// WorkDir is the working directory inside the produced artifact.
	WorkDir string

	// Packages are the native OS packages installed at the base stage.
	Packages []string

	// Environment holds user-declared environment variables merged into the
	// base stage EnvSet.
	Environment map[string]string

	// Manifest is the dependency manifest path relative to Root
	// (e.g. pyproject.toml).
	Manifest string

	// Lock is the lock file path relative to Root (e.g. uv.lock).
	Lock string

	// Configs are opaque runtime configuration files copied verbatim into the
	// prod stage (e.g. a migration-tool configuration).
	Configs []string

	// Sources are the application source trees copied after dependency sync.
	Sources []string

	// Entrypoint is the fixed default invocation of the final artifact.
	Entrypoint []string
}
