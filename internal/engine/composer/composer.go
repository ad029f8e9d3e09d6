// Package composer implements the stage state machine: base → prod → dev.
package composer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Composer builds the linear stage chain. Transitions are strict: prod is
// never built without base, dev never without prod. Deltas apply in a fixed
// order and are skipped only when their cache record matches both the
// delta's own key and the key of its predecessor.
type Composer struct {
	installer    ports.PackageInstaller
	synchronizer ports.LockSynchronizer
	payload      ports.PayloadLoader
	store        ports.SnapshotStore
	hasher       ports.Hasher
	resolver     ports.InputResolver
	tracer       ports.Tracer
	logger       ports.Logger
}

// NewComposer creates a new Composer with the given dependencies.
func NewComposer(
	installer ports.PackageInstaller,
	synchronizer ports.LockSynchronizer,
	payload ports.PayloadLoader,
	store ports.SnapshotStore,
	hasher ports.Hasher,
	resolver ports.InputResolver,
	tracer ports.Tracer,
	logger ports.Logger,
) *Composer {
	return &Composer{
		installer:    installer,
		synchronizer: synchronizer,
		payload:      payload,
		store:        store,
		hasher:       hasher,
		resolver:     resolver,
		tracer:       tracer,
		logger:       logger,
	}
}

// plannedDelta pairs a delta with its computed cache state.
type plannedDelta struct {
	delta     *domain.Delta
	cacheKey  string
	parentKey string
	skipped   bool
}

// Run composes the chain up to target. If noCache is true, every delta
// executes regardless of cache state.
func (c *Composer) Run(
	ctx context.Context,
	recipe *domain.Recipe,
	target domain.StageName,
	noCache bool,
) (*domain.BuildSummary, error) {
	started := time.Now()

	chain := domain.Chain(target)
	if chain == nil {
		return nil, zerr.With(domain.ErrUnknownStage, "stage", string(target))
	}

	// Surface a manifest/lock mismatch before any delta runs. Failing here
	// guarantees no stage is produced from an unpinned dependency set. The
	// check gets its own span so the renderer can show the failure even
	// though no delta ever started.
	manifestPath := filepath.Join(recipe.Root, recipe.Manifest)
	lockPath := filepath.Join(recipe.Root, recipe.Lock)
	_, verifySpan := c.tracer.Start(ctx, "verify lock")
	if err := c.synchronizer.Verify(manifestPath, lockPath); err != nil {
		verifySpan.RecordError(err)
		verifySpan.End()
		return nil, err
	}
	verifySpan.End()

	env := domain.NewEnvSet(recipe.WorkDir, recipe.Environment)
	deltas := planDeltas(recipe, chain)

	c.emitPlan(ctx, deltas, chain, target)

	planned, err := c.resolveCacheState(ctx, recipe, deltas, env, noCache)
	if err != nil {
		return nil, err
	}

	summary := &domain.BuildSummary{
		Target:     target,
		Entrypoint: recipe.Entrypoint,
		StageRoot:  c.stageDir(recipe.Root, target),
	}

	for _, stage := range chain {
		executed, err := c.buildStage(ctx, recipe, stage, planned, env)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrBuildExecutionFailed.Error()), "stage", string(stage))
		}
		summary.Executed += executed
	}

	for _, p := range planned {
		if p.skipped {
			summary.Cached++
		}
	}

	summary.Duration = time.Since(started)
	return summary, nil
}

// resolveCacheState computes every delta's cache key concurrently, then walks
// the chain sequentially to decide which deltas may be skipped. Keys only
// depend on file content and definitions, so computing them in parallel is
// safe; the skip decision is inherently ordered because each delta's record
// must also match its predecessor's key.
func (c *Composer) resolveCacheState(
	ctx context.Context,
	recipe *domain.Recipe,
	deltas []*domain.Delta,
	env domain.EnvSet,
	noCache bool,
) ([]*plannedDelta, error) {
	planned := make([]*plannedDelta, len(deltas))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, delta := range deltas {
		g.Go(func() error {
			key, err := c.computeKey(delta, env, recipe.Root)
			if err != nil {
				return err
			}
			planned[i] = &plannedDelta{delta: delta, cacheKey: key}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Sequential pass: chain parent keys and decide skips. The first miss
	// forces every later delta, which is exactly layer semantics.
	parentKey := ""
	forced := noCache

	for _, p := range planned {
		p.parentKey = parentKey

		if !forced {
			rec, err := c.store.Get(recipe.Root, string(p.delta.Stage), p.delta.ID.String())
			if err != nil {
				return nil, err
			}

			stageExists := c.stageDirExists(recipe.Root, p.delta.Stage)
			if rec != nil && rec.CacheKey == p.cacheKey && rec.ParentKey == p.parentKey && stageExists {
				p.skipped = true
			} else {
				forced = true
			}
		}

		parentKey = p.cacheKey
	}

	return planned, nil
}

func (c *Composer) computeKey(delta *domain.Delta, env domain.EnvSet, root string) (string, error) {
	inputs := make([]string, len(delta.Inputs))
	for i, input := range delta.Inputs {
		inputs[i] = input.String()
	}

	resolved, err := c.resolver.ResolveInputs(inputs, root)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrInputResolutionFailed.Error())
	}

	key, err := c.hasher.ComputeDeltaKey(delta, env.Pairs(), root, resolved)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrKeyComputationFailed.Error())
	}
	return key, nil
}

// buildStage applies one stage's pending deltas against a scratch copy of
// the stage root and commits the result with a rename. An abort discards the
// entire in-progress stage: records are stored only after the commit, so a
// failed build never exposes a partial stage as reusable.
func (c *Composer) buildStage(
	ctx context.Context,
	recipe *domain.Recipe,
	stage domain.StageName,
	planned []*plannedDelta,
	env domain.EnvSet,
) (int, error) {
	var stageDeltas []*plannedDelta
	for _, p := range planned {
		if p.delta.Stage == stage {
			stageDeltas = append(stageDeltas, p)
		}
	}

	pending := 0
	for _, p := range stageDeltas {
		if !p.skipped {
			pending++
		}
	}

	if pending == 0 {
		c.logger.Info("stage cached: " + string(stage))
		return 0, nil
	}

	ctx, stageSpan := c.tracer.Start(ctx, "stage "+string(stage))
	defer stageSpan.End()

	workDir, err := c.seedWorkDir(recipe.Root, stage, stageDeltas)
	if err != nil {
		stageSpan.RecordError(err)
		return 0, err
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	for _, p := range stageDeltas {
		if p.skipped {
			continue
		}
		if err := c.applyDelta(ctx, recipe, p.delta, workDir, env); err != nil {
			stageSpan.RecordError(err)
			return 0, err
		}
	}

	if err := c.commitStage(recipe.Root, stage, workDir); err != nil {
		stageSpan.RecordError(err)
		return 0, err
	}

	// The stage is committed; record the executed deltas so the next build
	// can skip them.
	for _, p := range stageDeltas {
		if p.skipped {
			continue
		}
		rec := domain.DeltaRecord{
			Stage:     string(stage),
			Delta:     p.delta.ID.String(),
			CacheKey:  p.cacheKey,
			ParentKey: p.parentKey,
			Timestamp: time.Now(),
		}
		if err := c.store.Put(recipe.Root, rec); err != nil {
			return 0, err
		}
	}

	return pending, nil
}

// applyDelta dispatches one delta against the stage work directory.
func (c *Composer) applyDelta(
	ctx context.Context,
	recipe *domain.Recipe,
	delta *domain.Delta,
	workDir string,
	env domain.EnvSet,
) error {
	ctx, span := c.tracer.Start(ctx, delta.ID.String())
	defer span.End()

	var err error
	switch delta.Kind {
	case domain.KindPackages:
		err = c.applyPackages(ctx, recipe, workDir, env, span)
	case domain.KindEnv:
		err = c.applyEnv(workDir, env)
	case domain.KindConfigCopy:
		paths := make([]string, 0, 2+len(recipe.Configs))
		paths = append(paths, recipe.Manifest, recipe.Lock)
		paths = append(paths, recipe.Configs...)
		err = c.replacePayload(recipe.Root, paths, workDir)
	case domain.KindSync:
		err = c.synchronizer.Sync(ctx, workDir, delta.Sync, env.Pairs(), span, span)
	case domain.KindSourceCopy:
		err = c.replacePayload(recipe.Root, recipe.Sources, workDir)
	case domain.KindEntrypoint:
		err = c.applyEntrypoint(recipe, workDir)
	}

	if err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrDeltaFailed.Error()), "delta", delta.ID.String())
	}
	return nil
}

func (c *Composer) applyPackages(
	ctx context.Context,
	recipe *domain.Recipe,
	workDir string,
	env domain.EnvSet,
	span ports.Span,
) error {
	if err := c.installer.Install(ctx, recipe.Packages, env.Pairs(), span, span); err != nil {
		return err
	}

	// Record the installed set in the stage root so the snapshot itself
	// documents what the base provides.
	content := strings.Join(recipe.Packages, "\n") + "\n"
	path := filepath.Join(workDir, domain.PackagesFileName)
	return os.WriteFile(path, []byte(content), domain.FilePerm)
}

// replacePayload copies the given paths into the stage work directory,
// clearing each destination first. A re-executed copy delta must replace its
// previous output, not overlay it: when the work directory was seeded from a
// committed root, files that no longer exist in the source would otherwise
// survive the rebuild.
func (c *Composer) replacePayload(root string, paths []string, workDir string) error {
	for _, p := range paths {
		dest := filepath.Join(workDir, p)
		rel, err := filepath.Rel(workDir, dest)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return zerr.With(domain.ErrInputOutsideRoot, "path", p)
		}
		if rel == "." {
			continue
		}
		if err := os.RemoveAll(dest); err != nil {
			return zerr.Wrap(err, domain.ErrPayloadCopyFailed.Error())
		}
	}
	return c.payload.Copy(root, paths, workDir)
}

func (c *Composer) applyEnv(workDir string, env domain.EnvSet) error {
	content := strings.Join(env.Pairs(), "\n") + "\n"
	path := filepath.Join(workDir, domain.EnvFileName)
	return os.WriteFile(path, []byte(content), domain.FilePerm)
}

func (c *Composer) applyEntrypoint(recipe *domain.Recipe, workDir string) error {
	ep := domain.Entrypoint{
		Argv:    recipe.Entrypoint,
		WorkDir: recipe.WorkDir,
	}
	data, err := json.MarshalIndent(ep, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(workDir, domain.EntrypointFileName)
	return os.WriteFile(path, data, domain.FilePerm)
}

// seedWorkDir creates the scratch directory for a stage rebuild. When the
// stage's cached prefix is intact, the existing stage root is the seed (it
// already contains the prefix's effects); otherwise the parent stage root is.
// The seed also carries the effects of the invalidated later deltas, which is
// why re-executed copy deltas replace their destinations instead of
// overlaying them.
func (c *Composer) seedWorkDir(
	root string,
	stage domain.StageName,
	stageDeltas []*plannedDelta,
) (string, error) {
	stagesDir := filepath.Join(root, domain.DefaultStagesPath())
	if err := os.MkdirAll(stagesDir, domain.DirPerm); err != nil {
		return "", zerr.Wrap(err, domain.ErrStageCommitFailed.Error())
	}

	workDir, err := os.MkdirTemp(stagesDir, ".tmp-"+string(stage)+"-*")
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStageCommitFailed.Error())
	}

	seed := ""
	if len(stageDeltas) > 0 && stageDeltas[0].skipped {
		// Cached prefix: continue from the stage's own committed root.
		seed = c.stageDir(root, stage)
	} else if parent, ok := stage.Parent(); ok {
		if c.stageDirExists(root, parent) {
			seed = c.stageDir(root, parent)
		}
	}

	if seed != "" {
		if err := c.payload.Copy(seed, []string{"."}, workDir); err != nil {
			_ = os.RemoveAll(workDir)
			return "", err
		}
	}

	return workDir, nil
}

func (c *Composer) commitStage(root string, stage domain.StageName, workDir string) error {
	dest := c.stageDir(root, stage)
	if err := os.RemoveAll(dest); err != nil {
		return zerr.Wrap(err, domain.ErrStageCommitFailed.Error())
	}
	if err := os.Rename(workDir, dest); err != nil {
		return zerr.Wrap(err, domain.ErrStageCommitFailed.Error())
	}
	return nil
}

func (c *Composer) stageDir(root string, stage domain.StageName) string {
	return filepath.Join(root, domain.DefaultStagesPath(), string(stage))
}

func (c *Composer) stageDirExists(root string, stage domain.StageName) bool {
	info, err := os.Stat(c.stageDir(root, stage))
	return err == nil && info.IsDir()
}

func (c *Composer) emitPlan(
	ctx context.Context,
	deltas []*domain.Delta,
	chain []domain.StageName,
	target domain.StageName,
) {
	names := make([]string, len(deltas))
	stages := make(map[string][]string, len(chain))
	for i, d := range deltas {
		names[i] = d.ID.String()
		stages[string(d.Stage)] = append(stages[string(d.Stage)], d.ID.String())
	}
	c.tracer.EmitPlan(ctx, names, stages, string(target))
}
