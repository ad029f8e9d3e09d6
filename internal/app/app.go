// Package app implements the application layer for strata.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/strata/internal/adapters/detector"
	"go.trai.ch/strata/internal/adapters/linear"
	"go.trai.ch/strata/internal/adapters/telemetry"
	"go.trai.ch/strata/internal/adapters/tui"
	"go.trai.ch/strata/internal/adapters/watcher"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/composer"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	recipeLoader ports.RecipeLoader
	installer    ports.PackageInstaller
	synchronizer ports.LockSynchronizer
	payload      ports.PayloadLoader
	store        ports.SnapshotStore
	hasher       ports.Hasher
	resolver     ports.InputResolver
	logger       ports.Logger
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.RecipeLoader,
	installer ports.PackageInstaller,
	synchronizer ports.LockSynchronizer,
	payload ports.PayloadLoader,
	store ports.SnapshotStore,
	hasher ports.Hasher,
	resolver ports.InputResolver,
	log ports.Logger,
) *App {
	return &App{
		recipeLoader: loader,
		installer:    installer,
		synchronizer: synchronizer,
		payload:      payload,
		store:        store,
		hasher:       hasher,
		resolver:     resolver,
		logger:       log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	NoCache    bool
	Watch      bool
	OutputMode string
}

// Run composes the requested stage. In watch mode it keeps rebuilding as
// recipe inputs change until the context is canceled.
func (a *App) Run(ctx context.Context, targetName string, opts RunOptions) error {
	target := domain.StageName(targetName)
	if !target.Valid() {
		return zerr.With(domain.ErrUnknownStage, "stage", targetName)
	}

	recipe, err := a.recipeLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load recipe")
	}

	if opts.Watch {
		return a.runWatch(ctx, recipe, target, opts)
	}
	return a.runOnce(ctx, recipe, target, opts)
}

// runOnce performs a single composition with a live renderer.
//
//nolint:cyclop // orchestration function
func (a *App) runOnce(
	ctx context.Context,
	recipe *domain.Recipe,
	target domain.StageName,
	opts RunOptions,
) error {
	// Detect environment and resolve output mode
	autoMode := detector.DetectEnvironment()
	mode := detector.ResolveMode(autoMode, opts.OutputMode)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(os.Stderr)
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)
	} else {
		renderer = linear.NewRenderer(os.Stdout, os.Stderr)
	}

	// Create a bridge that sends OTel spans to the renderer and register it
	// with the global OTel SDK so every started span reaches the renderer.
	bridge := telemetry.NewBridge(renderer)
	setupOTel(bridge)

	// The renderer is injected into the tracer so delta output streams
	// through the batcher.
	tracer := telemetry.NewOTelTracer("strata").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	comp := composer.NewComposer(
		a.installer,
		a.synchronizer,
		a.payload,
		a.store,
		a.hasher,
		a.resolver,
		tracer,
		a.logger,
	)

	var summary *domain.BuildSummary

	g, ctx := errgroup.WithContext(ctx)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Composer Routine
	g.Go(func() error {
		defer func() {
			// Handle panic recovery for the composer goroutine
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "Composer panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		var err error
		summary, err = comp.Run(ctx, recipe, target, opts.NoCache)
		if err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	a.logSummary(summary)
	return nil
}

// runWatch rebuilds whenever recipe inputs change. The watcher always uses
// the linear renderer; an interactive TUI would fight with the rebuild loop
// for the terminal.
func (a *App) runWatch(
	ctx context.Context,
	recipe *domain.Recipe,
	target domain.StageName,
	opts RunOptions,
) error {
	opts.OutputMode = "linear"

	w, err := watcher.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, recipe.Root); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}

	rebuild := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Info(fmt.Sprintf("detected %d change(s), rebuilding", len(paths)))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})

	go func() {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
	}()

	// Initial build. A failure does not end the loop; the next change may
	// fix it.
	if err := a.runOnce(ctx, recipe, target, opts); err != nil {
		a.logger.Error(err)
	}
	a.logger.Info("watching for changes. Press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuild:
			if err := a.runOnce(ctx, recipe, target, opts); err != nil {
				a.logger.Error(err)
			}
			a.logger.Info("watching for changes. Press Ctrl+C to stop")
		}
	}
}

func (a *App) logSummary(summary *domain.BuildSummary) {
	if summary == nil {
		return
	}
	a.logger.Info(fmt.Sprintf(
		"composed stage %q in %s (%d applied, %d cached)",
		summary.Target, summary.Duration.Round(time.Millisecond), summary.Executed, summary.Cached,
	))
	a.logger.Info("stage root: " + summary.StageRoot)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Records bool
	Stages  bool
}

// Clean removes cached records and materialized stages based on the options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	root, err := a.recipeLoader.DiscoverRoot(".")
	if err != nil {
		return zerr.Wrap(err, "failed to locate project root")
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Records {
		remove(filepath.Join(root, domain.DefaultStorePath()), "delta record store")
	}

	if options.Stages {
		remove(filepath.Join(root, domain.DefaultStagesPath()), "materialized stages")
	}

	return errs
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
