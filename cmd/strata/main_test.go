package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newMockedApp(ctrl *gomock.Controller, loader *mocks.MockRecipeLoader, log *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		mocks.NewMockPackageInstaller(ctrl),
		mocks.NewMockLockSynchronizer(ctrl),
		mocks.NewMockPayloadLoader(ctrl),
		mocks.NewMockSnapshotStore(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockInputResolver(ctrl),
		log,
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockRecipeLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := newMockedApp(ctrl, mockLoader, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockRecipeLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newMockedApp(ctrl, mockLoader, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	// Recipe loading fails before any stage work starts.
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	_ = os.Chdir(tmp)
	defer func() {
		_ = os.Chdir(cwd)
	}()

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", "prod"}, stderr, provider, func(a *app.App) {
		// Disable TUI for test
		a.WithTeaOptions(tea.WithInput(nil))
	})

	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailureExitsQuietly verifies that delta failures already
// reported by the renderer do not get logged a second time.
func TestRun_BuildFailureExitsQuietly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockRecipeLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	// No Error expectation: the renderer owns failure reporting.

	application := newMockedApp(ctrl, mockLoader, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	mockLoader.EXPECT().Load(".").Return(nil, domain.ErrBuildExecutionFailed)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", "prod"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blockCh := make(chan struct{})

	mockLoader := mocks.NewMockRecipeLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.Recipe, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newMockedApp(ctrl, mockLoader, mockLogger)

	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	_ = os.Chdir(tmp)
	defer func() {
		_ = os.Chdir(cwd)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"build", "prod"}, io.Discard, func(context.Context) (*app.Components, func(), error) {
			return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
		})
	}()

	// Wait a bit to ensure run() reaches Load()
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
