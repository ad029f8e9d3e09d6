package uv_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/uv"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func capturedSync(t *testing.T, mode domain.SyncMode) *domain.Command {
	t.Helper()
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	var captured *domain.Command
	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd *domain.Command, _ []string, _, _ io.Writer) error {
			captured = cmd
			return nil
		})

	s := uv.NewSynchronizer(executor)
	require.NoError(t, s.Sync(t.Context(), "/work", mode, nil, nil, nil))
	require.NotNil(t, captured)
	return captured
}

func TestSync_DependenciesOnly(t *testing.T) {
	cmd := capturedSync(t, domain.SyncMode{NoProject: true})

	assert.Equal(t, []string{"uv", "sync", "--locked", "--no-install-project", "--no-dev"}, cmd.Argv)
	assert.Equal(t, "/work", cmd.Dir)
}

func TestSync_Project(t *testing.T) {
	cmd := capturedSync(t, domain.SyncMode{})

	assert.Equal(t, []string{"uv", "sync", "--locked", "--no-dev"}, cmd.Argv)
}

func TestSync_DevIncludesDevGroups(t *testing.T) {
	cmd := capturedSync(t, domain.SyncMode{Dev: true})

	assert.Equal(t, []string{"uv", "sync", "--locked"}, cmd.Argv)
}

func TestSync_UsesConfiguredBinary(t *testing.T) {
	restore := uv.SetUVBinary("/opt/uv/bin/uv")
	defer restore()

	cmd := capturedSync(t, domain.SyncMode{})
	assert.Equal(t, "/opt/uv/bin/uv", cmd.Argv[0])
}

func TestSync_PassesEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	env := []string{"UV_COMPILE_BYTECODE=1", "PATH=/app/.venv/bin:/usr/bin"}
	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), env, gomock.Any(), gomock.Any()).
		Return(nil)

	s := uv.NewSynchronizer(executor)
	require.NoError(t, s.Sync(t.Context(), "/work", domain.SyncMode{}, env, nil, nil))
}

func TestSync_ExecutorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	executor := mocks.NewMockExecutor(ctrl)

	execErr := errors.New("uv exited 2")
	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(execErr)

	s := uv.NewSynchronizer(executor)
	err := s.Sync(t.Context(), "/work", domain.SyncMode{}, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, execErr.Error())
	assert.ErrorContains(t, err, domain.ErrSyncFailed.Error())
}
