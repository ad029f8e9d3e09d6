package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/cmd/strata/commands"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/build"
)

type mockApp struct {
	runFunc   func(ctx context.Context, targetName string, opts app.RunOptions) error
	cleanFunc func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Run(ctx context.Context, targetName string, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, targetName, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedTarget string
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, target string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedTarget = target
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "dev", "--no-cache", "--watch", "--output-mode", "linear"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.True(t, capturedOpts.NoCache)
		assert.True(t, capturedOpts.Watch)
		assert.Equal(t, "linear", capturedOpts.OutputMode)
		assert.Equal(t, "dev", capturedTarget)
	})

	t.Run("defaults to prod stage", func(t *testing.T) {
		var capturedTarget string
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, target string, opts app.RunOptions) error {
				capturedTarget = target
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "prod", capturedTarget)
		assert.False(t, capturedOpts.NoCache)
		assert.Equal(t, "auto", capturedOpts.OutputMode)
	})

	t.Run("ci flag forces linear output", func(t *testing.T) {
		var capturedOpts app.RunOptions

		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build", "--ci"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "linear", capturedOpts.OutputMode)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"build", "prod", "dev"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{
			name: "default cleans records only",
			args: []string{"clean"},
			want: app.CleanOptions{Records: true},
		},
		{
			name: "stages flag cleans stage directories only",
			args: []string{"clean", "--stages"},
			want: app.CleanOptions{Stages: true},
		},
		{
			name: "all flag cleans everything",
			args: []string{"clean", "--all"},
			want: app.CleanOptions{Records: true, Stages: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedOpts app.CleanOptions

			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					capturedOpts = opts
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, capturedOpts)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
