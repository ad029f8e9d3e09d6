// Package shell provides a shell-based executor for running delta commands.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command in a PTY and waits for it to complete.
// Output is streamed line-buffered to the structural logger and to stdout.
func (e *Executor) Execute(
	ctx context.Context,
	cmd *domain.Command,
	env []string,
	stdout, stderr io.Writer,
) error {
	if cmd == nil || len(cmd.Argv) == 0 {
		return nil
	}

	stdoutLog := &logWriter{logger: e.logger}

	// The PTY merges the child's stdout and stderr into one stream, so a
	// distinct stderr writer receives the same merged output.
	writers := []io.Writer{stdoutLog, stdout}
	if stderr != nil && stderr != stdout {
		writers = append(writers, stderr)
	}
	merged := io.MultiWriter(writers...)

	name := cmd.Argv[0]
	args := cmd.Argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env)

	// Resolve the executable against the merged PATH, not the host PATH:
	// the stage environment prioritizes the isolated dependency environment.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, args...) //nolint:gosec // recipe provided command
	if len(c.Args) > 0 {
		c.Args[0] = name
	}
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = cmdEnv

	ptmx, err := pty.Start(c)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		defer func() { _ = stdoutLog.Close() }()

		_, _ = io.Copy(merged, ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone

	if waitErr != nil {
		var exitCode int
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		return zerr.With(zerr.Wrap(waitErr, "command failed"), "exit_code", exitCode)
	}

	return nil
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	// Scan for newlines
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		line := w.buf[:i]
		w.logLine(line)

		// Advance buffer
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := string(line)
	// PTYs may introduce \r. Remove it.
	msg = strings.TrimSuffix(msg, "\r")
	w.logger.Debug(msg)
}

// allowListedEnvVars are the system environment variables that are allowed to
// be inherited by delta commands. The stage environment set supplies the rest,
// keeping the build hermetic and reproducible.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
}

// resolveEnvironment merges environment variables with the defined priority:
// allow-listed system variables first, then the stage environment. A PATH in
// the stage environment is prepended to the system PATH.
func resolveEnvironment(sysEnv, stageEnv []string) []string {
	envMap := filterSystemEnv(sysEnv)

	for _, entry := range stageEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
			continue
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
