// Package hostapi implements the fixed vocabulary of capabilities exposed to
// every plugin script: project introspection, filesystem helpers scoped to
// the project root, process execution, SDK-rooted command dispatch, archive
// I/O, prompts, logging and init-mode template rendering. The embedded
// scripting runtime that would bind these methods into a script's global
// scope is an external collaborator; this package defines the Go-side
// capability objects such a binding would marshal.
package hostapi

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.ProcessExecutor: spawns named executables with
// no shell interpretation, covering both the inherited-stdio and the
// captured-output dispatch styles.
type Executor struct{}

var _ ports.ProcessExecutor = (*Executor)(nil)

// New creates a process Executor.
func New() *Executor { return &Executor{} }

// ValidateName rejects names containing path separators, the "Name
// validation" clause shared by both the sys and sdk: dispatch styles.
func ValidateName(name string) error {
	if strings.ContainsAny(name, "/\\") {
		return zerr.With(domain.ErrInvalidName, "name", name)
	}
	return nil
}

// Run inherits stdio and returns (success, exit code).
func (e *Executor) Run(ctx context.Context, dir, name string, args []string) (bool, int, error) {
	if err := ValidateName(name); err != nil {
		return false, -1, err
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // script-supplied name, validated above
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return exitResult(cmd.Run())
}

// RunCaptured captures stdout and stderr without reordering them relative
// to each other: the two streams are kept separate, never merged, so tools
// like aapt2 that report on stderr stay distinguishable to callers.
func (e *Executor) RunCaptured(ctx context.Context, dir, name string, args []string) (bool, string, string, error) {
	if err := ValidateName(name); err != nil {
		return false, "", "", err
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // script-supplied name, validated above
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	ok, _, err := exitResult(cmd.Run())
	return ok, stdout.String(), stderr.String(), err
}

func exitResult(err error) (bool, int, error) {
	if err == nil {
		return true, 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, exitErr.ExitCode(), nil
	}
	return false, -1, zerr.Wrap(err, "failed to execute process")
}

// Sys is the capability object bound to a script's dynamically dispatched
// sys.<cmd>(...) endpoints. Two explicit methods cover both naming
// disciplines; the "get_" prefix a script writes is pure sugar decoded by
// Dispatch before reaching either one.
type Sys struct {
	proc ports.ProcessExecutor
	dir  string
}

func newSys(proc ports.ProcessExecutor, dir string) *Sys {
	return &Sys{proc: proc, dir: dir}
}

// Run spawns name with inherited stdio.
func (s *Sys) Run(ctx context.Context, name string, args ...string) (bool, int, error) {
	return s.proc.Run(ctx, s.dir, name, args)
}

// RunCaptured spawns name, capturing stdout and stderr.
func (s *Sys) RunCaptured(ctx context.Context, name string, args ...string) (bool, string, string, error) {
	return s.proc.RunCaptured(ctx, s.dir, name, args)
}

// Dispatch resolves a script-visible call of the form `<cmd>(args...)` or
// `get_<cmd>(args...)` into one of Run/RunCaptured, decoding the prefix.
func (s *Sys) Dispatch(ctx context.Context, name string, args []string) (ok bool, exitCode int, stdout, stderr string, err error) {
	if cmd, captured := strings.CutPrefix(name, "get_"); captured {
		ok, stdout, stderr, err = s.RunCaptured(ctx, cmd, args...)
		return ok, 0, stdout, stderr, err
	}
	ok, exitCode, err = s.Run(ctx, name, args...)
	return ok, exitCode, "", "", err
}
