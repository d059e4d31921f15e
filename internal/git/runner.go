package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
)

// DefaultBinary is the git executable used when none is configured
const DefaultBinary = "git"

// Result holds the outcome of a git process that ran to completion
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether git exited with status zero
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes git commands.
// A nonzero exit status is reported through Result, not as an error; the
// error return is reserved for invocations that could not run at all.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// CommandRunner handles execution of git commands
type CommandRunner struct {
	binary     string
	workingDir string
}

// NewCommandRunner creates a new CommandRunner.
// An empty binary means DefaultBinary; an empty workingDir means the process cwd.
func NewCommandRunner(binary, workingDir string) *CommandRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandRunner{binary: binary, workingDir: workingDir}
}

// Binary returns the git executable this runner invokes
func (r *CommandRunner) Binary() string {
	return r.binary
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes git with args, without a shell, and captures stdout and stderr separately
func (r *CommandRunner) Run(ctx context.Context, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	if ctx.Err() != nil {
		result.ExitCode = -1
		return result, gitsyncerrors.NewGitCommandError(r.binary, args, result.Stdout, result.Stderr, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	result.ExitCode = -1
	return result, gitsyncerrors.NewGitCommandError(r.binary, args, result.Stdout, result.Stderr, err)
}
