// Package errors provides sentinel errors and custom error types for gitsync.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrRepoNotFound indicates that the repository path does not exist
	ErrRepoNotFound = errors.New("repository path does not exist")

	// ErrChangeDir indicates that the process could not enter the repository path
	ErrChangeDir = errors.New("could not change directory")

	// ErrPullFailed indicates that the pull step stopped the sync
	ErrPullFailed = errors.New("pull failed")

	// ErrCommitFailed indicates that the commit step stopped the sync
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates that the push step stopped the sync
	ErrPushFailed = errors.New("push failed")

	// ErrNoInput indicates that input ended before a value was read
	ErrNoInput = errors.New("no input")
)

// Step names a stage of the sync
type Step string

const (
	StepPull   Step = "pull"
	StepCommit Step = "commit"
	StepPush   Step = "push"
)

// sentinel returns the sentinel error that represents a failure of the step
func (s Step) sentinel() error {
	switch s {
	case StepPull:
		return ErrPullFailed
	case StepCommit:
		return ErrCommitFailed
	case StepPush:
		return ErrPushFailed
	default:
		return nil
	}
}

// StepError represents a sync step that stopped the run, either because git
// exited nonzero or because git could not be run at all.
type StepError struct {
	Step     Step
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Step, e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %s exited with status %d", e.Step, e.Command, e.ExitCode)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is returns true if the target is the sentinel for this step
func (e *StepError) Is(target error) bool {
	s := e.Step.sentinel()
	return s != nil && target == s
}

// NewStepError creates a StepError for a nonzero exit
func NewStepError(step Step, command string, exitCode int, stderr string) *StepError {
	return &StepError{
		Step:     step,
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
}

// NewStepFault creates a StepError for a git invocation that never produced an exit status
func NewStepFault(step Step, command string, err error) *StepError {
	return &StepError{
		Step:     step,
		Command:  command,
		ExitCode: -1,
		Err:      err,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
