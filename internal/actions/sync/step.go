package sync

import (
	"context"

	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/internal/runtime"
)

// invokeFunc runs one git operation through a runner
type invokeFunc func(context.Context, git.Runner) (git.Result, error)

// step holds the wording used to report one git invocation
type step struct {
	name     gitsyncerrors.Step
	announce string
	gerund   string
	failure  string
}

var (
	pullStep = step{
		name:     gitsyncerrors.StepPull,
		announce: "Pulling changes from the remote repository...",
		gerund:   "pulling",
		failure:  "Error pulling changes",
	}
	commitStep = step{
		name:     gitsyncerrors.StepCommit,
		announce: "Committing changes...",
		gerund:   "committing",
		failure:  "Error committing changes",
	}
	pushStep = step{
		name:     gitsyncerrors.StepPush,
		announce: "Pushing changes to the remote repository...",
		gerund:   "pushing",
		failure:  "Error pushing changes",
	}
)

// run announces the step and runs git. An invocation fault is reported here
// and returned as a StepError; a nonzero exit is left to the caller.
func (s step) run(gctx context.Context, ctx *runtime.Context, args []string, invoke invokeFunc) (git.Result, error) {
	ctx.Splog.Step(s.announce)
	ctx.Splog.Debug("Running %s", git.CommandLine(args...))

	res, err := invoke(gctx, ctx.Runner)
	if err != nil {
		ctx.Splog.Error("An error occurred while %s: %v", s.gerund, err)
		return res, gitsyncerrors.NewStepFault(s.name, git.CommandLine(args...), err)
	}

	ctx.Splog.Debug("%s exited with status %d", git.CommandLine(args...), res.ExitCode)
	return res, nil
}

// fail reports a nonzero exit with git's stderr and the command line
func (s step) fail(ctx *runtime.Context, args []string, res git.Result) error {
	command := git.CommandLine(args...)
	ctx.Splog.Error("%s: %s", s.failure, res.Stderr)
	ctx.Splog.Command("  (Command: %s)", command)
	return gitsyncerrors.NewStepError(s.name, command, res.ExitCode, res.Stderr)
}
