// Package sync implements the pull, commit and push sequence.
package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gitsyncerrors "gitsync.dev/gitsync/internal/errors"
	"gitsync.dev/gitsync/internal/git"
	"gitsync.dev/gitsync/internal/runtime"
)

// Options contains options for the sync command
type Options struct {
	RepoPath string
	Message  string
}

// Action pulls, commits and pushes in RepoPath, stopping at the first failure.
// A commit that finds nothing to commit does not stop the push.
//
// Every outcome is reported through ctx.Splog. The returned error is nil on
// success and otherwise classifies the stop for the caller's exit status;
// it has already been reported and should not be printed again.
func Action(ctx *runtime.Context, opts Options) error {
	splog := ctx.Splog
	gctx := ctx.Context
	if gctx == nil {
		gctx = context.Background()
	}

	if _, err := os.Stat(opts.RepoPath); err != nil {
		splog.Error("Error: Repository path '%s' does not exist.", opts.RepoPath)
		return fmt.Errorf("%w: %s", gitsyncerrors.ErrRepoNotFound, opts.RepoPath)
	}

	// resolved before the chdir so a relative path still names the same directory
	absPath, absErr := filepath.Abs(opts.RepoPath)

	chdir := ctx.Chdir
	if chdir == nil {
		chdir = os.Chdir
	}
	if err := chdir(opts.RepoPath); err != nil {
		splog.Error("Error: Could not change directory to '%s'. %v", opts.RepoPath, err)
		return fmt.Errorf("%w: %s: %w", gitsyncerrors.ErrChangeDir, opts.RepoPath, err)
	}

	if absErr == nil {
		if branch, err := git.CurrentBranch(absPath); err == nil {
			root, _ := git.RepoRoot(absPath)
			splog.Debug("Syncing branch %s in %s", branch, root)
		} else {
			splog.Debug("Could not determine current branch: %v", err)
		}
	}

	if err := pull(gctx, ctx); err != nil {
		return err
	}
	if err := commit(gctx, ctx, opts.Message); err != nil {
		return err
	}
	if err := push(gctx, ctx); err != nil {
		return err
	}

	splog.Success("Successfully pulled, committed, and pushed changes.")
	return nil
}

// pull fetches and merges remote changes
func pull(gctx context.Context, ctx *runtime.Context) error {
	s := pullStep
	res, err := s.run(gctx, ctx, git.PullArgs(), git.Pull)
	if err != nil {
		return err
	}
	if !res.Success() {
		return s.fail(ctx, git.PullArgs(), res)
	}
	ctx.Splog.Output(res.Stdout)
	return nil
}

// commit records staged changes; "nothing to commit" is reported and skipped
func commit(gctx context.Context, ctx *runtime.Context, message string) error {
	s := commitStep
	args := git.CommitArgs(message)
	res, err := s.run(gctx, ctx, args, func(c context.Context, r git.Runner) (git.Result, error) {
		return git.Commit(c, r, message)
	})
	if err != nil {
		return err
	}
	if !res.Success() {
		if git.NothingToCommit(res) {
			ctx.Splog.Info("No changes to commit.")
			return nil
		}
		return s.fail(ctx, args, res)
	}
	ctx.Splog.Output(res.Stdout)
	return nil
}

// push uploads local commits to the remote
func push(gctx context.Context, ctx *runtime.Context) error {
	s := pushStep
	res, err := s.run(gctx, ctx, git.PushArgs(), git.Push)
	if err != nil {
		return err
	}
	if !res.Success() {
		return s.fail(ctx, git.PushArgs(), res)
	}
	ctx.Splog.Output(res.Stdout)
	return nil
}
