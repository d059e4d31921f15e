package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	return newGitRepoInternal(dir, &gitRepoOptions{})
}

// NewGitRepoFromRemote clones a repository from a local bare remote.
func NewGitRepoFromRemote(dir string, remotePath string) (*GitRepo, error) {
	return newGitRepoInternal(dir, &gitRepoOptions{remotePath: remotePath})
}

// gitRepoOptions holds options for creating a GitRepo.
type gitRepoOptions struct {
	remotePath string
}

// newGitRepoInternal is the internal implementation for creating a GitRepo.
func newGitRepoInternal(dir string, options *gitRepoOptions) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	if options.remotePath != "" {
		cmd := exec.Command("git", "clone", options.remotePath, dir)
		cmd.Env = gitEnv()
		if output, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("failed to clone repo: %w, output: %s", err, string(output))
		}
	} else {
		// Use git -c flags to avoid reading global config and set local configs
		cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "init", dir)
		cmd.Env = gitEnv()
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("failed to init repo: %w", err)
		}
		if err := repo.runGitCommand("symbolic-ref", "HEAD", "refs/heads/main"); err != nil {
			return nil, err
		}
	}

	// Configure Git user (required for commits)
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "pull.rebase", "false"); err != nil {
		return nil, err
	}

	return repo, nil
}

// NewBareRemote creates a bare git repository whose default branch is main.
func NewBareRemote(dir string) error {
	cmd := exec.Command("git", "init", "--bare", dir)
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create bare repo: %w", err)
	}

	cmd = exec.Command("git", "symbolic-ref", "HEAD", "refs/heads/main")
	cmd.Dir = dir
	cmd.Env = gitEnv()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to set bare repo HEAD: %w", err)
	}
	return nil
}

// gitEnv returns the environment for git commands run by helpers.
// GIT_CONFIG_GLOBAL=/dev/null keeps the developer's global config out of tests.
func gitEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null", "GIT_CONFIG_NOSYSTEM=1")
}

// runGitCommand executes a git command in the repository directory.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %w, output: %s", strings.Join(args, " "), err, string(output))
	}
	return nil
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = gitEnv()
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange creates a file change in the repository.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.runGitCommand("add", filePath)
	}

	return nil
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", textValue)
}

// GetRevision returns the SHA of a revision (branch, tag, or commit reference).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", rev)
}

// HeadCommitMessage returns the full message of the HEAD commit, without the trailing newline.
func (r *GitRepo) HeadCommitMessage() (string, error) {
	return r.RunGitCommandAndGetOutput("log", "-1", "--format=%B")
}

// ListCurrentBranchCommitMessages returns the commit subjects on the current branch, newest first.
func (r *GitRepo) ListCurrentBranchCommitMessages() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("log", "--format=%s")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// splitLines splits a string by newlines and returns non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
