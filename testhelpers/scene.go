package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene represents a test scene: a bare remote plus a working clone that
// tracks it. The clone starts with one pushed commit on main.
type Scene struct {
	Dir    string
	Remote string
	Repo   *GitRepo
	root   string
	peers  int
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene in a temporary directory.
// The process working directory and git's global config are restored on cleanup.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	root := t.TempDir()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	// git run by the code under test must not see the developer's config either
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_TERMINAL_PROMPT", "0")

	remote := filepath.Join(root, "remote.git")
	if err := NewBareRemote(remote); err != nil {
		t.Fatalf("Failed to create remote: %v", err)
	}

	seed, err := NewGitRepo(filepath.Join(root, "seed"))
	if err != nil {
		t.Fatalf("Failed to create seed repo: %v", err)
	}
	if err := seed.CreateChangeAndCommit("initial", "init"); err != nil {
		t.Fatalf("Failed to create initial commit: %v", err)
	}
	if err := seed.RunGitCommand("push", remote, "main"); err != nil {
		t.Fatalf("Failed to push initial commit: %v", err)
	}

	workDir := filepath.Join(root, "work")
	repo, err := NewGitRepoFromRemote(workDir, remote)
	if err != nil {
		t.Fatalf("Failed to clone remote: %v", err)
	}

	scene := &Scene{
		Dir:    workDir,
		Remote: remote,
		Repo:   repo,
		root:   root,
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	return scene
}

// PushFromPeer commits a change in a separate clone and pushes it to the
// remote, so the scene's working clone falls behind.
func (s *Scene) PushFromPeer(textValue string) error {
	s.peers++
	peer, err := NewGitRepoFromRemote(filepath.Join(s.root, "peer"+string(rune('0'+s.peers))), s.Remote)
	if err != nil {
		return err
	}
	if err := peer.CreateChangeAndCommit(textValue, "peer"); err != nil {
		return err
	}
	return peer.RunGitCommand("push", "origin", "main")
}

// RemoteRevision returns the SHA that a branch points to on the remote.
func (s *Scene) RemoteRevision(branch string) (string, error) {
	remote := &GitRepo{Dir: s.Remote}
	return remote.GetRevision("refs/heads/" + branch)
}
