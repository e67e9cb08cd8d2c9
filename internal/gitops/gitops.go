// Package gitops keeps a DINK workspace under git so every ledger mutation
// leaves a commit behind.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a workspace directory and the identity its commits are made with.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// New returns a Repo rooted at dir.
func New(dir, authorName, authorEmail string) *Repo {
	return &Repo{Dir: dir, AuthorName: authorName, AuthorEmail: authorEmail}
}

// IsRepo reports whether the workspace is a git repository.
func (r *Repo) IsRepo() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil
}

// Init creates the repository. It is a no-op on an existing one.
func (r *Repo) Init() error {
	if r.IsRepo() {
		return nil
	}
	if _, err := r.git("init", "-q"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// Dirty reports whether the work tree has uncommitted changes.
func (r *Repo) Dirty() (bool, error) {
	out, err := r.git("status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAll stages every change and commits it. It returns the short hash,
// or "" when there was nothing to commit.
func (r *Repo) CommitAll(message string) (string, error) {
	if _, err := r.git("add", "-A"); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}
	dirty, err := r.Dirty()
	if err != nil {
		return "", err
	}
	if !dirty {
		return "", nil
	}
	if _, err := r.git("commit", "-q", "-m", message); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}
	out, err := r.git("rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (r *Repo) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME="+r.AuthorName,
		"GIT_AUTHOR_EMAIL="+r.AuthorEmail,
		"GIT_COMMITTER_NAME="+r.AuthorName,
		"GIT_COMMITTER_EMAIL="+r.AuthorEmail,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}
