// Package git locates the repository enclosing an Expo project so that
// unitylink can run from any subdirectory.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository encloses the directory.
var ErrNotRepository = errors.New("not inside a git repository")

// Opener abstracts the method of opening a git repository
// This allows for dependency injection in tests
type Opener interface {
	// Open opens the repository containing path, searching parent directories
	Open(path string) (Repository, error)
}

// Repository abstracts go-git repository operations for testing
type Repository interface {
	// Root returns the absolute path of the worktree root
	Root() (string, error)
}

// DefaultOpener implements Opener using go-git's PlainOpenWithOptions
type DefaultOpener struct{}

// Open opens the repository containing path using go-git
func (d *DefaultOpener) Open(path string) (Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return &goGitRepository{repo: repo}, nil
}

// goGitRepository wraps go-git's Repository to implement our Repository interface
type goGitRepository struct {
	repo *git.Repository
}

// Root returns the worktree root; bare repositories have none.
func (r *goGitRepository) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// FindRoot returns the worktree root of the repository enclosing dir.
func FindRoot(opener Opener, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	repo, err := opener.Open(abs)
	if err != nil {
		return "", err
	}
	root, err := repo.Root()
	if err != nil {
		return "", fmt.Errorf("finding repository root for %s: %w", abs, err)
	}
	return root, nil
}
