// Package source acquires the tree of entries to reorganize and provides the
// small set of file primitives the pipeline needs.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"iocccorg/internal/logging"
)

// DefaultRepoURL is the IOCCC winners repository.
const DefaultRepoURL = "https://github.com/ioccc-src/winner.git"

// ErrLocalCloneMissing is returned when an explicit local clone does not exist.
var ErrLocalCloneMissing = errors.New("source: local clone does not exist")

// GitRunner executes git with args in dir (empty dir = current directory).
type GitRunner func(ctx context.Context, dir string, args ...string) error

// RunGit is the default GitRunner.
func RunGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Request describes where the source tree comes from.
type Request struct {
	RepoURL    string
	Branch     string
	WorkDir    string
	LocalClone string
}

// Fetcher clones or refreshes the source repository.
type Fetcher struct {
	Git GitRunner
	log *slog.Logger
}

// NewFetcher returns a Fetcher using git from PATH.
func NewFetcher() *Fetcher {
	return &Fetcher{Git: RunGit}
}

func (f *Fetcher) logger() *slog.Logger {
	if f.log == nil {
		f.log = logging.New("source")
	}
	return f.log
}

// FetchOrReuse returns a readable local directory holding the source tree.
//
// An explicit LocalClone must exist and is returned with symlinks resolved.
// Otherwise the repo is cloned into WorkDir, or refreshed if a clone is
// already there; refresh failures are logged and the existing contents are used.
func (f *Fetcher) FetchOrReuse(ctx context.Context, req Request) (string, error) {
	if req.LocalClone != "" {
		p, err := filepath.Abs(req.LocalClone)
		if err != nil {
			return "", fmt.Errorf("source: resolve local clone: %w", err)
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrLocalCloneMissing, p)
		}
		if r, err := filepath.EvalSymlinks(p); err == nil {
			p = r
		}
		return p, nil
	}

	if req.RepoURL == "" {
		req.RepoURL = DefaultRepoURL
	}
	workDir, err := filepath.Abs(req.WorkDir)
	if err != nil {
		return "", fmt.Errorf("source: resolve workdir: %w", err)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("source: create workdir: %w", err)
	}
	cloneDir := filepath.Join(workDir, RepoName(req.RepoURL))

	if info, err := os.Stat(cloneDir); err == nil && info.IsDir() {
		f.refresh(ctx, cloneDir, req.Branch)
		return cloneDir, nil
	}

	f.logger().Info("cloning source repository", "url", req.RepoURL, "dir", cloneDir)
	if err := f.Git(ctx, "", "clone", req.RepoURL, cloneDir); err != nil {
		return "", fmt.Errorf("source: clone %s: %w", req.RepoURL, err)
	}
	if req.Branch != "" {
		if err := f.Git(ctx, cloneDir, "checkout", req.Branch); err != nil {
			f.logger().Warn("checkout failed", "branch", req.Branch, "error", err)
		}
	}
	return cloneDir, nil
}

func (f *Fetcher) refresh(ctx context.Context, dir, branch string) {
	log := f.logger()
	log.Info("refreshing existing clone", "dir", dir)
	if err := f.Git(ctx, dir, "fetch", "--all"); err != nil {
		log.Warn("git fetch failed, continuing with existing clone", "error", err)
	}
	if branch != "" {
		if err := f.Git(ctx, dir, "checkout", branch); err != nil {
			log.Warn("checkout failed", "branch", branch, "error", err)
		}
	}
	if err := f.Git(ctx, dir, "pull", "--ff-only"); err != nil {
		log.Warn("git pull failed, continuing with existing clone", "error", err)
	}
}

// RepoName derives the clone directory name from a repository locator:
// the last path element without a trailing ".git".
func RepoName(repoURL string) string {
	s := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if i := strings.LastIndexAny(s, "/:"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ".git")
	if s == "" {
		return "repo"
	}
	return s
}
