// Package git wraps the git CLI. All operations run against an
// explicit repository handle so tests can drive temporary repositories
// instead of the ambient working directory.
package git

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ruddercad/restorepoint/internal/models"
)

// Repo is a handle to a git working tree. The zero value is not
// usable; obtain one with Open.
type Repo struct {
	Dir string
}

// Open verifies dir is inside a git working tree and returns a handle.
func Open(dir string) (*Repo, error) {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("not a git repository")
	}
	return &Repo{Dir: dir}, nil
}

func (r *Repo) run(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (r *Repo) output(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	branch, err := r.output("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return branch, nil
}

// Head returns the commit hash of HEAD.
func (r *Repo) Head() (string, error) {
	commit, err := r.output("rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current commit: %w", err)
	}
	return commit, nil
}

// StageAll stages every change in the working tree, including
// untracked files.
func (r *Repo) StageAll() error {
	if err := r.run("add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges() (bool, error) {
	cmd := exec.Command("git", "diff", "--cached", "--quiet")
	cmd.Dir = r.Dir
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}

// Commit records the staged changes with the given message.
func (r *Repo) Commit(message string) error {
	if err := r.run("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// TagExists checks whether a tag is present in the repository.
func (r *Repo) TagExists(tag string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "refs/tags/"+tag)
	cmd.Dir = r.Dir
	return cmd.Run() == nil
}

// CreateAnnotatedTag creates an annotated tag at HEAD.
func (r *Repo) CreateAnnotatedTag(tag, message string) error {
	if err := r.run("tag", "-a", tag, "-m", message); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", tag, err)
	}
	return nil
}

// TagTarget resolves a tag to the commit it points at.
func (r *Repo) TagTarget(tag string) (string, error) {
	commit, err := r.output("rev-parse", tag+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag %s: %w", tag, err)
	}
	return commit, nil
}

// ListRestorePoints enumerates all tags in the restore namespace,
// newest first.
func (r *Repo) ListRestorePoints() ([]models.RestorePoint, error) {
	format := "%(refname:short)%09%(creatordate:iso8601-strict)%09%(*objectname:short)%09%(objectname:short)%09%(subject)"
	out, err := r.output("for-each-ref", "--sort=-creatordate",
		"--format="+format, "refs/tags/"+models.TagPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list restore tags: %w", err)
	}

	var points []models.RestorePoint
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 5)
		if len(fields) != 5 {
			continue
		}
		created, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			continue
		}
		// Annotated tags dereference to their commit; lightweight
		// tags fall back to the ref object itself.
		commit := fields[2]
		if commit == "" {
			commit = fields[3]
		}
		points = append(points, models.RestorePoint{
			Name:      fields[0],
			CreatedAt: created,
			Commit:    commit,
			Subject:   fields[4],
		})
	}
	return points, nil
}

// FetchTags refreshes tags from the remote. Callers treat failures as
// non-fatal: a missing or unreachable remote must not block restoring
// from local tags.
func (r *Repo) FetchTags(remote string) error {
	if err := r.run("fetch", "--tags", remote); err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}
	return nil
}

// Push pushes the given refs (branch names or tag names) to the remote.
func (r *Repo) Push(remote string, refs ...string) error {
	args := append([]string{"push", remote}, refs...)
	if err := r.run(args...); err != nil {
		return fmt.Errorf("failed to push to %s: %w", remote, err)
	}
	return nil
}

// CreateBranchAt creates a branch pointing at the given revision
// without checking it out.
func (r *Repo) CreateBranchAt(branch, rev string) error {
	if err := r.run("branch", branch, rev); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// Checkout switches the working tree to a branch.
func (r *Repo) Checkout(branch string) error {
	if err := r.run("checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

// PushUpstream publishes a branch to the remote with upstream
// tracking established.
func (r *Repo) PushUpstream(remote, branch string) error {
	if err := r.run("push", "-u", remote, branch); err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}

// ResetHard moves the current branch and working tree to the given
// revision, discarding anything beyond it.
func (r *Repo) ResetHard(rev string) error {
	if err := r.run("reset", "--hard", rev); err != nil {
		return fmt.Errorf("failed to reset to %s: %w", rev, err)
	}
	return nil
}

// BranchExists checks if a local branch exists.
func (r *Repo) BranchExists(branch string) bool {
	cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
	cmd.Dir = r.Dir
	return cmd.Run() == nil
}
