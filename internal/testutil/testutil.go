package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TempGitRepo creates a temporary git repository for testing
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo creates a new temporary git repository with one
// initial commit on branch main
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "restorepoint-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	repo := &TempGitRepo{Path: tmpDir, T: t}

	repo.git("init", "-b", "main")

	// Configure git user (required for commits and annotated tags)
	repo.git("config", "user.name", "Test User")
	repo.git("config", "user.email", "test@example.com")

	repo.CreateFile("README.md", "# Test Repository\n")
	repo.git("add", ".")
	repo.git("commit", "-m", "Initial commit")

	return repo
}

// Cleanup removes the temporary git repository
func (r *TempGitRepo) Cleanup() {
	r.T.Helper()
	if err := os.RemoveAll(r.Path); err != nil {
		r.T.Errorf("failed to cleanup temp repo: %v", err)
	}
}

// git runs a git command in the repository and fails the test on error
func (r *TempGitRepo) git(args ...string) string {
	r.T.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	output, err := cmd.CombinedOutput()
	if err != nil {
		r.T.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
	return strings.TrimSpace(string(output))
}

// CreateFile creates a file in the repository
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// Commit stages and commits all changes
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.git("add", "-A")
	r.git("commit", "-m", message)
}

// AddRemote creates a bare repository and registers it as origin.
// Returns the bare repository path for remote-side assertions.
func (r *TempGitRepo) AddRemote() string {
	r.T.Helper()

	bareDir, err := os.MkdirTemp("", "restorepoint-remote-*")
	if err != nil {
		r.T.Fatalf("failed to create remote dir: %v", err)
	}
	r.T.Cleanup(func() { os.RemoveAll(bareDir) })

	cmd := exec.Command("git", "init", "--bare", bareDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("failed to init bare repo: %v\n%s", err, output)
	}

	r.git("remote", "add", "origin", bareDir)
	return bareDir
}

// CurrentBranch returns the checked-out branch name
func (r *TempGitRepo) CurrentBranch() string {
	r.T.Helper()
	return r.git("rev-parse", "--abbrev-ref", "HEAD")
}

// Head returns the commit hash of HEAD
func (r *TempGitRepo) Head() string {
	r.T.Helper()
	return r.git("rev-parse", "HEAD")
}

// CommitCount returns the number of commits reachable from HEAD
func (r *TempGitRepo) CommitCount() string {
	r.T.Helper()
	return r.git("rev-list", "--count", "HEAD")
}

// BranchExists checks if a local branch exists
func (r *TempGitRepo) BranchExists(branch string) bool {
	r.T.Helper()
	cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
	cmd.Dir = r.Path
	return cmd.Run() == nil
}

// TagExists checks if a tag exists
func (r *TempGitRepo) TagExists(tag string) bool {
	r.T.Helper()
	cmd := exec.Command("git", "rev-parse", "--verify", "refs/tags/"+tag)
	cmd.Dir = r.Path
	return cmd.Run() == nil
}

// Tags returns all tags in the repository
func (r *TempGitRepo) Tags() []string {
	r.T.Helper()
	out := r.git("tag", "--list")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// RestoreTags returns all tags in the restore namespace
func (r *TempGitRepo) RestoreTags() []string {
	r.T.Helper()
	var tags []string
	for _, tag := range r.Tags() {
		if strings.HasPrefix(tag, "restore/") {
			tags = append(tags, tag)
		}
	}
	return tags
}

// TagTarget resolves a tag to its target commit
func (r *TempGitRepo) TagTarget(tag string) string {
	r.T.Helper()
	return r.git("rev-parse", tag+"^{commit}")
}

// TagSubject returns the annotation subject of an annotated tag
func (r *TempGitRepo) TagSubject(tag string) string {
	r.T.Helper()
	return r.git("tag", "-l", "--format=%(subject)", tag)
}

// LastCommitMessage returns the subject of the HEAD commit
func (r *TempGitRepo) LastCommitMessage() string {
	r.T.Helper()
	return r.git("log", "-1", "--pretty=%s")
}

// CreateTag creates an annotated tag at HEAD
func (r *TempGitRepo) CreateTag(tag, message string) {
	r.T.Helper()
	r.git("tag", "-a", tag, "-m", message)
}

// CreateTagAt creates an annotated tag at HEAD with a fixed tagger
// date, so creation-order sorting is deterministic in tests.
func (r *TempGitRepo) CreateTagAt(tag, message, date string) {
	r.T.Helper()

	cmd := exec.Command("git", "tag", "-a", tag, "-m", message)
	cmd.Dir = r.Path
	cmd.Env = append(os.Environ(), "GIT_COMMITTER_DATE="+date)
	if output, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("git tag failed: %v\n%s", err, output)
	}
}

// HasUncommittedChanges reports whether the working tree is dirty
func (r *TempGitRepo) HasUncommittedChanges() bool {
	r.T.Helper()
	return r.git("status", "--porcelain") != ""
}

// RemoteHasRef checks whether a ref exists in a bare remote
func RemoteHasRef(t *testing.T, bareDir, ref string) bool {
	t.Helper()
	cmd := exec.Command("git", "rev-parse", "--verify", ref)
	cmd.Dir = bareDir
	return cmd.Run() == nil
}
