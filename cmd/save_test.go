package cmd

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/testutil"
)

func resetSaveFlags() {
	saveMessage = ""
	savePush = false
	timeNow = time.Now
}

func TestSaveDirtyTree(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	repo.CreateFile("outline.csv", "x,y\n0,0\n1,1\n")

	resetSaveFlags()
	saveMessage = "before refactor"

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tags := repo.RestoreTags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 restore tag, got %d: %v", len(tags), tags)
	}

	if repo.LastCommitMessage() != "Restore point: before refactor" {
		t.Errorf("unexpected commit message: %s", repo.LastCommitMessage())
	}
	if repo.TagSubject(tags[0]) != "Restore: before refactor" {
		t.Errorf("unexpected tag annotation: %s", repo.TagSubject(tags[0]))
	}

	if repo.TagTarget(tags[0]) != repo.Head() {
		t.Error("tag should point at HEAD after save")
	}
	if repo.HasUncommittedChanges() {
		t.Error("working tree should be clean after save")
	}
}

func TestSaveCleanTree(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	before := repo.CommitCount()

	resetSaveFlags()
	saveMessage = "clean checkpoint"

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if repo.CommitCount() != before {
		t.Error("clean tree save should not create a commit")
	}

	tags := repo.RestoreTags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 restore tag, got %d", len(tags))
	}
	if repo.TagTarget(tags[0]) != repo.Head() {
		t.Error("tag should point at HEAD")
	}
}

func TestSaveMissingMessage(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	resetSaveFlags()

	err := runSave(nil, []string{})
	if err == nil {
		t.Fatal("expected error without message")
	}

	var usageErr *errs.UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected UsageError, got %T", err)
	}

	if len(repo.RestoreTags()) != 0 {
		t.Error("no tag should be created on usage error")
	}
}

func TestSaveNotARepo(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "not-a-repo-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	resetSaveFlags()
	saveMessage = "anything"

	saveErr := runSave(nil, []string{})
	if saveErr == nil {
		t.Fatal("expected error outside a repository")
	}

	var envErr *errs.EnvironmentError
	if !errors.As(saveErr, &envErr) {
		t.Errorf("expected EnvironmentError, got %T", saveErr)
	}
}

func TestSaveSameSecondCollision(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	resetSaveFlags()
	defer resetSaveFlags()
	saveMessage = "double tap"
	timeNow = func() time.Time {
		return time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	}

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	err := runSave(nil, []string{})
	if err == nil {
		t.Fatal("expected error for same-second collision")
	}

	var toolErr *errs.ToolError
	if !errors.As(err, &toolErr) {
		t.Errorf("expected ToolError, got %T", err)
	}

	if len(repo.RestoreTags()) != 1 {
		t.Errorf("collision must not overwrite or add tags, got %v", repo.RestoreTags())
	}
}

func TestSavePush(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	bare := repo.AddRemote()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	repo.CreateFile("stock.csv", "r,h\n10,200\n")

	resetSaveFlags()
	saveMessage = "push me"
	savePush = true

	if err := runSave(nil, []string{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tags := repo.RestoreTags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 restore tag, got %d", len(tags))
	}

	if !testutil.RemoteHasRef(t, bare, "refs/heads/main") {
		t.Error("current branch not pushed")
	}
	if !testutil.RemoteHasRef(t, bare, "refs/tags/"+tags[0]) {
		t.Error("restore tag not pushed")
	}
}

func TestSavePushWithoutRemote(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	resetSaveFlags()
	saveMessage = "no remote"
	savePush = true

	err := runSave(nil, []string{})
	if err == nil {
		t.Fatal("expected push failure without a remote")
	}

	var toolErr *errs.ToolError
	if !errors.As(err, &toolErr) {
		t.Errorf("expected ToolError, got %T", err)
	}

	// The tag was created before the push failed; no rollback.
	if len(repo.RestoreTags()) != 1 {
		t.Errorf("expected the tag to remain after failed push, got %v", repo.RestoreTags())
	}
}
