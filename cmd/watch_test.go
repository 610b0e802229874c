package cmd

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/testutil"
)

func TestWatchInvalidSchedule(t *testing.T) {
	repo := testutil.NewTempGitRepo(t)
	defer repo.Cleanup()

	oldWd, _ := os.Getwd()
	os.Chdir(repo.Path)
	defer os.Chdir(oldWd)

	watchSchedule = "not a schedule"
	defer func() { watchSchedule = "" }()

	err := runWatch(nil, []string{})
	if err == nil {
		t.Fatal("expected error for invalid schedule")
	}

	var usageErr *errs.UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected UsageError, got %T", err)
	}
}

func TestWatchTickDirtyTree(t *testing.T) {
	fixture := testutil.NewTempGitRepo(t)
	defer fixture.Cleanup()

	repo, err := git.Open(fixture.Path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	fixture.CreateFile("work.txt", "in progress\n")

	resetSaveFlags()
	watchPush = false
	timeNow = func() time.Time {
		return time.Date(2025, 7, 7, 14, 0, 0, 0, time.UTC)
	}
	defer resetSaveFlags()

	if err := watchTick(repo, "auto checkpoint"); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	tags := fixture.RestoreTags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 restore tag after dirty tick, got %v", tags)
	}
	if fixture.LastCommitMessage() != "Restore point: auto checkpoint" {
		t.Errorf("unexpected commit message: %s", fixture.LastCommitMessage())
	}
}

func TestWatchTickCleanTreeSkips(t *testing.T) {
	fixture := testutil.NewTempGitRepo(t)
	defer fixture.Cleanup()

	repo, err := git.Open(fixture.Path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	watchPush = false

	if err := watchTick(repo, "auto checkpoint"); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	if len(fixture.RestoreTags()) != 0 {
		t.Error("clean tree tick should not create a restore point")
	}
}
