package cmd

import (
	"fmt"
	"time"

	"github.com/ruddercad/restorepoint/internal/config"
	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/models"
	"github.com/spf13/cobra"
)

var (
	saveMessage string
	savePush    bool
)

// timeNow is stubbed in tests to force tag name collisions.
var timeNow = time.Now

var saveCmd = &cobra.Command{
	Use:   "save -m <message>",
	Short: "Create a restore point",
	Long: `Stage all changes, commit them if there are any, and tag the result.

The tag is named restore/YYYYMMDD-HHMMSS and carries the message as its
annotation. A clean working tree still gets a tag pointing at HEAD.

Examples:
  restorepoint save -m "before refactor"
  restorepoint save -m "end of day" -p`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)

	saveCmd.Flags().StringVarP(&saveMessage, "message", "m", "", "Restore point message (required)")
	saveCmd.Flags().BoolVarP(&savePush, "push", "p", false, "Push the current branch and the new tag to the remote")
}

func runSave(cmd *cobra.Command, args []string) error {
	if saveMessage == "" {
		return errs.Usage("message is required (use -m <message>)")
	}

	repo, err := git.Open(".")
	if err != nil {
		return errs.Environment("not a git repository")
	}

	// Stage everything, untracked files included, so no pre-existing
	// modification is left behind by the snapshot.
	if err := repo.StageAll(); err != nil {
		return errs.Tool("stage changes", err)
	}

	staged, err := repo.HasStagedChanges()
	if err != nil {
		return errs.Tool("check staged changes", err)
	}

	if staged {
		if err := repo.Commit(models.CommitMessage(saveMessage)); err != nil {
			return errs.Tool("commit changes", err)
		}
		fmt.Printf("Committed working tree changes\n")
	} else {
		fmt.Printf("Working tree clean, tagging HEAD as-is\n")
	}

	tag := models.TagName(timeNow())
	if repo.TagExists(tag) {
		// Same-second double invocation. Never overwrite an existing
		// restore point; the operator can retry in the next second.
		return errs.Tool("create tag", fmt.Errorf("restore point %s already exists, retry in a moment", tag))
	}

	if err := repo.CreateAnnotatedTag(tag, models.TagMessage(saveMessage)); err != nil {
		return errs.Tool("create tag", err)
	}

	fmt.Printf("✓ Created restore point: %s\n", tag)

	if savePush || config.GetPushDefault() {
		remote := config.GetRemote()
		branch, err := repo.CurrentBranch()
		if err != nil {
			return errs.Tool("get current branch", err)
		}

		fmt.Printf("Pushing %s and %s to %s...\n", branch, tag, remote)
		if err := repo.Push(remote, branch, tag); err != nil {
			return errs.Tool("push", err)
		}
		fmt.Printf("✓ Pushed to %s\n", remote)
	}

	return nil
}
