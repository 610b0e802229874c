package cmd

import (
	"fmt"
	"os"

	"github.com/ruddercad/restorepoint/internal/config"
	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/models"
	"github.com/spf13/cobra"
)

var (
	restoreBranch string
	restoreHard   bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore [<tag>]",
	Short: "Restore the working tree from a restore point",
	Long: `Materialize a restore point's state.

By default a new branch is created at the tag's commit and checked out,
leaving the current branch untouched. The branch is named after the tag
with the restore/ prefix replaced by backup/, unless --branch overrides
it, and is pushed to the remote with upstream tracking.

With --hard the current branch and working tree are reset to the tag's
commit instead. This discards local commits and uncommitted changes
beyond that point irrecoverably.

Without a tag argument, the available restore points are listed.

Examples:
  restorepoint restore restore/20250101-100000
  restorepoint restore restore/20250101-100000 --branch fix-attempt
  restorepoint restore restore/20250101-100000 --hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().StringVar(&restoreBranch, "branch", "", "Branch name for the non-destructive restore")
	restoreCmd.Flags().BoolVar(&restoreHard, "hard", false, "Hard-reset the current branch to the restore point (destructive)")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if restoreHard && restoreBranch != "" {
		return errs.Usage("--hard and --branch are mutually exclusive")
	}

	repo, err := git.Open(".")
	if err != nil {
		return errs.Environment("not a git repository")
	}

	if len(args) == 0 {
		fmt.Println("Usage: restorepoint restore <tag> [--branch <name>] [--hard]")
		fmt.Println()
		listLocalRestorePoints(repo)
		return errs.Usage("no restore point specified")
	}

	tag := args[0]
	remote := config.GetRemote()

	// Refresh remote tags so a point created elsewhere is found.
	// Failure (no remote, offline) must not block local restores.
	if err := repo.FetchTags(remote); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not refresh tags from %s: %v\n", remote, err)
	}

	if !repo.TagExists(tag) {
		listLocalRestorePoints(repo)
		return &errs.NotFoundError{Ref: tag}
	}

	if restoreHard {
		return restoreHardReset(repo, tag)
	}
	return restoreToBranch(repo, tag, remote)
}

// restoreToBranch materializes the tag on a new branch, leaving the
// current branch as it was.
func restoreToBranch(repo *git.Repo, tag, remote string) error {
	branch := restoreBranch
	if branch == "" {
		branch = models.BackupBranch(tag)
	}

	if repo.BranchExists(branch) {
		return errs.Usage("branch %s already exists (pick another with --branch)", branch)
	}

	fmt.Printf("Restoring %s to branch %s\n", tag, branch)

	if err := repo.CreateBranchAt(branch, tag); err != nil {
		return errs.Tool("create branch", err)
	}
	if err := repo.Checkout(branch); err != nil {
		return errs.Tool("checkout branch", err)
	}

	fmt.Printf("✓ Checked out %s at %s\n", branch, tag)

	if err := repo.PushUpstream(remote, branch); err != nil {
		return errs.Tool("push branch", err)
	}
	fmt.Printf("✓ Pushed %s to %s with upstream tracking\n", branch, remote)

	return nil
}

// restoreHardReset moves the current branch and working tree to the
// tag's commit, discarding everything beyond it.
func restoreHardReset(repo *git.Repo, tag string) error {
	branch, err := repo.CurrentBranch()
	if err != nil {
		return errs.Tool("get current branch", err)
	}

	fmt.Printf("Hard-resetting %s to %s (discarding local changes)\n", branch, tag)

	if err := repo.ResetHard(tag); err != nil {
		return errs.Tool("hard reset", err)
	}

	fmt.Printf("✓ %s now at %s\n", branch, tag)
	return nil
}

func listLocalRestorePoints(repo *git.Repo) {
	points, err := repo.ListRestorePoints()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to list restore points: %v\n", err)
		return
	}
	printRestorePoints(points)
}
