package cmd

import (
	"fmt"

	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/models"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <tag>",
	Short: "Show details for a restore point",
	Long: `Display the creation time, target commit, and annotation of a
restore point.

Example:
  restorepoint show restore/20250101-100000`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	repo, err := git.Open(".")
	if err != nil {
		return errs.Environment("not a git repository")
	}

	tag := args[0]
	if !repo.TagExists(tag) {
		return &errs.NotFoundError{Ref: tag}
	}

	created, err := models.ParseTagName(tag)
	if err != nil {
		return errs.Usage("%v", err)
	}

	commit, err := repo.TagTarget(tag)
	if err != nil {
		return errs.Tool("resolve tag", err)
	}

	fmt.Printf("Restore point: %s\n\n", tag)
	fmt.Printf("Created:       %s\n", created.Format("2006-01-02 15:04:05"))
	fmt.Printf("Commit:        %s\n", commit)
	fmt.Printf("Backup branch: %s\n", models.BackupBranch(tag))

	points, err := repo.ListRestorePoints()
	if err == nil {
		for _, p := range points {
			if p.Name == tag && p.Subject != "" {
				fmt.Printf("Annotation:    %s\n", p.Subject)
				break
			}
		}
	}

	return nil
}
