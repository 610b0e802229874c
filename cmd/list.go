package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/models"
	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listToon bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all restore points",
	Long: `List all restore points, newest first.

Each entry shows the creation date, tag name, short commit id, and the
annotation message.

Examples:
  restorepoint list
  restorepoint list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
}

func runList(cmd *cobra.Command, args []string) error {
	repo, err := git.Open(".")
	if err != nil {
		return errs.Environment("not a git repository")
	}

	points, err := repo.ListRestorePoints()
	if err != nil {
		return errs.Tool("list restore points", err)
	}

	if listJSON {
		output, err := json.MarshalIndent(points, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if listToon {
		output, err := gotoon.Encode(points)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	printRestorePoints(points)
	return nil
}

func printRestorePoints(points []models.RestorePoint) {
	if len(points) == 0 {
		fmt.Println("No restore points found")
		return
	}

	fmt.Printf("Found %d restore point(s):\n\n", len(points))
	for _, p := range points {
		fmt.Printf("  %s  %-26s %s  %s\n",
			p.CreatedAt.Format("2006-01-02 15:04:05"), p.Name, p.Commit, p.Subject)
	}
}
