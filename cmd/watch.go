package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/ruddercad/restorepoint/internal/config"
	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/git"
	"github.com/ruddercad/restorepoint/internal/models"
	"github.com/spf13/cobra"
)

var (
	watchSchedule string
	watchMessage  string
	watchPush     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Create restore points on a schedule",
	Long: `Run in the foreground and create a restore point whenever the
schedule fires and the working tree has changes. A clean tree is
skipped, so unattended sessions do not pile up identical tags.

The schedule accepts standard cron expressions and the @every form.
Stop with Ctrl-C.

Examples:
  restorepoint watch
  restorepoint watch --schedule "@every 10m" -m "milling session"
  restorepoint watch --schedule "*/15 * * * *" -p`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron schedule (default from config, @every 5m)")
	watchCmd.Flags().StringVarP(&watchMessage, "message", "m", "", "Message for auto-created restore points")
	watchCmd.Flags().BoolVarP(&watchPush, "push", "p", false, "Push each restore point to the remote")
}

func runWatch(cmd *cobra.Command, args []string) error {
	schedule := watchSchedule
	if schedule == "" {
		schedule = config.GetWatchSchedule()
	}

	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return errs.Usage("invalid schedule %q: %v", schedule, err)
	}

	repo, err := git.Open(".")
	if err != nil {
		return errs.Environment("not a git repository")
	}

	message := watchMessage
	if message == "" {
		message = config.GetWatchMessage()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for changes (schedule: %s), Ctrl-C to stop\n", schedule)

	c := cron.New()
	c.Schedule(sched, cron.FuncJob(func() {
		if err := watchTick(repo, message); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	fmt.Println("\nStopped watching")
	return nil
}

// watchTick creates one restore point if the tree is dirty. Errors are
// reported but do not stop the watch loop; the next tick retries.
func watchTick(repo *git.Repo, message string) error {
	if err := repo.StageAll(); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	staged, err := repo.HasStagedChanges()
	if err != nil {
		return fmt.Errorf("check staged changes: %w", err)
	}
	if !staged {
		return nil
	}

	if err := repo.Commit(models.CommitMessage(message)); err != nil {
		return fmt.Errorf("commit changes: %w", err)
	}

	tag := models.TagName(timeNow())
	if repo.TagExists(tag) {
		return fmt.Errorf("restore point %s already exists, skipping tick", tag)
	}
	if err := repo.CreateAnnotatedTag(tag, models.TagMessage(message)); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}

	fmt.Printf("✓ Created restore point: %s\n", tag)

	if watchPush || config.GetPushDefault() {
		remote := config.GetRemote()
		branch, err := repo.CurrentBranch()
		if err != nil {
			return fmt.Errorf("get current branch: %w", err)
		}
		if err := repo.Push(remote, branch, tag); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		fmt.Printf("✓ Pushed to %s\n", remote)
	}

	return nil
}
