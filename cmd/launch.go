package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ruddercad/restorepoint/internal/config"
	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/freecad"
	"github.com/spf13/cobra"
)

var launchNoHook bool

var launchCmd = &cobra.Command{
	Use:   "launch <macro.FCMacro>",
	Short: "Install the FreeCAD auto-run hook and start FreeCAD",
	Long: `Install an auto-run hook pointing at the given macro, quit any
running FreeCAD instance, and relaunch it with the macro as argument.

The FreeCAD executable, process name, and macro directory can be set
in the config file under [freecad].

Example:
  restorepoint launch Macros/FoilBuildFull.py`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)

	launchCmd.Flags().BoolVar(&launchNoHook, "no-hook", false, "Skip installing the auto-run hook")
}

func runLaunch(cmd *cobra.Command, args []string) error {
	macroPath := args[0]
	if _, err := os.Stat(macroPath); err != nil {
		return errs.Usage("macro not found: %s", macroPath)
	}

	if !launchNoHook {
		hookPath, err := freecad.InstallAutoRunHook(config.GetFreeCADMacroDir(), macroPath)
		if err != nil {
			return errs.Tool("install auto-run hook", err)
		}
		fmt.Printf("✓ Installed auto-run hook: %s\n", hookPath)
	}

	process := config.GetFreeCADProcess()
	if err := freecad.QuitRunning(process); err != nil {
		if !errors.Is(err, freecad.ErrNotRunning) {
			return errs.Tool("quit running instance", err)
		}
	} else {
		fmt.Printf("Stopped running %s instance\n", process)
	}

	app := config.GetFreeCADApp()
	if err := freecad.Launch(app, macroPath); err != nil {
		return errs.Tool("launch", err)
	}

	fmt.Printf("✓ Launched %s with %s\n", app, macroPath)
	return nil
}
