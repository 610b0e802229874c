package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruddercad/restorepoint/internal/errs"
	"github.com/ruddercad/restorepoint/internal/freecad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "restorepoint",
	Short: "Timestamped git restore points for CAD development",
	Long: `restorepoint creates and restores timestamped git checkpoints:
  - save   stages, commits, and tags the working tree as restore/<timestamp>
  - list   shows all restore points, newest first
  - restore checks a restore point out on a backup branch, or hard-resets to it
  - watch  creates restore points on a schedule while you work
  - launch installs the FreeCAD auto-run hook and (re)starts FreeCAD

Restore points are annotated tags; nothing is rewritten or discarded
unless you opt into --hard.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(errs.ExitCode(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/restorepoint/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "restorepoint")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	setConfigDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setConfigDefaults() {
	viper.SetDefault("remote.name", "origin")
	viper.SetDefault("push.default", false)
	viper.SetDefault("watch.schedule", "@every 5m")
	viper.SetDefault("watch.message", "auto checkpoint")
	viper.SetDefault("freecad.app", "freecad")
	viper.SetDefault("freecad.process", "FreeCAD")
	viper.SetDefault("freecad.macro_dir", freecad.DefaultMacroDir())
}
