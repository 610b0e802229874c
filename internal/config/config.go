package config

import (
	"github.com/spf13/viper"
)

// GetRemote returns the remote name used for push and fetch.
func GetRemote() string {
	return viper.GetString("remote.name")
}

// GetPushDefault reports whether save pushes without the -p flag.
func GetPushDefault() bool {
	return viper.GetBool("push.default")
}

// GetWatchSchedule returns the default schedule for watch mode.
func GetWatchSchedule() string {
	return viper.GetString("watch.schedule")
}

// GetWatchMessage returns the default message for watch-created
// restore points.
func GetWatchMessage() string {
	return viper.GetString("watch.message")
}

// GetFreeCADApp returns the FreeCAD executable path or name.
func GetFreeCADApp() string {
	return viper.GetString("freecad.app")
}

// GetFreeCADProcess returns the process name used when quitting a
// running FreeCAD instance.
func GetFreeCADProcess() string {
	return viper.GetString("freecad.process")
}

// GetFreeCADMacroDir returns the directory the auto-run hook is
// installed into.
func GetFreeCADMacroDir() string {
	return viper.GetString("freecad.macro_dir")
}
