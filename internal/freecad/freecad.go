// Package freecad manages the FreeCAD side of the workflow: installing
// the auto-run hook macro and cycling the application process.
package freecad

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotRunning is returned by QuitRunning when no matching process
// exists. It is the one expected failure and callers ignore it.
var ErrNotRunning = errors.New("process not running")

// hookTemplate is the auto-run stub installed into the macro
// directory. FreeCAD executes it on startup; it chains into the
// configured build macro.
const hookTemplate = `# Installed by restorepoint. Do not edit; reinstall with: restorepoint launch
macro_path = {{PATH}}
exec(open(macro_path).read())
`

// HookName is the file name of the installed auto-run macro.
const HookName = "AutoRun.FCMacro"

// InstallAutoRunHook writes the auto-run stub into macroDir, pointing
// it at macroPath. The macro path is substituted into a fixed
// template; any existing hook is overwritten.
func InstallAutoRunHook(macroDir, macroPath string) (string, error) {
	abs, err := filepath.Abs(macroPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve macro path: %w", err)
	}
	if err := os.MkdirAll(macroDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create macro directory: %w", err)
	}

	content := strings.ReplaceAll(hookTemplate, "{{PATH}}", fmt.Sprintf("%q", abs))
	hookPath := filepath.Join(macroDir, HookName)
	if err := os.WriteFile(hookPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write auto-run hook: %w", err)
	}
	return hookPath, nil
}

// QuitRunning terminates any running instance of the named process.
// Returns ErrNotRunning when there is nothing to quit; any other
// failure surfaces.
func QuitRunning(process string) error {
	cmd := exec.Command("pkill", "-x", process)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	// pkill exits 1 when no process matched.
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return ErrNotRunning
	}
	return fmt.Errorf("failed to quit %s: %w", process, err)
}

// Launch starts the application with the macro as its argument and
// does not wait for it to exit.
func Launch(app, macroPath string) error {
	cmd := exec.Command(app, macroPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", app, err)
	}
	// Detach: the GUI outlives this invocation.
	return cmd.Process.Release()
}

// DefaultMacroDir returns the platform's FreeCAD user macro
// directory.
func DefaultMacroDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "FreeCAD", "Macro")
	default:
		return filepath.Join(home, ".local", "share", "FreeCAD", "Macro")
	}
}
