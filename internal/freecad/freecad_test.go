package freecad

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstallAutoRunHook(t *testing.T) {
	macroDir := t.TempDir()

	macroPath := filepath.Join(t.TempDir(), "FoilBuildFull.py")
	if err := os.WriteFile(macroPath, []byte("print('build')\n"), 0644); err != nil {
		t.Fatalf("failed to create macro: %v", err)
	}

	hookPath, err := InstallAutoRunHook(macroDir, macroPath)
	if err != nil {
		t.Fatalf("install failed: %v", err)
	}

	if filepath.Base(hookPath) != HookName {
		t.Errorf("unexpected hook file name: %s", hookPath)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}

	if !strings.Contains(string(content), macroPath) {
		t.Errorf("hook does not reference the macro path:\n%s", content)
	}
	if strings.Contains(string(content), "{{PATH}}") {
		t.Error("template placeholder was not substituted")
	}
}

func TestInstallAutoRunHookOverwrites(t *testing.T) {
	macroDir := t.TempDir()

	first := filepath.Join(macroDir, "first.py")
	second := filepath.Join(macroDir, "second.py")
	os.WriteFile(first, []byte("1\n"), 0644)
	os.WriteFile(second, []byte("2\n"), 0644)

	if _, err := InstallAutoRunHook(macroDir, first); err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	hookPath, err := InstallAutoRunHook(macroDir, second)
	if err != nil {
		t.Fatalf("second install failed: %v", err)
	}

	content, _ := os.ReadFile(hookPath)
	if strings.Contains(string(content), "first.py") {
		t.Error("hook still references the previous macro")
	}
	if !strings.Contains(string(content), "second.py") {
		t.Error("hook does not reference the new macro")
	}
}

func TestQuitRunningNotRunning(t *testing.T) {
	if _, err := exec.LookPath("pkill"); err != nil {
		t.Skip("pkill not available")
	}

	err := QuitRunning("restorepoint-test-no-such-process")
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning, got %v", err)
	}
}
