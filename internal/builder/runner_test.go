package builder

import (
	"strings"
	"testing"
)

func TestRunCommand(t *testing.T) {
	if err := runCommand(t.TempDir(), "sh", "-c", "true"); err != nil {
		t.Fatalf("runCommand: %v", err)
	}
}

func TestRunCommandNonzeroExit(t *testing.T) {
	err := runCommand(t.TempDir(), "sh", "-c", "exit 3")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "exited with code 3") {
		t.Errorf("error = %q; want exit code in message", err)
	}
}

func TestRunCommandMissingExecutable(t *testing.T) {
	err := runCommand(t.TempDir(), "definitely-not-a-real-compiler")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q; want a not-found message", err)
	}
}

func TestRunCommandRespectsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := runCommand(dir, "sh", "-c", ": > made-here"); err != nil {
		t.Fatalf("runCommand: %v", err)
	}

	touchProbe := runCommand(dir, "sh", "-c", "test -f made-here")
	if touchProbe != nil {
		t.Errorf("file was not created relative to dir: %v", touchProbe)
	}
}
