package testutil

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStubWithOutput(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithOutput(t, dir, "hello", "line one\nline two\n", 0)

	out, err := exec.Command(filepath.Join(dir, "hello")).Output()
	if err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if strings.TrimSpace(string(out)) != "line one\nline two" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWriteStubWithExit(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "fail", 3)

	err := exec.Command(filepath.Join(dir, "fail")).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Fatalf("expected exit code 3, got %d", exitErr.ExitCode())
	}
}
