// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteStubWithOutput(t, dir, name, "", exitCode)
}

// WriteStubWithOutput writes an executable shell stub that prints output to
// stdout and exits with exitCode.
func WriteStubWithOutput(t *testing.T, dir string, name string, output string, exitCode int) {
	t.Helper()
	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	if output != "" {
		// printf is a shell builtin, so stubs work with a PATH holding only stubs.
		for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
			quoted := "'" + strings.ReplaceAll(line, "'", `'\''`) + "'"
			script.WriteString("printf '%s\\n' " + quoted + "\n")
		}
	}
	script.WriteString(fmt.Sprintf("exit %d\n", exitCode))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script.String()), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}
