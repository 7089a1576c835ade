package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/turtlekit/logo-harness/internal/config"
)

// setupRunEnv points cfg at a temp fixture dir, a temp output dir, and a
// fake renderer script with the given behavior
func setupRunEnv(t *testing.T, script string) {
	t.Helper()

	loaded, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg = loaded

	fixturesDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(fixturesDir, "01_square.logo"), []byte("repeat 4 [fd 100 rt 90]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	renderer := filepath.Join(t.TempDir(), "fake-renderer.sh")
	if err := os.WriteFile(renderer, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}

	cfg.Fixtures.Dir = fixturesDir
	cfg.Output.Dir = t.TempDir()
	cfg.Renderer.Command = renderer
	cfg.Renderer.Args = nil
}

// captureStdout runs fn with os.Stdout redirected to a pipe
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, _ := os.Pipe()
	old := os.Stdout
	os.Stdout = w
	err := fn()
	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestRunCmd_RunE(t *testing.T) {
	setupRunEnv(t, `
: > "$2"
echo "rendered"
exit 0
`)
	runOutputFormat = "json" // deterministic output
	runDryRun = false
	cmd := runCmd
	cmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return cmd.RunE(cmd, []string{"01"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "01_square.logo") {
		t.Errorf("report missing fixture name:\n%s", out)
	}

	// Both outputs exist after the run
	for _, name := range []string{"output.png", "output.svg"} {
		if _, err := os.Stat(filepath.Join(cfg.Output.Dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRunCmd_RunE_NoMatch(t *testing.T) {
	setupRunEnv(t, `exit 0`)
	runOutputFormat = "plain"
	runDryRun = false
	cmd := runCmd
	cmd.SetContext(context.Background())

	if _, err := captureStdout(t, func() error {
		return cmd.RunE(cmd, []string{"zz"})
	}); err == nil {
		t.Fatal("expected error for unmatched prefix")
	}
}

func TestRunCmd_RunE_RendererFailure(t *testing.T) {
	setupRunEnv(t, `
echo "bad turtle" >&2
exit 2
`)
	runOutputFormat = "plain"
	runDryRun = false
	cmd := runCmd
	cmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return cmd.RunE(cmd, []string{"01"})
	})
	if err == nil {
		t.Fatal("expected error so the process exits non-zero on renderer failure")
	}
	// The report is still printed before the failure is surfaced
	if !strings.Contains(out, "Exit Code: 2") {
		t.Errorf("report missing exit code:\n%s", out)
	}
}

func TestRunCmd_DryRun(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal.log")
	setupRunEnv(t, `echo ran >> `+journal)
	runOutputFormat = "plain"
	runDryRun = true
	defer func() { runDryRun = false }()
	cmd := runCmd
	cmd.SetContext(context.Background())

	out, err := captureStdout(t, func() error {
		return cmd.RunE(cmd, []string{"01"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "01_square.logo") {
		t.Errorf("dry run must print the resolved fixture path, got:\n%s", out)
	}
	if _, err := os.Stat(journal); !os.IsNotExist(err) {
		t.Error("dry run must not invoke the renderer")
	}
}
