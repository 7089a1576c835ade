package invoker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/turtlekit/logo-harness/internal/types"
)

// fakeRenderer writes a shell script that mimics the renderer contract:
// it prints its arguments, creates the requested output file, and exits
// with the given status.
func fakeRenderer(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-renderer.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_CapturesStreamsAndExitCode(t *testing.T) {
	renderer := fakeRenderer(t, `
echo "rendering $1 -> $2 at ${3}x${4}"
echo "turtle out of bounds" >&2
: > "$2"
exit 0
`)

	outDir := t.TempDir()
	inv := types.Invocation{
		Format:     types.FormatRaster,
		InputPath:  "logo_examples/01_square.logo",
		OutputPath: filepath.Join(outDir, "output.png"),
		Width:      200,
		Height:     200,
	}

	i := New(&Options{Command: renderer})
	result, err := i.Run(context.Background(), inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "rendering logo_examples/01_square.logo -> " + inv.OutputPath + " at 200x200\n"
	if result.Stdout != want {
		t.Errorf("stdout = %q, want %q", result.Stdout, want)
	}
	if result.Stderr != "turtle out of bounds\n" {
		t.Errorf("stderr = %q, want %q", result.Stderr, "turtle out of bounds\n")
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", result.ExitCode)
	}
	if _, err := os.Stat(inv.OutputPath); err != nil {
		t.Errorf("expected output file to exist: %v", err)
	}
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	renderer := fakeRenderer(t, `
echo "parse error at line 3" >&2
exit 65
`)

	i := New(&Options{Command: renderer})
	result, err := i.Run(context.Background(), types.Invocation{
		Format:     types.FormatVector,
		InputPath:  "broken.logo",
		OutputPath: filepath.Join(t.TempDir(), "output.svg"),
		Width:      200,
		Height:     200,
	})
	if err != nil {
		t.Fatalf("non-zero renderer exit must not fail the invocation: %v", err)
	}
	if result.ExitCode != 65 {
		t.Errorf("exit code = %d, want 65", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "parse error") {
		t.Errorf("stderr = %q, want parse error diagnostic", result.Stderr)
	}
	if result.Ok() {
		t.Error("Ok() = true for failed render")
	}
}

func TestRun_LaunchFailure(t *testing.T) {
	i := New(&Options{Command: filepath.Join(t.TempDir(), "no-such-renderer")})
	_, err := i.Run(context.Background(), types.Invocation{
		InputPath:  "in.logo",
		OutputPath: "out.png",
		Width:      200,
		Height:     200,
	})
	if !errors.Is(err, ErrLaunchFailure) {
		t.Fatalf("expected ErrLaunchFailure, got %v", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	renderer := fakeRenderer(t, `
sleep 5
`)

	i := New(&Options{Command: renderer, Timeout: 100 * time.Millisecond})
	_, err := i.Run(context.Background(), types.Invocation{
		InputPath:  "in.logo",
		OutputPath: filepath.Join(t.TempDir(), "out.png"),
		Width:      200,
		Height:     200,
	})
	if err == nil {
		t.Fatal("expected error when renderer exceeds the timeout")
	}
}

func TestRenderPair_SequentialOrder(t *testing.T) {
	outDir := t.TempDir()
	journal := filepath.Join(outDir, "journal.log")

	// Record each output path as the invocation runs so ordering is observable
	renderer := fakeRenderer(t, `
echo "$2" >> `+journal+`
: > "$2"
exit 0
`)

	i := New(&Options{Command: renderer})
	rasterOut := filepath.Join(outDir, "output.png")
	vectorOut := filepath.Join(outDir, "output.svg")

	raster, vector, err := i.RenderPair(context.Background(), "01_square.logo", rasterOut, vectorOut, 200, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raster.Invocation.Format != types.FormatRaster || vector.Invocation.Format != types.FormatVector {
		t.Errorf("unexpected formats: %s, %s", raster.Invocation.Format, vector.Invocation.Format)
	}

	for _, out := range []string{rasterOut, vectorOut} {
		if _, err := os.Stat(out); err != nil {
			t.Errorf("expected %s to exist: %v", out, err)
		}
	}

	data, err := os.ReadFile(journal)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 journal entries, got %d: %q", len(lines), lines)
	}
	if lines[0] != rasterOut || lines[1] != vectorOut {
		t.Errorf("raster must run before vector, journal: %q", lines)
	}
}

func TestRenderPair_LaunchFailureAbortsPair(t *testing.T) {
	i := New(&Options{Command: filepath.Join(t.TempDir(), "no-such-renderer")})
	raster, vector, err := i.RenderPair(context.Background(), "in.logo", "out.png", "out.svg", 200, 200)
	if err == nil {
		t.Fatal("expected error")
	}
	if raster != nil || vector != nil {
		t.Errorf("expected no results on launch failure, got %v, %v", raster, vector)
	}
}
