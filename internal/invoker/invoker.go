// Package invoker launches the external Logo renderer as a subprocess and
// captures its output streams and exit status.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/turtlekit/logo-harness/internal/logger"
	"github.com/turtlekit/logo-harness/internal/types"
)

// Options holds configuration for the invoker
type Options struct {
	// Command is the executable used to launch the renderer
	Command string
	// Args are prepended before the positional renderer arguments, e.g.
	// ["run", "--"] for a cargo project built and run in one step
	Args []string
	// Timeout bounds a single invocation; zero means no bound, matching the
	// renderer contract of blocking until the process exits
	Timeout time.Duration
}

// DefaultOptions returns the default invoker options
func DefaultOptions() *Options {
	return &Options{
		Command: "cargo",
		Args:    []string{"run", "--"},
	}
}

// ErrLaunchFailure indicates the renderer process could not be started at
// all, as opposed to starting and exiting non-zero
var ErrLaunchFailure = fmt.Errorf("failed to launch renderer")

// Invoker runs renderer invocations
type Invoker struct {
	opts *Options
}

// New creates a new Invoker with the given options
func New(opts *Options) *Invoker {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Invoker{
		opts: opts,
	}
}

// Run executes a single renderer invocation and waits for it to complete.
// The renderer is invoked as:
//
//	<command> <args...> <input> <output> <width> <height>
//
// A non-zero exit status from the renderer is data, not an error: the
// result carries the captured streams and exit code either way. An error is
// returned only when the process cannot be launched or the context ends
// before the renderer exits.
func (i *Invoker) Run(ctx context.Context, inv types.Invocation) (*types.InvocationResult, error) {
	if i.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.opts.Timeout)
		defer cancel()
	}

	args := append([]string{}, i.opts.Args...)
	args = append(args, inv.InputPath, inv.OutputPath, strconv.Itoa(inv.Width), strconv.Itoa(inv.Height))

	cmd := exec.CommandContext(ctx, i.opts.Command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().
		Str("format", string(inv.Format)).
		Str("input", inv.InputPath).
		Str("output", inv.OutputPath).
		Msgf("invoking renderer: %s %v", i.opts.Command, args)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		// A context deadline or cancellation kills the process, which also
		// surfaces as an exit error; report the abort, not the exit status
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("renderer invocation aborted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Binary missing or not executable
			return nil, fmt.Errorf("%w: %v", ErrLaunchFailure, err)
		}
	}

	result := &types.InvocationResult{
		Invocation:     inv,
		Stdout:         stdout.String(),
		Stderr:         stderr.String(),
		ExitCode:       cmd.ProcessState.ExitCode(),
		DurationMillis: elapsed.Milliseconds(),
	}

	logger.Debug().
		Int("exit_code", result.ExitCode).
		Dur("duration", elapsed).
		Msg("renderer invocation finished")

	return result, nil
}

// RenderPair runs the raster invocation followed by the vector invocation
// against the same input. The calls are strictly sequential: the vector
// invocation never starts before the raster invocation has returned. The
// first launch failure aborts the pair.
func (i *Invoker) RenderPair(ctx context.Context, input, rasterOut, vectorOut string, width, height int) (*types.InvocationResult, *types.InvocationResult, error) {
	raster, err := i.Run(ctx, types.Invocation{
		Format:     types.FormatRaster,
		InputPath:  input,
		OutputPath: rasterOut,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("raster invocation: %w", err)
	}

	vector, err := i.Run(ctx, types.Invocation{
		Format:     types.FormatVector,
		InputPath:  input,
		OutputPath: vectorOut,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		return raster, nil, fmt.Errorf("vector invocation: %w", err)
	}

	return raster, vector, nil
}
