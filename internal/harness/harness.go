// Package harness drives one acceptance run against the external Logo
// renderer: resolve the fixture, render raster then vector, report both.
package harness

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/turtlekit/logo-harness/internal/config"
	"github.com/turtlekit/logo-harness/internal/fixture"
	"github.com/turtlekit/logo-harness/internal/formatter"
	"github.com/turtlekit/logo-harness/internal/invoker"
	"github.com/turtlekit/logo-harness/internal/logger"
	"github.com/turtlekit/logo-harness/internal/types"
)

// Options holds configuration for the harness
type Options struct {
	// Version is the harness version stamped into the run result
	Version string
	// FixturesDir is the directory searched for fixtures by prefix
	FixturesDir string
	// OutputDir is where the renderer writes its images
	OutputDir string
	// RasterName and VectorName are the output filenames within OutputDir
	RasterName string
	VectorName string
	// Width and Height are the requested canvas size
	Width  int
	Height int
	// OutputFormat selects the report format (plain, table, json, yaml)
	OutputFormat string
	// IncludeMetadata includes the run metadata section in table output
	IncludeMetadata bool
	// Invoker configures how the renderer subprocess is launched
	Invoker *invoker.Options
}

// DefaultOptions returns the default harness options
func DefaultOptions() *Options {
	return &Options{
		Version:         "dev",
		FixturesDir:     "logo_examples",
		OutputDir:       ".",
		RasterName:      "output.png",
		VectorName:      "output.svg",
		Width:           200,
		Height:          200,
		OutputFormat:    string(formatter.TypePlain),
		IncludeMetadata: true,
		Invoker:         invoker.DefaultOptions(),
	}
}

// OptionsFromConfig builds harness options from the application config
func OptionsFromConfig(cfg *config.Config) *Options {
	opts := DefaultOptions()
	opts.FixturesDir = cfg.Fixtures.Dir
	opts.OutputDir = cfg.Output.Dir
	opts.RasterName = cfg.Output.RasterName
	opts.VectorName = cfg.Output.VectorName
	opts.Width = cfg.Canvas.Width
	opts.Height = cfg.Canvas.Height
	opts.Invoker = &invoker.Options{
		Command: cfg.Renderer.Command,
		Args:    cfg.Renderer.Args,
		Timeout: cfg.Renderer.Timeout,
	}
	return opts
}

// ErrInvalidPrefix indicates an empty or missing fixture prefix
var ErrInvalidPrefix = fmt.Errorf("invalid fixture prefix")

// Harness manages a single acceptance run
type Harness struct {
	opts *Options
}

// New creates a new Harness with the given options
func New(opts *Options) *Harness {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Harness{
		opts: opts,
	}
}

// Resolve maps the prefix to the fixture path without invoking the
// renderer. Used by dry runs and by Run itself.
func (h *Harness) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrInvalidPrefix
	}
	name, err := fixture.Resolve(h.opts.FixturesDir, prefix)
	if err != nil {
		return "", err
	}
	return filepath.Join(h.opts.FixturesDir, name), nil
}

// Run executes the full acceptance run for the given prefix: resolve the
// fixture, render the raster output, then the vector output, and format a
// report covering both invocations. Resolution and launch failures return
// an error before or instead of further invocations; a renderer that runs
// and exits non-zero is captured in the result with Success set to false.
func (h *Harness) Run(ctx context.Context, prefix string) (*types.Result, error) {
	source, err := h.Resolve(prefix)
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("prefix", prefix).Str("fixture", source).Msg("fixture resolved")

	inv := invoker.New(h.opts.Invoker)
	raster, vector, err := inv.RenderPair(ctx, source,
		filepath.Join(h.opts.OutputDir, h.opts.RasterName),
		filepath.Join(h.opts.OutputDir, h.opts.VectorName),
		h.opts.Width, h.opts.Height)
	if err != nil {
		return nil, err
	}

	result := &types.Result{
		Version:   h.opts.Version,
		Prefix:    prefix,
		Fixture:   filepath.Base(source),
		Source:    source,
		Success:   raster.Ok() && vector.Ok(),
		Timestamp: time.Now().Unix(),
		Raster:    raster,
		Vector:    vector,
	}

	if !result.Success {
		logger.Warn().
			Int("raster_exit", raster.ExitCode).
			Int("vector_exit", vector.ExitCode).
			Msg("renderer reported failure")
	}

	formatType, err := formatter.ParseType(h.opts.OutputFormat)
	if err != nil {
		return nil, err
	}
	f, err := formatter.NewFormatter(formatType, &formatter.Options{
		IncludeMetadata: h.opts.IncludeMetadata,
	})
	if err != nil {
		return nil, err
	}
	result.OutputFormatted, err = f.Format(*result)
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}

	return result, nil
}
