package types

// Format identifies the output format requested from the renderer
type Format string

const (
	// FormatRaster requests a PNG raster image
	FormatRaster Format = "raster"
	// FormatVector requests an SVG vector image
	FormatVector Format = "vector"
)

// Invocation describes a single renderer call before it is executed
type Invocation struct {
	// Format is the kind of output requested (raster or vector)
	Format Format `json:"format" yaml:"format"`
	// InputPath is the fixture file handed to the renderer
	InputPath string `json:"input_path" yaml:"input_path"`
	// OutputPath is where the renderer is asked to write its image
	OutputPath string `json:"output_path" yaml:"output_path"`
	// Width and Height are the requested canvas size in pixels
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// InvocationResult captures the observable outcome of one completed
// renderer invocation
type InvocationResult struct {
	// Invocation is the call that produced this result
	Invocation Invocation `json:"invocation" yaml:"invocation"`
	// Stdout is the captured standard output text
	Stdout string `json:"stdout" yaml:"stdout"`
	// Stderr is the captured standard error text
	Stderr string `json:"stderr" yaml:"stderr"`
	// ExitCode is the renderer's process exit status
	ExitCode int `json:"exit_code" yaml:"exit_code"`
	// DurationMillis is the wall-clock run time of the invocation
	DurationMillis int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Ok reports whether the renderer exited cleanly
func (r *InvocationResult) Ok() bool {
	return r.ExitCode == 0
}

// Result represents a unified result type for a full harness run
type Result struct {
	// Basic information
	Version   string `json:"version" yaml:"version"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	Fixture   string `json:"fixture" yaml:"fixture"`
	Source    string `json:"source" yaml:"source"`
	Success   bool   `json:"success" yaml:"success"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`

	// Per-format invocation results; nil until the invocation has run
	Raster *InvocationResult `json:"raster,omitempty" yaml:"raster,omitempty"`
	Vector *InvocationResult `json:"vector,omitempty" yaml:"vector,omitempty"`

	// Formatted output
	OutputFormatted string `json:"output_formatted,omitempty" yaml:"output_formatted,omitempty"`
}

// Invocations returns the completed invocation results in execution order
func (r *Result) Invocations() []*InvocationResult {
	var out []*InvocationResult
	if r.Raster != nil {
		out = append(out, r.Raster)
	}
	if r.Vector != nil {
		out = append(out, r.Vector)
	}
	return out
}
