// Package formatter turns a harness run result into human- or
// machine-readable text.
package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/turtlekit/logo-harness/internal/types"
	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for formatting run results
type Formatter interface {
	Format(data types.Result) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypePlain formats each invocation as the classic three-line triple
	TypePlain Type = "plain"
	// TypeJSON formats data as JSON
	TypeJSON Type = "json"
	// TypeYAML formats data as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats data as a table
	TypeTable Type = "table"
)

// Options holds configuration for formatters
type Options struct {
	// IncludeMetadata includes the run metadata section in the output
	IncludeMetadata bool
}

// DefaultOptions returns the default formatter options
func DefaultOptions() *Options {
	return &Options{
		IncludeMetadata: true,
	}
}

// ParseType converts a string into a formatter Type
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypePlain:
		return TypePlain, nil
	case TypeJSON:
		return TypeJSON, nil
	case TypeYAML:
		return TypeYAML, nil
	case TypeTable:
		return TypeTable, nil
	default:
		return "", fmt.Errorf("unknown formatter type: %s", s)
	}
}

// NewFormatter creates a formatter of the given type
func NewFormatter(t Type, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	switch t {
	case TypePlain:
		return &Plain{}, nil
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", t)
	}
}

// Plain implements the classic line-oriented report: one
// stdout/stderr/exit-code triple per invocation, raster first
type Plain struct{}

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Format formats each completed invocation as its three-line triple
func (p *Plain) Format(data types.Result) (string, error) {
	var b strings.Builder
	for _, res := range data.Invocations() {
		fmt.Fprintf(&b, "[%s -> %s]\n", res.Invocation.Format, res.Invocation.OutputPath)
		fmt.Fprintf(&b, "Output: %s\n", strings.TrimRight(res.Stdout, "\n"))
		fmt.Fprintf(&b, "Error (if any): %s\n", strings.TrimRight(res.Stderr, "\n"))
		fmt.Fprintf(&b, "Exit Code: %d\n", res.ExitCode)
	}
	return b.String(), nil
}

// Format formats data as JSON
func (j *JSON) Format(data types.Result) (string, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats data as YAML
func (y *YAML) Format(data types.Result) (string, error) {
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}
