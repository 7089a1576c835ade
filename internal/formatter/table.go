package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/turtlekit/logo-harness/internal/types"
)

// Table implements table formatting using go-pretty
type Table struct {
	opts *Options
}

// Format formats data as a table using go-pretty/v6/table
func (t *Table) Format(data types.Result) (string, error) {
	metadataTable, invocationTable := buildTables(data)

	var b strings.Builder
	if t.opts.IncludeMetadata {
		b.WriteString(metadataTable.Render())
		b.WriteString("\n")
	}
	b.WriteString(invocationTable.Render())
	b.WriteString("\n")
	return b.String(), nil
}

// buildTables builds the metadata and invocation tables for the given data
func buildTables(data types.Result) (table.Writer, table.Writer) {
	// Create Metadata table
	metadataTable := table.NewWriter()
	metadataTable.SetOutputMirror(nil)
	metadataTable.SetStyle(table.StyleLight)
	metadataTable.Style().Options.SeparateColumns = true

	// Set title for Metadata table
	metadataTable.SetTitle("RUN METADATA")

	metadataTable.AppendHeader(table.Row{
		"KEY",
		"VALUE",
	})

	metadataTable.AppendRow(table.Row{
		"PREFIX",
		data.Prefix,
	})

	metadataTable.AppendRow(table.Row{
		"FIXTURE",
		data.Fixture,
	})

	metadataTable.AppendRow(table.Row{
		"SOURCE",
		data.Source,
	})

	metadataTable.AppendRow(table.Row{
		"SUCCESS",
		data.Success,
	})

	metadataTable.AppendRow(table.Row{
		"TIMESTAMP",
		time.Unix(data.Timestamp, 0).UTC().Format(time.RFC3339),
	})

	// Create Invocation table
	invocationTable := table.NewWriter()
	invocationTable.SetOutputMirror(nil) // Don't write to stdout directly
	invocationTable.SetStyle(table.StyleLight)
	invocationTable.Style().Options.SeparateColumns = true

	// Set title for Invocation table
	invocationTable.SetTitle("RENDERER INVOCATIONS")

	// Set the headers for Invocation table
	invocationTable.AppendHeader(table.Row{
		"FORMAT",
		"OUTPUT",
		"CANVAS",
		"EXIT CODE",
		"DURATION",
		"STDOUT",
		"STDERR",
	})

	for _, res := range data.Invocations() {
		invocationTable.AppendRow(table.Row{
			strings.ToUpper(string(res.Invocation.Format)),
			res.Invocation.OutputPath,
			fmt.Sprintf("%dx%d", res.Invocation.Width, res.Invocation.Height),
			res.ExitCode,
			fmt.Sprintf("%dms", res.DurationMillis),
			strings.TrimRight(res.Stdout, "\n"),
			strings.TrimRight(res.Stderr, "\n"),
		})
	}

	return metadataTable, invocationTable
}
