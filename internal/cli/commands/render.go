package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/convert"
	"github.com/leapstack-labs/apexql/pkg/dialect"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

// newTable returns a table writer mirroring to w. Box-drawing characters
// are used only when stdout is a terminal.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

// conversionConfig builds a converter config from the CLI config.
func conversionConfig(cfg *config.Config) (convert.Config, error) {
	d, ok := dialect.Get(cfg.Dialect)
	if !ok {
		return convert.Config{}, fmt.Errorf("unknown dialect %q (available: %s)",
			cfg.Dialect, strings.Join(dialect.List(), ", "))
	}

	var mode convert.BindMode
	switch strings.ToLower(cfg.BindMode) {
	case "", "parameterized":
		mode = convert.BindParameterized
	case "placeholder":
		mode = convert.BindPlaceholder
	default:
		return convert.Config{}, fmt.Errorf("unknown bind mode %q (available: parameterized, placeholder)", cfg.BindMode)
	}

	return convert.Config{
		Dialect:              d,
		BindMode:             mode,
		FilterDeleted:        cfg.FilterDeleted,
		MaxRelationshipDepth: cfg.MaxDepth,
	}, nil
}

// loadSchema loads the schema file named in the config, falling back to
// the built-in standard objects.
func loadSchema(cfg *config.Config) (*schema.Schema, error) {
	if cfg.SchemaFile != "" {
		s, err := schema.LoadFile(cfg.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema %s: %w", cfg.SchemaFile, err)
		}
		return s, nil
	}
	return schema.StandardObjects(), nil
}

// renderConversion prints the translated SQL followed by parameter and
// warning tables.
func renderConversion(w io.Writer, result *convert.Result) {
	_, _ = fmt.Fprintln(w, result.SQL)

	if len(result.Parameters) > 0 {
		_, _ = fmt.Fprintln(w)
		t := newTable(w)
		t.AppendHeader(table.Row{"Parameter", "Placeholder", "Bind Variable"})
		for _, p := range result.Parameters {
			t.AppendRow(table.Row{p.Name, p.Placeholder, ":" + p.OriginalName})
		}
		t.Render()
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		t := newTable(w)
		t.AppendHeader(table.Row{"Warning"})
		for _, warning := range result.Warnings {
			t.AppendRow(table.Row{warning.Message})
		}
		t.Render()
	}

	if result.Security != convert.SecurityDefault {
		_, _ = fmt.Fprintf(w, "\nSecurity mode: %s (enforcement is up to the caller)\n", result.Security)
	}
}
