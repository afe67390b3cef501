package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/convert"
	"github.com/leapstack-labs/apexql/pkg/dialect"
	"github.com/leapstack-labs/apexql/pkg/parser"
	"github.com/leapstack-labs/apexql/pkg/schema"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SOQL to SQL translation",
		Long:  `Start an interactive loop that translates SOQL queries to SQL as you type them.`,
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg := config.FromContext(cmd.Context())

	s, err := loadSchema(cfg)
	if err != nil {
		return err
	}

	historyFile := ".apexql_history"
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".apexql_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "apexql> ",
		HistoryFile:     historyFile,
		AutoComplete:    newQueryCompleter(s),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ApexQL SOQL REPL (dialect: %s)\n", cfg.Dialect)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleReplCommand(cmd, cfg, s, line); quit {
				break
			}
			continue
		}

		if err := translateQuery(cmd, cfg, s, line); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

func translateQuery(cmd *cobra.Command, cfg *config.Config, s *schema.Schema, source string) error {
	convCfg, err := conversionConfig(cfg)
	if err != nil {
		return err
	}
	query, err := parser.ParseQuery(source)
	if err != nil {
		return err
	}
	result, err := convert.Convert(query, s, convCfg)
	if err != nil {
		return err
	}
	renderConversion(cmd.OutOrStdout(), result)
	return nil
}

// handleReplCommand handles a dot-command. Returns true when the REPL
// should exit.
func handleReplCommand(cmd *cobra.Command, cfg *config.Config, s *schema.Schema, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())

	case ".dialect":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialect: %s\n", cfg.Dialect)
			return false
		}
		name := strings.ToLower(parts[1])
		if _, ok := dialect.Get(name); !ok {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown dialect %q (available: %s)\n",
				name, strings.Join(dialect.List(), ", "))
			return false
		}
		cfg.Dialect = name
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dialect set to %s\n", name)

	case ".objects":
		for _, obj := range s.Objects() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %-24s -> %s\n", obj.Name, obj.TableName)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .dialect [name]   Show or switch the target dialect
  .objects          List objects in the loaded schema
  .clear            Clear the screen
  .quit / .exit     Exit the REPL

Enter a SOQL query to see its SQL translation:
  apexql> SELECT Id, Name FROM Account WHERE CreatedDate = LAST_N_DAYS:30
`
	_, _ = fmt.Fprintln(w, help)
}

// newQueryCompleter creates a readline completer for SOQL keywords and
// schema object names.
func newQueryCompleter(s *schema.Schema) *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("SELECT"),
		readline.PcItem("FROM"),
		readline.PcItem("WHERE"),
		readline.PcItem("GROUP BY"),
		readline.PcItem("ORDER BY"),
		readline.PcItem("LIMIT"),
	}
	for _, obj := range s.Objects() {
		items = append(items, readline.PcItem(obj.Name))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".dialect"),
		readline.PcItem(".objects"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
