package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/parser"
)

// parseResult holds the outcome of parsing one file.
type parseResult struct {
	File         string
	Declarations int
	Err          error
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse Apex source files",
		Long: `Parse one or more Apex source files and report a summary per file.

With --watch, the files are re-parsed whenever they change on disk.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := parseFiles(cmd, args)
			renderParseSummary(cmd, results)

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}

			if watch {
				return watchFiles(cmd, args)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-parse files when they change")
	return cmd
}

// parseFiles parses all files in parallel and returns results in input order.
func parseFiles(cmd *cobra.Command, files []string) []parseResult {
	results := make([]parseResult, len(files))

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			results[i] = parseFile(file)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func parseFile(path string) parseResult {
	result := parseResult{File: path}

	data, err := os.ReadFile(path) //nolint:gosec // paths come from CLI arguments
	if err != nil {
		result.Err = err
		return result
	}

	unit, err := parser.Parse(string(data))
	if err != nil {
		result.Err = err
		return result
	}
	result.Declarations = len(unit.Declarations)
	return result
}

func renderParseSummary(cmd *cobra.Command, results []parseResult) {
	w := cmd.OutOrStdout()
	t := newTable(w)
	t.AppendHeader(table.Row{"File", "Declarations", "Result"})
	for _, r := range results {
		status := "ok"
		decls := fmt.Sprintf("%d", r.Declarations)
		if r.Err != nil {
			status = r.Err.Error()
			decls = "-"
		}
		t.AppendRow(table.Row{r.File, decls, status})
	}
	t.Render()
}

// watchFiles re-parses files as they change until the context is done.
func watchFiles(cmd *cobra.Command, files []string) error {
	logger := config.GetLogger(cmd.Context())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch parent directories; editors often replace files instead of
	// writing them in place.
	watched := make(map[string]bool)
	byDir := make(map[string][]string)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		dir := filepath.Dir(abs)
		byDir[dir] = append(byDir[dir], file)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	logger.Debug("watching for changes", "dirs", dirs)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nWatching for changes (Ctrl+C to stop)...")

	// Debounce timer per file name
	pending := make(map[string]bool)
	var debounce *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			for _, file := range byDir[filepath.Dir(event.Name)] {
				if filepath.Base(file) == filepath.Base(event.Name) {
					pending[file] = true
				}
			}
			if len(pending) > 0 {
				if debounce == nil {
					debounce = time.NewTimer(200 * time.Millisecond)
				} else {
					debounce.Reset(200 * time.Millisecond)
				}
				timerC = debounce.C
			}

		case <-timerC:
			changed := make([]string, 0, len(pending))
			for file := range pending {
				changed = append(changed, file)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			timerC = nil

			results := parseFiles(cmd, changed)
			renderParseSummary(cmd, results)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
