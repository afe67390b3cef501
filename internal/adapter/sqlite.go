package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	_ "modernc.org/sqlite" // registers the sqlite database/sql driver
)

func init() {
	Register("sqlite", func(logger *slog.Logger) Adapter {
		return NewSQLiteAdapter(logger)
	})
}

// SQLiteAdapter implements the Adapter interface for SQLite using the
// CGo-free modernc driver.
type SQLiteAdapter struct {
	BaseSQLAdapter
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func NewSQLiteAdapter(logger *slog.Logger) *SQLiteAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteAdapter{
		BaseSQLAdapter: BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

// Connect opens (or creates) the SQLite database file.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	dsn := buildSQLiteDSN(cfg)

	a.Logger.Debug("opening sqlite database", slog.String("path", cfg.Database))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildSQLiteDSN constructs a SQLite connection string. Driver options
// from the config are appended as query parameters.
func buildSQLiteDSN(cfg Config) string {
	path := cfg.Database
	if path == "" {
		path = ":memory:"
	}

	if len(cfg.Options) == 0 {
		return path
	}
	params := url.Values{}
	for k, v := range cfg.Options {
		params.Set(k, v)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

// Ensure SQLiteAdapter implements the Adapter interface
var _ Adapter = (*SQLiteAdapter)(nil)
