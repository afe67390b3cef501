// Package config loads apexql configuration from apexql.yaml, environment
// variables, and CLI flags.
package config

import (
	"fmt"
	"strings"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect       string        `koanf:"dialect"`
	BindMode      string        `koanf:"bind_mode"`
	FilterDeleted bool          `koanf:"filter_deleted"`
	MaxDepth      int           `koanf:"max_depth"`
	SchemaFile    string        `koanf:"schema_file"`
	Target        *TargetConfig `koanf:"target"`
}

// TargetConfig holds database target configuration for the apply command.
type TargetConfig struct {
	Type string `koanf:"type"` // postgres, sqlite

	// File-based databases (SQLite)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Validate checks if the target configuration is usable.
func (t *TargetConfig) Validate() error {
	switch strings.ToLower(t.Type) {
	case "":
		return fmt.Errorf("target type is required")
	case "postgres", "sqlite":
		return nil
	default:
		return fmt.Errorf("unknown target type %q (available: postgres, sqlite)", t.Type)
	}
}
