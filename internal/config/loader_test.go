package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apexql.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ---------- Loading Tests ----------

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""), nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, "parameterized", cfg.BindMode)
	assert.False(t, cfg.FilterDeleted)
	assert.Equal(t, 5, cfg.MaxDepth)
	assert.Empty(t, cfg.SchemaFile)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
dialect: sqlite
bind_mode: placeholder
filter_deleted: true
max_depth: 3
schema_file: objects.yaml
target:
  type: sqlite
  database: crm.db
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, "placeholder", cfg.BindMode)
	assert.True(t, cfg.FilterDeleted)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "objects.yaml", cfg.SchemaFile)
	require.NotNil(t, cfg.Target)
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, "crm.db", cfg.Target.Database)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\n")
	t.Setenv("APEXQL_DIALECT", "sqlite")
	t.Setenv("APEXQL_MAX_DEPTH", "2")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, 2, cfg.MaxDepth)
}

func TestFlagsOverrideEverything(t *testing.T) {
	path := writeConfig(t, "dialect: postgres\nfilter_deleted: false\n")
	t.Setenv("APEXQL_DIALECT", "postgres")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "postgres", "")
	flags.Bool("filter-deleted", false, "")
	flags.String("schema", "", "")
	require.NoError(t, flags.Parse([]string{
		"--dialect", "sqlite", "--filter-deleted", "--schema", "custom.yaml",
	}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.True(t, cfg.FilterDeleted)
	assert.Equal(t, "custom.yaml", cfg.SchemaFile)
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "dialect: sqlite\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "postgres", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Dialect)
}

// ---------- Target Tests ----------

func TestTargetDefaultsFromDialect(t *testing.T) {
	cfg, err := Load(writeConfig(t, "dialect: postgres\n"), nil)
	require.NoError(t, err)

	require.NotNil(t, cfg.Target)
	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, 5432, cfg.Target.Port)
	assert.Equal(t, "localhost", cfg.Target.Host)
}

func TestTargetEnvExpansion(t *testing.T) {
	t.Setenv("CRM_DB_PASSWORD", "hunter2")
	path := writeConfig(t, `
target:
  type: postgres
  user: sync
  password: ${CRM_DB_PASSWORD}
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Target.Password)
	assert.Equal(t, "sync", cfg.Target.User)
}

func TestTargetValidate(t *testing.T) {
	assert.NoError(t, (&TargetConfig{Type: "postgres"}).Validate())
	assert.NoError(t, (&TargetConfig{Type: "sqlite"}).Validate())
	assert.Error(t, (&TargetConfig{}).Validate())
	assert.Error(t, (&TargetConfig{Type: "oracle"}).Validate())
}
