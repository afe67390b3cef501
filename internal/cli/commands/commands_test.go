package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/internal/config"
	"github.com/leapstack-labs/apexql/pkg/convert"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ---------- version Tests ----------

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "apexql v1.2.3")
}

// ---------- soql Tests ----------

func TestSoqlCommand(t *testing.T) {
	out, err := execute(t, NewSoqlCommand(),
		"SELECT Id, Name FROM Account WHERE Name = :acct")
	require.NoError(t, err)

	assert.Contains(t, out, `SELECT t0."id", t0."name"`)
	assert.Contains(t, out, `FROM "account" t0`)
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, ":acct")
}

func TestSoqlCommandStdin(t *testing.T) {
	cmd := NewSoqlCommand()
	cmd.SetIn(strings.NewReader("SELECT Id FROM Contact"))
	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, `FROM "contact" t0`)
}

func TestSoqlCommandParseError(t *testing.T) {
	_, err := execute(t, NewSoqlCommand(), "SELECT FROM")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse query")
}

func TestSoqlCommandEmpty(t *testing.T) {
	cmd := NewSoqlCommand()
	cmd.SetIn(strings.NewReader(""))
	_, err := execute(t, cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no query given")
}

// ---------- ddl Tests ----------

func TestDDLCommand(t *testing.T) {
	out, err := execute(t, NewDDLCommand())
	require.NoError(t, err)
	assert.Contains(t, out, `CREATE TABLE "account"`)
	assert.Contains(t, out, "CREATE INDEX")
}

func TestDDLCommandDrop(t *testing.T) {
	out, err := execute(t, NewDDLCommand(), "--drop")
	require.NoError(t, err)
	assert.Contains(t, out, `DROP TABLE IF EXISTS "account"`)
	assert.NotContains(t, out, "CREATE TABLE")
}

// ---------- schema Tests ----------

func TestSchemaShowCommand(t *testing.T) {
	out, err := execute(t, NewSchemaCommand(), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Account")
	assert.Contains(t, out, "account")
}

func TestSchemaShowObject(t *testing.T) {
	out, err := execute(t, NewSchemaCommand(), "show", "Contact")
	require.NoError(t, err)
	assert.Contains(t, out, "AccountId")
	assert.Contains(t, out, "account_id")
}

func TestSchemaShowUnknownObject(t *testing.T) {
	_, err := execute(t, NewSchemaCommand(), "show", "Widget__x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown object")
}

func TestSchemaInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.yaml")

	out, err := execute(t, NewSchemaCommand(), "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Account")

	// Refuses to overwrite without --force
	_, err = execute(t, NewSchemaCommand(), "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, NewSchemaCommand(), "init", "--output", path, "--force")
	require.NoError(t, err)
}

// ---------- parse Tests ----------

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Greeter.cls")
	source := `public class Greeter {
    public String greet(String name) {
        return 'Hello, ' + name;
    }
}`
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))

	out, err := execute(t, NewParseCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Greeter.cls")
	assert.Contains(t, out, "ok")
}

func TestParseCommandInvalidSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Broken.cls")
	require.NoError(t, os.WriteFile(path, []byte("public class {"), 0o644))

	_, err := execute(t, NewParseCommand(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := execute(t, NewParseCommand(), filepath.Join(t.TempDir(), "nope.cls"))
	require.Error(t, err)
}

// ---------- Helper Tests ----------

func TestConversionConfig(t *testing.T) {
	cfg := &config.Config{Dialect: "sqlite", BindMode: "placeholder", MaxDepth: 3}
	convCfg, err := conversionConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", convCfg.Dialect.Name())
	assert.Equal(t, convert.BindPlaceholder, convCfg.BindMode)
	assert.Equal(t, 3, convCfg.MaxRelationshipDepth)
}

func TestConversionConfigUnknownDialect(t *testing.T) {
	_, err := conversionConfig(&config.Config{Dialect: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestConversionConfigUnknownBindMode(t *testing.T) {
	_, err := conversionConfig(&config.Config{Dialect: "postgres", BindMode: "inline"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown bind mode")
}

func TestSplitStatements(t *testing.T) {
	script := "CREATE TABLE \"a\" (\n    \"id\" TEXT\n);\n\nCREATE INDEX \"i\" ON \"a\" (\"id\");\n"
	statements := splitStatements(script)
	require.Len(t, statements, 2)
	assert.True(t, strings.HasPrefix(statements[0], "CREATE TABLE"))
	assert.True(t, strings.HasPrefix(statements[1], "CREATE INDEX"))
}
