package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Root Command Tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"parse", "soql", "repl", "ddl", "apply", "schema", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommandVersionSubcommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "apexql v")
}

func TestRootCommandSoqlWithFlags(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"soql", "--dialect", "sqlite", "SELECT Id FROM Account LIMIT 1"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), `FROM "account" t0`)
	assert.Contains(t, out.String(), "LIMIT 1")
}
