package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Registry Tests ----------

func TestList(t *testing.T) {
	names := List()
	assert.Contains(t, names, "postgres")
	assert.Contains(t, names, "sqlite")
	assert.IsNonDecreasing(t, names)
}

func TestNewFromConfig(t *testing.T) {
	a, err := New(Config{Type: "sqlite", Database: ":memory:"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", a.DialectName())
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(Config{Type: "duckdb"}, nil)
	require.Error(t, err)

	var unknown *UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "duckdb", unknown.Type)
	assert.Contains(t, unknown.Available, "postgres")
}

func TestNewMissingType(t *testing.T) {
	_, err := New(Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adapter type not specified")
}

func TestRegisterCustom(t *testing.T) {
	Register("custom", func(logger *slog.Logger) Adapter {
		return NewSQLiteAdapter(logger)
	})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(registry, "custom")
		registryMu.Unlock()
	})

	assert.True(t, IsRegistered("custom"))
	_, ok := Get("custom")
	assert.True(t, ok)
}
