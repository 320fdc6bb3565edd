package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jsondoc.dev/jsondoc/config"
)

func TestNewLimitsDefaults(t *testing.T) {
	t.Parallel()

	l := config.NewLimits()
	assert.Equal(t, config.DefaultMaxPathLimit, l.MaxPathLimit)
	assert.Equal(t, config.DefaultMaxDocumentSize, l.MaxDocumentSize)
	assert.Equal(t, config.DefaultHashTableMinSize, l.HashTableMinSize)
	require.NoError(t, l.Validate())
}

func TestValidateRejectsNonPositive(t *testing.T) {
	t.Parallel()

	l := config.NewLimits()
	l.MaxPathLimit = 0

	require.Error(t, l.Validate())
}

func TestLoadLimitsFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "limits.yaml")

	require.NoError(t, os.WriteFile(path, []byte("max-path-limit: 16\n"), 0o600))

	l, err := config.LoadLimitsFile(path)
	require.NoError(t, err)

	assert.Equal(t, 16, l.MaxPathLimit)
	assert.Equal(t, config.DefaultMaxDocumentSize, l.MaxDocumentSize)
}

func TestConfigResolveWithoutFileKeepsFlagValues(t *testing.T) {
	t.Parallel()

	c := config.NewConfig()
	c.Limits.MaxPathLimit = 32

	require.NoError(t, c.Resolve())
	assert.Equal(t, 32, c.Limits.MaxPathLimit)
}
