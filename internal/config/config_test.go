package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/agglom/internal/config"
)

func TestDefault_Valid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agglom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("linkage: nj\nparallel: 2\nformat: json\n"), 0o600))
	t.Setenv("AGGLOM_PARALLEL", "8")
	t.Setenv("AGGLOM_CLAMP_NEGATIVE", "yes")
	t.Setenv("AGGLOM_CUT", "not-a-number")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "nj", cfg.Linkage, "file overrides default")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 8, cfg.Parallel, "env overrides file")
	assert.True(t, cfg.Clamp)
	assert.Equal(t, 0, cfg.Cut, "bad number keeps previous value")
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("linkage: upgma\nbogus: 1\n"), 0o600))
	_, err = config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Linkage = " UPGMA "
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "upgma", cfg.Linkage)

	cfg.Linkage = "ward"
	cfg.Parallel = 0
	cfg.Format = "xml"
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "linkage must be one of")
	assert.Contains(t, err.Error(), "parallel must be at least 1")
	assert.Contains(t, err.Error(), "format must be one of")
}
