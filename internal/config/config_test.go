package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Order(""), cfg.Log.Order)
	assert.Equal(t, int64(0), cfg.Store.CacheBytes)
}

func TestLoadDecodesOrderAndCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "[log]\norder = \"committer\"\n\n[store]\ncache_bytes = 1048576\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, OrderCommitter, cfg.Log.Order)
	assert.Equal(t, int64(1048576), cfg.Store.CacheBytes)
}
