package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasLimits(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(2*1024*1024), cfg.Limits.MaxFileBytes)
	assert.Equal(t, 60, cfg.Limits.MaxPDFPages)
	assert.Equal(t, 60, cfg.Limits.ParseTimeout)
}

func TestDefault_CategoryOrderIsStable(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.Categories)
	assert.Equal(t, "Food & Dining", cfg.Categories[0].Name)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spendtrack.yaml")

	cfg := Default()
	cfg.MerchantMappings = []MerchantMapping{{Pattern: `(?i)sq \*`, Name: "Square Payment"}}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Categories, loaded.Categories)
	assert.Equal(t, cfg.MerchantMappings, loaded.MerchantMappings)
	assert.Equal(t, cfg.Limits, loaded.Limits)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
