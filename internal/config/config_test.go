package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoad_YML(t *testing.T) {
	dir := t.TempDir()
	body := "conflictMarker: diff3\nconflictMarkerSize: 9\ndiff3: true\nscriptInfo: theirs\nverbose: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assmerge.yml"), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{
		ConflictMarker:     "diff3",
		ConflictMarkerSize: 9,
		Diff3:              true,
		ScriptInfo:         "theirs",
		Verbose:            true,
	}, cfg)
}

func TestLoad_YAMLExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assmerge.yaml"), []byte("scriptInfo: ours\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ours", cfg.ScriptInfo)
}

func TestLoad_YMLWinsOverYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assmerge.yml"), []byte("conflictMarkerSize: 3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assmerge.yaml"), []byte("conflictMarkerSize: 5\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ConflictMarkerSize)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assmerge.yml"), []byte("conflictMarkerSize: [\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assmerge.yml")
}
