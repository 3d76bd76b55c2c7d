package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveThemeColors_CreatesFileWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	err := SaveThemeColors(path, map[string]any{"status.success": "#73F59F"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	theme, ok := doc["theme"].(map[string]any)
	require.True(t, ok)
	colors, ok := theme["colors"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "#73F59F", colors["status.success"])
}

func TestSaveThemeColors_PreservesSiblingKeysAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	original := "max_blocks: 500\n# a comment worth keeping\ntheme:\n  preset: nord\n  colors:\n    border: \"#000000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(original), 0o600))

	err := SaveThemeColors(path, map[string]any{"status.success": "#73F59F"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "a comment worth keeping")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Equal(t, 500, doc["max_blocks"])
	theme := doc["theme"].(map[string]any)
	require.Equal(t, "nord", theme["preset"], "sibling key under theme should survive")
	colors := theme["colors"].(map[string]any)
	require.Equal(t, "#73F59F", colors["status.success"])
	_, hadBorder := colors["border"]
	require.False(t, hadBorder, "colors is replaced wholesale, not merged")
}

func TestSaveThemeColors_RejectsNonStringValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	err := SaveThemeColors(path, map[string]any{"status.success": 42})
	require.Error(t, err)
}

func TestWriteDefaultConfig_CreatesParentDirAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	err := WriteDefaultConfig(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "max_blocks")
}
