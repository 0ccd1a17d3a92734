package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexG0311/sportzone/internal/config"
	"github.com/AlexG0311/sportzone/internal/printer"
	"github.com/AlexG0311/sportzone/internal/wizard"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevErr, prevColor := printer.Stdout, printer.Stderr, color.NoColor
	printer.Stdout, printer.Stderr, color.NoColor = &buf, &buf, true
	t.Cleanup(func() { printer.Stdout, printer.Stderr, color.NoColor = prevOut, prevErr, prevColor })
	return &buf
}

func TestInitialize(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()

	require.NoError(t, Initialize(dir, false))

	for _, f := range []string{ConfigFile, DraftFile, EnvExample} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	cfg, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg, "template mirrors the built-in defaults")

	draft, err := wizard.LoadDraftFile(filepath.Join(dir, DraftFile))
	require.NoError(t, err)
	assert.Equal(t, "Cancha El Bosque", draft.Name)
	require.Len(t, draft.Images, 1)
	assert.Equal(t, filepath.Join(dir, "venues", "example", "cover.jpg"), draft.Images[0].Path)
	assert.True(t, draft.Images[0].Primary)
}

func TestInitialize_RefusesExisting(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old"), 0644))

	err := Initialize(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Found existing: sportzone.yml")
	assert.Contains(t, err.Error(), "sportzone init --force")

	data, _ := os.ReadFile(filepath.Join(dir, ConfigFile))
	assert.Equal(t, "old", string(data))
}

func TestInitialize_ForceOverwrites(t *testing.T) {
	out := captureOutput(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte("old"), 0644))

	require.NoError(t, Initialize(dir, true))
	assert.Contains(t, out.String(), "Overwriting existing sportzone.yml")

	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mediaescenarios")
}

func TestCheckExisting(t *testing.T) {
	captureOutput(t)

	t.Run("empty directory", func(t *testing.T) {
		assert.NoError(t, CheckExisting(t.TempDir()))
	})

	t.Run("lists every existing file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Initialize(dir, false))

		err := CheckExisting(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "  - venues/example/draft.yml")
		assert.Contains(t, err.Error(), "  - .env.example")
	})
}

func TestPrintSuccess(t *testing.T) {
	out := captureOutput(t)
	PrintSuccess()
	assert.Contains(t, out.String(), "✓ sportzone.yml")
	assert.Contains(t, out.String(), "venue create --from-file venues/example/draft.yml")
}
