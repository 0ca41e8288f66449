package validation

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/dataset"
)

func newValidator() *ExtractValidator {
	return NewExtractValidator(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestValidateDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projects.csv"),
		[]byte("project_id,project_name\nPRJ001,Tower Fitout\n"), 0644))

	v := newValidator()
	assert.NoError(t, v.ValidateDataDir(dir, dataset.Registry()))
}

func TestValidateDataDirMissing(t *testing.T) {
	v := newValidator()
	assert.Error(t, v.ValidateDataDir(filepath.Join(t.TempDir(), "nope"), dataset.Registry()))
}

func TestValidateDataDirNoExtracts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644))

	v := newValidator()
	err := v.ValidateDataDir(dir, dataset.Registry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the")
}

func TestValidateDataDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	v := newValidator()
	err := v.ValidateDataDir(path, dataset.Registry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidateExtract(t *testing.T) {
	dir := t.TempDir()
	v := newValidator()

	csv := filepath.Join(dir, "tasks.csv")
	require.NoError(t, os.WriteFile(csv, []byte("task_id\nT001\n"), 0644))
	assert.NoError(t, v.ValidateExtract(csv))

	txt := filepath.Join(dir, "tasks.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	assert.Error(t, v.ValidateExtract(txt))

	assert.Error(t, v.ValidateExtract(filepath.Join(dir, "absent.csv")))
	assert.Error(t, v.ValidateExtract(dir))
}
