package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/pkg/contracts/domain"
)

func TestListArtifacts(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, age time.Duration) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
		mt := time.Now().Add(-age)
		require.NoError(t, os.Chtimes(path, mt, mt))
	}
	write("portfolio_report_2025-07-01_090000.html", 48*time.Hour)
	write("portfolio_report_2025-07-02_090000.html", 24*time.Hour)
	write("portfolio_report_2025-07-02_090000.xlsx", 24*time.Hour)
	write("notes.txt", time.Hour) // not an artifact

	d := NewDiscovery(dir)
	artifacts, err := d.ListArtifacts()
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	// Newest first, and the stray text file stays out.
	assert.Equal(t, domain.ReportFormatHTML, artifacts[0].Format)
	for _, a := range artifacts {
		assert.NotEqual(t, "notes.txt", a.Name)
		assert.Greater(t, a.Size, int64(0))
	}
}

func TestListArtifactsMissingDir(t *testing.T) {
	d := NewDiscovery(filepath.Join(t.TempDir(), "never-created"))
	artifacts, err := d.ListArtifacts()
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "portfolio_report_2025-06-01_090000.html")
	require.NoError(t, os.WriteFile(old, []byte("old"), 0644))
	mt := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, mt, mt))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portfolio_report_2025-07-01_090000.html"), []byte("new"), 0644))

	d := NewDiscovery(dir)
	latest, ok := d.Latest(domain.ReportFormatHTML)
	require.True(t, ok)
	assert.Equal(t, "portfolio_report_2025-07-01_090000.html", latest.Name)

	_, ok = d.Latest(domain.ReportFormatPDF)
	assert.False(t, ok)
}
