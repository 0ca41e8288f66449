package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/config"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func newReportService(t *testing.T) (*ReportService, *config.Paths) {
	t.Helper()
	paths := &config.Paths{
		DataDir:    writeFixtureData(t),
		ReportsDir: t.TempDir(),
		LogsDir:    t.TempDir(),
	}
	store := loadedStore(t, paths.DataDir)
	return NewReportService(store, paths, testLogger()), paths
}

func TestGenerateWritesHTML(t *testing.T) {
	svc, paths := newReportService(t)

	result, err := svc.Generate(context.Background(), GenerateOptions{
		Title: "Quarterly Portfolio Review",
		TopN:  5,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Artifacts, 1)

	art := result.Artifacts[0]
	assert.Equal(t, domain.ReportFormatHTML, art.Format)
	assert.True(t, strings.HasPrefix(filepath.Base(art.Path), "portfolio_report_"))
	assert.Greater(t, art.Size, int64(0))

	data, err := os.ReadFile(art.Path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Quarterly Portfolio Review")
	assert.Contains(t, html, "plotly")
	assert.Equal(t, paths.ReportsDir, filepath.Dir(art.Path))
}

func TestGenerateWithXLSX(t *testing.T) {
	svc, _ := newReportService(t)

	result, err := svc.Generate(context.Background(), GenerateOptions{
		Title:       "Portfolio Report",
		TopN:        10,
		IncludeXLSX: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 2)

	var xlsx domain.ReportArtifact
	for _, a := range result.Artifacts {
		if a.Format == domain.ReportFormatExcel {
			xlsx = a
		}
	}
	require.NotEmpty(t, xlsx.Path)
	assert.True(t, strings.HasSuffix(xlsx.Path, ".xlsx"))
	assert.FileExists(t, xlsx.Path)
}

func TestGenerateBeforeLoad(t *testing.T) {
	logger := testLogger()
	store := dataset.NewStore(dataset.NewLoader(t.TempDir(), dataset.Registry(), logger), logger)
	paths := &config.Paths{DataDir: t.TempDir(), ReportsDir: t.TempDir(), LogsDir: t.TempDir()}
	svc := NewReportService(store, paths, logger)

	_, err := svc.Generate(context.Background(), GenerateOptions{})
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestGenerateSurfacesDataWarnings(t *testing.T) {
	paths := &config.Paths{
		DataDir:    writeFixtureData(t, "risks.csv"),
		ReportsDir: t.TempDir(),
		LogsDir:    t.TempDir(),
	}
	store := loadedStore(t, paths.DataDir)
	svc := NewReportService(store, paths, testLogger())

	result, err := svc.Generate(context.Background(), GenerateOptions{TopN: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warnings)
}

func TestRenderHTML(t *testing.T) {
	svc, _ := newReportService(t)

	var buf bytes.Buffer
	require.NoError(t, svc.RenderHTML(context.Background(), &buf, GenerateOptions{Title: "Ad Hoc Review"}))
	assert.Contains(t, buf.String(), "Ad Hoc Review")

	// Nothing lands on disk for the streaming path.
	entries, err := os.ReadDir(svc.paths.ReportsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportWorkbook(t *testing.T) {
	svc, _ := newReportService(t)

	var buf bytes.Buffer
	n, err := svc.ExportWorkbook(context.Background(), &buf)
	require.NoError(t, err)
	assert.Greater(t, n, int64(0))
	// XLSX files are zip archives.
	assert.Equal(t, "PK", buf.String()[:2])
}

func TestExportWorkbookBeforeLoad(t *testing.T) {
	logger := testLogger()
	store := dataset.NewStore(dataset.NewLoader(t.TempDir(), dataset.Registry(), logger), logger)
	paths := &config.Paths{DataDir: t.TempDir(), ReportsDir: t.TempDir(), LogsDir: t.TempDir()}
	svc := NewReportService(store, paths, logger)

	var buf bytes.Buffer
	_, err := svc.ExportWorkbook(context.Background(), &buf)
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}
