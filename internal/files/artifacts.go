package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "pmocli/internal/errors"
	"pmocli/pkg/contracts/domain"
)

// Artifact describes one report file found in the reports directory.
type Artifact struct {
	Name       string              `json:"name"`
	Path       string              `json:"path"`
	Format     domain.ReportFormat `json:"format"`
	Size       int64               `json:"size"`
	ModifiedAt time.Time           `json:"modified_at"`
}

// Discovery lists report artifacts written by past report runs.
type Discovery struct {
	reportsDir string
}

// NewDiscovery creates a discovery rooted at the reports directory.
func NewDiscovery(reportsDir string) *Discovery {
	return &Discovery{reportsDir: reportsDir}
}

// ListArtifacts returns the report artifacts on disk, newest first. A
// missing reports directory yields an empty listing, not an error.
func (d *Discovery) ListArtifacts() ([]Artifact, error) {
	entries, err := os.ReadDir(d.reportsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("read reports directory", err).
			WithContext("dir", d.reportsDir)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format, ok := formatOf(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			Name:       entry.Name(),
			Path:       filepath.Join(d.reportsDir, entry.Name()),
			Format:     format,
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.SliceStable(artifacts, func(i, j int) bool {
		return artifacts[i].ModifiedAt.After(artifacts[j].ModifiedAt)
	})
	return artifacts, nil
}

// Latest returns the newest artifact of the given format.
func (d *Discovery) Latest(format domain.ReportFormat) (Artifact, bool) {
	artifacts, err := d.ListArtifacts()
	if err != nil {
		return Artifact{}, false
	}
	for _, a := range artifacts {
		if a.Format == format {
			return a, true
		}
	}
	return Artifact{}, false
}

func formatOf(name string) (domain.ReportFormat, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html":
		return domain.ReportFormatHTML, true
	case ".pdf":
		return domain.ReportFormatPDF, true
	case ".xlsx":
		return domain.ReportFormatExcel, true
	default:
		return "", false
	}
}
