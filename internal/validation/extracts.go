package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pmocli/internal/dataset"
)

// MaxExtractSize caps a single CSV extract. Anything beyond this is almost
// certainly a mis-pointed directory, not a portfolio extract.
const MaxExtractSize = 256 << 20

// ExtractValidator performs fail-fast checks on the extract directory before
// a load. The loader itself degrades gracefully; these checks exist so the
// CLIs can refuse an obviously wrong -data argument with a clear message.
type ExtractValidator struct {
	logger *slog.Logger
}

// NewExtractValidator creates an extract validator.
func NewExtractValidator(logger *slog.Logger) *ExtractValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractValidator{logger: logger.With(slog.String("component", "extract_validator"))}
}

// ValidateDataDir checks the extract directory exists, is a directory, and
// contains at least one of the registered extract files.
func (v *ExtractValidator) ValidateDataDir(dir string, specs []dataset.TableSpec) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", dir)
	}

	found := 0
	for _, spec := range specs {
		path := filepath.Join(dir, spec.File)
		if err := v.ValidateExtract(path); err != nil {
			v.logger.Debug("extract check failed",
				slog.String("file", spec.File),
				slog.String("error", err.Error()))
			continue
		}
		found++
	}
	if found == 0 {
		return fmt.Errorf("data directory %s contains none of the %d registered extracts", dir, len(specs))
	}

	v.logger.Debug("data directory validated",
		slog.String("dir", dir),
		slog.Int("extracts_found", found))
	return nil
}

// ValidateExtract checks a single extract file: present, a regular file,
// .csv extension, within the size cap, and readable.
func (v *ExtractValidator) ValidateExtract(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("extract %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("extract %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return fmt.Errorf("extract %s is not a .csv file", path)
	}
	if info.Size() > MaxExtractSize {
		return fmt.Errorf("extract %s exceeds the %d byte cap", path, int64(MaxExtractSize))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("extract %s not readable: %w", path, err)
	}
	f.Close()
	return nil
}
