package exporter

import (
	"fmt"

	"pmocli/internal/dataset"
)

// dateFormat is the cell layout for exported dates.
const dateFormat = "2006-01-02"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// csvCell renders one typed cell for CSV output. Absent cells export empty.
func csvCell(v dataset.Value) string {
	switch v.Kind {
	case dataset.KindNumber:
		return formatFloat(v.Num)
	case dataset.KindTime:
		return v.Time.Format(dateFormat)
	case dataset.KindString:
		return v.Str
	default:
		return ""
	}
}

// cellValue renders one typed cell for workbook output. Numbers stay numeric
// so spreadsheet formulas keep working; dates export as ISO strings.
func cellValue(v dataset.Value) interface{} {
	switch v.Kind {
	case dataset.KindNumber:
		return v.Num
	case dataset.KindTime:
		return v.Time.Format(dateFormat)
	case dataset.KindString:
		return v.Str
	default:
		return ""
	}
}
