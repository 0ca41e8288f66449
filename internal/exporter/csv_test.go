package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/config"
	"pmocli/internal/dataset"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	return &config.Paths{ReportsDir: t.TempDir()}
}

func TestWriteFrameFormatsTypedCells(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	frame := dataset.NewFrame("expenses", []string{"expense_id", "amount_aed", "date", "note"})
	frame.AddRow(
		dataset.StringValue("X-001"),
		dataset.NumberValue(120),
		dataset.TimeValue(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)),
		dataset.AbsentValue,
	)
	frame.AddRow(
		dataset.StringValue("X-002"),
		dataset.NumberValue(90000.5),
		dataset.AbsentValue,
		dataset.StringValue("consulting retainer"),
	)

	require.NoError(t, writer.WriteFrame("expenses_export.csv", frame))

	raw, err := os.ReadFile(paths.GetReportPath("expenses_export.csv"))
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "UTF-8 BOM for Excel")

	lines := strings.Split(strings.TrimSpace(string(raw[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "expense_id,amount_aed,date,note", lines[0])
	assert.Equal(t, "X-001,120.00,2024-02-10,", lines[1])
	assert.Equal(t, "X-002,90000.50,,consulting retainer", lines[2])
}

func TestWriteCSVAppendSkipsHeaderAndBOM(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	}))
	require.NoError(t, writer.WriteCSV("log.csv", WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	raw, err := os.ReadFile(paths.GetReportPath("log.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw[3:])), "\n")
	assert.Equal(t, []string{"a,b", "1,2", "3,4"}, lines)
}

func TestWriteCSVAbsolutePathBypassesReportsDir(t *testing.T) {
	writer := NewCSVWriter(testPaths(t))

	target := filepath.Join(t.TempDir(), "nested", "out.csv")
	require.NoError(t, writer.WriteCSV(target, WriteOptions{
		Headers: []string{"x"},
		Records: [][]string{{"1"}},
	}))

	_, err := os.Stat(target)
	assert.NoError(t, err, "parent directories are created on demand")
}
