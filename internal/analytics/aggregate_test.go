package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/dataset"
)

func frameOf(t *testing.T, cols []string, rows ...[]dataset.Value) *dataset.Frame {
	t.Helper()
	f := dataset.NewFrame("test", cols)
	for _, r := range rows {
		f.AddRow(r...)
	}
	return f
}

func str(s string) dataset.Value  { return dataset.StringValue(s) }
func num(v float64) dataset.Value { return dataset.NumberValue(v) }

func TestGroupSumPartitionsRows(t *testing.T) {
	f := frameOf(t, []string{"g", "v"},
		[]dataset.Value{str("A"), num(10)},
		[]dataset.Value{str("A"), num(5)},
		[]dataset.Value{str("B"), num(7)},
	)

	out := GroupSum(f, "g", "v")

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "A", out.Text(0, "g"))
	assert.Equal(t, 15.0, out.Float(0, "v"))
	assert.Equal(t, "B", out.Text(1, "g"))
	assert.Equal(t, 7.0, out.Float(1, "v"))

	// The group totals must add back up to the column total.
	assert.Equal(t, SumColumn(f, "v"), SumColumn(out, "v"))
}

func TestGroupMeanAndCount(t *testing.T) {
	f := frameOf(t, []string{"dept", "salary"},
		[]dataset.Value{str("Delivery"), num(10000)},
		[]dataset.Value{str("Delivery"), num(20000)},
		[]dataset.Value{str("Finance"), num(9000)},
	)

	mean := GroupMean(f, "dept", "salary")
	require.Equal(t, 2, mean.Len())
	assert.Equal(t, 15000.0, mean.Float(0, "salary"))
	assert.Equal(t, 9000.0, mean.Float(1, "salary"))

	count := GroupCount(f, "dept")
	require.Equal(t, 2, count.Len())
	assert.Equal(t, 2.0, count.Float(0, CountColumn))
	assert.Equal(t, 1.0, count.Float(1, CountColumn))
}

func TestTopNStableOnTies(t *testing.T) {
	f := frameOf(t, []string{"name", "v"},
		[]dataset.Value{str("X"), num(5)},
		[]dataset.Value{str("Y"), num(5)},
		[]dataset.Value{str("Z"), num(3)},
	)

	out := TopN(f, 3, "v", true)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "X", out.Text(0, "name"), "ties keep input order")
	assert.Equal(t, "Y", out.Text(1, "name"))
	assert.Equal(t, "Z", out.Text(2, "name"))
}

func TestTopNHeadSmallerThanN(t *testing.T) {
	f := frameOf(t, []string{"name", "v"},
		[]dataset.Value{str("A"), num(1)},
	)
	out := TopN(f, 10, "v", true)
	assert.Equal(t, 1, out.Len())
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		num      float64
		den      float64
		expected float64
	}{
		{name: "zero over zero degrades to zero", num: 0, den: 0, expected: 0},
		{name: "zero denominator degrades to zero", num: 50, den: 0, expected: 0},
		{name: "quarter reads as 25 percent", num: 50, den: 200, expected: 25.0},
		{name: "over unity exceeds 100 percent", num: 250, den: 200, expected: 125.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Ratio(tt.num, tt.den))
		})
	}
}

func TestVarianceAndUtilization(t *testing.T) {
	budget := []float64{100, 200, 300}
	actual := []float64{50, 250, 0}

	assert.Equal(t, []float64{50, -50, 300}, Variance(budget, actual))
	assert.Equal(t, []float64{50.0, 125.0, 0.0}, UtilizationPct(actual, budget))
}

func TestCountHelpers(t *testing.T) {
	f := frameOf(t, []string{"status"},
		[]dataset.Value{str("Active")},
		[]dataset.Value{str("Active")},
		[]dataset.Value{str("Closed")},
		[]dataset.Value{dataset.AbsentValue},
	)

	assert.Equal(t, 2, CountDistinct(f, "status"))
	assert.Equal(t, 2, CountWhere(f, "status", "Active"))
	assert.Equal(t, []string{"Active", "Closed"}, DistinctValues(f, "status"))
}

func TestMeanColumnEmptyFrameIsZero(t *testing.T) {
	f := dataset.NewFrame("empty", []string{"v"})
	assert.Zero(t, MeanColumn(f, "v"))
}
