package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/pkg/contracts/domain"
)

func TestOptionsListsDistinctValues(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())

	opts := Options(snap)
	assert.Equal(t, []string{"Fitout", "Infrastructure", "Technology"}, opts.ProjectTypes)
	assert.Equal(t, []string{"Active", "Completed", "On Hold"}, opts.ProjectStatuses)
	assert.Equal(t, []string{"Critical", "High", "Low", "Medium"}, opts.TaskPriorities)
}

func TestOptionsEmptyWhenTablesMissing(t *testing.T) {
	snap := loadSnapshot(t, map[string]string{})

	opts := Options(snap)
	assert.Empty(t, opts.ProjectTypes)
	assert.Empty(t, opts.ProjectStatuses)
	assert.Empty(t, opts.TaskPriorities)
	assert.NotNil(t, opts.ProjectTypes, "missing tables yield empty lists, not null")
}

func TestProjectFiltersApplyAcrossViews(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	r := NewRegistry()
	filters := domain.FilterSet{ProjectTypes: []string{"Infrastructure"}}

	exec, ok := r.Build(snap, "executive-overview", filters)
	require.True(t, ok)
	assert.Equal(t, "AED 8.8M", findMetric(t, exec, "Total Budget").Value)
	active := findMetric(t, exec, "Active Projects")
	assert.Equal(t, "2", active.Value)
	assert.Equal(t, "of 2 projects", active.Hint)

	fin, ok := r.Build(snap, "financial-insights", filters)
	require.True(t, ok)
	assert.Equal(t, "AED 8.8M", findMetric(t, fin, "Combined Budget").Value)
	assert.Equal(t, "AED 830K", findMetric(t, fin, "Total Expenses").Value,
		"expense totals reflect the ledger, not the project selection")
}

func TestStatusFilterNarrowsSelection(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	filters := domain.FilterSet{ProjectStatuses: []string{"On Hold"}}

	v, ok := NewRegistry().Build(snap, "project-analytics", filters)
	require.True(t, ok)

	assert.Equal(t, "1", findMetric(t, v, "Projects Selected").Value)
	assert.Equal(t, "AED 1.2M", findMetric(t, v, "Combined Budget").Value)
	assert.Equal(t, "1", findMetric(t, v, "On Hold").Value)

	require.Len(t, v.Tables, 1)
	require.Len(t, v.Tables[0].Rows, 1)
	assert.Equal(t, "HQ Fitout", v.Tables[0].Rows[0]["project_name"])
}

func TestPriorityFilterNarrowsTasks(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	filters := domain.FilterSet{TaskPriorities: []string{"High"}}

	v, ok := NewRegistry().Build(snap, "executive-overview", filters)
	require.True(t, ok)
	assert.Equal(t, "2", findMetric(t, v, "Total Tasks").Value)
}

func TestFilterMatchingNothingYieldsEmptyView(t *testing.T) {
	snap := loadSnapshot(t, fullFixture())
	filters := domain.FilterSet{ProjectStatuses: []string{"Archived"}}

	v, ok := NewRegistry().Build(snap, "project-analytics", filters)
	require.True(t, ok)

	assert.Equal(t, "0", findMetric(t, v, "Projects Selected").Value)
	assert.Equal(t, "AED 0", findMetric(t, v, "Combined Budget").Value)
	require.Len(t, v.Tables, 1)
	assert.Empty(t, v.Tables[0].Rows)
}

func TestMatchesMultiSelect(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		selected []string
		expected bool
	}{
		{name: "empty selection accepts all", value: "Active", selected: nil, expected: true},
		{name: "value in selection", value: "Active", selected: []string{"Active", "On Hold"}, expected: true},
		{name: "value not in selection", value: "Completed", selected: []string{"Active"}, expected: false},
		{name: "case sensitive", value: "active", selected: []string{"Active"}, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, matches(tt.value, tt.selected))
		})
	}
}
