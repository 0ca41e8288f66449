package domain

// FilterSet carries the dashboard's multi-select filters. An empty slice
// means no filtering on that dimension; values not present in the data match
// nothing rather than erroring.
type FilterSet struct {
	ProjectTypes    []string `json:"project_types,omitempty"`
	ProjectStatuses []string `json:"project_statuses,omitempty"`
	TaskPriorities  []string `json:"task_priorities,omitempty"`
}

// IsZero reports whether no filter is active on any dimension.
func (f FilterSet) IsZero() bool {
	return len(f.ProjectTypes) == 0 && len(f.ProjectStatuses) == 0 && len(f.TaskPriorities) == 0
}

// FilterOptions lists the selectable values for each filter dimension,
// derived from the loaded snapshot.
type FilterOptions struct {
	ProjectTypes    []string `json:"project_types"`
	ProjectStatuses []string `json:"project_statuses"`
	TaskPriorities  []string `json:"task_priorities"`
}
