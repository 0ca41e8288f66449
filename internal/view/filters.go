package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// Options derives the selectable filter values from the snapshot. Missing
// tables contribute empty option lists.
func Options(snap *dataset.Snapshot) domain.FilterOptions {
	opts := domain.FilterOptions{
		ProjectTypes:    []string{},
		ProjectStatuses: []string{},
		TaskPriorities:  []string{},
	}
	if projects, ok := snap.Frame(dataset.TableProjects); ok {
		opts.ProjectTypes = analytics.DistinctValues(projects, "project_type")
		opts.ProjectStatuses = analytics.DistinctValues(projects, "status")
	}
	if tasks, ok := snap.Frame(dataset.TableTasks); ok {
		opts.TaskPriorities = analytics.DistinctValues(tasks, "priority")
	}
	return opts
}

// projects returns the project frame with the active type and status
// selections applied. Filters recompute on every request; selections that
// match nothing yield an empty frame, never an error.
func (c *Context) projects() (*dataset.Frame, bool) {
	f, ok := c.Snapshot.Frame(dataset.TableProjects)
	if !ok {
		return nil, false
	}
	if len(c.Filters.ProjectTypes) == 0 && len(c.Filters.ProjectStatuses) == 0 {
		return f, true
	}
	return f.Filter(func(row int) bool {
		return matches(f.Text(row, "project_type"), c.Filters.ProjectTypes) &&
			matches(f.Text(row, "status"), c.Filters.ProjectStatuses)
	}), true
}

// tasks returns the task frame with the active priority selection applied.
func (c *Context) tasks() (*dataset.Frame, bool) {
	f, ok := c.Snapshot.Frame(dataset.TableTasks)
	if !ok {
		return nil, false
	}
	if len(c.Filters.TaskPriorities) == 0 {
		return f, true
	}
	return f.Filter(func(row int) bool {
		return matches(f.Text(row, "priority"), c.Filters.TaskPriorities)
	}), true
}

// matches implements multi-select semantics: empty selection accepts all,
// otherwise the value must equal one of the selected options.
func matches(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if value == s {
			return true
		}
	}
	return false
}
