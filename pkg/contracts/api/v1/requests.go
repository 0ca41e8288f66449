// Package api contains API contract definitions for PMO Pulse.
// Version v1 represents the current stable API version.
package api

import "pmocli/pkg/contracts/domain"

// ViewQuery represents the filter query parameters accepted by the view
// endpoints. Each key repeats for multi-select: ?type=Fitout&type=Consultancy.
type ViewQuery struct {
	Types      []string `json:"types" query:"type"`
	Statuses   []string `json:"statuses" query:"status"`
	Priorities []string `json:"priorities" query:"priority"`
}

// FilterSet converts the query contract into the domain filter set.
func (q ViewQuery) FilterSet() domain.FilterSet {
	return domain.FilterSet{
		ProjectTypes:    q.Types,
		ProjectStatuses: q.Statuses,
		TaskPriorities:  q.Priorities,
	}
}

// ReportGenerateRequest asks the server to run the static report generator
// and write the selected renditions to the reports directory.
type ReportGenerateRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	TopN        int    `json:"top_n,omitempty" validate:"omitempty,min=3,max=50"`
	IncludePDF  bool   `json:"include_pdf"`
	IncludeXLSX bool   `json:"include_xlsx"`
}
