package view

import (
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

// Context carries one view computation: the immutable snapshot plus the
// request's filter selections. Builders read, never write.
type Context struct {
	Snapshot *dataset.Snapshot
	Filters  domain.FilterSet
}

// Definition describes one registered dashboard view.
type Definition struct {
	Slug        string
	Name        string
	Description string
	// Tables the view needs loaded to be worth opening. A view with missing
	// tables still builds; its sections degrade individually.
	Tables []string
	Build  func(*Context) domain.View
}

// Registry is the ordered catalog of dashboard views. Navigation, the HTTP
// API, and the report generator all enumerate the registry; nothing else
// hard-codes a view list, so adding a view is exactly one Register call.
type Registry struct {
	defs   []Definition
	bySlug map[string]int
}

// NewRegistry returns a registry populated with the standard six views in
// navigation order.
func NewRegistry() *Registry {
	r := &Registry{bySlug: make(map[string]int)}
	r.Register(Definition{
		Slug:        "executive-overview",
		Name:        "Executive Overview",
		Description: "Portfolio-level spend, delivery and workforce position",
		Tables:      []string{dataset.TableProjects, dataset.TableTasks, dataset.TableEmployees},
		Build:       buildExecutiveOverview,
	})
	r.Register(Definition{
		Slug:        "project-analytics",
		Name:        "Project Analytics",
		Description: "Filterable drill-down across the project inventory",
		Tables:      []string{dataset.TableProjects},
		Build:       buildProjectAnalytics,
	})
	r.Register(Definition{
		Slug:        "financial-insights",
		Name:        "Financial Insights",
		Description: "Expenses, purchase orders and budget utilization",
		Tables:      []string{dataset.TableProjects, dataset.TableExpenses, dataset.TablePurchaseOrders},
		Build:       buildFinancialInsights,
	})
	r.Register(Definition{
		Slug:        "resource-management",
		Name:        "Resource Management",
		Description: "Workforce composition and logged effort",
		Tables:      []string{dataset.TableEmployees, dataset.TableTimesheets},
		Build:       buildResourceManagement,
	})
	r.Register(Definition{
		Slug:        "risk-compliance",
		Name:        "Risk & Compliance",
		Description: "Risk register hot spots and milestone discipline",
		Tables:      []string{dataset.TableRisks, dataset.TableMilestones, dataset.TableProjects},
		Build:       buildRiskCompliance,
	})
	r.Register(Definition{
		Slug:        "vendor-analysis",
		Name:        "Vendor Analysis",
		Description: "Supplier base and purchase order flow",
		Tables:      []string{dataset.TableVendors, dataset.TablePurchaseOrders},
		Build:       buildVendorAnalysis,
	})
	return r
}

// Register appends a view definition. Re-registering a slug replaces it.
func (r *Registry) Register(def Definition) {
	if i, ok := r.bySlug[def.Slug]; ok {
		r.defs[i] = def
		return
	}
	r.bySlug[def.Slug] = len(r.defs)
	r.defs = append(r.defs, def)
}

// Definitions returns the views in registration order.
func (r *Registry) Definitions() []Definition {
	return append([]Definition(nil), r.defs...)
}

// Lookup finds a view by slug.
func (r *Registry) Lookup(slug string) (Definition, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Summaries lists every view with its availability against the snapshot.
func (r *Registry) Summaries(snap *dataset.Snapshot) []domain.ViewSummary {
	out := make([]domain.ViewSummary, 0, len(r.defs))
	for _, def := range r.defs {
		missing := snap.Missing(def.Tables...)
		out = append(out, domain.ViewSummary{
			Slug:          def.Slug,
			Name:          def.Name,
			Description:   def.Description,
			Available:     len(missing) == 0,
			MissingTables: missing,
		})
	}
	return out
}

// Build computes a view against the snapshot. Unknown slugs return false;
// known views always build, degrading section by section when inputs are
// missing.
func (r *Registry) Build(snap *dataset.Snapshot, slug string, filters domain.FilterSet) (domain.View, bool) {
	def, ok := r.Lookup(slug)
	if !ok {
		return domain.View{}, false
	}
	ctx := &Context{Snapshot: snap, Filters: filters}
	v := def.Build(ctx)
	v.Slug = def.Slug
	v.Name = def.Name
	return v, true
}
