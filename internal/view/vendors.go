package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func buildVendorAnalysis(c *Context) domain.View {
	var v domain.View

	vendors, haveVendors := c.Snapshot.Frame(dataset.TableVendors)
	pos, havePOs := c.Snapshot.Frame(dataset.TablePurchaseOrders)

	havePOAmounts := havePOs && c.Snapshot.HasColumn(dataset.TablePurchaseOrders, "amount_aed")

	if !haveVendors {
		unavailable(&v, "vendors table missing: vendor KPIs and charts unavailable")
	}
	if !havePOs {
		unavailable(&v, "purchase_orders table missing: PO KPIs and charts unavailable")
	} else if !havePOAmounts {
		unavailable(&v, "purchase_orders.amount_aed missing: PO value KPIs unavailable")
	}

	if haveVendors {
		v.Metrics = append(v.Metrics, metric("Vendors", analytics.FormatCount(float64(vendors.Len())), float64(vendors.Len())))
	}
	if havePOAmounts {
		totalPOs := analytics.SumColumn(pos, "amount_aed")
		v.Metrics = append(v.Metrics, metric("PO Value", analytics.FormatMoney(totalPOs), totalPOs))

		avgPO := analytics.MeanColumn(pos, "amount_aed")
		v.Metrics = append(v.Metrics, metric("Avg PO", analytics.FormatMoneyK(avgPO), avgPO))
	}
	if havePOs {
		v.Metrics = append(v.Metrics, metric("PO Count", analytics.FormatCount(float64(pos.Len())), float64(pos.Len())))
	}

	if haveVendors {
		byCategory := analytics.SortBy(analytics.GroupCount(vendors, "category"), analytics.CountColumn, true)
		v.Charts = append(v.Charts, hbarChart("vendors-by-category", "Vendors by Category", byCategory, analytics.CountColumn))

		byLocation := analytics.GroupCount(vendors, "location")
		v.Charts = append(v.Charts, pieChart("vendor-locations", "Vendors by Location", byLocation, analytics.CountColumn, 0.4))
	}

	if havePOAmounts && haveVendors {
		byVendor := analytics.GroupSum(pos, "vendor_id", "amount_aed")
		spec := topNChart("top-vendors-by-po", domain.ChartHBar, "Top Vendors by PO Value",
			byVendor, "amount_aed", 10, "PO value")
		spec = relabel(spec, nameIndex(vendors, "vendor_id", "vendor_name"), 30)
		v.Charts = append(v.Charts, spec)
	}

	return v
}
