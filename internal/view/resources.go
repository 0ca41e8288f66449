package view

import (
	"pmocli/internal/analytics"
	"pmocli/internal/dataset"
	"pmocli/pkg/contracts/domain"
)

func buildResourceManagement(c *Context) domain.View {
	var v domain.View

	employees, haveEmployees := c.Snapshot.Frame(dataset.TableEmployees)
	timesheets, haveTimesheets := c.Snapshot.Frame(dataset.TableTimesheets)

	haveSalaries := haveEmployees && c.Snapshot.HasColumn(dataset.TableEmployees, "salary_aed")

	if !haveEmployees {
		unavailable(&v, "employees table missing: workforce KPIs and charts unavailable")
	} else if !haveSalaries {
		unavailable(&v, "employees.salary_aed missing: salary KPIs unavailable")
	}
	if !haveTimesheets {
		unavailable(&v, "timesheets table missing: hours KPIs and charts unavailable")
	}

	if haveEmployees {
		workforce := float64(employees.Len())
		v.Metrics = append(v.Metrics, metric("Workforce", analytics.FormatCount(workforce), workforce))

		departments := analytics.CountDistinct(employees, "department")
		v.Metrics = append(v.Metrics, metric("Departments", analytics.FormatCount(float64(departments)), float64(departments)))

		if haveSalaries {
			avgSalary := analytics.MeanColumn(employees, "salary_aed")
			v.Metrics = append(v.Metrics, metric("Avg Salary", analytics.FormatMoneyK(avgSalary), avgSalary))
		}
	}

	if haveTimesheets {
		totalHours := analytics.SumColumn(timesheets, "hours")
		v.Metrics = append(v.Metrics, metric("Hours Logged", analytics.FormatCount(totalHours), totalHours))
	}

	if haveEmployees {
		byDept := analytics.SortBy(analytics.GroupCount(employees, "department"), analytics.CountColumn, true)
		v.Charts = append(v.Charts, hbarChart("headcount-by-department", "Headcount by Department", byDept, analytics.CountColumn))

		byNationality := analytics.GroupCount(employees, "nationality")
		v.Charts = append(v.Charts, topNChart("workforce-nationality", domain.ChartPie, "Workforce by Nationality",
			byNationality, analytics.CountColumn, 10, "headcount"))
	}

	if haveTimesheets {
		if c.Snapshot.HasColumn(dataset.TableTimesheets, "billable") {
			billable := analytics.GroupSum(timesheets, "billable", "hours")
			v.Charts = append(v.Charts, pieChart("billable-hours", "Billable vs Non-Billable Hours", billable, "hours", 0))
		}
		if c.Snapshot.HasColumn(dataset.TableTimesheets, "approval_status") {
			byApproval := analytics.GroupSum(timesheets, "approval_status", "hours")
			v.Charts = append(v.Charts, barChart("hours-by-approval", "Hours by Approval Status", byApproval, "hours"))
		}
	}

	return v
}
