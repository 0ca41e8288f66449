package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmocli/internal/dataset"
)

var digestFixtures = map[string]string{
	"projects.csv": `project_id,project_name,client_id,project_type,status,start_date,end_date,budget_aed,completion_percentage,project_manager_id
PRJ001,Tower Fitout,CL001,Fitout,In Progress,2025-01-10,2025-09-30,100000,45,EMP001
PRJ002,Mall Renovation,CL002,Renovation,Completed,2024-03-01,2024-12-20,50000,100,EMP002
`,
	"expenses.csv": `expense_id,project_id,category,amount_aed,date,approved_by
EX001,PRJ001,Materials,150000,2025-03-10,EMP001
EX002,PRJ002,Materials,10000,2024-06-18,EMP002
`,
	"employees.csv": `employee_id,full_name,department,designation,salary_aed,joining_date
EMP001,Sara Haddad,Projects,Senior PM,42000,2021-04-12
EMP002,Omar Nasser,Projects,PM,35000,2022-08-01
EMP003,Lina Aziz,Finance,Analyst,22000,2023-01-15
`,
	"risks.csv": `risk_id,project_id,risk_description,impact,status,identified_date
R001,PRJ001,Steel price escalation,High,Open,2025-02-01
R002,PRJ001,Permit delay,Critical,Mitigated,2025-01-20
R003,PRJ002,Scope creep,High,Open,2025-03-05
`,
	"timesheets.csv": `timesheet_id,employee_id,project_id,date,hours,approval_status
TS001,EMP001,PRJ001,2025-03-03,8,Approved
TS002,EMP002,PRJ001,2025-03-03,6,Pending
TS003,EMP002,PRJ002,2024-11-11,8,Pending
`,
	"assignments.csv": `assignment_id,project_id,employee_id,role,start_date,end_date,allocation_percentage
AS001,PRJ001,EMP001,Lead,2025-01-10,2025-09-30,80
AS002,PRJ001,EMP002,Support,2025-02-01,2025-09-30,50
`,
}

func digestSnapshot(t *testing.T) *dataset.Snapshot {
	t.Helper()
	dir := t.TempDir()
	for name, content := range digestFixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := dataset.NewStore(dataset.NewLoader(dir, dataset.ExtendedRegistry(), logger), logger)
	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	return snap
}

func TestBuildDigestTables(t *testing.T) {
	d := buildDigest(digestSnapshot(t))

	require.Len(t, d.Tables, 11)
	loaded := make(map[string]bool)
	for _, tbl := range d.Tables {
		loaded[tbl.Table] = tbl.Loaded
	}
	assert.True(t, loaded[dataset.TableProjects])
	assert.True(t, loaded[dataset.TableAssignments])
	assert.False(t, loaded[dataset.TableVendors])
	assert.NotEmpty(t, d.Conditions)
}

func TestBuildDigestSpendRankings(t *testing.T) {
	d := buildDigest(digestSnapshot(t))

	// PRJ001 spent 150k against a 100k budget.
	require.Len(t, d.OverSpenders, 1)
	assert.Equal(t, "PRJ001", d.OverSpenders[0].ProjectID)
	assert.Equal(t, -50000.0, d.OverSpenders[0].Variance)
	assert.Equal(t, 150.0, d.OverSpenders[0].Utilization)

	// PRJ002 has 40k of its 50k budget left.
	require.Len(t, d.UnderSpend, 1)
	assert.Equal(t, "PRJ002", d.UnderSpend[0].ProjectID)
	assert.Equal(t, 40000.0, d.UnderSpend[0].Variance)
}

func TestBuildDigestWorkforceAndRisks(t *testing.T) {
	d := buildDigest(digestSnapshot(t))

	workforce := make(map[string]int)
	for _, c := range d.Workforce {
		workforce[c.Key] = c.Count
	}
	assert.Equal(t, 2, workforce["Projects"])
	assert.Equal(t, 1, workforce["Finance"])

	risks := make(map[string]int)
	for _, c := range d.RiskHotSpots {
		risks[c.Key] = c.Count
	}
	// Only open risks count; the mitigated Critical one stays out.
	assert.Equal(t, 2, risks["High"])
	assert.Zero(t, risks["Critical"])
}

func TestBuildDigestTimesheets(t *testing.T) {
	d := buildDigest(digestSnapshot(t))

	require.NotNil(t, d.Timesheets)
	assert.Equal(t, 3, d.Timesheets.Entries)
	assert.Equal(t, 22.0, d.Timesheets.TotalHours)
	assert.Equal(t, 2, d.Timesheets.PendingCount)
}
