package forecast

import (
	"testing"
	"time"

	"finhealth/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySeverity_Boundaries(t *testing.T) {
	tests := []struct {
		pct      float64
		severity string
		label    string
	}{
		{pct: 0, severity: model.SeverityOK, label: LabelOK},
		{pct: 69.99, severity: model.SeverityOK, label: LabelOK},
		{pct: 70, severity: model.SeverityWarning, label: LabelAttention},
		{pct: 85, severity: model.SeverityWarning, label: LabelAttention},
		{pct: 100, severity: model.SeverityWarning, label: LabelAttention},
		{pct: 100.01, severity: model.SeverityCritical, label: LabelExceeded},
		{pct: 250, severity: model.SeverityCritical, label: LabelExceeded},
	}

	for _, tt := range tests {
		severity, label := ClassifySeverity(tt.pct)
		assert.Equal(t, tt.severity, severity, "pct %v", tt.pct)
		assert.Equal(t, tt.label, label, "pct %v", tt.pct)
	}
}

func TestMonitorBudgets_ProjectedOverrunRaisesAlert(t *testing.T) {
	p := resolve(t, "2026-06", time.Date(2026, time.June, 20, 9, 0, 0, 0, time.UTC))
	ledger := model.Ledger{
		Budgets: []model.Budget{budget("Marketing", "Publicité", 100000, "2026-06")},
		Transactions: []model.Transaction{
			expense("publicite", 60000, day(time.June, 3)),
			expense("Publicité", 25000, day(time.June, 18)),
		},
	}

	summary := MonitorBudgets(ledger, p)
	require.Len(t, summary.Budgets, 1)

	b := summary.Budgets[0]
	assert.Equal(t, 85.0, b.Percentage)
	assert.Equal(t, 127.5, b.ProjectedPercentage)
	assert.Equal(t, 15000.0, b.Remaining)
	assert.Equal(t, model.SeverityWarning, b.Severity)
	assert.Equal(t, LabelAttention, b.SeverityLabel)
	assert.Equal(t, 0, summary.ExceededCount)

	alerts := BudgetAlerts(summary.Budgets)
	require.Len(t, alerts, 1)
	assert.Equal(t, model.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, 127.5, alerts[0].ProjectedPercentage)
}

func TestMonitorBudgets_Scoping(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	scoped := budget("Ads P1", "Publicité", 1000, "2026-06")
	scoped.ProductID = strPtr("P1")

	ledger := model.Ledger{
		Budgets: []model.Budget{
			scoped,
			budget("Stock", "Stock", 2000, "2026-06"),
			budget("Last month", "Stock", 2000, "2026-05"),
		},
		Transactions: []model.Transaction{
			tagged(expense("Publicité", 400, day(time.June, 2)), "P1"),
			tagged(expense("Publicité", 900, day(time.June, 2)), "P2"),
			expense("Stock", 500, day(time.June, 5)),
			expense("Stock", 700, day(time.June, 25)), // after as-of
			expense("Stock", 800, day(time.May, 25)),  // previous month
			income("Stock", 999, day(time.June, 5)),   // income never counts
		},
	}

	summary := MonitorBudgets(ledger, p)
	require.Len(t, summary.Budgets, 2)

	byName := map[string]model.BudgetStatus{}
	for _, b := range summary.Budgets {
		byName[b.Name] = b
	}
	assert.Equal(t, 400.0, byName["Ads P1"].TotalSpent)
	assert.Equal(t, 500.0, byName["Stock"].TotalSpent)

	assert.Equal(t, 3000.0, summary.TotalBudget)
	assert.Equal(t, 900.0, summary.TotalSpent)
	assert.Equal(t, 2100.0, summary.TotalRemaining)
	assert.Equal(t, "Ads P1", summary.Budgets[0].Name, "sorted by utilization")
}

func TestMonitorBudgets_SkipsNonPositiveAmounts(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	zero := budget("Empty", "Stock", 0, "2026-06")
	negative := budget("Broken", "Stock", 0, "2026-06")
	negative.Amount = decimal.NewFromInt(-50)

	summary := MonitorBudgets(model.Ledger{Budgets: []model.Budget{zero, negative}}, p)

	assert.NotNil(t, summary.Budgets)
	assert.Empty(t, summary.Budgets)
	assert.Len(t, summary.Warnings, 2)
	assert.Contains(t, summary.Warnings[0], "Empty")
}

func TestMonitorBudgets_ExceededCount(t *testing.T) {
	p := resolve(t, "2026-06", june10)
	ledger := model.Ledger{
		Budgets: []model.Budget{
			budget("Exactly full", "Stock", 1000, "2026-06"),
			budget("Over", "Transport", 100, "2026-06"),
		},
		Transactions: []model.Transaction{
			expense("Stock", 1000, day(time.June, 1)),
			expense("Transport", 150, day(time.June, 1)),
		},
	}

	summary := MonitorBudgets(ledger, p)
	assert.Equal(t, 1, summary.ExceededCount)
	assert.Equal(t, model.SeverityCritical, summary.Budgets[0].Severity)
	assert.Equal(t, 150.0, summary.Budgets[0].Percentage, "percentages are not clipped")
	assert.Equal(t, model.SeverityWarning, summary.Budgets[1].Severity, "100% is still a warning")
}

func TestBudgetAlerts_SkipsHealthyBudgets(t *testing.T) {
	alerts := BudgetAlerts([]model.BudgetStatus{
		{Name: "calm", Percentage: 10, ProjectedPercentage: 30, Severity: model.SeverityOK},
		{Name: "hot", Percentage: 80, ProjectedPercentage: 90, Severity: model.SeverityWarning},
		{Name: "fast", Percentage: 50, ProjectedPercentage: 101, Severity: model.SeverityOK},
	})

	require.Len(t, alerts, 2)
	assert.Equal(t, "hot", alerts[0].Name)
	assert.Equal(t, "fast", alerts[1].Name)
	assert.Equal(t, model.SeverityWarning, alerts[1].Severity)
}
