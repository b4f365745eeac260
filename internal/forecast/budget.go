package forecast

import (
	"fmt"
	"sort"

	"finhealth/internal/model"

	"github.com/shopspring/decimal"
)

// Severity thresholds on the unclipped utilization percentage
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 100.0
)

// Severity badge labels
const (
	LabelExceeded  = "Dépassé"
	LabelAttention = "Attention"
	LabelOK        = "OK"
)

var hundred = decimal.NewFromInt(100)

// ClassifySeverity maps a utilization percentage to its severity and badge label.
// Both bounds of the warning band are inclusive.
func ClassifySeverity(percentage float64) (string, string) {
	switch {
	case percentage > CriticalThreshold:
		return model.SeverityCritical, LabelExceeded
	case percentage >= WarningThreshold:
		return model.SeverityWarning, LabelAttention
	default:
		return model.SeverityOK, LabelOK
	}
}

// MonitorBudgets computes the utilization of every budget of the period's month.
// Budgets with a non-positive limit are skipped and reported as warnings.
func MonitorBudgets(ledger model.Ledger, p Period) model.BudgetSummaryReport {
	summary := model.BudgetSummaryReport{
		Month:    p.Month,
		Budgets:  []model.BudgetStatus{},
		Warnings: []string{},
	}

	var totalBudget, totalSpent decimal.Decimal
	for _, b := range ledger.Budgets {
		if b.Month != p.Month {
			continue
		}
		if !b.Amount.IsPositive() {
			summary.Warnings = append(summary.Warnings,
				fmt.Sprintf("budget %q (%s) skipped: amount %s must be greater than 0", b.Name, b.ID, b.Amount))
			continue
		}

		spent := budgetSpent(ledger, b, p)
		pct := spent.Mul(hundred).Div(b.Amount)
		projected := projectPercentage(pct, p)

		status := model.BudgetStatus{
			BudgetID:            b.ID.String(),
			Name:                b.Name,
			Category:            b.Category,
			ProductID:           b.ProductID,
			Amount:              b.Amount.InexactFloat64(),
			TotalSpent:          spent.InexactFloat64(),
			Remaining:           b.Amount.Sub(spent).InexactFloat64(),
			Percentage:          pct.InexactFloat64(),
			ProjectedPercentage: projected.InexactFloat64(),
		}
		status.Severity, status.SeverityLabel = ClassifySeverity(status.Percentage)
		if status.Percentage > CriticalThreshold {
			summary.ExceededCount++
		}

		totalBudget = totalBudget.Add(b.Amount)
		totalSpent = totalSpent.Add(spent)
		summary.Budgets = append(summary.Budgets, status)
	}

	sort.SliceStable(summary.Budgets, func(i, j int) bool {
		a, b := summary.Budgets[i], summary.Budgets[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.BudgetID < b.BudgetID
	})

	summary.TotalBudget = totalBudget.InexactFloat64()
	summary.TotalSpent = totalSpent.InexactFloat64()
	summary.TotalRemaining = totalBudget.Sub(totalSpent).InexactFloat64()
	return summary
}

// budgetSpent sums the month's expenses up to the as-of day that match the budget's
// category and, for product-scoped budgets, its product.
func budgetSpent(ledger model.Ledger, b model.Budget, p Period) decimal.Decimal {
	key := normalizeKey(b.Category)
	spent := decimal.Zero
	for _, tx := range ledger.Transactions {
		if tx.Type != model.TxTypeExpense || !inDays(tx.Date, p.Start, p.WindowEnd) {
			continue
		}
		if normalizeKey(tx.Category) != key {
			continue
		}
		if b.ProductID != nil && !sameProduct(tx.ProductID, *b.ProductID) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}

// projectPercentage extrapolates utilization to month end at the current pace.
func projectPercentage(pct decimal.Decimal, p Period) decimal.Decimal {
	passed := p.DaysPassed
	if passed < 1 {
		passed = 1
	}
	return pct.Mul(decimal.NewFromInt(int64(p.DaysInMonth))).Div(decimal.NewFromInt(int64(passed)))
}

// BudgetAlerts flags budgets that are over the warning band now, or on pace to exceed
// their limit by month end. A pace-only alert is raised as a warning.
func BudgetAlerts(budgets []model.BudgetStatus) []model.BudgetAlert {
	alerts := []model.BudgetAlert{}
	for _, b := range budgets {
		onPace := b.ProjectedPercentage > CriticalThreshold
		if b.Severity == model.SeverityOK && !onPace {
			continue
		}
		severity := b.Severity
		if severity == model.SeverityOK {
			severity = model.SeverityWarning
		}
		alerts = append(alerts, model.BudgetAlert{
			BudgetID:            b.BudgetID,
			Name:                b.Name,
			Category:            b.Category,
			Percentage:          b.Percentage,
			ProjectedPercentage: b.ProjectedPercentage,
			Spent:               b.TotalSpent,
			Amount:              b.Amount,
			Severity:            severity,
		})
	}
	return alerts
}
