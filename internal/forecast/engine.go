package forecast

import (
	"fmt"
	"time"

	"finhealth/internal/model"

	"github.com/google/uuid"
)

// Result bundles everything one computation produces
type Result struct {
	Report    model.ForecastReport
	Budgets   model.BudgetSummaryReport
	Narrative model.NarrativeInput
}

// Build assembles the full report for one workspace and period from a ledger snapshot.
// The snapshot must cover p.FetchRange(s). Identical inputs always produce identical output.
func Build(workspaceID uuid.UUID, ledger model.Ledger, p Period, s Settings) (Result, error) {
	if err := ValidateLedger(workspaceID, ledger); err != nil {
		return Result{}, err
	}

	current, err := Aggregate(workspaceID, ledger, p.WindowStart, p.WindowEnd)
	if err != nil {
		return Result{}, fmt.Errorf("aggregate current window: %w", err)
	}

	months := make(map[int]LedgerAggregate)
	monthAgg := func(back int) (LedgerAggregate, error) {
		if m, ok := months[back]; ok {
			return m, nil
		}
		m, err := AggregateMonth(workspaceID, ledger, p.MonthsBack(back))
		if err != nil {
			return LedgerAggregate{}, fmt.Errorf("aggregate %s: %w", p.MonthsBack(back).Format(monthLayout), err)
		}
		months[back] = m
		return m, nil
	}

	baseline := make([]LedgerAggregate, 0, BaselineMonths)
	for back := 1; back <= BaselineMonths; back++ {
		m, err := monthAgg(back)
		if err != nil {
			return Result{}, err
		}
		baseline = append(baseline, m)
	}

	trend := make([]LedgerAggregate, 0, s.TrendMonths)
	for back := s.TrendMonths - 1; back >= 1; back-- {
		m, err := monthAgg(back)
		if err != nil {
			return Result{}, err
		}
		trend = append(trend, m)
	}
	monthToDate := current
	if !p.WindowStart.Equal(p.Start) {
		if monthToDate, err = Aggregate(workspaceID, ledger, p.Start, p.WindowEnd); err != nil {
			return Result{}, fmt.Errorf("aggregate month to date: %w", err)
		}
	}
	monthToDate.Start = p.Start
	trend = append(trend, monthToDate)

	// Run-rates always use the month to date; a narrower window only changes the totals shown
	rates := ComputeRates(monthToDate, p)
	base := ComputeBaseline(baseline)
	projection := Project(rates, p, monthToDate)
	expenseVsAvg := Variation(projection.ProjectedExpense, base.AvgExpense)
	incomeVsAvg := Variation(projection.ProjectedIncome, base.AvgIncome)

	budgets := MonitorBudgets(ledger, p)
	alerts := BudgetAlerts(budgets.Budgets)
	orders := SummarizeOrders(ledger.Orders, p)
	categories := AnalyzeCategories(current, monthToDate, baseline, p)
	products := AnalyzeProducts(ledger, p, s.AdCategory)
	cities := AnalyzeCities(ledger.Orders, p)
	agents := AnalyzeAgents(ledger.Orders, p)

	score, label := Score(HealthSignals{
		ProjectedIncome:  projection.ProjectedIncome,
		ProjectedExpense: projection.ProjectedExpense,
		DeliveryRate:     orders.DeliveryRatio(),
		ExceededCount:    budgets.ExceededCount,
		ExpenseVsAvg:     expenseVsAvg,
		HasActivity:      monthToDate.IncomeCount+monthToDate.ExpenseCount > 0 || orders.Summary.ThisMonth > 0,
	}, s.Health)

	recs := Recommend(Signals{
		Projection:   projection,
		Budgets:      budgets.Budgets,
		Alerts:       alerts,
		Categories:   categories,
		Products:     products,
		Orders:       orders,
		ExpenseVsAvg: expenseVsAvg,
		IncomeVsAvg:  incomeVsAvg,
		HealthScore:  score,
	}, s.Rules)

	warnings := append([]string{}, budgets.Warnings...)

	report := model.ForecastReport{
		WorkspaceID:      workspaceID.String(),
		Month:            p.Month,
		AsOf:             p.AsOf.Format(time.DateOnly),
		HealthScore:      score,
		HealthLabel:      label,
		TotalIncome:      current.TotalIncome.InexactFloat64(),
		TotalExpense:     current.TotalExpense.InexactFloat64(),
		DailyExpenseRate: rates.DailyExpense,
		DailyIncomeRate:  rates.DailyIncome,
		Avg3mExpense:     base.AvgExpense,
		Avg3mIncome:      base.AvgIncome,
		ProjectedExpense: projection.ProjectedExpense,
		ProjectedIncome:  projection.ProjectedIncome,
		ProjectedBalance: projection.ProjectedBalance,
		ExpenseVsAvg:     expenseVsAvg,
		IncomeVsAvg:      incomeVsAvg,
		DaysPassed:       p.DaysPassed,
		DaysInMonth:      p.DaysInMonth,
		DaysLeft:         p.DaysLeft,
		Orders:           orders.Summary,
		BudgetAlerts:     alerts,
		Recommendations:  recs,
		CategoryAnalysis: categories,
		ProductAnalysis:  products,
		CityAnalysis:     cities,
		AgentAnalysis:    agents,
		WeeklyTrend:      WeeklyTrend(current, p),
		MonthlyTrend:     MonthlyTrend(trend),
		Warnings:         warnings,
	}

	return Result{
		Report:  report,
		Budgets: budgets,
		Narrative: model.NarrativeInput{
			WorkspaceID: report.WorkspaceID,
			Month:       report.Month,
			RawMetrics: model.RawMetrics{
				HealthScore:      score,
				HealthLabel:      label,
				DeliveryRate:     orders.Summary.DeliveryRate,
				BurnRate:         rates.DailyExpense,
				DaysLeft:         p.DaysLeft,
				ProjectedBalance: projection.ProjectedBalance,
				ExpenseVsAvg:     expenseVsAvg,
			},
			Details: model.NarrativeDetails{
				ProductData: products,
				CityData:    cities,
			},
		},
	}, nil
}
