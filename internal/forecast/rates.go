package forecast

import (
	"fmt"
	"math"

	"finhealth/internal/model"

	"github.com/shopspring/decimal"
)

// Rates are the daily run-rates of the month to date
type Rates struct {
	DailyExpense float64
	DailyIncome  float64
}

// Baseline is the trailing average of completed months
type Baseline struct {
	AvgExpense float64
	AvgIncome  float64
}

// ComputeRates divides the month-to-date totals (p.Start through p.AsOf) by the elapsed
// days. Nothing elapsed means zero rates.
func ComputeRates(monthToDate LedgerAggregate, p Period) Rates {
	if p.DaysPassed <= 0 {
		return Rates{}
	}
	days := decimal.NewFromInt(int64(p.DaysPassed))
	return Rates{
		DailyExpense: monthToDate.TotalExpense.Div(days).InexactFloat64(),
		DailyIncome:  monthToDate.TotalIncome.Div(days).InexactFloat64(),
	}
}

// ComputeBaseline averages the given months; months without data count as zero.
func ComputeBaseline(months []LedgerAggregate) Baseline {
	if len(months) == 0 {
		return Baseline{}
	}
	var income, expense decimal.Decimal
	for _, m := range months {
		income = income.Add(m.TotalIncome)
		expense = expense.Add(m.TotalExpense)
	}
	n := decimal.NewFromInt(int64(len(months)))
	return Baseline{
		AvgExpense: expense.Div(n).InexactFloat64(),
		AvgIncome:  income.Div(n).InexactFloat64(),
	}
}

// Variation returns the rounded percentage difference of projected vs baseline,
// or nil when the baseline is zero.
func Variation(projected, baseline float64) *int {
	if baseline == 0 {
		return nil
	}
	v := int(math.Round((projected - baseline) / baseline * 100))
	return &v
}

// extrapolate scales a month-to-date total to the full month.
func extrapolate(total float64, p Period) float64 {
	if p.Complete {
		return total
	}
	if p.DaysPassed <= 0 {
		return 0
	}
	return total / float64(p.DaysPassed) * float64(p.DaysInMonth)
}

// WeeklyTrend splits the month into 7-day weeks (W1 = days 1-7, the last week is short).
func WeeklyTrend(current LedgerAggregate, p Period) []model.WeeklyPoint {
	weeks := (p.DaysInMonth + 6) / 7
	income := make([]decimal.Decimal, weeks)
	expense := make([]decimal.Decimal, weeks)

	for _, db := range current.DailyBuckets {
		if db.Date.Before(p.Start) || db.Date.After(p.End) {
			continue
		}
		w := (db.Date.Day() - 1) / 7
		income[w] = income[w].Add(db.Income)
		expense[w] = expense[w].Add(db.Expense)
	}

	points := make([]model.WeeklyPoint, 0, weeks)
	for w := 0; w < weeks; w++ {
		points = append(points, model.WeeklyPoint{
			Week:    fmt.Sprintf("W%d", w+1),
			Income:  income[w].InexactFloat64(),
			Expense: expense[w].InexactFloat64(),
			Balance: income[w].Sub(expense[w]).InexactFloat64(),
		})
	}
	return points
}

// MonthlyTrend lists the given months oldest first; the last entry is the selected month to date.
func MonthlyTrend(months []LedgerAggregate) []model.MonthlyPoint {
	points := make([]model.MonthlyPoint, 0, len(months))
	for _, m := range months {
		points = append(points, model.MonthlyPoint{
			Month:   m.Start.Format(monthLayout),
			Income:  m.TotalIncome.InexactFloat64(),
			Expense: m.TotalExpense.InexactFloat64(),
			Margin:  m.TotalIncome.Sub(m.TotalExpense).InexactFloat64(),
		})
	}
	return points
}
