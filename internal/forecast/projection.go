package forecast

// Projection is a linear run-rate extrapolation to month end. There is no seasonality:
// the figure is meant to be explainable, not to be a forecasting model.
type Projection struct {
	ProjectedExpense float64
	ProjectedIncome  float64
	ProjectedBalance float64
}

// Project extrapolates the daily rates over the whole month. A completed month
// projects to its actual month totals.
func Project(r Rates, p Period, monthToDate LedgerAggregate) Projection {
	var pr Projection
	if p.Complete {
		pr.ProjectedExpense = monthToDate.TotalExpense.InexactFloat64()
		pr.ProjectedIncome = monthToDate.TotalIncome.InexactFloat64()
	} else {
		pr.ProjectedExpense = r.DailyExpense * float64(p.DaysInMonth)
		pr.ProjectedIncome = r.DailyIncome * float64(p.DaysInMonth)
	}
	pr.ProjectedBalance = pr.ProjectedIncome - pr.ProjectedExpense
	return pr
}
