package forecast

import (
	"testing"

	"finhealth/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(recs []model.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Type)
	}
	return out
}

func TestRecommend_NothingToSay(t *testing.T) {
	recs := Recommend(Signals{HealthScore: 60}, DefaultSettings().Rules)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_OrderedBySeverity(t *testing.T) {
	s := Signals{
		Projection:   Projection{ProjectedIncome: 1000, ProjectedExpense: 3000, ProjectedBalance: -2000},
		ExpenseVsAvg: intPtr(40),
		Orders: OrderStats{
			Settled: 12,
			Summary: model.OrderSummary{DeliveryRate: 40},
		},
		HealthScore: 85,
	}

	recs := Recommend(s, DefaultSettings().Rules)
	assert.Equal(t, []string{
		model.SeverityCritical,
		model.SeverityWarning,
		model.SeverityInfo,
		model.SeveritySuccess,
	}, types(recs))
	assert.Equal(t, "Projected deficit", recs[0].Title)
	assert.Equal(t, "Low delivery rate", recs[1].Title)
}

func TestRecommend_BudgetRules(t *testing.T) {
	budgets := []model.BudgetStatus{
		{Name: "Stock", Percentage: 130, ProjectedPercentage: 195, Severity: model.SeverityCritical},
		{Name: "Ads", Percentage: 85, ProjectedPercentage: 127.5, Severity: model.SeverityWarning},
		{Name: "Transport", Percentage: 60, ProjectedPercentage: 110, Severity: model.SeverityOK},
	}
	s := Signals{Budgets: budgets, Alerts: BudgetAlerts(budgets), HealthScore: 90}

	recs := Recommend(s, DefaultSettings().Rules)
	require.Len(t, recs, 2)
	assert.Equal(t, model.SeverityCritical, recs[0].Type)
	assert.Contains(t, recs[0].Title, "Stock")
	assert.Equal(t, model.SeverityWarning, recs[1].Type)
	assert.Contains(t, recs[1].Title, "Ads", "only budgets paced above 120% warn")
}

func TestRecommend_CategorySpikeIgnoresIncome(t *testing.T) {
	s := Signals{
		Categories: []model.CategoryTrend{
			{Type: model.TxTypeExpense, Category: "Stock", Variation: intPtr(51)},
			{Type: model.TxTypeExpense, Category: "Loyer", Variation: intPtr(50)},
			{Type: model.TxTypeExpense, Category: "Frais", Variation: nil},
			{Type: model.TxTypeIncome, Category: "Ventes", Variation: intPtr(300)},
		},
	}

	recs := Recommend(s, DefaultSettings().Rules)
	require.Len(t, recs, 1)
	assert.Equal(t, "Spending spike: Stock", recs[0].Title)
}

func TestRecommend_OperationalRules(t *testing.T) {
	s := Signals{
		Products: []model.ProductTrend{
			{Name: "Loser", AdSpend: 5000, Revenue: 1000, ROI: -80},
			{Name: "Winner", AdSpend: 5000, Revenue: 50000, ROI: 900},
		},
		Orders: OrderStats{
			Settled: 5,
			Summary: model.OrderSummary{DeliveryRate: 20, ReturnRate: 35},
		},
		IncomeVsAvg: intPtr(-30),
	}

	recs := Recommend(s, DefaultSettings().Rules)
	titles := make([]string, 0, len(recs))
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{
		"Advertising not paying off: Loser",
		"High return rate",
		"Income below average",
	}, titles, "low delivery needs enough settled orders")
}

func TestRecommend_SuccessNeedsNoAlerts(t *testing.T) {
	alert := model.BudgetAlert{Name: "Ads", Percentage: 75, ProjectedPercentage: 90, Severity: model.SeverityWarning}

	recs := Recommend(Signals{HealthScore: 92, Alerts: []model.BudgetAlert{alert}}, DefaultSettings().Rules)
	assert.Empty(t, recs)

	recs = Recommend(Signals{HealthScore: 80}, DefaultSettings().Rules)
	require.Len(t, recs, 1)
	assert.Equal(t, model.SeveritySuccess, recs[0].Type)
}
