package forecast

import (
	"fmt"
	"sort"

	"finhealth/internal/model"
)

// Signals are the computed figures the recommendation rules read
type Signals struct {
	Projection   Projection
	Budgets      []model.BudgetStatus
	Alerts       []model.BudgetAlert
	Categories   []model.CategoryTrend
	Products     []model.ProductTrend
	Orders       OrderStats
	ExpenseVsAvg *int
	IncomeVsAvg  *int
	HealthScore  int
}

type rule func(Signals, RuleThresholds) []model.Recommendation

// rules are evaluated independently, in this order, before the severity sort
var rules = []rule{
	deficitRule,
	exceededBudgetRule,
	budgetPaceRule,
	categorySpikeRule,
	deliveryRateRule,
	unprofitableAdsRule,
	returnRateRule,
	burnRateRule,
	incomeDropRule,
	healthyRule,
}

var severityRank = map[string]int{
	model.SeverityCritical: 0,
	model.SeverityWarning:  1,
	model.SeverityInfo:     2,
	model.SeveritySuccess:  3,
}

// Recommend runs the rule table and orders the advisories critical, warning, info,
// success. Advisories of the same severity keep rule order.
func Recommend(s Signals, t RuleThresholds) []model.Recommendation {
	recs := []model.Recommendation{}
	for _, r := range rules {
		recs = append(recs, r(s, t)...)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return severityRank[recs[i].Type] < severityRank[recs[j].Type]
	})
	return recs
}

func deficitRule(s Signals, _ RuleThresholds) []model.Recommendation {
	if s.Projection.ProjectedBalance >= 0 {
		return nil
	}
	return []model.Recommendation{{
		Type:  model.SeverityCritical,
		Title: "Projected deficit",
		Detail: fmt.Sprintf("At the current pace expenses reach %.0f against %.0f of income, a balance of %.0f at month end.",
			s.Projection.ProjectedExpense, s.Projection.ProjectedIncome, s.Projection.ProjectedBalance),
		Action: "Cut or postpone non-essential spending and review the largest expense categories.",
	}}
}

func exceededBudgetRule(s Signals, _ RuleThresholds) []model.Recommendation {
	var recs []model.Recommendation
	for _, b := range s.Budgets {
		if b.Percentage <= CriticalThreshold {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:   model.SeverityCritical,
			Title:  fmt.Sprintf("Budget exceeded: %s", b.Name),
			Detail: fmt.Sprintf("%.0f spent of %.0f (%.0f%%).", b.TotalSpent, b.Amount, b.Percentage),
			Action: "Freeze spending in this category or raise the budget deliberately.",
		})
	}
	return recs
}

func budgetPaceRule(s Signals, t RuleThresholds) []model.Recommendation {
	var recs []model.Recommendation
	for _, a := range s.Alerts {
		if a.Percentage > CriticalThreshold || a.ProjectedPercentage <= t.BudgetPace {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:   model.SeverityWarning,
			Title:  fmt.Sprintf("Budget on pace to overrun: %s", a.Name),
			Detail: fmt.Sprintf("%.0f%% used so far, projected at %.0f%% by month end.", a.Percentage, a.ProjectedPercentage),
			Action: "Slow spending in this category for the rest of the month.",
		})
	}
	return recs
}

func categorySpikeRule(s Signals, t RuleThresholds) []model.Recommendation {
	var recs []model.Recommendation
	for _, c := range s.Categories {
		if c.Type != model.TxTypeExpense || c.Variation == nil || *c.Variation <= t.CategoryVariation {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:   model.SeverityWarning,
			Title:  fmt.Sprintf("Spending spike: %s", c.Category),
			Detail: fmt.Sprintf("Projected %.0f is %d%% above the %d-month average of %.0f.", c.Projected, *c.Variation, BaselineMonths, c.Avg3m),
			Action: "Check this category for one-off or duplicated expenses.",
		})
	}
	return recs
}

func burnRateRule(s Signals, t RuleThresholds) []model.Recommendation {
	if s.ExpenseVsAvg == nil || *s.ExpenseVsAvg <= t.BurnVariation {
		return nil
	}
	return []model.Recommendation{{
		Type:   model.SeverityInfo,
		Title:  "Burn rate above average",
		Detail: fmt.Sprintf("Projected expenses are %d%% above the %d-month average.", *s.ExpenseVsAvg, BaselineMonths),
		Action: "Confirm the increase is planned, for example a campaign or a stock purchase.",
	}}
}

func deliveryRateRule(s Signals, t RuleThresholds) []model.Recommendation {
	if s.Orders.Settled < t.MinSettledOrders || s.Orders.Summary.DeliveryRate >= t.MinDeliveryRate {
		return nil
	}
	return []model.Recommendation{{
		Type:  model.SeverityWarning,
		Title: "Low delivery rate",
		Detail: fmt.Sprintf("Only %.0f%% of %d settled orders were delivered.",
			s.Orders.Summary.DeliveryRate, s.Orders.Settled),
		Action: "Review order confirmation and the carriers serving the weakest cities.",
	}}
}

func unprofitableAdsRule(s Signals, _ RuleThresholds) []model.Recommendation {
	var recs []model.Recommendation
	for _, p := range s.Products {
		if p.AdSpend <= 0 || p.ROI >= 0 {
			continue
		}
		recs = append(recs, model.Recommendation{
			Type:   model.SeverityWarning,
			Title:  fmt.Sprintf("Advertising not paying off: %s", p.Name),
			Detail: fmt.Sprintf("%.0f of ad spend for %.0f of revenue (ROI %.0f%%).", p.AdSpend, p.Revenue, p.ROI),
			Action: "Pause or retarget the campaigns for this product.",
		})
	}
	return recs
}

func returnRateRule(s Signals, t RuleThresholds) []model.Recommendation {
	if s.Orders.Settled == 0 || s.Orders.Summary.ReturnRate <= t.MaxReturnRate {
		return nil
	}
	return []model.Recommendation{{
		Type:   model.SeverityWarning,
		Title:  "High return rate",
		Detail: fmt.Sprintf("%.0f%% of settled orders were returned.", s.Orders.Summary.ReturnRate),
		Action: "Check product quality and confirm orders before shipping.",
	}}
}

func incomeDropRule(s Signals, t RuleThresholds) []model.Recommendation {
	if s.IncomeVsAvg == nil || *s.IncomeVsAvg >= -t.IncomeDrop {
		return nil
	}
	return []model.Recommendation{{
		Type:   model.SeverityInfo,
		Title:  "Income below average",
		Detail: fmt.Sprintf("Projected income is %d%% below the %d-month average.", -*s.IncomeVsAvg, BaselineMonths),
		Action: "Look at order volume and delivery performance for the month.",
	}}
}

func healthyRule(s Signals, t RuleThresholds) []model.Recommendation {
	if s.HealthScore < t.HealthySuccess || len(s.Alerts) > 0 {
		return nil
	}
	return []model.Recommendation{{
		Type:   model.SeveritySuccess,
		Title:  "Finances on track",
		Detail: fmt.Sprintf("Health score %d with no budget alerts.", s.HealthScore),
		Action: "Keep the current spending discipline.",
	}}
}
