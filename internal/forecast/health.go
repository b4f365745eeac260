package forecast

import (
	"math"

	"finhealth/internal/model"
)

// HealthSignals are the inputs blended into the health score
type HealthSignals struct {
	ProjectedIncome  float64
	ProjectedExpense float64
	// DeliveryRate is delivered / settled orders in [0,1]; nil when nothing settled
	DeliveryRate  *float64
	ExceededCount int
	ExpenseVsAvg  *int
	HasActivity   bool
}

// Score returns the 0-100 health score and its label.
//
//	margin    = (projectedIncome - projectedExpense) / max(projectedIncome, 1), clamped to [-1, 1]
//	score     = Margin * (margin + 1) / 2
//	          + Delivery * deliveryRate          (half weight when no order has settled)
//	          + max(0, Budget - OverrunPenalty * exceededBudgets)
//	          - min(BurnPenaltyMax, BurnPenaltySlope * (expenseVsAvg - BurnThreshold))   when above threshold
//
// The result is rounded and clamped to [0, 100]. A ledger without any activity scores Neutral.
func Score(s HealthSignals, w HealthWeights) (int, string) {
	if !s.HasActivity {
		return w.Neutral, HealthLabel(w.Neutral)
	}

	margin := (s.ProjectedIncome - s.ProjectedExpense) / math.Max(s.ProjectedIncome, 1)
	margin = clamp(margin, -1, 1)
	score := w.Margin * (margin + 1) / 2

	if s.DeliveryRate != nil {
		score += w.Delivery * clamp(*s.DeliveryRate, 0, 1)
	} else {
		score += w.Delivery / 2
	}

	score += math.Max(0, w.Budget-w.OverrunPenalty*float64(s.ExceededCount))

	if s.ExpenseVsAvg != nil && float64(*s.ExpenseVsAvg) > w.BurnThreshold {
		score -= math.Min(w.BurnPenaltyMax, w.BurnPenaltySlope*(float64(*s.ExpenseVsAvg)-w.BurnThreshold))
	}

	final := int(math.Round(clamp(score, 0, 100)))
	return final, HealthLabel(final)
}

// HealthLabel bands a score: >= 70 healthy, [40, 70) cautious, < 40 critical.
func HealthLabel(score int) string {
	switch {
	case score >= 70:
		return model.HealthHealthy
	case score >= 40:
		return model.HealthCautious
	default:
		return model.HealthCritical
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
