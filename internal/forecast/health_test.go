package forecast

import (
	"math"
	"testing"

	"finhealth/internal/model"

	"github.com/stretchr/testify/assert"
)

func ratio(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestScore_NoActivityIsNeutral(t *testing.T) {
	score, label := Score(HealthSignals{}, DefaultSettings().Health)
	assert.Equal(t, 50, score)
	assert.Equal(t, model.HealthCautious, label)
}

func TestScore_DeficitWithoutOrders(t *testing.T) {
	score, label := Score(HealthSignals{
		ProjectedExpense: 150000,
		HasActivity:      true,
	}, DefaultSettings().Health)

	// 0 margin points + half the delivery weight + the full budget weight
	assert.Equal(t, 38, score)
	assert.Equal(t, model.HealthCritical, label)
}

func TestScore_StrongMonth(t *testing.T) {
	score, label := Score(HealthSignals{
		ProjectedIncome:  100000,
		ProjectedExpense: 40000,
		DeliveryRate:     ratio(0.8),
		HasActivity:      true,
	}, DefaultSettings().Health)

	assert.Equal(t, 84, score)
	assert.Equal(t, model.HealthHealthy, label)
}

func TestScore_AlwaysClamped(t *testing.T) {
	w := DefaultSettings().Health
	w.OverrunPenalty = 1000
	w.BurnPenaltyMax = 1000

	inputs := []HealthSignals{
		{ProjectedIncome: math.MaxFloat64, DeliveryRate: ratio(5), HasActivity: true},
		{ProjectedExpense: math.MaxFloat64, DeliveryRate: ratio(-3), ExceededCount: 50, ExpenseVsAvg: intPtr(100000), HasActivity: true},
		{ProjectedIncome: math.NaN(), HasActivity: true},
	}
	for _, in := range inputs {
		score, _ := Score(in, w)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestScore_Deterministic(t *testing.T) {
	in := HealthSignals{ProjectedIncome: 1234.5, ProjectedExpense: 987.6, DeliveryRate: ratio(0.42), ExceededCount: 1, ExpenseVsAvg: intPtr(40), HasActivity: true}
	first, _ := Score(in, DefaultSettings().Health)
	for i := 0; i < 10; i++ {
		again, _ := Score(in, DefaultSettings().Health)
		assert.Equal(t, first, again)
	}
}

func TestScore_Monotonic(t *testing.T) {
	w := DefaultSettings().Health
	base := HealthSignals{ProjectedIncome: 50000, ProjectedExpense: 45000, DeliveryRate: ratio(0.5), HasActivity: true}

	t.Run("margin", func(t *testing.T) {
		prev := -1
		for expense := 200000.0; expense >= 0; expense -= 5000 {
			in := base
			in.ProjectedExpense = expense
			score, _ := Score(in, w)
			assert.GreaterOrEqual(t, score, prev, "expense %v", expense)
			prev = score
		}
	})

	t.Run("delivery rate", func(t *testing.T) {
		prev := -1
		for r := 0.0; r <= 1.0; r += 0.05 {
			in := base
			in.DeliveryRate = ratio(r)
			score, _ := Score(in, w)
			assert.GreaterOrEqual(t, score, prev, "rate %v", r)
			prev = score
		}
	})

	t.Run("budget overruns", func(t *testing.T) {
		prev := 101
		for n := 0; n <= 5; n++ {
			in := base
			in.ExceededCount = n
			score, _ := Score(in, w)
			assert.LessOrEqual(t, score, prev, "overruns %d", n)
			prev = score
		}
	})

	t.Run("burn rate", func(t *testing.T) {
		prev := 101
		for vs := 0; vs <= 300; vs += 10 {
			in := base
			in.ExpenseVsAvg = intPtr(vs)
			score, _ := Score(in, w)
			assert.LessOrEqual(t, score, prev, "expenseVsAvg %d", vs)
			prev = score
		}
	})
}

func TestHealthLabel_Bands(t *testing.T) {
	assert.Equal(t, model.HealthHealthy, HealthLabel(100))
	assert.Equal(t, model.HealthHealthy, HealthLabel(70))
	assert.Equal(t, model.HealthCautious, HealthLabel(69))
	assert.Equal(t, model.HealthCautious, HealthLabel(40))
	assert.Equal(t, model.HealthCritical, HealthLabel(39))
	assert.Equal(t, model.HealthCritical, HealthLabel(0))
}
