package forecast

import (
	"fmt"
	"time"
)

// BaselineMonths is the number of completed months averaged into the comparison baseline.
const BaselineMonths = 3

// Settings tunes the engine. The zero value is not usable; start from DefaultSettings.
type Settings struct {
	Location    *time.Location `toml:"-"`
	Timezone    string         `toml:"timezone"`
	AdCategory  string         `toml:"ad_category"`
	TrendMonths int            `toml:"trend_months"`
	Health      HealthWeights  `toml:"health"`
	Rules       RuleThresholds `toml:"rules"`
}

// HealthWeights are the bounded contributions blended into the health score.
// Margin + Delivery + Budget must not exceed 100.
type HealthWeights struct {
	Margin           float64 `toml:"margin"`
	Delivery         float64 `toml:"delivery"`
	Budget           float64 `toml:"budget"`
	OverrunPenalty   float64 `toml:"overrun_penalty"`
	BurnThreshold    float64 `toml:"burn_threshold"`
	BurnPenaltySlope float64 `toml:"burn_penalty_slope"`
	BurnPenaltyMax   float64 `toml:"burn_penalty_max"`
	Neutral          int     `toml:"neutral"`
}

// RuleThresholds drive the recommendation table
type RuleThresholds struct {
	BudgetPace        float64 `toml:"budget_pace"`
	CategoryVariation int     `toml:"category_variation"`
	BurnVariation     int     `toml:"burn_variation"`
	IncomeDrop        int     `toml:"income_drop"`
	MinDeliveryRate   float64 `toml:"min_delivery_rate"`
	MinSettledOrders  int     `toml:"min_settled_orders"`
	MaxReturnRate     float64 `toml:"max_return_rate"`
	HealthySuccess    int     `toml:"healthy_success"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Location:    time.UTC,
		Timezone:    "UTC",
		AdCategory:  "publicite",
		TrendMonths: 6,
		Health: HealthWeights{
			Margin:           45,
			Delivery:         35,
			Budget:           20,
			OverrunPenalty:   10,
			BurnThreshold:    25,
			BurnPenaltySlope: 0.2,
			BurnPenaltyMax:   15,
			Neutral:          50,
		},
		Rules: RuleThresholds{
			BudgetPace:        120,
			CategoryVariation: 50,
			BurnVariation:     25,
			IncomeDrop:        25,
			MinDeliveryRate:   50,
			MinSettledOrders:  10,
			MaxReturnRate:     20,
			HealthySuccess:    80,
		},
	}
}

// Validate checks the invariants the scorer and period math rely on.
func (s Settings) Validate() error {
	if s.Location == nil {
		return fmt.Errorf("settings: location is required")
	}
	if s.TrendMonths < 1 || s.TrendMonths > 24 {
		return fmt.Errorf("settings: trend_months must be between 1 and 24, got %d", s.TrendMonths)
	}
	w := s.Health
	if w.Margin < 0 || w.Delivery < 0 || w.Budget < 0 || w.OverrunPenalty < 0 ||
		w.BurnPenaltySlope < 0 || w.BurnPenaltyMax < 0 {
		return fmt.Errorf("settings: health weights must be non-negative")
	}
	if w.Margin+w.Delivery+w.Budget > 100 {
		return fmt.Errorf("settings: health weights sum to %.1f, must not exceed 100", w.Margin+w.Delivery+w.Budget)
	}
	if w.Neutral < 0 || w.Neutral > 100 {
		return fmt.Errorf("settings: neutral health score must be within [0,100]")
	}
	return nil
}

// fetchMonths is how many months before the selected one the engine reads.
func (s Settings) fetchMonths() int {
	if s.TrendMonths-1 > BaselineMonths {
		return s.TrendMonths - 1
	}
	return BaselineMonths
}
