package model

// Narrative section keys expected back from the text-generation collaborator
const (
	SectionSituationSummary    = "situation_summary"
	SectionExpenseAnalysis     = "expense_analysis"
	SectionROIProfitability    = "roi_profitability"
	SectionOperationalAnalysis = "operational_analysis"
	SectionProjectionsRisks    = "projections_risks"
	SectionRecommendations     = "recommendations"
)

// NarrativeSections lists the required sections in presentation order.
var NarrativeSections = []string{
	SectionSituationSummary,
	SectionExpenseAnalysis,
	SectionROIProfitability,
	SectionOperationalAnalysis,
	SectionProjectionsRisks,
	SectionRecommendations,
}

// Narrative status values attached to a strategic report
const (
	NarrativeOK          = "ok"
	NarrativeDisabled    = "disabled"
	NarrativeUnavailable = "unavailable"
)

// RawMetrics are the headline figures handed to the narrative collaborator
type RawMetrics struct {
	HealthScore      int     `json:"healthScore"`
	HealthLabel      string  `json:"healthLabel"`
	DeliveryRate     float64 `json:"deliveryRate"`
	BurnRate         float64 `json:"burnRate"`
	DaysLeft         int     `json:"daysLeft"`
	ProjectedBalance float64 `json:"projectedBalance"`
	ExpenseVsAvg     *int    `json:"expenseVsAvg"`
}

// NarrativeDetails carries the per-product and per-city breakdowns
type NarrativeDetails struct {
	ProductData []ProductTrend `json:"productData"`
	CityData    []CityTrend    `json:"cityData"`
}

// NarrativeInput is the structured payload sent for prose generation
type NarrativeInput struct {
	WorkspaceID string           `json:"workspaceId"`
	Month       string           `json:"month"`
	RawMetrics  RawMetrics       `json:"rawMetrics"`
	Details     NarrativeDetails `json:"details"`
}

// Narrative maps each section key to generated prose
type Narrative map[string]string

// StrategicReport pairs the numeric report with its optional narrative
type StrategicReport struct {
	Report          *ForecastReport `json:"report"`
	Narrative       Narrative       `json:"narrative"`
	NarrativeStatus string          `json:"narrativeStatus"`
	NarrativeError  string          `json:"narrativeError,omitempty"`
}
