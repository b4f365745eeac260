package model

// Severity levels shared by budget badges and recommendations
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
	SeveritySuccess  = "success"
	SeverityOK       = "ok"
)

// Health labels
const (
	HealthHealthy  = "healthy"
	HealthCautious = "cautious"
	HealthCritical = "critical"
)

// ForecastReport is the full computed report for one workspace and one month
type ForecastReport struct {
	WorkspaceID string `json:"workspaceId"`
	Month       string `json:"month"`
	AsOf        string `json:"asOf"`

	HealthScore int    `json:"healthScore"`
	HealthLabel string `json:"healthLabel"`

	TotalIncome      float64 `json:"totalIncome"`
	TotalExpense     float64 `json:"totalExpense"`
	DailyExpenseRate float64 `json:"dailyExpenseRate"`
	DailyIncomeRate  float64 `json:"dailyIncomeRate"`
	Avg3mExpense     float64 `json:"avg3mExpense"`
	Avg3mIncome      float64 `json:"avg3mIncome"`

	ProjectedExpense float64 `json:"projectedExpense"`
	ProjectedIncome  float64 `json:"projectedIncome"`
	ProjectedBalance float64 `json:"projectedBalance"`

	// nil when the 3-month baseline is zero
	ExpenseVsAvg *int `json:"expenseVsAvg"`
	IncomeVsAvg  *int `json:"incomeVsAvg"`

	DaysPassed  int `json:"daysPassed"`
	DaysInMonth int `json:"daysInMonth"`
	DaysLeft    int `json:"daysLeft"`

	Orders           OrderSummary     `json:"orders"`
	BudgetAlerts     []BudgetAlert    `json:"budgetAlerts"`
	Recommendations  []Recommendation `json:"recommendations"`
	CategoryAnalysis []CategoryTrend  `json:"categoryAnalysis"`
	ProductAnalysis  []ProductTrend   `json:"productAnalysis"`
	CityAnalysis     []CityTrend      `json:"cityAnalysis"`
	AgentAnalysis    []AgentTrend     `json:"agentAnalysis"`
	WeeklyTrend      []WeeklyPoint    `json:"weeklyTrend"`
	MonthlyTrend     []MonthlyPoint   `json:"monthlyTrend"`
	Warnings         []string         `json:"warnings"`
}

// OrderSummary describes order volume and fulfilment for the month
type OrderSummary struct {
	ThisMonth        int            `json:"thisMonth"`
	RevenueThisMonth float64        `json:"revenueThisMonth"`
	PreviousMonth    int            `json:"previousMonth"`
	Growth           *int           `json:"growth"`
	DeliveryRate     float64        `json:"deliveryRate"`
	ReturnRate       float64        `json:"returnRate"`
	ByStatus         []StatusBucket `json:"byStatus"`
}

// StatusBucket counts orders sharing one status
type StatusBucket struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// BudgetStatus is the utilization of a single budget
type BudgetStatus struct {
	BudgetID            string  `json:"budgetId"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	ProductID           *string `json:"productId,omitempty"`
	Amount              float64 `json:"amount"`
	TotalSpent          float64 `json:"totalSpent"`
	Remaining           float64 `json:"remaining"`
	Percentage          float64 `json:"percentage"`
	ProjectedPercentage float64 `json:"projectedPercentage"`
	Severity            string  `json:"severity"`
	SeverityLabel       string  `json:"severityLabel"`
}

// BudgetAlert flags a budget that is over its warning threshold now or on pace
type BudgetAlert struct {
	BudgetID            string  `json:"budgetId"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	Percentage          float64 `json:"percentage"`
	ProjectedPercentage float64 `json:"projectedPercentage"`
	Spent               float64 `json:"spent"`
	Amount              float64 `json:"amount"`
	Severity            string  `json:"severity"`
}

// BudgetSummaryReport aggregates every budget of one month
type BudgetSummaryReport struct {
	Month          string         `json:"month"`
	TotalBudget    float64        `json:"totalBudget"`
	TotalSpent     float64        `json:"totalSpent"`
	TotalRemaining float64        `json:"totalRemaining"`
	ExceededCount  int            `json:"exceededCount"`
	Budgets        []BudgetStatus `json:"budgets"`
	Warnings       []string       `json:"warnings"`
}

// CategoryTrend compares one category of the month to its own baseline
type CategoryTrend struct {
	Type         string  `json:"type"`
	Category     string  `json:"category"`
	CurrentSpent float64 `json:"currentSpent"`
	Avg3m        float64 `json:"avg3m"`
	Variation    *int    `json:"variation"`
	Projected    float64 `json:"projected"`
	Share        float64 `json:"share"`
}

// ProductTrend holds order and profitability figures for one product
type ProductTrend struct {
	ProductID       string  `json:"productId"`
	Name            string  `json:"name"`
	Status          string  `json:"status,omitempty"`
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	Delivered       int     `json:"delivered"`
	Returned        int     `json:"returned"`
	DeliveryRate    float64 `json:"deliveryRate"`
	Cost            float64 `json:"cost"`
	AdSpend         float64 `json:"adSpend"`
	Margin          float64 `json:"margin"`
	EstimatedProfit float64 `json:"estimatedProfit"`
	ROI             float64 `json:"roi"`
}

// CityTrend holds fulfilment figures for one delivery city
type CityTrend struct {
	City         string  `json:"city"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
	Delivered    int     `json:"delivered"`
	Returned     int     `json:"returned"`
	DeliveryRate float64 `json:"deliveryRate"`
	ReturnRate   float64 `json:"returnRate"`
}

// AgentTrend holds fulfilment figures for one confirmation agent
type AgentTrend struct {
	AgentID      string  `json:"agentId"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
	Delivered    int     `json:"delivered"`
	Returned     int     `json:"returned"`
	DeliveryRate float64 `json:"deliveryRate"`
	ReturnRate   float64 `json:"returnRate"`
}

// Recommendation is a typed advisory produced by the rule table
type Recommendation struct {
	Type   string `json:"type"` // critical, warning, info, success
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Action string `json:"action"`
}

// WeeklyPoint is one week of the selected month
type WeeklyPoint struct {
	Week    string  `json:"week"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthlyPoint is one month of the trailing series
type MonthlyPoint struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Margin  float64 `json:"margin"`
}
