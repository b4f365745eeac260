package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"finhealth/internal/model"

	"github.com/shopspring/decimal"
)

const unknownCity = "unknown"

// AnalyzeCategories compares each category of the current window with its own
// average over the baseline months. The month-end projection runs at the month-to-date
// pace, which equals the window when no narrower period was requested. Categories only
// present in the baseline are kept with a zero current figure.
func AnalyzeCategories(current, monthToDate LedgerAggregate, baseline []LedgerAggregate, p Period) []model.CategoryTrend {
	type catRow struct {
		txType   string
		key      string
		display  string
		current  decimal.Decimal
		toDate   decimal.Decimal
		baseline decimal.Decimal
	}

	rows := make(map[string]*catRow)
	order := []string{}
	get := func(ct CategoryTotal) *catRow {
		id := ct.Type + "|" + ct.Key
		r, ok := rows[id]
		if !ok {
			r = &catRow{txType: ct.Type, key: ct.Key, display: ct.Category}
			rows[id] = r
			order = append(order, id)
		}
		return r
	}

	typeTotals := map[string]decimal.Decimal{
		model.TxTypeIncome:  current.TotalIncome,
		model.TxTypeExpense: current.TotalExpense,
	}

	for _, ct := range current.CategoryBreakdown {
		r := get(ct)
		r.display = ct.Category
		r.current = r.current.Add(ct.Total)
	}
	for _, ct := range monthToDate.CategoryBreakdown {
		r := get(ct)
		r.toDate = r.toDate.Add(ct.Total)
	}
	for _, m := range baseline {
		for _, ct := range m.CategoryBreakdown {
			r := get(ct)
			r.baseline = r.baseline.Add(ct.Total)
		}
	}

	trends := make([]model.CategoryTrend, 0, len(rows))
	for _, id := range order {
		r := rows[id]
		avg := 0.0
		if len(baseline) > 0 {
			avg = r.baseline.Div(decimal.NewFromInt(int64(len(baseline)))).InexactFloat64()
		}
		cur := r.current.InexactFloat64()
		projected := extrapolate(r.toDate.InexactFloat64(), p)

		share := 0.0
		if total := typeTotals[r.txType]; total.IsPositive() {
			share = r.current.Mul(hundred).Div(total).InexactFloat64()
		}

		trends = append(trends, model.CategoryTrend{
			Type:         r.txType,
			Category:     r.display,
			CurrentSpent: cur,
			Avg3m:        avg,
			Variation:    Variation(projected, avg),
			Projected:    projected,
			Share:        share,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		a, b := trends[i], trends[j]
		if a.Type != b.Type {
			return a.Type == model.TxTypeExpense
		}
		if a.CurrentSpent != b.CurrentSpent {
			return a.CurrentSpent > b.CurrentSpent
		}
		return normalizeKey(a.Category) < normalizeKey(b.Category)
	})
	return trends
}

// AnalyzeProducts builds per-product order and profitability figures for the window.
// Costs come from expense transactions tagged with the product id; the advertising
// share of those costs is the ad spend used for ROI.
func AnalyzeProducts(ledger model.Ledger, p Period, adCategory string) []model.ProductTrend {
	type productRow struct {
		trend            model.ProductTrend
		revenue          decimal.Decimal
		deliveredRevenue decimal.Decimal
		cost             decimal.Decimal
		adSpend          decimal.Decimal
	}

	rows := make(map[string]*productRow)
	get := func(id string) *productRow {
		r, ok := rows[id]
		if !ok {
			r = &productRow{trend: model.ProductTrend{ProductID: id, Name: id}}
			rows[id] = r
		}
		return r
	}

	for _, o := range ordersBetween(ledger.Orders, p.WindowStart, p.WindowEnd) {
		id := strings.TrimSpace(o.Product)
		if id == "" {
			continue
		}
		r := get(id)
		r.trend.Orders++
		r.revenue = r.revenue.Add(o.Revenue)
		switch o.Status {
		case model.OrderStatusDelivered:
			r.trend.Delivered++
			r.deliveredRevenue = r.deliveredRevenue.Add(o.Revenue)
		case model.OrderStatusReturned:
			r.trend.Returned++
		}
	}

	adKey := normalizeKey(adCategory)
	for _, tx := range ledger.Transactions {
		id := productKey(tx.ProductID)
		if id == "" || tx.Type != model.TxTypeExpense || !inDays(tx.Date, p.WindowStart, p.WindowEnd) {
			continue
		}
		r := get(id)
		r.cost = r.cost.Add(tx.Amount)
		if normalizeKey(tx.Category) == adKey {
			r.adSpend = r.adSpend.Add(tx.Amount)
		}
	}

	for _, prod := range ledger.Products {
		r, ok := rows[strings.TrimSpace(prod.ID)]
		if !ok {
			continue
		}
		if prod.Name != "" {
			r.trend.Name = prod.Name
		}
		r.trend.Status = prod.Status
	}

	trends := make([]model.ProductTrend, 0, len(rows))
	for _, r := range rows {
		t := r.trend
		t.Revenue = r.revenue.InexactFloat64()
		t.Cost = r.cost.InexactFloat64()
		t.AdSpend = r.adSpend.InexactFloat64()
		t.Margin = r.revenue.Sub(r.cost).InexactFloat64()
		t.EstimatedProfit = r.deliveredRevenue.Sub(r.cost).InexactFloat64()
		t.DeliveryRate = ratePercent(t.Delivered, t.Orders)
		t.ROI = r.revenue.Sub(r.adSpend).Mul(hundred).Div(decimal.Max(r.adSpend, decimal.NewFromInt(1))).InexactFloat64()
		trends = append(trends, t)
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Revenue != trends[j].Revenue {
			return trends[i].Revenue > trends[j].Revenue
		}
		return trends[i].ProductID < trends[j].ProductID
	})
	return trends
}

// fulfilment accumulates order counts for a city or agent
type fulfilment struct {
	orders    int
	delivered int
	returned  int
	revenue   decimal.Decimal
}

func (f *fulfilment) add(o model.Order) {
	f.orders++
	f.revenue = f.revenue.Add(o.Revenue)
	switch o.Status {
	case model.OrderStatusDelivered:
		f.delivered++
	case model.OrderStatusReturned:
		f.returned++
	}
}

// AnalyzeCities groups the window's orders by delivery city.
func AnalyzeCities(orders []model.Order, p Period) []model.CityTrend {
	groups := make(map[string]*fulfilment)
	for _, o := range ordersBetween(orders, p.WindowStart, p.WindowEnd) {
		city := strings.TrimSpace(o.City)
		if city == "" {
			city = unknownCity
		}
		f, ok := groups[city]
		if !ok {
			f = &fulfilment{}
			groups[city] = f
		}
		f.add(o)
	}

	cities := make([]model.CityTrend, 0, len(groups))
	for city, f := range groups {
		cities = append(cities, model.CityTrend{
			City:         city,
			Orders:       f.orders,
			Revenue:      f.revenue.InexactFloat64(),
			Delivered:    f.delivered,
			Returned:     f.returned,
			DeliveryRate: ratePercent(f.delivered, f.orders),
			ReturnRate:   ratePercent(f.returned, f.orders),
		})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Orders != cities[j].Orders {
			return cities[i].Orders > cities[j].Orders
		}
		return cities[i].City < cities[j].City
	})
	return cities
}

// AnalyzeAgents groups the window's orders by confirmation agent; unassigned orders are skipped.
func AnalyzeAgents(orders []model.Order, p Period) []model.AgentTrend {
	groups := make(map[string]*fulfilment)
	for _, o := range ordersBetween(orders, p.WindowStart, p.WindowEnd) {
		agent := productKey(o.AgentID)
		if agent == "" {
			continue
		}
		f, ok := groups[agent]
		if !ok {
			f = &fulfilment{}
			groups[agent] = f
		}
		f.add(o)
	}

	agents := make([]model.AgentTrend, 0, len(groups))
	for agent, f := range groups {
		agents = append(agents, model.AgentTrend{
			AgentID:      agent,
			Orders:       f.orders,
			Revenue:      f.revenue.InexactFloat64(),
			Delivered:    f.delivered,
			Returned:     f.returned,
			DeliveryRate: ratePercent(f.delivered, f.orders),
			ReturnRate:   ratePercent(f.returned, f.orders),
		})
	}
	sort.Slice(agents, func(i, j int) bool {
		if agents[i].Orders != agents[j].Orders {
			return agents[i].Orders > agents[j].Orders
		}
		return agents[i].AgentID < agents[j].AgentID
	})
	return agents
}

// OrderStats is the order summary plus the settled-order count used by the scorer
type OrderStats struct {
	Summary model.OrderSummary
	Settled int
}

// DeliveryRatio is delivered / settled in [0,1], nil when no order has settled.
func (s OrderStats) DeliveryRatio() *float64 {
	if s.Settled == 0 {
		return nil
	}
	r := s.Summary.DeliveryRate / 100
	return &r
}

// SummarizeOrders counts the window's orders by status. Growth compares against the
// same number of elapsed days of the previous month. Pending orders are excluded from
// delivery and return rates because their outcome is not known yet.
func SummarizeOrders(orders []model.Order, p Period) OrderStats {
	current := ordersBetween(orders, p.WindowStart, p.WindowEnd)

	prevStart := p.MonthsBack(1)
	prevEnd := monthEnd(prevStart)
	if !p.Complete {
		elapsedEnd := prevStart.AddDate(0, 0, p.DaysPassed-1)
		if elapsedEnd.Before(prevEnd) {
			prevEnd = elapsedEnd
		}
	}
	previous := ordersBetween(orders, prevStart, prevEnd)

	byStatus := make(map[string]*model.StatusBucket, len(model.OrderStatuses))
	buckets := make([]model.StatusBucket, len(model.OrderStatuses))
	for i, s := range model.OrderStatuses {
		buckets[i].Status = s
		byStatus[s] = &buckets[i]
	}

	revenue := decimal.Zero
	statusRevenue := make(map[string]decimal.Decimal)
	for _, o := range current {
		revenue = revenue.Add(o.Revenue)
		if b, ok := byStatus[o.Status]; ok {
			b.Count++
		}
		statusRevenue[o.Status] = statusRevenue[o.Status].Add(o.Revenue)
	}
	for i := range buckets {
		buckets[i].Revenue = statusRevenue[buckets[i].Status].InexactFloat64()
	}

	settled := len(current) - byStatus[model.OrderStatusPending].Count
	stats := OrderStats{
		Settled: settled,
		Summary: model.OrderSummary{
			ThisMonth:        len(current),
			RevenueThisMonth: revenue.InexactFloat64(),
			PreviousMonth:    len(previous),
			DeliveryRate:     ratePercent(byStatus[model.OrderStatusDelivered].Count, settled),
			ReturnRate:       ratePercent(byStatus[model.OrderStatusReturned].Count, settled),
			ByStatus:         buckets,
		},
	}
	if len(previous) > 0 {
		g := int(math.Round(float64(len(current)-len(previous)) / float64(len(previous)) * 100))
		stats.Summary.Growth = &g
	}
	return stats
}

func ordersBetween(orders []model.Order, start, end time.Time) []model.Order {
	var out []model.Order
	for _, o := range orders {
		if inDays(o.CreatedAt, start, end) {
			out = append(out, o)
		}
	}
	return out
}

func ratePercent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
