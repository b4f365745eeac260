package forecast

import (
	"testing"
	"time"

	"finhealth/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productLedger has 20 June orders for P1: 14 delivered, 4 returned, 2 pending.
func productLedger() model.Ledger {
	var ledger model.Ledger
	for i := 0; i < 20; i++ {
		status := model.OrderStatusDelivered
		switch {
		case i >= 18:
			status = model.OrderStatusPending
		case i >= 14:
			status = model.OrderStatusReturned
		}
		city := "Rabat"
		if i%2 == 0 {
			city = "Casablanca"
		}
		if i == 19 {
			city = ""
		}
		o := order("P1", status, city, 10000, day(time.June, 1+i%10))
		if i < 5 {
			o.AgentID = strPtr("A1")
		}
		ledger.Orders = append(ledger.Orders, o)
	}
	for i := 0; i < 10; i++ {
		ledger.Orders = append(ledger.Orders, order("P1", model.OrderStatusDelivered, "Rabat", 5000, day(time.May, 1+i)))
	}
	ledger.Orders = append(ledger.Orders, order("P1", model.OrderStatusDelivered, "Rabat", 5000, day(time.May, 20)))

	ledger.Transactions = []model.Transaction{
		tagged(expense("Publicité", 50000, day(time.June, 3)), "P1"),
		tagged(expense("Stock", 10000, day(time.June, 4)), "P1"),
		tagged(expense("Publicité", 7000, day(time.May, 4)), "P1"),
	}
	ledger.Products = []model.Product{{ID: "P1", WorkspaceID: testWorkspace, Name: "Argan Oil", Status: "winner"}}
	return ledger
}

func TestAnalyzeProducts_Profitability(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	products := AnalyzeProducts(productLedger(), p, "publicite")
	require.Len(t, products, 1)

	pr := products[0]
	assert.Equal(t, "P1", pr.ProductID)
	assert.Equal(t, "Argan Oil", pr.Name)
	assert.Equal(t, "winner", pr.Status)
	assert.Equal(t, 20, pr.Orders)
	assert.Equal(t, 14, pr.Delivered)
	assert.Equal(t, 4, pr.Returned)
	assert.Equal(t, 200000.0, pr.Revenue)
	assert.Equal(t, 70.0, pr.DeliveryRate)
	assert.Equal(t, 50000.0, pr.AdSpend)
	assert.Equal(t, 60000.0, pr.Cost)
	assert.Equal(t, 300.0, pr.ROI)
	assert.Equal(t, 140000.0, pr.Margin)
	assert.Equal(t, 80000.0, pr.EstimatedProfit)
}

func TestAnalyzeProducts_AdSpendWithoutOrders(t *testing.T) {
	p := resolve(t, "2026-06", june10)
	ledger := model.Ledger{Transactions: []model.Transaction{
		tagged(expense("Publicité", 4000, day(time.June, 2)), "P9"),
	}}

	products := AnalyzeProducts(ledger, p, "Publicité")
	require.Len(t, products, 1)
	assert.Equal(t, "P9", products[0].Name)
	assert.Equal(t, 0, products[0].Orders)
	assert.Equal(t, -100.0, products[0].ROI)
}

func TestAnalyzeCities(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	cities := AnalyzeCities(productLedger().Orders, p)
	require.Len(t, cities, 3)

	assert.Equal(t, "Casablanca", cities[0].City)
	assert.Equal(t, 10, cities[0].Orders)
	assert.Equal(t, 7, cities[0].Delivered)
	assert.Equal(t, 2, cities[0].Returned)
	assert.Equal(t, 70.0, cities[0].DeliveryRate)
	assert.Equal(t, 20.0, cities[0].ReturnRate)

	assert.Equal(t, "Rabat", cities[1].City)
	assert.Equal(t, 9, cities[1].Orders)

	assert.Equal(t, unknownCity, cities[2].City)
	assert.Equal(t, 1, cities[2].Orders)
}

func TestAnalyzeAgents_SkipsUnassigned(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	agents := AnalyzeAgents(productLedger().Orders, p)
	require.Len(t, agents, 1)
	assert.Equal(t, "A1", agents[0].AgentID)
	assert.Equal(t, 5, agents[0].Orders)
	assert.Equal(t, 100.0, agents[0].DeliveryRate)
}

func TestSummarizeOrders(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	stats := SummarizeOrders(productLedger().Orders, p)
	s := stats.Summary

	assert.Equal(t, 20, s.ThisMonth)
	assert.Equal(t, 200000.0, s.RevenueThisMonth)
	assert.Equal(t, 10, s.PreviousMonth, "compared against the same elapsed days")
	require.NotNil(t, s.Growth)
	assert.Equal(t, 100, *s.Growth)
	assert.Equal(t, 18, stats.Settled)
	assert.InDelta(t, 77.78, s.DeliveryRate, 0.01)
	assert.InDelta(t, 22.22, s.ReturnRate, 0.01)

	require.Len(t, s.ByStatus, len(model.OrderStatuses))
	counts := map[string]int{}
	for _, b := range s.ByStatus {
		counts[b.Status] = b.Count
	}
	assert.Equal(t, 2, counts[model.OrderStatusPending])
	assert.Equal(t, 14, counts[model.OrderStatusDelivered])
	assert.Equal(t, 0, counts[model.OrderStatusCancelled])

	require.NotNil(t, stats.DeliveryRatio())
	assert.InDelta(t, 0.7778, *stats.DeliveryRatio(), 0.0001)
}

func TestSummarizeOrders_NoHistory(t *testing.T) {
	p := resolve(t, "2026-06", june10)

	stats := SummarizeOrders([]model.Order{
		order("P1", model.OrderStatusPending, "Rabat", 100, day(time.June, 2)),
	}, p)

	assert.Nil(t, stats.Summary.Growth)
	assert.Equal(t, 0, stats.Settled)
	assert.Nil(t, stats.DeliveryRatio())
	assert.Equal(t, 0.0, stats.Summary.DeliveryRate)
}

func TestAnalyzeCategories(t *testing.T) {
	p := resolve(t, "2026-06", june10)
	ledger := model.Ledger{Transactions: []model.Transaction{
		expense("Stock", 3000, day(time.June, 5)),
		income("Ventes", 1000, day(time.June, 5)),
		expense("Stock", 3000, day(time.May, 5)),
		expense("Stock", 3000, day(time.April, 5)),
		expense("Stock", 3000, day(time.March, 5)),
		expense("Loyer", 6000, day(time.May, 1)),
	}}

	current, err := Aggregate(testWorkspace, ledger, p.WindowStart, p.WindowEnd)
	require.NoError(t, err)
	var baseline []LedgerAggregate
	for back := 1; back <= BaselineMonths; back++ {
		m, err := AggregateMonth(testWorkspace, ledger, p.MonthsBack(back))
		require.NoError(t, err)
		baseline = append(baseline, m)
	}

	trends := AnalyzeCategories(current, current, baseline, p)
	require.Len(t, trends, 3)

	stock := trends[0]
	assert.Equal(t, "Stock", stock.Category)
	assert.Equal(t, 3000.0, stock.CurrentSpent)
	assert.Equal(t, 3000.0, stock.Avg3m)
	assert.Equal(t, 9000.0, stock.Projected)
	require.NotNil(t, stock.Variation)
	assert.Equal(t, 200, *stock.Variation)
	assert.Equal(t, 100.0, stock.Share)

	rent := trends[1]
	assert.Equal(t, "Loyer", rent.Category)
	assert.Equal(t, 0.0, rent.CurrentSpent)
	assert.Equal(t, 2000.0, rent.Avg3m)
	require.NotNil(t, rent.Variation)
	assert.Equal(t, -100, *rent.Variation)

	sales := trends[2]
	assert.Equal(t, model.TxTypeIncome, sales.Type)
	assert.Nil(t, sales.Variation, "no baseline means no variation")
}
