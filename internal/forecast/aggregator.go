// Package forecast computes budget health, run-rate projections and advisories
// from a workspace-scoped ledger snapshot. Every function is pure.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"finhealth/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryTotal is one (type, category) group of an aggregate
type CategoryTotal struct {
	Type     string
	Category string // first spelling seen
	Key      string // normalized grouping key
	Total    decimal.Decimal
	Count    int
}

// DailyBucket holds one calendar day of an aggregate
type DailyBucket struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// LedgerAggregate sums the transactions of one inclusive day window
type LedgerAggregate struct {
	Start             time.Time
	End               time.Time
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	IncomeCount       int
	ExpenseCount      int
	CategoryBreakdown []CategoryTotal
	DailyBuckets      []DailyBucket
}

// ValidateLedger asserts that every record belongs to workspaceID and carries sane values.
// A mismatch means the storage collaborator broke tenant isolation; callers must fail closed.
func ValidateLedger(workspaceID uuid.UUID, ledger model.Ledger) error {
	if workspaceID == uuid.Nil {
		return fmt.Errorf("%w: nil uuid", ErrInvalidWorkspace)
	}
	for _, tx := range ledger.Transactions {
		if err := checkTransaction(workspaceID, tx); err != nil {
			return err
		}
	}
	for _, o := range ledger.Orders {
		if o.WorkspaceID != workspaceID {
			return fmt.Errorf("%w: order %s has workspace %s", ErrForeignRecord, o.ID, o.WorkspaceID)
		}
		if o.Revenue.IsNegative() {
			return fmt.Errorf("%w: order %s revenue %s", ErrNegativeAmount, o.ID, o.Revenue)
		}
		if !knownStatus(o.Status) {
			return fmt.Errorf("%w: order %s has status %q", ErrInvalidRecord, o.ID, o.Status)
		}
	}
	for _, b := range ledger.Budgets {
		if b.WorkspaceID != workspaceID {
			return fmt.Errorf("%w: budget %s has workspace %s", ErrForeignRecord, b.ID, b.WorkspaceID)
		}
	}
	for _, p := range ledger.Products {
		if p.WorkspaceID != workspaceID {
			return fmt.Errorf("%w: product %s has workspace %s", ErrForeignRecord, p.ID, p.WorkspaceID)
		}
	}
	return nil
}

func checkTransaction(workspaceID uuid.UUID, tx model.Transaction) error {
	if tx.WorkspaceID != workspaceID {
		return fmt.Errorf("%w: transaction %s has workspace %s", ErrForeignRecord, tx.ID, tx.WorkspaceID)
	}
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction %s amount %s", ErrNegativeAmount, tx.ID, tx.Amount)
	}
	if tx.Type != model.TxTypeIncome && tx.Type != model.TxTypeExpense {
		return fmt.Errorf("%w: transaction %s has type %q", ErrInvalidRecord, tx.ID, tx.Type)
	}
	return nil
}

func knownStatus(status string) bool {
	for _, s := range model.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Aggregate sums the workspace's transactions dated within [start, end] (calendar days
// in start's location). An empty window yields zeroed totals, never nil slices.
func Aggregate(workspaceID uuid.UUID, ledger model.Ledger, start, end time.Time) (LedgerAggregate, error) {
	if workspaceID == uuid.Nil {
		return LedgerAggregate{}, fmt.Errorf("%w: nil uuid", ErrInvalidWorkspace)
	}

	loc := start.Location()
	start = dayOf(start, loc)
	end = dayOf(end, loc)

	agg := LedgerAggregate{
		Start:             start,
		End:               end,
		CategoryBreakdown: []CategoryTotal{},
		DailyBuckets:      []DailyBucket{},
	}

	catMap := make(map[string]*CategoryTotal)
	dayMap := make(map[string]*DailyBucket)

	for _, tx := range ledger.Transactions {
		if err := checkTransaction(workspaceID, tx); err != nil {
			return LedgerAggregate{}, err
		}
		if !inDays(tx.Date, start, end) {
			continue
		}

		dayKey := tx.Date.In(loc).Format(time.DateOnly)
		db, ok := dayMap[dayKey]
		if !ok {
			db = &DailyBucket{Date: dayOf(tx.Date, loc)}
			dayMap[dayKey] = db
		}

		switch tx.Type {
		case model.TxTypeIncome:
			agg.TotalIncome = agg.TotalIncome.Add(tx.Amount)
			agg.IncomeCount++
			db.Income = db.Income.Add(tx.Amount)
		case model.TxTypeExpense:
			agg.TotalExpense = agg.TotalExpense.Add(tx.Amount)
			agg.ExpenseCount++
			db.Expense = db.Expense.Add(tx.Amount)
		}

		key := normalizeKey(tx.Category)
		ct, ok := catMap[tx.Type+"|"+key]
		if !ok {
			ct = &CategoryTotal{Type: tx.Type, Category: tx.Category, Key: key}
			catMap[tx.Type+"|"+key] = ct
		}
		ct.Total = ct.Total.Add(tx.Amount)
		ct.Count++
	}

	// Fill in every day in the range so the series shows gaps as zeros
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if db, ok := dayMap[day.Format(time.DateOnly)]; ok {
			agg.DailyBuckets = append(agg.DailyBuckets, *db)
			continue
		}
		agg.DailyBuckets = append(agg.DailyBuckets, DailyBucket{Date: day})
	}

	for _, ct := range catMap {
		agg.CategoryBreakdown = append(agg.CategoryBreakdown, *ct)
	}
	sort.Slice(agg.CategoryBreakdown, func(i, j int) bool {
		a, b := agg.CategoryBreakdown[i], agg.CategoryBreakdown[j]
		if a.Type != b.Type {
			return a.Type == model.TxTypeExpense
		}
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Key < b.Key
	})

	return agg, nil
}

// AggregateMonth aggregates one whole calendar month starting at monthStart.
func AggregateMonth(workspaceID uuid.UUID, ledger model.Ledger, monthStart time.Time) (LedgerAggregate, error) {
	return Aggregate(workspaceID, ledger, monthStart, monthEnd(monthStart))
}

// CategoryTotalFor returns the total of one category side, zero when absent.
func (a LedgerAggregate) CategoryTotalFor(txType, key string) decimal.Decimal {
	for _, ct := range a.CategoryBreakdown {
		if ct.Type == txType && ct.Key == key {
			return ct.Total
		}
	}
	return decimal.Zero
}
