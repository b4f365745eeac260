package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"finhealth/internal/model"

	"github.com/google/uuid"
)

// MemoryLedger is an in-memory LedgerRepository holding records of any number of workspaces.
type MemoryLedger struct {
	mu     sync.RWMutex
	ledger model.Ledger
}

func NewMemoryLedger(ledger model.Ledger) *MemoryLedger {
	m := &MemoryLedger{}
	m.Add(ledger)
	return m
}

// LoadMemoryLedger reads a JSON-encoded model.Ledger from path.
func LoadMemoryLedger(path string) (*MemoryLedger, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}
	var ledger model.Ledger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, fmt.Errorf("failed to decode ledger file %s: %w", path, err)
	}
	return NewMemoryLedger(ledger), nil
}

// Add appends records to the store.
func (m *MemoryLedger) Add(ledger model.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger.Transactions = append(m.ledger.Transactions, ledger.Transactions...)
	m.ledger.Orders = append(m.ledger.Orders, ledger.Orders...)
	m.ledger.Budgets = append(m.ledger.Budgets, ledger.Budgets...)
	m.ledger.Products = append(m.ledger.Products, ledger.Products...)
}

func (m *MemoryLedger) FetchLedger(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (model.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return model.Ledger{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := model.Ledger{
		Transactions: []model.Transaction{},
		Orders:       []model.Order{},
		Budgets:      []model.Budget{},
		Products:     []model.Product{},
	}
	fromMonth, toMonth := start.Format(monthLayout), end.Format(monthLayout)

	for _, tx := range m.ledger.Transactions {
		if tx.WorkspaceID == workspaceID && withinDays(tx.Date, start, end) {
			out.Transactions = append(out.Transactions, tx)
		}
	}
	for _, o := range m.ledger.Orders {
		if o.WorkspaceID == workspaceID && withinDays(o.CreatedAt, start, end) {
			out.Orders = append(out.Orders, o)
		}
	}
	for _, b := range m.ledger.Budgets {
		if b.WorkspaceID == workspaceID && b.Month >= fromMonth && b.Month <= toMonth {
			out.Budgets = append(out.Budgets, b)
		}
	}
	for _, p := range m.ledger.Products {
		if p.WorkspaceID == workspaceID {
			out.Products = append(out.Products, p)
		}
	}
	return out, nil
}

// withinDays compares calendar days in start's location.
func withinDays(t, start, end time.Time) bool {
	loc := start.Location()
	t = t.In(loc)
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return !d.Before(start) && !d.After(end)
}
