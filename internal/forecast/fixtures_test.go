package forecast

import (
	"testing"
	"time"

	"finhealth/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testWorkspace = uuid.MustParse("5f0c1a52-8f7e-4d7e-9a61-2b8f3c9d4e10")

// june10 is the clock used by most tests: day 10 of a 30-day month
var june10 = time.Date(2026, time.June, 10, 15, 30, 0, 0, time.UTC)

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func expense(category string, amount int64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          uuid.New(),
		WorkspaceID: testWorkspace,
		Type:        model.TxTypeExpense,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		Date:        date,
	}
}

func income(category string, amount int64, date time.Time) model.Transaction {
	tx := expense(category, amount, date)
	tx.Type = model.TxTypeIncome
	return tx
}

func tagged(tx model.Transaction, productID string) model.Transaction {
	tx.ProductID = strPtr(productID)
	return tx
}

func order(product, status, city string, revenue int64, created time.Time) model.Order {
	return model.Order{
		ID:          uuid.New(),
		WorkspaceID: testWorkspace,
		Status:      status,
		Product:     product,
		Revenue:     decimal.NewFromInt(revenue),
		City:        city,
		CreatedAt:   created,
	}
}

func budget(name, category string, amount int64, month string) model.Budget {
	return model.Budget{
		ID:          uuid.New(),
		WorkspaceID: testWorkspace,
		Name:        name,
		Category:    category,
		Amount:      decimal.NewFromInt(amount),
		Month:       month,
	}
}

func resolve(t *testing.T, month string, now time.Time) Period {
	t.Helper()
	p, err := ResolvePeriod(ReportRequest{WorkspaceID: testWorkspace.String(), Month: month}, now, time.UTC)
	require.NoError(t, err)
	return p
}
