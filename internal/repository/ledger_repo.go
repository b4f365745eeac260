package repository

import (
	"context"
	"fmt"
	"time"

	"finhealth/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const monthLayout = "2006-01"

// LedgerRepository reads one workspace's ledger for an inclusive day range.
type LedgerRepository interface {
	FetchLedger(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (model.Ledger, error)
}

type ledgerRepository struct {
	db        *gorm.DB
	txManager TransactionManager
}

func NewLedgerRepository(db *gorm.DB, txManager TransactionManager) LedgerRepository {
	return &ledgerRepository{db: db, txManager: txManager}
}

// FetchLedger reads transactions and orders dated within [start, end], the budgets of every
// month touched by the range and the workspace's product catalog, all from one snapshot.
func (r *ledgerRepository) FetchLedger(ctx context.Context, workspaceID uuid.UUID, start, end time.Time) (model.Ledger, error) {
	ledger := model.Ledger{
		Transactions: []model.Transaction{},
		Orders:       []model.Order{},
		Budgets:      []model.Budget{},
		Products:     []model.Product{},
	}
	until := end.AddDate(0, 0, 1)

	err := r.txManager.RunInReadOnlyTx(ctx, func(txCtx context.Context) error {
		db := GetDB(txCtx, r.db)

		if err := db.
			Where("workspace_id = ? AND date >= ? AND date < ?", workspaceID, start, until).
			Order("date ASC, id ASC").
			Find(&ledger.Transactions).Error; err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}

		if err := db.
			Where("workspace_id = ? AND created_at >= ? AND created_at < ?", workspaceID, start, until).
			Order("created_at ASC, id ASC").
			Find(&ledger.Orders).Error; err != nil {
			return fmt.Errorf("failed to query orders: %w", err)
		}

		if err := db.
			Where("workspace_id = ? AND month >= ? AND month <= ?", workspaceID, start.Format(monthLayout), end.Format(monthLayout)).
			Order("month ASC, id ASC").
			Find(&ledger.Budgets).Error; err != nil {
			return fmt.Errorf("failed to query budgets: %w", err)
		}

		if err := db.
			Where("workspace_id = ?", workspaceID).
			Order("id ASC").
			Find(&ledger.Products).Error; err != nil {
			return fmt.Errorf("failed to query products: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Ledger{}, err
	}
	return ledger, nil
}
