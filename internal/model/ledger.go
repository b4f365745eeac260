package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType enum constants
const (
	TxTypeIncome  = "income"
	TxTypeExpense = "expense"
)

// OrderStatus constants, in pipeline order
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusReturned  = "returned"
	OrderStatusNoAnswer  = "no_answer"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists every recognized order status in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusReturned,
	OrderStatusNoAnswer,
	OrderStatusCancelled,
}

// Transaction is a single income or expense ledger line owned by one workspace
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_ws_date,priority:1" json:"workspace_id"`
	Type        string          `gorm:"type:varchar(10);not null" json:"type"` // income, expense
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index:idx_transactions_ws_date,priority:2" json:"date"`
	ProductID   *string         `gorm:"type:varchar(100);index" json:"product_id,omitempty"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Budget caps spending on one category (optionally one product) for one month
type Budget struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_ws_month,priority:1" json:"workspace_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Month       string          `gorm:"type:varchar(7);not null;index:idx_budgets_ws_month,priority:2" json:"month"` // YYYY-MM
	ProductID   *string         `gorm:"type:varchar(100)" json:"product_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Order is a customer order; revenue is only realized once delivered
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkspaceID uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_ws_created,priority:1" json:"workspace_id"`
	Status      string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Product     string          `gorm:"type:varchar(100);not null;index" json:"product"`
	Revenue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"revenue"`
	City        string          `gorm:"type:varchar(100)" json:"city"`
	AgentID     *string         `gorm:"type:varchar(100)" json:"agent_id,omitempty"`
	CreatedAt   time.Time       `gorm:"index:idx_orders_ws_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Product is an optional catalog entry; Status is tagged upstream (winner, test, stable, ...)
type Product struct {
	ID          string    `gorm:"type:varchar(100);primaryKey" json:"id"`
	WorkspaceID uuid.UUID `gorm:"type:uuid;primaryKey" json:"workspace_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Status      string    `gorm:"type:varchar(30)" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ledger is the workspace-scoped snapshot returned by the storage collaborator
type Ledger struct {
	Transactions []Transaction `json:"transactions"`
	Orders       []Order       `json:"orders"`
	Budgets      []Budget      `json:"budgets"`
	Products     []Product     `json:"products"`
}
