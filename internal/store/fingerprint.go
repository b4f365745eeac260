package store

import (
	"fmt"
	"time"

	"finhealth/internal/forecast"
	"finhealth/internal/model"

	"github.com/mitchellh/hashstructure/v2"
)

// Fingerprint hashes the ledger into a short data version. Record order does not
// matter. Amounts and timestamps are hashed through their string form since
// decimal.Decimal keeps its value in unexported fields.
func Fingerprint(l model.Ledger) (string, error) {
	h, err := hashstructure.Hash(canonical(l), hashstructure.FormatV2, &hashstructure.HashOptions{
		SlicesAsSets: true,
	})
	if err != nil {
		return "", fmt.Errorf("hashing ledger: %w", err)
	}
	return fmt.Sprintf("%016x", h), nil
}

// SettingsFingerprint hashes the engine tuning. The location is hashed by name since
// time.Location has no exported fields.
func SettingsFingerprint(s forecast.Settings) (string, error) {
	view := settingsView{Settings: s}
	if s.Location != nil {
		view.Location = s.Location.String()
	}
	view.Settings.Location = nil

	h, err := hashstructure.Hash(view, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing settings: %w", err)
	}
	return fmt.Sprintf("%016x", h), nil
}

type settingsView struct {
	Location string
	Settings forecast.Settings
}

type ledgerView struct {
	Transactions []txView
	Orders       []orderView
	Budgets      []budgetView
	Products     []productView
}

type txView struct {
	ID, Type, Category, Amount, Date, ProductID, Description, UpdatedAt string
}

type orderView struct {
	ID, Status, Product, Revenue, City, AgentID, CreatedAt, UpdatedAt string
}

type budgetView struct {
	ID, Name, Category, Amount, Month, ProductID, UpdatedAt string
}

type productView struct {
	ID, Name, Status, UpdatedAt string
}

func canonical(l model.Ledger) ledgerView {
	v := ledgerView{
		Transactions: make([]txView, 0, len(l.Transactions)),
		Orders:       make([]orderView, 0, len(l.Orders)),
		Budgets:      make([]budgetView, 0, len(l.Budgets)),
		Products:     make([]productView, 0, len(l.Products)),
	}
	for _, t := range l.Transactions {
		v.Transactions = append(v.Transactions, txView{
			ID:          t.ID.String(),
			Type:        t.Type,
			Category:    t.Category,
			Amount:      t.Amount.String(),
			Date:        stamp(t.Date),
			ProductID:   deref(t.ProductID),
			Description: t.Description,
			UpdatedAt:   stamp(t.UpdatedAt),
		})
	}
	for _, o := range l.Orders {
		v.Orders = append(v.Orders, orderView{
			ID:        o.ID.String(),
			Status:    o.Status,
			Product:   o.Product,
			Revenue:   o.Revenue.String(),
			City:      o.City,
			AgentID:   deref(o.AgentID),
			CreatedAt: stamp(o.CreatedAt),
			UpdatedAt: stamp(o.UpdatedAt),
		})
	}
	for _, b := range l.Budgets {
		v.Budgets = append(v.Budgets, budgetView{
			ID:        b.ID.String(),
			Name:      b.Name,
			Category:  b.Category,
			Amount:    b.Amount.String(),
			Month:     b.Month,
			ProductID: deref(b.ProductID),
			UpdatedAt: stamp(b.UpdatedAt),
		})
	}
	for _, p := range l.Products {
		v.Products = append(v.Products, productView{
			ID:        p.ID,
			Name:      p.Name,
			Status:    p.Status,
			UpdatedAt: stamp(p.UpdatedAt),
		})
	}
	return v
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
