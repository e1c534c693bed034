package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discrepancy is an order whose stored total no longer matches its entries
type Discrepancy struct {
	Kind        string `json:"kind"`
	OrderID     uint   `json:"order_id"`
	StoredTotal string `json:"stored_total"`
	EntryTotal  string `json:"entry_total"`
	Repaired    bool   `json:"repaired"`
}

// ReconciliationReport is the outcome of one reconciliation run
type ReconciliationReport struct {
	RunID         string        `json:"run_id"`
	TriggeredBy   string        `json:"triggered_by"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	Repair        bool          `json:"repair"`
	OrdersChecked int           `json:"orders_checked"`
	Discrepancies []Discrepancy `json:"discrepancies"`
	ReportKey     string        `json:"report_key,omitempty"`
}

// Reconciler compares every sales and service order total against the sum
// of its entry prices
type Reconciler struct {
	db     *gorm.DB
	store  ReportStore
	repair bool
}

// NewReconciler creates a reconciler. store may be nil to skip archiving;
// repair makes the run rewrite mismatched totals.
func NewReconciler(db *gorm.DB, store ReportStore, repair bool) *Reconciler {
	return &Reconciler{db: db, store: store, repair: repair}
}

type totalsTable struct {
	kind     string
	newOrder func() interface{}
	newEntry func() interface{}
}

var reconciledTables = []totalsTable{
	{
		kind:     kindSalesOrder,
		newOrder: func() interface{} { return &models.SalesOrder{} },
		newEntry: func() interface{} { return &models.SalesOrderEntry{} },
	},
	{
		kind:     kindServiceOrder,
		newOrder: func() interface{} { return &models.ServiceOrder{} },
		newEntry: func() interface{} { return &models.ServiceOrderEntry{} },
	},
}

type orderTotalRow struct {
	ID         uint
	TotalPrice decimal.Decimal
}

type entryPriceRow struct {
	OrderID    uint
	EntryPrice decimal.Decimal
}

// Run checks all orders, repairs when enabled and archives the report when
// a store is configured. An archive failure is returned alongside the report.
func (r *Reconciler) Run(ctx context.Context, triggeredBy string) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		RunID:         uuid.New().String(),
		TriggeredBy:   triggeredBy,
		StartedAt:     time.Now().UTC(),
		Repair:        r.repair,
		Discrepancies: []Discrepancy{},
	}

	for _, table := range reconciledTables {
		checked, found, err := r.check(ctx, table)
		if err != nil {
			return nil, err
		}
		report.OrdersChecked += checked
		report.Discrepancies = append(report.Discrepancies, found...)
	}
	report.FinishedAt = time.Now().UTC()

	log.Printf("Reconciliation %s checked %d orders, found %d discrepancies",
		report.RunID, report.OrdersChecked, len(report.Discrepancies))

	if r.store == nil {
		return report, nil
	}
	if err := r.archive(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// snapshot reads every order total and entry price of one order type from a
// single read-only snapshot, so entries written mid-run never show up as drift
func (r *Reconciler) snapshot(ctx context.Context, table totalsTable) ([]orderTotalRow, []entryPriceRow, error) {
	var orders []orderTotalRow
	var entries []entryPriceRow

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(table.newOrder()).Select("id, total_price").Order("id ASC").Scan(&orders).Error; err != nil {
			return fmt.Errorf("failed to load %s totals: %w", table.kind, err)
		}
		if err := tx.Model(table.newEntry()).Select("order_id, entry_price").Scan(&entries).Error; err != nil {
			return fmt.Errorf("failed to load %s entry prices: %w", table.kind, err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, err
	}
	return orders, entries, nil
}

func (r *Reconciler) check(ctx context.Context, table totalsTable) (int, []Discrepancy, error) {
	orders, entries, err := r.snapshot(ctx, table)
	if err != nil {
		return 0, nil, err
	}

	prices := make(map[uint][]decimal.Decimal)
	for _, e := range entries {
		prices[e.OrderID] = append(prices[e.OrderID], e.EntryPrice)
	}

	var found []Discrepancy
	for _, o := range orders {
		expected := sumEntryPrices(prices[o.ID])
		if roundMoney(o.TotalPrice).Equal(expected) {
			continue
		}

		d := Discrepancy{
			Kind:        table.kind,
			OrderID:     o.ID,
			StoredTotal: o.TotalPrice.StringFixed(moneyPlaces),
			EntryTotal:  expected.StringFixed(moneyPlaces),
		}
		if r.repair {
			if err := r.repairTotal(ctx, table, o.ID); err != nil {
				return 0, nil, err
			}
			d.Repaired = true
		}
		found = append(found, d)
	}
	return len(orders), found, nil
}

// repairTotal recomputes one order's total under its row lock, so entry
// writes in flight are either fully counted or not at all
func (r *Reconciler) repairTotal(ctx context.Context, table totalsTable, orderID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked []uint
		if err := forUpdate(tx).Model(table.newOrder()).Where("id = ?", orderID).Pluck("id", &locked).Error; err != nil {
			return fmt.Errorf("failed to lock %s %d: %w", table.kind, orderID, err)
		}
		if len(locked) == 0 {
			return nil
		}

		var prices []decimal.Decimal
		if err := tx.Model(table.newEntry()).Where("order_id = ?", orderID).Pluck("entry_price", &prices).Error; err != nil {
			return fmt.Errorf("failed to load entries for %s %d: %w", table.kind, orderID, err)
		}
		if err := saveTotal(tx, table.newOrder(), orderID, sumEntryPrices(prices)); err != nil {
			return err
		}
		log.Printf("Reconciliation repaired total of %s %d", table.kind, orderID)
		return nil
	})
}

func (r *Reconciler) archive(ctx context.Context, report *ReconciliationReport) error {
	key := ReportKey(report.StartedAt, report.RunID)
	report.ReportKey = key

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		report.ReportKey = ""
		return fmt.Errorf("failed to encode reconciliation report: %w", err)
	}
	if err := r.store.PutReport(ctx, key, body); err != nil {
		report.ReportKey = ""
		return fmt.Errorf("failed to archive reconciliation report %s: %w", report.RunID, err)
	}
	return nil
}

// ReportKey is the object key of a run's archived report
func ReportKey(startedAt time.Time, runID string) string {
	return fmt.Sprintf("reconciliation/%s/%s.json", startedAt.UTC().Format(utils.DateLayout), runID)
}
