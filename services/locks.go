package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds SELECT ... FOR UPDATE. The sqlite dialect drops the clause,
// which is fine there since sqlite serialises writers anyway.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockByID reads a row by primary key and holds its row lock until the
// enclosing transaction ends
func lockByID[T any](tx *gorm.DB, kind string, id uint) (*T, error) {
	var row T
	if err := forUpdate(tx).First(&row, id).Error; err != nil {
		return nil, lookupError(err, kind, id)
	}
	return &row, nil
}

// findByID reads a row by primary key without locking it
func findByID[T any](db *gorm.DB, kind string, id uint) (*T, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		return nil, lookupError(err, kind, id)
	}
	return &row, nil
}

// lockProducts locks every distinct product in ascending id order so two
// transactions touching the same pair of products cannot deadlock
func lockProducts(tx *gorm.DB, ids ...uint) (map[uint]*models.ProductUnit, error) {
	unique := sortedIDs(ids)
	products := make(map[uint]*models.ProductUnit, len(unique))
	for _, id := range unique {
		product, err := lockByID[models.ProductUnit](tx, "product", id)
		if err != nil {
			return nil, err
		}
		products[id] = product
	}
	return products, nil
}

func sortedIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// requireActive rejects entry or header changes on Finished/Cancelled orders
func requireActive(kind string, id uint, status models.OrderStatus) error {
	if status.IsTerminal() {
		return utils.InvalidStatusTransitionError(kind, id, string(status), "")
	}
	return nil
}

// checkTransition validates a status change requested by a caller
func checkTransition(kind string, id uint, current, next models.OrderStatus) error {
	if !next.Valid() {
		return utils.ValidationError("invalid status %q, expected Active, Finished or Cancelled", next)
	}
	if !current.CanTransitionTo(next) {
		return utils.InvalidStatusTransitionError(kind, id, string(current), string(next))
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return utils.ValidationError("quantity must be greater than zero, got %d", quantity)
	}
	return nil
}

func lookupError(err error, kind string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFoundError(kind, id)
	}
	return fmt.Errorf("failed to load %s %v: %w", kind, id, err)
}
