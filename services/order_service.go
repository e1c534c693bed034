package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderService runs every order and entry mutation. Each call opens its own
// transaction on the request context; stock, totals and the entry row are
// written together or not at all.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an order service backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// nullableDate clears the column when d is nil
func nullableDate(d *datatypes.Date) interface{} {
	if d == nil {
		return gorm.Expr("NULL")
	}
	return *d
}
