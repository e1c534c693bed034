package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// SalesOrder is a customer purchase of product units. TotalPrice is derived:
// it always equals the sum of its entries' frozen EntryPrice.
type SalesOrder struct {
	ID           uint            `gorm:"primaryKey"`
	CustomerID   uint            `gorm:"not null;index"`
	Customer     CustomerDetails `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	DateOrdered  datatypes.Date  `gorm:"not null"`
	DeliveryDate *datatypes.Date
	TotalPrice   decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	Status       OrderStatus       `gorm:"size:20;not null;index"`
	Entries      []SalesOrderEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the SalesOrder model
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// SalesOrderEntry is one product line. EntryPrice is a snapshot of
// unit price × quantity taken when the line was written.
type SalesOrderEntry struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"not null;index"`
	ProductID  uint            `gorm:"not null;index"`
	Product    ProductUnit     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity   int             `gorm:"not null;check:quantity > 0"`
	EntryPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the SalesOrderEntry model
func (SalesOrderEntry) TableName() string {
	return "sales_order_entries"
}
