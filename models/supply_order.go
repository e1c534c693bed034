package models

import (
	"time"

	"gorm.io/datatypes"
)

// SupplyOrder is a restock from a supplier; its entries add to product stock
type SupplyOrder struct {
	ID           uint           `gorm:"primaryKey"`
	DateOrdered  datatypes.Date `gorm:"not null"`
	DeliveryDate *datatypes.Date
	Status       OrderStatus        `gorm:"size:20;not null;index"`
	Entries      []SupplyOrderEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the SupplyOrder model
func (SupplyOrder) TableName() string {
	return "supply_orders"
}

// SupplyOrderEntry is one received product line
type SupplyOrderEntry struct {
	ID        uint        `gorm:"primaryKey"`
	OrderID   uint        `gorm:"not null;index"`
	ProductID uint        `gorm:"not null;index"`
	Product   ProductUnit `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int         `gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the SupplyOrderEntry model
func (SupplyOrderEntry) TableName() string {
	return "supply_order_entries"
}
