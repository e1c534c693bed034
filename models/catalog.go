package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AirconType is a product category keyed by its name
type AirconType struct {
	Name string `gorm:"primaryKey;size:255"`
}

// TableName specifies the table name for the AirconType model
func (AirconType) TableName() string {
	return "aircon_types"
}

// ProductUnit is a stocked aircon unit. Stock is only changed through the
// inventory ledger (supply and sales entries), never edited directly.
type ProductUnit struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:255;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int             `gorm:"not null;check:stock >= 0"`
	TypeName  *string         `gorm:"size:255;index"` // nullable, cleared when the type is deleted
	Type      *AirconType     `gorm:"foreignKey:TypeName;references:Name;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the ProductUnit model
func (ProductUnit) TableName() string {
	return "product_units"
}

// ServiceType is a billable service with a per-unit cost
type ServiceType struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:50;not null"`
	Cost      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the ServiceType model
func (ServiceType) TableName() string {
	return "service_types"
}
