package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ServiceOrder is a technician visit booked for a customer. Customer and
// technician are nulled, not cascaded, when either is deleted.
type ServiceOrder struct {
	ID           uint               `gorm:"primaryKey"`
	CustomerID   *uint              `gorm:"index"`
	Customer     *CustomerDetails   `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	TechnicianID *uint              `gorm:"index"`
	Technician   *TechnicianDetails `gorm:"foreignKey:TechnicianID;constraint:OnDelete:SET NULL"`
	DateOrdered  datatypes.Date     `gorm:"not null"`
	ServiceDate  datatypes.Date     `gorm:"not null"`
	TotalPrice   decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Status       OrderStatus        `gorm:"size:20;not null;index"`
	Entries      []ServiceOrderEntry `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// ServiceOrderEntry is one service line with a frozen service cost × quantity
type ServiceOrderEntry struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uint            `gorm:"not null;index"`
	ServiceID  uint            `gorm:"not null;index"`
	Service    ServiceType     `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	Quantity   int             `gorm:"not null;check:quantity > 0"`
	EntryPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the ServiceOrderEntry model
func (ServiceOrderEntry) TableName() string {
	return "service_order_entries"
}
