package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentDetails are the columns shared by sales and service payments.
// Payments are recorded as-is; nothing checks them against the order total.
type PaymentDetails struct {
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DatePaid   datatypes.Date  `gorm:"not null"`
	CCNumber   *string         `gorm:"column:cc_number;size:16"`
	CCName     *string         `gorm:"column:cc_name;size:255"`
	CCExpiry   *string         `gorm:"column:cc_expiry;size:5"`
	CCCVV      *string         `gorm:"column:cc_cvv;size:3"`
	IsCash     bool            `gorm:"not null"`
}

// SalesOrderPayment is a payment recorded against a sales order
type SalesOrderPayment struct {
	ID      uint       `gorm:"primaryKey"`
	OrderID uint       `gorm:"not null;index"`
	Order   SalesOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentDetails
	CreatedAt time.Time
}

// TableName specifies the table name for the SalesOrderPayment model
func (SalesOrderPayment) TableName() string {
	return "sales_order_payments"
}

// ServiceOrderPayment is a payment recorded against a service order
type ServiceOrderPayment struct {
	ID      uint         `gorm:"primaryKey"`
	OrderID uint         `gorm:"not null;index"`
	Order   ServiceOrder `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentDetails
	CreatedAt time.Time
}

// TableName specifies the table name for the ServiceOrderPayment model
func (ServiceOrderPayment) TableName() string {
	return "service_order_payments"
}
