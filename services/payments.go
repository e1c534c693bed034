package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{1,16}$`)
	cardExpiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cardCVVPattern    = regexp.MustCompile(`^[0-9]{3}$`)
)

// PaymentInput is a payment as submitted by the front desk. Card fields are
// optional and stored as given once they pass format checks.
type PaymentInput struct {
	Amount     decimal.Decimal
	IsCash     bool
	CardNumber *string
	CardName   *string
	CardExpiry *string
	CardCVV    *string
}

// Validate checks the amount and the format of any card fields present
func (p PaymentInput) Validate() error {
	if !p.Amount.IsPositive() {
		return utils.ValidationError("amount must be greater than zero")
	}
	if p.CardNumber != nil && !cardNumberPattern.MatchString(*p.CardNumber) {
		return utils.ValidationError("card number must be at most 16 digits")
	}
	if p.CardName != nil && strings.TrimSpace(*p.CardName) == "" {
		return utils.ValidationError("card name cannot be blank")
	}
	if p.CardExpiry != nil && !cardExpiryPattern.MatchString(*p.CardExpiry) {
		return utils.ValidationError("card expiry must be in MM/YY format")
	}
	if p.CardCVV != nil && !cardCVVPattern.MatchString(*p.CardCVV) {
		return utils.ValidationError("card CVV must be 3 digits")
	}
	return nil
}

func (p PaymentInput) details() models.PaymentDetails {
	return models.PaymentDetails{
		AmountPaid: roundMoney(p.Amount),
		DatePaid:   utils.Today(),
		CCNumber:   p.CardNumber,
		CCName:     p.CardName,
		CCExpiry:   p.CardExpiry,
		CCCVV:      p.CardCVV,
		IsCash:     p.IsCash,
	}
}

// PaymentSummary is informational only. A negative balance (overpayment) is
// allowed.
type PaymentSummary struct {
	OrderTotal decimal.Decimal
	TotalPaid  decimal.Decimal
	Balance    decimal.Decimal
}

// SummarizePayments adds up what has been paid against an order total
func SummarizePayments(orderTotal decimal.Decimal, payments []models.PaymentDetails) PaymentSummary {
	paid := make([]decimal.Decimal, 0, len(payments))
	for _, p := range payments {
		paid = append(paid, p.AmountPaid)
	}
	totalPaid := sumEntryPrices(paid)
	return PaymentSummary{
		OrderTotal: roundMoney(orderTotal),
		TotalPaid:  totalPaid,
		Balance:    roundMoney(orderTotal.Sub(totalPaid)),
	}
}

// RecordSalesPayment stores a payment against a sales order of any status
func (s *OrderService) RecordSalesPayment(ctx context.Context, orderID uint, input PaymentInput) (*models.SalesOrderPayment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var payment models.SalesOrderPayment
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, orderID)
		if err != nil {
			return err
		}
		payment = models.SalesOrderPayment{OrderID: order.ID, PaymentDetails: input.details()}
		if err := tx.Omit("Order").Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment for sales order %d: %w", order.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListSalesPayments returns an order's payments, oldest first, with a summary
func (s *OrderService) ListSalesPayments(ctx context.Context, orderID uint) ([]models.SalesOrderPayment, PaymentSummary, error) {
	db := s.db.WithContext(ctx)
	order, err := findByID[models.SalesOrder](db, kindSalesOrder, orderID)
	if err != nil {
		return nil, PaymentSummary{}, err
	}

	var payments []models.SalesOrderPayment
	if err := db.Where("order_id = ?", order.ID).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, PaymentSummary{}, fmt.Errorf("failed to list payments for sales order %d: %w", order.ID, err)
	}

	details := make([]models.PaymentDetails, 0, len(payments))
	for _, p := range payments {
		details = append(details, p.PaymentDetails)
	}
	return payments, SummarizePayments(order.TotalPrice, details), nil
}

// RecordServicePayment stores a payment against a service order of any status
func (s *OrderService) RecordServicePayment(ctx context.Context, orderID uint, input PaymentInput) (*models.ServiceOrderPayment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var payment models.ServiceOrderPayment
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, orderID)
		if err != nil {
			return err
		}
		payment = models.ServiceOrderPayment{OrderID: order.ID, PaymentDetails: input.details()}
		if err := tx.Omit("Order").Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to record payment for service order %d: %w", order.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListServicePayments returns an order's payments, oldest first, with a summary
func (s *OrderService) ListServicePayments(ctx context.Context, orderID uint) ([]models.ServiceOrderPayment, PaymentSummary, error) {
	db := s.db.WithContext(ctx)
	order, err := findByID[models.ServiceOrder](db, kindServiceOrder, orderID)
	if err != nil {
		return nil, PaymentSummary{}, err
	}

	var payments []models.ServiceOrderPayment
	if err := db.Where("order_id = ?", order.ID).Order("id ASC").Find(&payments).Error; err != nil {
		return nil, PaymentSummary{}, fmt.Errorf("failed to list payments for service order %d: %w", order.ID, err)
	}

	details := make([]models.PaymentDetails, 0, len(payments))
	for _, p := range payments {
		details = append(details, p.PaymentDetails)
	}
	return payments, SummarizePayments(order.TotalPrice, details), nil
}
