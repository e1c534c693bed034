package services

import (
	"context"
	"errors"
	"testing"

	"github.com/johncar-aircon/backoffice-api/tests/testutil"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestPaymentInputValidate(t *testing.T) {
	amount := testutil.Money(t, "100.00")

	tests := []struct {
		name    string
		input   PaymentInput
		wantErr bool
	}{
		{"cash", PaymentInput{Amount: amount, IsCash: true}, false},
		{"full card", PaymentInput{Amount: amount, CardNumber: strPtr("4111111111111111"), CardName: strPtr("JUAN DELA CRUZ"), CardExpiry: strPtr("09/28"), CardCVV: strPtr("123")}, false},
		{"zero amount", PaymentInput{Amount: testutil.Money(t, "0")}, true},
		{"negative amount", PaymentInput{Amount: testutil.Money(t, "-5")}, true},
		{"short card number", PaymentInput{Amount: amount, CardNumber: strPtr("41111")}, false},
		{"seventeen digit card number", PaymentInput{Amount: amount, CardNumber: strPtr("41111111111111112")}, true},
		{"empty card number", PaymentInput{Amount: amount, CardNumber: strPtr("")}, true},
		{"card number with letters", PaymentInput{Amount: amount, CardNumber: strPtr("4111abcd11111111")}, true},
		{"bad expiry month", PaymentInput{Amount: amount, CardExpiry: strPtr("13/28")}, true},
		{"bad expiry format", PaymentInput{Amount: amount, CardExpiry: strPtr("2028-09")}, true},
		{"four digit cvv", PaymentInput{Amount: amount, CardCVV: strPtr("1234")}, true},
		{"blank card name", PaymentInput{Amount: amount, CardName: strPtr("  ")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, utils.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSalesPaymentsSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	customer := testutil.CreateCustomer(t, db, "Aling Nena")
	product := testutil.CreateProduct(t, db, "Split", "1000.00", 5)
	order := testutil.CreateSalesOrder(t, db, customer.ID)
	_, err := svc.CreateSalesEntry(ctx, order.ID, product.ID, 2)
	require.NoError(t, err)

	payment, err := svc.RecordSalesPayment(ctx, order.ID, PaymentInput{Amount: testutil.Money(t, "500.00"), IsCash: true})
	require.NoError(t, err)
	assert.Equal(t, utils.FormatDate(utils.Today()), utils.FormatDate(payment.DatePaid))

	_, err = svc.RecordSalesPayment(ctx, order.ID, PaymentInput{
		Amount:     testutil.Money(t, "250.25"),
		CardNumber: strPtr("4111111111111111"),
		CardExpiry: strPtr("09/28"),
	})
	require.NoError(t, err)

	payments, summary, err := svc.ListSalesPayments(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "2000.00", summary.OrderTotal.StringFixed(2))
	assert.Equal(t, "750.25", summary.TotalPaid.StringFixed(2))
	assert.Equal(t, "1249.75", summary.Balance.StringFixed(2))
}

func TestPaymentsAreNotCheckedAgainstTotal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	customer := testutil.CreateCustomer(t, db, "Aling Nena")
	technician := testutil.CreateTechnician(t, db, "Mang Kanor", 3)
	order := testutil.CreateServiceOrder(t, db, customer.ID, technician.ID, "2026-10-14")

	_, err := svc.RecordServicePayment(ctx, order.ID, PaymentInput{Amount: testutil.Money(t, "99.99"), IsCash: true})
	require.NoError(t, err)

	_, summary, err := svc.ListServicePayments(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "-99.99", summary.Balance.StringFixed(2))
}

func TestRecordPaymentMissingOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	_, err := svc.RecordSalesPayment(ctx, 42, PaymentInput{Amount: testutil.Money(t, "1.00"), IsCash: true})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, _, err = svc.ListServicePayments(ctx, 42)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}
