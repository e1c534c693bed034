package services

import (
	"context"
	"errors"
	"testing"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/tests/testutil"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyEntryScenario(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	product := testutil.CreateProduct(t, db, "Split Type 1HP", "5.00", 5)
	order := testutil.CreateSupplyOrder(t, db)

	entry, err := svc.CreateSupplyEntry(ctx, order.ID, product.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, entry.Quantity)
	assert.Equal(t, 25, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestUpdateSupplyEntry(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	first := testutil.CreateProduct(t, db, "Window 1HP", "5.00", 0)
	second := testutil.CreateProduct(t, db, "Window 2HP", "5.00", 1)
	order := testutil.CreateSupplyOrder(t, db)

	entry, err := svc.CreateSupplyEntry(ctx, order.ID, first.ID, 10)
	require.NoError(t, err)

	_, err = svc.UpdateSupplyEntry(ctx, entry.ID, nil, intPtr(4))
	require.NoError(t, err)
	assert.Equal(t, 4, testutil.ReloadProduct(t, db, first.ID).Stock)

	_, err = svc.UpdateSupplyEntry(ctx, entry.ID, uintPtr(second.ID), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, first.ID).Stock)
	assert.Equal(t, 5, testutil.ReloadProduct(t, db, second.ID).Stock)
}

func TestSupplyReversalFailsWhenUnitsWereSold(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	customer := testutil.CreateCustomer(t, db, "Aling Nena")
	product := testutil.CreateProduct(t, db, "Split", "5.00", 0)
	supply := testutil.CreateSupplyOrder(t, db)
	sale := testutil.CreateSalesOrder(t, db, customer.ID)

	entry, err := svc.CreateSupplyEntry(ctx, supply.ID, product.ID, 5)
	require.NoError(t, err)
	_, err = svc.CreateSalesEntry(ctx, sale.ID, product.ID, 4)
	require.NoError(t, err)

	err = svc.DeleteSupplyEntry(ctx, entry.ID)
	assert.True(t, errors.Is(err, utils.ErrInsufficientStock))
	_, err = svc.UpdateSupplyEntry(ctx, entry.ID, nil, intPtr(3))
	assert.True(t, errors.Is(err, utils.ErrInsufficientStock))
	err = svc.DeleteSupplyOrder(ctx, supply.ID)
	assert.True(t, errors.Is(err, utils.ErrInsufficientStock))

	assert.Equal(t, 1, testutil.ReloadProduct(t, db, product.ID).Stock)

	_, err = svc.UpdateSupplyEntry(ctx, entry.ID, nil, intPtr(4))
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestStockConservation(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()

	customer := testutil.CreateCustomer(t, db, "Aling Nena")
	product := testutil.CreateProduct(t, db, "Split", "5.00", 7)
	supply := testutil.CreateSupplyOrder(t, db)
	sale := testutil.CreateSalesOrder(t, db, customer.ID)

	s1, err := svc.CreateSupplyEntry(ctx, supply.ID, product.ID, 12)
	require.NoError(t, err)
	_, err = svc.CreateSupplyEntry(ctx, supply.ID, product.ID, 3)
	require.NoError(t, err)
	e1, err := svc.CreateSalesEntry(ctx, sale.ID, product.ID, 6)
	require.NoError(t, err)
	_, err = svc.CreateSalesEntry(ctx, sale.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = svc.UpdateSalesEntry(ctx, e1.ID, nil, intPtr(9))
	require.NoError(t, err)
	_, err = svc.UpdateSupplyEntry(ctx, s1.ID, nil, intPtr(10))
	require.NoError(t, err)

	var supplied, sold int
	db.Model(&models.SupplyOrderEntry{}).Where("product_id = ?", product.ID).Select("COALESCE(SUM(quantity), 0)").Scan(&supplied)
	db.Model(&models.SalesOrderEntry{}).Where("product_id = ?", product.ID).Select("COALESCE(SUM(quantity), 0)").Scan(&sold)

	stock := testutil.ReloadProduct(t, db, product.ID).Stock
	assert.Equal(t, 7+supplied-sold, stock)
	assert.Equal(t, 9, stock)
}

func TestSupplyOrderLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()
	product := testutil.CreateProduct(t, db, "Split", "5.00", 0)

	delivery := testutil.Date(t, "2026-10-30")
	order, err := svc.CreateSupplyOrder(ctx, &delivery)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, order.Status)

	_, err = svc.CreateSupplyEntry(ctx, order.ID, product.ID, 5)
	require.NoError(t, err)

	loaded, err := svc.GetSupplyOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "Split", loaded.Entries[0].Product.Name)

	finished, err := svc.SetSupplyOrderStatus(ctx, order.ID, models.StatusFinished)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, finished.Status)

	_, err = svc.CreateSupplyEntry(ctx, order.ID, product.ID, 1)
	assert.True(t, errors.Is(err, utils.ErrInvalidStatusTransition))
	_, err = svc.UpdateSupplyOrderDelivery(ctx, order.ID, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidStatusTransition))

	orders, err := svc.ListSupplyOrders(ctx, models.StatusFinished)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	require.NoError(t, svc.DeleteSupplyOrder(ctx, order.ID))
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, product.ID).Stock)
}
