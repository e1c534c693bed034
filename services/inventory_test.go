package services

import (
	"errors"
	"testing"

	"github.com/johncar-aircon/backoffice-api/tests/testutil"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReserveStock(t *testing.T) {
	db := testutil.NewTestDB(t)
	product := testutil.CreateProduct(t, db, "Split Type 1.5HP", "5.00", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, product, 10)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestReserveStockInsufficient(t *testing.T) {
	db := testutil.NewTestDB(t)
	product := testutil.CreateProduct(t, db, "Window Type 1HP", "5.00", 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ReserveStock(tx, product, 3)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Window Type 1HP")
	assert.Equal(t, 2, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestRebookSaleSameProductNetsDifference(t *testing.T) {
	db := testutil.NewTestDB(t)
	product := testutil.CreateProduct(t, db, "Split Type 2HP", "5.00", 5)

	// 3 already sold, 5 on hand: raising the line to 8 needs stock + 3 >= 8
	err := db.Transaction(func(tx *gorm.DB) error {
		return rebookSale(tx, product, 3, product, 8)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestRebookSaleSwitchProduct(t *testing.T) {
	db := testutil.NewTestDB(t)
	oldProduct := testutil.CreateProduct(t, db, "Old", "5.00", 1)
	newProduct := testutil.CreateProduct(t, db, "New", "5.00", 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		products, err := lockProducts(tx, oldProduct.ID, newProduct.ID)
		if err != nil {
			return err
		}
		return rebookSale(tx, products[oldProduct.ID], 2, products[newProduct.ID], 4)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, testutil.ReloadProduct(t, db, oldProduct.ID).Stock)
	assert.Equal(t, 0, testutil.ReloadProduct(t, db, newProduct.ID).Stock)
}

func TestRebookSupplyCannotWithdrawSoldUnits(t *testing.T) {
	db := testutil.NewTestDB(t)
	product := testutil.CreateProduct(t, db, "Inverter 1HP", "5.00", 2)

	// 10 were received but only 2 remain; cutting the supply line to 1 would need 9 back
	err := db.Transaction(func(tx *gorm.DB) error {
		return rebookSupply(tx, product, 10, product, 1)
	})
	assert.True(t, errors.Is(err, utils.ErrInsufficientStock))
	assert.Equal(t, 2, testutil.ReloadProduct(t, db, product.ID).Stock)
}

func TestSortedIDs(t *testing.T) {
	assert.Equal(t, []uint{1, 3, 7}, sortedIDs([]uint{7, 3, 7, 1, 3}))
	assert.Empty(t, sortedIDs(nil))
}
