package services

import (
	"fmt"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/gorm"
)

// The inventory ledger. Every function expects product to have been read with
// lockByID/lockProducts inside tx, and keeps the in-memory row in step with
// the database so several movements can be applied to one product in a
// single transaction.

// ReceiveStock adds supplied units. There is no upper bound.
func ReceiveStock(tx *gorm.DB, product *models.ProductUnit, quantity int) error {
	return adjustStock(tx, product, quantity)
}

// ReserveStock takes sold units out of stock, failing when fewer are on hand
func ReserveStock(tx *gorm.DB, product *models.ProductUnit, quantity int) error {
	return adjustStock(tx, product, -quantity)
}

// rebookSale moves a sales entry from (oldProduct, oldQty) to (newProduct, newQty).
// On the same product only the difference is applied, which is the
// stock + oldQty >= newQty check.
func rebookSale(tx *gorm.DB, oldProduct *models.ProductUnit, oldQty int, newProduct *models.ProductUnit, newQty int) error {
	if oldProduct.ID == newProduct.ID {
		return adjustStock(tx, newProduct, oldQty-newQty)
	}
	if err := adjustStock(tx, oldProduct, oldQty); err != nil {
		return err
	}
	return adjustStock(tx, newProduct, -newQty)
}

// rebookSupply is the mirror of rebookSale for received stock. Taking back
// units that were already sold fails with an insufficient stock error.
func rebookSupply(tx *gorm.DB, oldProduct *models.ProductUnit, oldQty int, newProduct *models.ProductUnit, newQty int) error {
	if oldProduct.ID == newProduct.ID {
		return adjustStock(tx, newProduct, newQty-oldQty)
	}
	if err := adjustStock(tx, oldProduct, -oldQty); err != nil {
		return err
	}
	return adjustStock(tx, newProduct, newQty)
}

func adjustStock(tx *gorm.DB, product *models.ProductUnit, delta int) error {
	if delta == 0 {
		return nil
	}
	if product.Stock+delta < 0 {
		return utils.InsufficientStockError(product.Name, -delta, product.Stock)
	}

	product.Stock += delta
	if err := tx.Model(&models.ProductUnit{}).Where("id = ?", product.ID).Update("stock", product.Stock).Error; err != nil {
		return fmt.Errorf("failed to update stock for product %d: %w", product.ID, err)
	}
	return nil
}
