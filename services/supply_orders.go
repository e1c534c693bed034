package services

import (
	"context"
	"fmt"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	kindSupplyOrder = "supply order"
	kindSupplyEntry = "supply entry"
)

// CreateSupplyOrder opens an Active restock order
func (s *OrderService) CreateSupplyOrder(ctx context.Context, deliveryDate *datatypes.Date) (*models.SupplyOrder, error) {
	order := models.SupplyOrder{
		DateOrdered:  utils.Today(),
		DeliveryDate: deliveryDate,
		Status:       models.StatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create supply order: %w", err)
	}
	return &order, nil
}

// ListSupplyOrders returns orders, newest first, optionally filtered by status
func (s *OrderService) ListSupplyOrders(ctx context.Context, status models.OrderStatus) ([]models.SupplyOrder, error) {
	query := s.db.WithContext(ctx).Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.SupplyOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list supply orders: %w", err)
	}
	return orders, nil
}

// GetSupplyOrder loads an order with its entries
func (s *OrderService) GetSupplyOrder(ctx context.Context, id uint) (*models.SupplyOrder, error) {
	var order models.SupplyOrder
	err := s.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Entries.Product").
		First(&order, id).Error
	if err != nil {
		return nil, lookupError(err, kindSupplyOrder, id)
	}
	return &order, nil
}

// UpdateSupplyOrderDelivery sets or clears the delivery date of an Active order
func (s *OrderService) UpdateSupplyOrderDelivery(ctx context.Context, id uint, deliveryDate *datatypes.Date) (*models.SupplyOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, id)
		if err != nil {
			return err
		}
		if err := requireActive(kindSupplyOrder, order.ID, order.Status); err != nil {
			return err
		}
		return tx.Model(&models.SupplyOrder{}).Where("id = ?", order.ID).Update("delivery_date", nullableDate(deliveryDate)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSupplyOrder(ctx, id)
}

// SetSupplyOrderStatus moves an Active order to Finished or Cancelled
func (s *OrderService) SetSupplyOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.SupplyOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, id)
		if err != nil {
			return err
		}
		if err := checkTransition(kindSupplyOrder, order.ID, order.Status, status); err != nil {
			return err
		}
		return tx.Model(&models.SupplyOrder{}).Where("id = ?", order.ID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSupplyOrder(ctx, id)
}

// DeleteSupplyOrder removes an order and withdraws every unit it received.
// It fails when some of those units have already been sold.
func (s *OrderService) DeleteSupplyOrder(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, id)
		if err != nil {
			return err
		}

		var entries []models.SupplyOrderEntry
		if err := forUpdate(tx).Where("order_id = ?", order.ID).Order("id ASC").Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to load entries for supply order %d: %w", order.ID, err)
		}
		productIDs := make([]uint, 0, len(entries))
		for _, e := range entries {
			productIDs = append(productIDs, e.ProductID)
		}
		products, err := lockProducts(tx, productIDs...)
		if err != nil {
			return err
		}

		for i := range entries {
			if err := removeSupplyEntry(tx, &entries[i], products[entries[i].ProductID]); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.SupplyOrder{}, order.ID).Error; err != nil {
			return fmt.Errorf("failed to delete supply order %d: %w", order.ID, err)
		}
		return nil
	})
}

// CreateSupplyEntry records received units and adds them to stock
func (s *OrderService) CreateSupplyEntry(ctx context.Context, orderID, productID uint, quantity int) (*models.SupplyOrderEntry, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var entry models.SupplyOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, orderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSupplyOrder, order.ID, order.Status); err != nil {
			return err
		}
		product, err := lockByID[models.ProductUnit](tx, "product", productID)
		if err != nil {
			return err
		}
		if err := ReceiveStock(tx, product, quantity); err != nil {
			return err
		}

		entry = models.SupplyOrderEntry{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create supply entry: %w", err)
		}
		entry.Product = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateSupplyEntry changes the product and/or quantity of a received line,
// moving stock by the difference
func (s *OrderService) UpdateSupplyEntry(ctx context.Context, entryID uint, productID *uint, quantity *int) (*models.SupplyOrderEntry, error) {
	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return nil, err
		}
	}

	var entry models.SupplyOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.SupplyOrderEntry](tx, kindSupplyEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSupplyOrder, order.ID, order.Status); err != nil {
			return err
		}
		locked, err := lockByID[models.SupplyOrderEntry](tx, kindSupplyEntry, entryID)
		if err != nil {
			return err
		}

		newProductID, newQuantity := locked.ProductID, locked.Quantity
		if productID != nil {
			newProductID = *productID
		}
		if quantity != nil {
			newQuantity = *quantity
		}

		products, err := lockProducts(tx, locked.ProductID, newProductID)
		if err != nil {
			return err
		}
		newProduct := products[newProductID]
		if err := rebookSupply(tx, products[locked.ProductID], locked.Quantity, newProduct, newQuantity); err != nil {
			return err
		}

		err = tx.Model(&models.SupplyOrderEntry{}).Where("id = ?", locked.ID).Updates(map[string]interface{}{
			"product_id": newProductID,
			"quantity":   newQuantity,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update supply entry %d: %w", locked.ID, err)
		}

		entry = *locked
		entry.ProductID = newProductID
		entry.Quantity = newQuantity
		entry.Product = *newProduct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteSupplyEntry removes a received line and withdraws its units
func (s *OrderService) DeleteSupplyEntry(ctx context.Context, entryID uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.SupplyOrderEntry](tx, kindSupplyEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.SupplyOrder](tx, kindSupplyOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSupplyOrder, order.ID, order.Status); err != nil {
			return err
		}
		locked, err := lockByID[models.SupplyOrderEntry](tx, kindSupplyEntry, entryID)
		if err != nil {
			return err
		}
		products, err := lockProducts(tx, locked.ProductID)
		if err != nil {
			return err
		}
		return removeSupplyEntry(tx, locked, products[locked.ProductID])
	})
}

// removeSupplyEntry withdraws an entry's units and deletes it. product may be
// nil when the product itself is being deleted.
func removeSupplyEntry(tx *gorm.DB, entry *models.SupplyOrderEntry, product *models.ProductUnit) error {
	if product != nil {
		if err := ReserveStock(tx, product, entry.Quantity); err != nil {
			return err
		}
	}
	if err := tx.Delete(&models.SupplyOrderEntry{}, entry.ID).Error; err != nil {
		return fmt.Errorf("failed to delete supply entry %d: %w", entry.ID, err)
	}
	return nil
}
