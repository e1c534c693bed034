package services

import (
	"context"
	"fmt"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	kindSalesOrder = "sales order"
	kindSalesEntry = "sales entry"
)

// CreateSalesOrder opens an Active sales order with a zero total
func (s *OrderService) CreateSalesOrder(ctx context.Context, customerID uint, deliveryDate *datatypes.Date) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		customer, err := findByID[models.CustomerDetails](tx, "customer", customerID)
		if err != nil {
			return err
		}

		order = models.SalesOrder{
			CustomerID:   customer.ID,
			DateOrdered:  utils.Today(),
			DeliveryDate: deliveryDate,
			TotalPrice:   decimal.Zero,
			Status:       models.StatusActive,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create sales order: %w", err)
		}
		order.Customer = *customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListSalesOrders returns orders, newest first, optionally filtered by status
func (s *OrderService) ListSalesOrders(ctx context.Context, status models.OrderStatus) ([]models.SalesOrder, error) {
	query := s.db.WithContext(ctx).Preload("Customer").Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.SalesOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales orders: %w", err)
	}
	return orders, nil
}

// GetSalesOrder loads an order with its customer and entries
func (s *OrderService) GetSalesOrder(ctx context.Context, id uint) (*models.SalesOrder, error) {
	var order models.SalesOrder
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Entries.Product").
		First(&order, id).Error
	if err != nil {
		return nil, lookupError(err, kindSalesOrder, id)
	}
	return &order, nil
}

// UpdateSalesOrderDelivery sets or clears the delivery date of an Active order
func (s *OrderService) UpdateSalesOrderDelivery(ctx context.Context, id uint, deliveryDate *datatypes.Date) (*models.SalesOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, id)
		if err != nil {
			return err
		}
		if err := requireActive(kindSalesOrder, order.ID, order.Status); err != nil {
			return err
		}
		return tx.Model(&models.SalesOrder{}).Where("id = ?", order.ID).Update("delivery_date", nullableDate(deliveryDate)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSalesOrder(ctx, id)
}

// SetSalesOrderStatus moves an Active order to Finished or Cancelled
func (s *OrderService) SetSalesOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.SalesOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, id)
		if err != nil {
			return err
		}
		if err := checkTransition(kindSalesOrder, order.ID, order.Status, status); err != nil {
			return err
		}
		return tx.Model(&models.SalesOrder{}).Where("id = ?", order.ID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSalesOrder(ctx, id)
}

// DeleteSalesOrder removes an order with its entries and payments. Every
// entry's units go back into stock.
func (s *OrderService) DeleteSalesOrder(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		return deleteSalesOrderTx(tx, id)
	})
}

// CreateSalesEntry adds a product line: the price is snapshotted, stock is
// reserved and the order total grows by the entry price.
func (s *OrderService) CreateSalesEntry(ctx context.Context, orderID, productID uint, quantity int) (*models.SalesOrderEntry, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var entry models.SalesOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, orderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSalesOrder, order.ID, order.Status); err != nil {
			return err
		}
		product, err := lockByID[models.ProductUnit](tx, "product", productID)
		if err != nil {
			return err
		}

		price := EntryPrice(product.UnitPrice, quantity)
		if err := ReserveStock(tx, product, quantity); err != nil {
			return err
		}
		if err := saveTotal(tx, &models.SalesOrder{}, order.ID, addEntryPrice(order.TotalPrice, price)); err != nil {
			return err
		}

		entry = models.SalesOrderEntry{
			OrderID:    order.ID,
			ProductID:  product.ID,
			Quantity:   quantity,
			EntryPrice: price,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create sales entry: %w", err)
		}
		entry.Product = *product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateSalesEntry changes the product and/or quantity of a line. The old
// quantity is released before the new one is reserved, the price is
// snapshotted again and the total is adjusted by the difference.
func (s *OrderService) UpdateSalesEntry(ctx context.Context, entryID uint, productID *uint, quantity *int) (*models.SalesOrderEntry, error) {
	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return nil, err
		}
	}

	var entry models.SalesOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.SalesOrderEntry](tx, kindSalesEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSalesOrder, order.ID, order.Status); err != nil {
			return err
		}
		// re-read under the order lock
		locked, err := lockByID[models.SalesOrderEntry](tx, kindSalesEntry, entryID)
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
		if err := rebookSale(tx, products[locked.ProductID], locked.Quantity, newProduct, newQuantity); err != nil {
			return err
		}

		newPrice := EntryPrice(newProduct.UnitPrice, newQuantity)
		total := replaceEntryPrice(order.TotalPrice, locked.EntryPrice, newPrice)
		if err := saveTotal(tx, &models.SalesOrder{}, order.ID, total); err != nil {
			return err
		}

		err = tx.Model(&models.SalesOrderEntry{}).Where("id = ?", locked.ID).Updates(map[string]interface{}{
			"product_id":  newProductID,
			"quantity":    newQuantity,
			"entry_price": newPrice,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update sales entry %d: %w", locked.ID, err)
		}

		entry = *locked
		entry.ProductID = newProductID
		entry.Quantity = newQuantity
		entry.EntryPrice = newPrice
		entry.Product = *newProduct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteSalesEntry removes a line, releasing its units and reducing the total
func (s *OrderService) DeleteSalesEntry(ctx context.Context, entryID uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.SalesOrderEntry](tx, kindSalesEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindSalesOrder, order.ID, order.Status); err != nil {
			return err
		}
		locked, err := lockByID[models.SalesOrderEntry](tx, kindSalesEntry, entryID)
		if err != nil {
			return err
		}
		products, err := lockProducts(tx, locked.ProductID)
		if err != nil {
			return err
		}
		return removeSalesEntry(tx, order, locked, products[locked.ProductID])
	})
}

// removeSalesEntry reverses an entry on a locked order. product may be nil
// when the product itself is being deleted and its stock no longer matters.
func removeSalesEntry(tx *gorm.DB, order *models.SalesOrder, entry *models.SalesOrderEntry, product *models.ProductUnit) error {
	if product != nil {
		if err := ReceiveStock(tx, product, entry.Quantity); err != nil {
			return err
		}
	}

	order.TotalPrice = removeEntryPrice(order.TotalPrice, entry.EntryPrice)
	if err := saveTotal(tx, &models.SalesOrder{}, order.ID, order.TotalPrice); err != nil {
		return err
	}
	if err := tx.Delete(&models.SalesOrderEntry{}, entry.ID).Error; err != nil {
		return fmt.Errorf("failed to delete sales entry %d: %w", entry.ID, err)
	}
	return nil
}

func deleteSalesOrderTx(tx *gorm.DB, id uint) error {
	order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, id)
	if err != nil {
		return err
	}

	var entries []models.SalesOrderEntry
	if err := forUpdate(tx).Where("order_id = ?", order.ID).Order("id ASC").Find(&entries).Error; err != nil {
		return fmt.Errorf("failed to load entries for sales order %d: %w", order.ID, err)
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
		if err := removeSalesEntry(tx, order, &entries[i], products[entries[i].ProductID]); err != nil {
			return err
		}
	}

	if err := tx.Where("order_id = ?", order.ID).Delete(&models.SalesOrderPayment{}).Error; err != nil {
		return fmt.Errorf("failed to delete payments for sales order %d: %w", order.ID, err)
	}
	if err := tx.Delete(&models.SalesOrder{}, order.ID).Error; err != nil {
		return fmt.Errorf("failed to delete sales order %d: %w", order.ID, err)
	}
	return nil
}
