package services

import (
	"context"
	"fmt"
	"time"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	kindServiceOrder = "service order"
	kindServiceEntry = "service entry"
)

// CreateServiceOrder books a technician for a customer. The technician must
// have an active schedule on the weekday of serviceDate.
func (s *OrderService) CreateServiceOrder(ctx context.Context, customerID, technicianID uint, serviceDate datatypes.Date) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		customer, err := findByID[models.CustomerDetails](tx, "customer", customerID)
		if err != nil {
			return err
		}
		technician, err := findByID[models.TechnicianDetails](tx, "technician", technicianID)
		if err != nil {
			return err
		}
		if err := CheckTechnicianAvailability(tx, technician.ID, time.Time(serviceDate)); err != nil {
			return err
		}

		order = models.ServiceOrder{
			CustomerID:   &customer.ID,
			TechnicianID: &technician.ID,
			DateOrdered:  utils.Today(),
			ServiceDate:  serviceDate,
			TotalPrice:   decimal.Zero,
			Status:       models.StatusActive,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create service order: %w", err)
		}
		order.Customer = customer
		order.Technician = technician
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListServiceOrders returns orders, newest first, optionally filtered by
// status and technician (0 means any)
func (s *OrderService) ListServiceOrders(ctx context.Context, status models.OrderStatus, technicianID uint) ([]models.ServiceOrder, error) {
	query := s.db.WithContext(ctx).Preload("Customer").Preload("Technician").Order("id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if technicianID != 0 {
		query = query.Where("technician_id = ?", technicianID)
	}

	var orders []models.ServiceOrder
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list service orders: %w", err)
	}
	return orders, nil
}

// GetServiceOrder loads an order with its customer, technician and entries
func (s *OrderService) GetServiceOrder(ctx context.Context, id uint) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Technician").
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Entries.Service").
		First(&order, id).Error
	if err != nil {
		return nil, lookupError(err, kindServiceOrder, id)
	}
	return &order, nil
}

// UpdateServiceOrder reassigns the technician and/or moves the service
// date of an Active order, running the availability check again
func (s *OrderService) UpdateServiceOrder(ctx context.Context, id uint, technicianID *uint, serviceDate *datatypes.Date) (*models.ServiceOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, id)
		if err != nil {
			return err
		}
		if err := requireActive(kindServiceOrder, order.ID, order.Status); err != nil {
			return err
		}

		newTechnicianID := order.TechnicianID
		if technicianID != nil {
			newTechnicianID = technicianID
		}
		if newTechnicianID == nil {
			return utils.ValidationError("service order %d has no technician assigned", order.ID)
		}
		newDate := order.ServiceDate
		if serviceDate != nil {
			newDate = *serviceDate
		}

		technician, err := findByID[models.TechnicianDetails](tx, "technician", *newTechnicianID)
		if err != nil {
			return err
		}
		if err := CheckTechnicianAvailability(tx, technician.ID, time.Time(newDate)); err != nil {
			return err
		}

		return tx.Model(&models.ServiceOrder{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"technician_id": technician.ID,
			"service_date":  newDate,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetServiceOrder(ctx, id)
}

// SetServiceOrderStatus moves an Active order to Finished or Cancelled
func (s *OrderService) SetServiceOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.ServiceOrder, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, id)
		if err != nil {
			return err
		}
		if err := checkTransition(kindServiceOrder, order.ID, order.Status, status); err != nil {
			return err
		}
		return tx.Model(&models.ServiceOrder{}).Where("id = ?", order.ID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetServiceOrder(ctx, id)
}

// DeleteServiceOrder removes an order with its entries and payments
func (s *OrderService) DeleteServiceOrder(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, id)
		if err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.ServiceOrderEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries for service order %d: %w", order.ID, err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.ServiceOrderPayment{}).Error; err != nil {
			return fmt.Errorf("failed to delete payments for service order %d: %w", order.ID, err)
		}
		if err := tx.Delete(&models.ServiceOrder{}, order.ID).Error; err != nil {
			return fmt.Errorf("failed to delete service order %d: %w", order.ID, err)
		}
		return nil
	})
}

// CreateServiceEntry adds a service line priced at the current service cost
func (s *OrderService) CreateServiceEntry(ctx context.Context, orderID, serviceID uint, quantity int) (*models.ServiceOrderEntry, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	var entry models.ServiceOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, orderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindServiceOrder, order.ID, order.Status); err != nil {
			return err
		}
		service, err := findByID[models.ServiceType](tx, "service type", serviceID)
		if err != nil {
			return err
		}

		price := EntryPrice(service.Cost, quantity)
		if err := saveTotal(tx, &models.ServiceOrder{}, order.ID, addEntryPrice(order.TotalPrice, price)); err != nil {
			return err
		}

		entry = models.ServiceOrderEntry{
			OrderID:    order.ID,
			ServiceID:  service.ID,
			Quantity:   quantity,
			EntryPrice: price,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create service entry: %w", err)
		}
		entry.Service = *service
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateServiceEntry changes the service and/or quantity of a line and
// re-snapshots its price
func (s *OrderService) UpdateServiceEntry(ctx context.Context, entryID uint, serviceID *uint, quantity *int) (*models.ServiceOrderEntry, error) {
	if quantity != nil {
		if err := validateQuantity(*quantity); err != nil {
			return nil, err
		}
	}

	var entry models.ServiceOrderEntry
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.ServiceOrderEntry](tx, kindServiceEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindServiceOrder, order.ID, order.Status); err != nil {
			return err
		}
		locked, err := lockByID[models.ServiceOrderEntry](tx, kindServiceEntry, entryID)
		if err != nil {
			return err
		}

		newServiceID, newQuantity := locked.ServiceID, locked.Quantity
		if serviceID != nil {
			newServiceID = *serviceID
		}
		if quantity != nil {
			newQuantity = *quantity
		}
		service, err := findByID[models.ServiceType](tx, "service type", newServiceID)
		if err != nil {
			return err
		}

		newPrice := EntryPrice(service.Cost, newQuantity)
		total := replaceEntryPrice(order.TotalPrice, locked.EntryPrice, newPrice)
		if err := saveTotal(tx, &models.ServiceOrder{}, order.ID, total); err != nil {
			return err
		}

		err = tx.Model(&models.ServiceOrderEntry{}).Where("id = ?", locked.ID).Updates(map[string]interface{}{
			"service_id":  newServiceID,
			"quantity":    newQuantity,
			"entry_price": newPrice,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to update service entry %d: %w", locked.ID, err)
		}

		entry = *locked
		entry.ServiceID = newServiceID
		entry.Quantity = newQuantity
		entry.EntryPrice = newPrice
		entry.Service = *service
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteServiceEntry removes a line and reduces the order total
func (s *OrderService) DeleteServiceEntry(ctx context.Context, entryID uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		current, err := findByID[models.ServiceOrderEntry](tx, kindServiceEntry, entryID)
		if err != nil {
			return err
		}
		order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, current.OrderID)
		if err != nil {
			return err
		}
		if err := requireActive(kindServiceOrder, order.ID, order.Status); err != nil {
			return err
		}
		locked, err := lockByID[models.ServiceOrderEntry](tx, kindServiceEntry, entryID)
		if err != nil {
			return err
		}
		return removeServiceEntry(tx, order, locked)
	})
}

func removeServiceEntry(tx *gorm.DB, order *models.ServiceOrder, entry *models.ServiceOrderEntry) error {
	order.TotalPrice = removeEntryPrice(order.TotalPrice, entry.EntryPrice)
	if err := saveTotal(tx, &models.ServiceOrder{}, order.ID, order.TotalPrice); err != nil {
		return err
	}
	if err := tx.Delete(&models.ServiceOrderEntry{}, entry.ID).Error; err != nil {
		return fmt.Errorf("failed to delete service entry %d: %w", entry.ID, err)
	}
	return nil
}
