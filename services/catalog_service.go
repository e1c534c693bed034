package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService manages aircon types, product units and service types
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a catalog service backed by db
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ProductInput describes a new product unit
type ProductInput struct {
	Name      string
	UnitPrice decimal.Decimal
	Stock     int
	TypeName  *string
}

// ProductUpdate holds the editable product fields. Stock is not one of them.
// An empty TypeName clears the type.
type ProductUpdate struct {
	Name      *string
	UnitPrice *decimal.Decimal
	TypeName  *string
}

// ServiceTypeInput describes a service type; nil fields are left unchanged
// on update
type ServiceTypeInput struct {
	Name *string
	Cost *decimal.Decimal
}

// ListAirconTypes returns all aircon types by name
func (s *CatalogService) ListAirconTypes(ctx context.Context) ([]models.AirconType, error) {
	var types []models.AirconType
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list aircon types: %w", err)
	}
	return types, nil
}

// CreateAirconType adds a type. Names are unique.
func (s *CatalogService) CreateAirconType(ctx context.Context, name string) (*models.AirconType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.ValidationError("aircon type name is required")
	}

	var airconType models.AirconType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AirconType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check aircon type %q: %w", name, err)
		}
		if count > 0 {
			return utils.ValidationError("aircon type %q already exists", name)
		}
		airconType = models.AirconType{Name: name}
		if err := tx.Create(&airconType).Error; err != nil {
			return fmt.Errorf("failed to create aircon type: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &airconType, nil
}

// DeleteAirconType removes a type; products of that type keep existing
// without one
func (s *CatalogService) DeleteAirconType(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var airconType models.AirconType
		if err := forUpdate(tx).Where("name = ?", name).First(&airconType).Error; err != nil {
			return lookupError(err, "aircon type", name)
		}
		if err := tx.Model(&models.ProductUnit{}).Where("type_name = ?", name).Update("type_name", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to clear type %q from products: %w", name, err)
		}
		if err := tx.Where("name = ?", name).Delete(&models.AirconType{}).Error; err != nil {
			return fmt.Errorf("failed to delete aircon type %q: %w", name, err)
		}
		return nil
	})
}

// ListProducts returns products by name, optionally only those of one type
func (s *CatalogService) ListProducts(ctx context.Context, typeName string) ([]models.ProductUnit, error) {
	query := s.db.WithContext(ctx).Order("name ASC, id ASC")
	if typeName != "" {
		query = query.Where("type_name = ?", typeName)
	}

	var products []models.ProductUnit
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product or a NOT_FOUND error
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.ProductUnit, error) {
	return findByID[models.ProductUnit](s.db.WithContext(ctx), "product", id)
}

// CreateProduct adds a product with its opening stock
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.ProductUnit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, utils.ValidationError("product name is required")
	}
	if input.UnitPrice.IsNegative() {
		return nil, utils.ValidationError("unit price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, utils.ValidationError("stock cannot be negative")
	}

	db := s.db.WithContext(ctx)
	typeName, err := s.resolveType(db, input.TypeName)
	if err != nil {
		return nil, err
	}

	product := models.ProductUnit{
		Name:      name,
		UnitPrice: roundMoney(input.UnitPrice),
		Stock:     input.Stock,
		TypeName:  typeName,
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct edits name, price or type. Existing entries keep the price
// they were written with.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, input ProductUpdate) (*models.ProductUnit, error) {
	var product *models.ProductUnit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = lockByID[models.ProductUnit](tx, "product", id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return utils.ValidationError("product name is required")
			}
			updates["name"] = name
			product.Name = name
		}
		if input.UnitPrice != nil {
			if input.UnitPrice.IsNegative() {
				return utils.ValidationError("unit price cannot be negative")
			}
			price := roundMoney(*input.UnitPrice)
			updates["unit_price"] = price
			product.UnitPrice = price
		}
		if input.TypeName != nil {
			typeName, err := s.resolveType(tx, input.TypeName)
			if err != nil {
				return err
			}
			if typeName == nil {
				updates["type_name"] = gorm.Expr("NULL")
			} else {
				updates["type_name"] = *typeName
			}
			product.TypeName = typeName
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&models.ProductUnit{}).Where("id = ?", product.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product %d: %w", product.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product. Sales entries for it are removed through
// the aggregator so their orders' totals stay correct; supply entries go
// with it. A product sold on a Finished or Cancelled order cannot be deleted.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.SalesOrderEntry{}).Where("product_id = ?", id).Distinct().Pluck("order_id", &orderIDs).Error; err != nil {
			return fmt.Errorf("failed to find orders for product %d: %w", id, err)
		}

		orders := make(map[uint]*models.SalesOrder, len(orderIDs))
		for _, orderID := range sortedIDs(orderIDs) {
			order, err := lockByID[models.SalesOrder](tx, kindSalesOrder, orderID)
			if err != nil {
				return err
			}
			if err := requireActive(kindSalesOrder, order.ID, order.Status); err != nil {
				return err
			}
			orders[orderID] = order
		}
		product, err := lockByID[models.ProductUnit](tx, "product", id)
		if err != nil {
			return err
		}

		var entries []models.SalesOrderEntry
		if err := forUpdate(tx).Where("product_id = ?", product.ID).Order("id ASC").Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to load sales entries for product %d: %w", product.ID, err)
		}
		for i := range entries {
			order, ok := orders[entries[i].OrderID]
			if !ok {
				return fmt.Errorf("sales entry %d was added while product %d was being deleted", entries[i].ID, product.ID)
			}
			if err := removeSalesEntry(tx, order, &entries[i], nil); err != nil {
				return err
			}
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.SupplyOrderEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete supply entries for product %d: %w", product.ID, err)
		}
		if err := tx.Delete(&models.ProductUnit{}, product.ID).Error; err != nil {
			return fmt.Errorf("failed to delete product %d: %w", product.ID, err)
		}
		return nil
	})
}

// ListServiceTypes returns all service types by name
func (s *CatalogService) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	var services []models.ServiceType
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	return services, nil
}

// GetServiceType returns one service type or a NOT_FOUND error
func (s *CatalogService) GetServiceType(ctx context.Context, id uint) (*models.ServiceType, error) {
	return findByID[models.ServiceType](s.db.WithContext(ctx), "service type", id)
}

// CreateServiceType adds a service type with a non-negative cost
func (s *CatalogService) CreateServiceType(ctx context.Context, name string, cost decimal.Decimal) (*models.ServiceType, error) {
	name, err := validateServiceType(name, cost)
	if err != nil {
		return nil, err
	}

	service := models.ServiceType{Name: name, Cost: roundMoney(cost)}
	if err := s.db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, fmt.Errorf("failed to create service type: %w", err)
	}
	return &service, nil
}

// UpdateServiceType edits name or cost. Existing entries keep their price.
func (s *CatalogService) UpdateServiceType(ctx context.Context, id uint, input ServiceTypeInput) (*models.ServiceType, error) {
	var service *models.ServiceType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		service, err = lockByID[models.ServiceType](tx, "service type", id)
		if err != nil {
			return err
		}

		name, cost := service.Name, service.Cost
		if input.Name != nil {
			name = *input.Name
		}
		if input.Cost != nil {
			cost = *input.Cost
		}
		name, err = validateServiceType(name, cost)
		if err != nil {
			return err
		}
		service.Name = name
		service.Cost = roundMoney(cost)

		return tx.Model(&models.ServiceType{}).Where("id = ?", service.ID).Updates(map[string]interface{}{
			"name": service.Name,
			"cost": service.Cost,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

// DeleteServiceType removes a service type and every entry that used it,
// reducing the affected order totals. Entries on terminal orders block it.
func (s *CatalogService) DeleteServiceType(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.ServiceOrderEntry{}).Where("service_id = ?", id).Distinct().Pluck("order_id", &orderIDs).Error; err != nil {
			return fmt.Errorf("failed to find orders for service type %d: %w", id, err)
		}

		orders := make(map[uint]*models.ServiceOrder, len(orderIDs))
		for _, orderID := range sortedIDs(orderIDs) {
			order, err := lockByID[models.ServiceOrder](tx, kindServiceOrder, orderID)
			if err != nil {
				return err
			}
			if err := requireActive(kindServiceOrder, order.ID, order.Status); err != nil {
				return err
			}
			orders[orderID] = order
		}
		service, err := lockByID[models.ServiceType](tx, "service type", id)
		if err != nil {
			return err
		}

		var entries []models.ServiceOrderEntry
		if err := forUpdate(tx).Where("service_id = ?", service.ID).Order("id ASC").Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to load service entries for service type %d: %w", service.ID, err)
		}
		for i := range entries {
			order, ok := orders[entries[i].OrderID]
			if !ok {
				return fmt.Errorf("service entry %d was added while service type %d was being deleted", entries[i].ID, service.ID)
			}
			if err := removeServiceEntry(tx, order, &entries[i]); err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.ServiceType{}, service.ID).Error; err != nil {
			return fmt.Errorf("failed to delete service type %d: %w", service.ID, err)
		}
		return nil
	})
}

// resolveType checks that a referenced aircon type exists. nil or blank
// means no type.
func (s *CatalogService) resolveType(db *gorm.DB, typeName *string) (*string, error) {
	if typeName == nil || strings.TrimSpace(*typeName) == "" {
		return nil, nil
	}
	name := strings.TrimSpace(*typeName)

	var count int64
	if err := db.Model(&models.AirconType{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check aircon type %q: %w", name, err)
	}
	if count == 0 {
		return nil, utils.NotFoundError("aircon type", name)
	}
	return &name, nil
}

func validateServiceType(name string, cost decimal.Decimal) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", utils.ValidationError("service type name is required")
	}
	if len(name) > 50 {
		return "", utils.ValidationError("service type name must be at most 50 characters")
	}
	if cost.IsNegative() {
		return "", utils.ValidationError("cost cannot be negative")
	}
	return name, nil
}
