package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DirectoryService manages customers, technicians and technician schedules
type DirectoryService struct {
	db *gorm.DB
}

// NewDirectoryService creates a directory service backed by db
func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// ContactInput is shared by customers and technicians. Phone maps to the
// customer's contact number.
type ContactInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// ScheduleInput describes a weekly availability window. Active defaults to
// true when creating.
type ScheduleInput struct {
	Day       *int
	TimeStart *datatypes.Time
	TimeEnd   *datatypes.Time
	Active    *bool
}

// ListCustomers returns every customer ordered by name
func (s *DirectoryService) ListCustomers(ctx context.Context) ([]models.CustomerDetails, error) {
	var customers []models.CustomerDetails
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer returns one customer or a NOT_FOUND error
func (s *DirectoryService) GetCustomer(ctx context.Context, id uint) (*models.CustomerDetails, error) {
	return findByID[models.CustomerDetails](s.db.WithContext(ctx), "customer", id)
}

// CreateCustomer adds a customer; a name is required
func (s *DirectoryService) CreateCustomer(ctx context.Context, input ContactInput) (*models.CustomerDetails, error) {
	var customer models.CustomerDetails
	if err := applyContact(&customer.Name, &customer.Contact, &customer.Email, &customer.Address, input, true); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer changes the fields present in input
func (s *DirectoryService) UpdateCustomer(ctx context.Context, id uint, input ContactInput) (*models.CustomerDetails, error) {
	var customer *models.CustomerDetails
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = lockByID[models.CustomerDetails](tx, "customer", id)
		if err != nil {
			return err
		}
		if err := applyContact(&customer.Name, &customer.Contact, &customer.Email, &customer.Address, input, false); err != nil {
			return err
		}
		return tx.Model(&models.CustomerDetails{}).Where("id = ?", customer.ID).Updates(map[string]interface{}{
			"name":    customer.Name,
			"contact": customer.Contact,
			"email":   customer.Email,
			"address": customer.Address,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer together with their sales orders, whose
// units go back into stock. Service orders stay on record without a customer.
func (s *DirectoryService) DeleteCustomer(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := lockByID[models.CustomerDetails](tx, "customer", id)
		if err != nil {
			return err
		}

		var orderIDs []uint
		if err := tx.Model(&models.SalesOrder{}).Where("customer_id = ?", customer.ID).Pluck("id", &orderIDs).Error; err != nil {
			return fmt.Errorf("failed to find sales orders for customer %d: %w", customer.ID, err)
		}
		for _, orderID := range sortedIDs(orderIDs) {
			if err := deleteSalesOrderTx(tx, orderID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.ServiceOrder{}).Where("customer_id = ?", customer.ID).Update("customer_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to detach service orders from customer %d: %w", customer.ID, err)
		}
		if err := tx.Delete(&models.CustomerDetails{}, customer.ID).Error; err != nil {
			return fmt.Errorf("failed to delete customer %d: %w", customer.ID, err)
		}
		return nil
	})
}

// ListTechnicians returns technicians with their schedules
func (s *DirectoryService) ListTechnicians(ctx context.Context) ([]models.TechnicianDetails, error) {
	var technicians []models.TechnicianDetails
	err := s.db.WithContext(ctx).
		Preload("Schedules", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC, time_start ASC") }).
		Order("name ASC, id ASC").
		Find(&technicians).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	return technicians, nil
}

// GetTechnician returns one technician with schedules
func (s *DirectoryService) GetTechnician(ctx context.Context, id uint) (*models.TechnicianDetails, error) {
	var technician models.TechnicianDetails
	err := s.db.WithContext(ctx).
		Preload("Schedules", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC, time_start ASC") }).
		First(&technician, id).Error
	if err != nil {
		return nil, lookupError(err, "technician", id)
	}
	return &technician, nil
}

// CreateTechnician adds a technician without schedules
func (s *DirectoryService) CreateTechnician(ctx context.Context, input ContactInput) (*models.TechnicianDetails, error) {
	var technician models.TechnicianDetails
	var address string
	if err := applyContact(&technician.Name, &technician.Phone, &technician.Email, &address, input, true); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&technician).Error; err != nil {
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}
	return &technician, nil
}

// UpdateTechnician changes the fields present in input
func (s *DirectoryService) UpdateTechnician(ctx context.Context, id uint, input ContactInput) (*models.TechnicianDetails, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		technician, err := lockByID[models.TechnicianDetails](tx, "technician", id)
		if err != nil {
			return err
		}
		var address string
		if err := applyContact(&technician.Name, &technician.Phone, &technician.Email, &address, input, false); err != nil {
			return err
		}
		return tx.Model(&models.TechnicianDetails{}).Where("id = ?", technician.ID).Updates(map[string]interface{}{
			"name":  technician.Name,
			"phone": technician.Phone,
			"email": technician.Email,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetTechnician(ctx, id)
}

// DeleteTechnician removes a technician and their schedules. Service orders
// stay on record without a technician.
func (s *DirectoryService) DeleteTechnician(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		technician, err := lockByID[models.TechnicianDetails](tx, "technician", id)
		if err != nil {
			return err
		}
		if err := tx.Where("technician_id = ?", technician.ID).Delete(&models.TechnicianSchedule{}).Error; err != nil {
			return fmt.Errorf("failed to delete schedules for technician %d: %w", technician.ID, err)
		}
		if err := tx.Model(&models.ServiceOrder{}).Where("technician_id = ?", technician.ID).Update("technician_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("failed to detach service orders from technician %d: %w", technician.ID, err)
		}
		if err := tx.Delete(&models.TechnicianDetails{}, technician.ID).Error; err != nil {
			return fmt.Errorf("failed to delete technician %d: %w", technician.ID, err)
		}
		return nil
	})
}

// ListSchedules returns a technician's weekly schedule rows by day
func (s *DirectoryService) ListSchedules(ctx context.Context, technicianID uint) ([]models.TechnicianSchedule, error) {
	db := s.db.WithContext(ctx)
	if _, err := findByID[models.TechnicianDetails](db, "technician", technicianID); err != nil {
		return nil, err
	}

	var schedules []models.TechnicianSchedule
	if err := db.Where("technician_id = ?", technicianID).Order("day ASC, time_start ASC").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules for technician %d: %w", technicianID, err)
	}
	return schedules, nil
}

// CreateSchedule adds a weekly window; day, start and end are required
func (s *DirectoryService) CreateSchedule(ctx context.Context, technicianID uint, input ScheduleInput) (*models.TechnicianSchedule, error) {
	if input.Day == nil || input.TimeStart == nil || input.TimeEnd == nil {
		return nil, utils.ValidationError("day, time_start and time_end are required")
	}
	schedule := models.TechnicianSchedule{
		TechnicianID: technicianID,
		Day:          *input.Day,
		TimeStart:    *input.TimeStart,
		TimeEnd:      *input.TimeEnd,
		Active:       true,
	}
	if input.Active != nil {
		schedule.Active = *input.Active
	}
	if err := validateSchedule(&schedule); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := findByID[models.TechnicianDetails](db, "technician", technicianID); err != nil {
		return nil, err
	}
	if err := db.Create(&schedule).Error; err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return &schedule, nil
}

// UpdateSchedule edits a window. Existing service orders are not re-checked.
func (s *DirectoryService) UpdateSchedule(ctx context.Context, id uint, input ScheduleInput) (*models.TechnicianSchedule, error) {
	var schedule *models.TechnicianSchedule
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		schedule, err = lockByID[models.TechnicianSchedule](tx, "schedule", id)
		if err != nil {
			return err
		}
		if input.Day != nil {
			schedule.Day = *input.Day
		}
		if input.TimeStart != nil {
			schedule.TimeStart = *input.TimeStart
		}
		if input.TimeEnd != nil {
			schedule.TimeEnd = *input.TimeEnd
		}
		if input.Active != nil {
			schedule.Active = *input.Active
		}
		if err := validateSchedule(schedule); err != nil {
			return err
		}
		return tx.Model(&models.TechnicianSchedule{}).Where("id = ?", schedule.ID).Updates(map[string]interface{}{
			"day":        schedule.Day,
			"time_start": schedule.TimeStart,
			"time_end":   schedule.TimeEnd,
			"active":     schedule.Active,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// DeleteSchedule removes one schedule row
func (s *DirectoryService) DeleteSchedule(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		schedule, err := lockByID[models.TechnicianSchedule](tx, "schedule", id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.TechnicianSchedule{}, schedule.ID).Error; err != nil {
			return fmt.Errorf("failed to delete schedule %d: %w", schedule.ID, err)
		}
		return nil
	})
}

func validateSchedule(schedule *models.TechnicianSchedule) error {
	if schedule.Day < 1 || schedule.Day > 7 {
		return utils.ValidationError("day must be between 1 (Monday) and 7 (Sunday), got %d", schedule.Day)
	}
	if schedule.TimeStart >= schedule.TimeEnd {
		return utils.ValidationError("time_start must be before time_end")
	}
	return nil
}

// applyContact copies the non-nil fields of input onto the targets.
// When creating, a name is mandatory.
func applyContact(name, phone, email, address *string, input ContactInput, creating bool) error {
	if input.Name != nil {
		*name = strings.TrimSpace(*input.Name)
	}
	if creating || input.Name != nil {
		if *name == "" {
			return utils.ValidationError("name is required")
		}
	}
	if input.Phone != nil {
		p := strings.TrimSpace(*input.Phone)
		if len(p) > 12 {
			return utils.ValidationError("phone number must be at most 12 characters")
		}
		*phone = p
	}
	if input.Email != nil {
		*email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		*address = strings.TrimSpace(*input.Address)
	}
	return nil
}
