package testutil

import (
	"testing"
	"time"

	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory sqlite database. It is limited to one
// connection because every new connection to ":memory:" is a fresh database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.MigrateDatabase(db), "Failed to migrate test database")
	return db
}

// Money parses a decimal literal
func Money(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

// Date parses a YYYY-MM-DD literal
func Date(t *testing.T, value string) datatypes.Date {
	t.Helper()
	d, err := utils.ParseDate(value)
	require.NoError(t, err)
	return d
}

// CreateProduct inserts a product with the given unit price and stock
func CreateProduct(t *testing.T, db *gorm.DB, name, unitPrice string, stock int) *models.ProductUnit {
	t.Helper()
	product := &models.ProductUnit{Name: name, UnitPrice: Money(t, unitPrice), Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateServiceType inserts a service type with the given cost
func CreateServiceType(t *testing.T, db *gorm.DB, name, cost string) *models.ServiceType {
	t.Helper()
	service := &models.ServiceType{Name: name, Cost: Money(t, cost)}
	require.NoError(t, db.Create(service).Error)
	return service
}

// CreateCustomer inserts a customer
func CreateCustomer(t *testing.T, db *gorm.DB, name string) *models.CustomerDetails {
	t.Helper()
	customer := &models.CustomerDetails{Name: name, Contact: "09171234567", Email: "customer@example.com"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTechnician inserts a technician with an active 08:00-17:00 schedule
// on each given ISO weekday
func CreateTechnician(t *testing.T, db *gorm.DB, name string, days ...int) *models.TechnicianDetails {
	t.Helper()
	technician := &models.TechnicianDetails{Name: name, Phone: "09179876543"}
	require.NoError(t, db.Create(technician).Error)

	for _, day := range days {
		schedule := &models.TechnicianSchedule{
			TechnicianID: technician.ID,
			Day:          day,
			TimeStart:    datatypes.NewTime(8, 0, 0, 0),
			TimeEnd:      datatypes.NewTime(17, 0, 0, 0),
			Active:       true,
		}
		require.NoError(t, db.Create(schedule).Error)
		technician.Schedules = append(technician.Schedules, *schedule)
	}
	return technician
}

// CreateSalesOrder inserts an empty Active sales order
func CreateSalesOrder(t *testing.T, db *gorm.DB, customerID uint) *models.SalesOrder {
	t.Helper()
	order := &models.SalesOrder{
		CustomerID:  customerID,
		DateOrdered: utils.Today(),
		TotalPrice:  decimal.Zero,
		Status:      models.StatusActive,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// CreateSupplyOrder inserts an empty Active supply order
func CreateSupplyOrder(t *testing.T, db *gorm.DB) *models.SupplyOrder {
	t.Helper()
	order := &models.SupplyOrder{DateOrdered: utils.Today(), Status: models.StatusActive}
	require.NoError(t, db.Create(order).Error)
	return order
}

// CreateServiceOrder inserts an empty Active service order without running
// the availability check
func CreateServiceOrder(t *testing.T, db *gorm.DB, customerID, technicianID uint, serviceDate string) *models.ServiceOrder {
	t.Helper()
	order := &models.ServiceOrder{
		CustomerID:   &customerID,
		TechnicianID: &technicianID,
		DateOrdered:  utils.Today(),
		ServiceDate:  Date(t, serviceDate),
		TotalPrice:   decimal.Zero,
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// ReloadProduct reads a product's current row
func ReloadProduct(t *testing.T, db *gorm.DB, id uint) *models.ProductUnit {
	t.Helper()
	var product models.ProductUnit
	require.NoError(t, db.First(&product, id).Error)
	return &product
}
