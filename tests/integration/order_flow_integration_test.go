package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/routes"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/johncar-aircon/backoffice-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrderFlowIntegrationTestSuite drives sales, service and supply orders
// through the full router against an in-memory database
type OrderFlowIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	store  *services.MockReportStore
}

// SetupTest runs before each test
func (suite *OrderFlowIntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.NewTestDB(suite.T())
	config.SetDB(suite.db)

	suite.store = services.NewMockReportStore()
	suite.store.SetAsMockForTesting()

	suite.router = routes.SetupRouter(&config.Config{
		DatabaseURL: "sqlite::memory:",
		GoEnv:       "test",
	})
}

// TearDownTest runs after each test
func (suite *OrderFlowIntegrationTestSuite) TearDownTest() {
	services.SetReportStore(nil)
}

func (suite *OrderFlowIntegrationTestSuite) do(method, path string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w.Code, response
}

func (suite *OrderFlowIntegrationTestSuite) create(path string, body interface{}) map[string]interface{} {
	code, response := suite.do(http.MethodPost, path, body)
	suite.Require().Equal(http.StatusCreated, code, "POST %s: %v", path, response)
	return response["data"].(map[string]interface{})
}

func errorCodeOf(response map[string]interface{}) string {
	return response["error"].(map[string]interface{})["code"].(string)
}

func idOf(data map[string]interface{}) uint {
	return uint(data["id"].(float64))
}

func (suite *OrderFlowIntegrationTestSuite) stockOf(productID uint) int {
	var product models.ProductUnit
	suite.Require().NoError(suite.db.First(&product, productID).Error)
	return product.Stock
}

// TestSupplyThenSell tests stock moving in through a supply order and out through a sale
func (suite *OrderFlowIntegrationTestSuite) TestSupplyThenSell() {
	product := suite.create("/api/v1/products", map[string]interface{}{"name": "Split Type 1HP", "unit_price": "18500.00", "stock": 0})
	customer := suite.create("/api/v1/customers", map[string]interface{}{"name": "Juan dela Cruz"})

	supply := suite.create("/api/v1/supply-orders", map[string]interface{}{"delivery_date": "2026-10-20"})
	suite.create(fmt.Sprintf("/api/v1/supply-orders/%d/entries", idOf(supply)), map[string]interface{}{"product_id": idOf(product), "quantity": 5})
	assert.Equal(suite.T(), 5, suite.stockOf(idOf(product)))

	sale := suite.create("/api/v1/sales-orders", map[string]interface{}{"customer_id": idOf(customer)})
	entry := suite.create(fmt.Sprintf("/api/v1/sales-orders/%d/entries", idOf(sale)), map[string]interface{}{"product_id": idOf(product), "quantity": 2})
	assert.Equal(suite.T(), "37000.00", entry["entry_price"])
	assert.Equal(suite.T(), 3, suite.stockOf(idOf(product)))

	code, response := suite.do(http.MethodPost, fmt.Sprintf("/api/v1/sales-orders/%d/entries", idOf(sale)), map[string]interface{}{"product_id": idOf(product), "quantity": 4})
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "INSUFFICIENT_STOCK", errorCodeOf(response))

	// Only 3 units remain on hand, so the 5 received cannot be withdrawn
	code, response = suite.do(http.MethodDelete, fmt.Sprintf("/api/v1/supply-orders/%d", idOf(supply)), nil)
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "INSUFFICIENT_STOCK", errorCodeOf(response))
	assert.Equal(suite.T(), 3, suite.stockOf(idOf(product)))

	code, response = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/sales-orders/%d", idOf(sale)), nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), "37000.00", response["data"].(map[string]interface{})["total_price"])
}

// TestServiceOrderAndPayments tests booking a technician, billing and paying
func (suite *OrderFlowIntegrationTestSuite) TestServiceOrderAndPayments() {
	customer := suite.create("/api/v1/customers", map[string]interface{}{"name": "Maria Santos"})
	technician := suite.create("/api/v1/technicians", map[string]interface{}{"name": "Pedro Reyes"})
	suite.create(fmt.Sprintf("/api/v1/technicians/%d/schedules", idOf(technician)),
		map[string]interface{}{"day": 3, "time_start": "08:00", "time_end": "17:00"})
	cleaning := suite.create("/api/v1/service-types", map[string]interface{}{"name": "Cleaning", "cost": "850.00"})

	code, response := suite.do(http.MethodPost, "/api/v1/service-orders", map[string]interface{}{
		"customer_id": idOf(customer), "technician_id": idOf(technician), "service_date": "2026-10-12",
	})
	assert.Equal(suite.T(), http.StatusConflict, code)
	assert.Equal(suite.T(), "TECHNICIAN_UNAVAILABLE", errorCodeOf(response))

	order := suite.create("/api/v1/service-orders", map[string]interface{}{
		"customer_id": idOf(customer), "technician_id": idOf(technician), "service_date": "2026-10-14",
	})
	suite.create(fmt.Sprintf("/api/v1/service-orders/%d/entries", idOf(order)), map[string]interface{}{"service_id": idOf(cleaning), "quantity": 2})

	paymentsPath := fmt.Sprintf("/api/v1/service-orders/%d/payments", idOf(order))
	suite.create(paymentsPath, map[string]interface{}{"amount_paid": "1000.00", "is_cash": true})

	code, response = suite.do(http.MethodGet, paymentsPath, nil)
	suite.Require().Equal(http.StatusOK, code)
	summary := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), "1700.00", summary["order_total"])
	assert.Equal(suite.T(), "1000.00", summary["total_paid"])
	assert.Equal(suite.T(), "700.00", summary["balance"])

	code, _ = suite.do(http.MethodPost, fmt.Sprintf("/api/v1/service-orders/%d/status", idOf(order)), map[string]interface{}{"status": "Finished"})
	suite.Require().Equal(http.StatusOK, code)

	// Payments are still accepted once the job is done
	suite.create(paymentsPath, map[string]interface{}{"amount_paid": "700.00", "is_cash": true})
}

// TestReconcileRepairsDrift tests the maintenance endpoint end to end
func (suite *OrderFlowIntegrationTestSuite) TestReconcileRepairsDrift() {
	product := suite.create("/api/v1/products", map[string]interface{}{"name": "Window Type", "unit_price": "100.00", "stock": 5})
	customer := suite.create("/api/v1/customers", map[string]interface{}{"name": "Juan dela Cruz"})
	sale := suite.create("/api/v1/sales-orders", map[string]interface{}{"customer_id": idOf(customer)})
	suite.create(fmt.Sprintf("/api/v1/sales-orders/%d/entries", idOf(sale)), map[string]interface{}{"product_id": idOf(product), "quantity": 1})

	suite.Require().NoError(suite.db.Model(&models.SalesOrder{}).Where("id = ?", idOf(sale)).
		Update("total_price", testutil.Money(suite.T(), "1.00")).Error)

	code, response := suite.do(http.MethodPost, "/api/v1/maintenance/reconcile", map[string]interface{}{"repair": true})
	suite.Require().Equal(http.StatusOK, code, response)
	data := response["data"].(map[string]interface{})
	report := data["report"].(map[string]interface{})
	assert.Len(suite.T(), report["discrepancies"], 1)
	assert.NotEmpty(suite.T(), data["report_url"])
	assert.Len(suite.T(), suite.store.Reports(), 1)

	code, response = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/sales-orders/%d", idOf(sale)), nil)
	suite.Require().Equal(http.StatusOK, code)
	assert.Equal(suite.T(), "100.00", response["data"].(map[string]interface{})["total_price"])
}

// TestDeleteCustomerCascades tests that a customer's sales orders go with it
func (suite *OrderFlowIntegrationTestSuite) TestDeleteCustomerCascades() {
	product := suite.create("/api/v1/products", map[string]interface{}{"name": "Split Type 2HP", "unit_price": "25000.00", "stock": 4})
	customer := suite.create("/api/v1/customers", map[string]interface{}{"name": "Juan dela Cruz"})
	sale := suite.create("/api/v1/sales-orders", map[string]interface{}{"customer_id": idOf(customer)})
	suite.create(fmt.Sprintf("/api/v1/sales-orders/%d/entries", idOf(sale)), map[string]interface{}{"product_id": idOf(product), "quantity": 3})
	assert.Equal(suite.T(), 1, suite.stockOf(idOf(product)))

	code, _ := suite.do(http.MethodDelete, fmt.Sprintf("/api/v1/customers/%d", idOf(customer)), nil)
	suite.Require().Equal(http.StatusOK, code)

	code, _ = suite.do(http.MethodGet, fmt.Sprintf("/api/v1/sales-orders/%d", idOf(sale)), nil)
	assert.Equal(suite.T(), http.StatusNotFound, code)
	assert.Equal(suite.T(), 4, suite.stockOf(idOf(product)))
}

func TestOrderFlowIntegrationSuite(t *testing.T) {
	suite.Run(t, new(OrderFlowIntegrationTestSuite))
}
