package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogRouter() *gin.Engine {
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/aircon-types", ListAirconTypes)
	v1.POST("/aircon-types", CreateAirconType)
	v1.DELETE("/aircon-types/:name", DeleteAirconType)
	v1.GET("/products", ListProducts)
	v1.POST("/products", CreateProduct)
	v1.GET("/products/:id", GetProduct)
	v1.PATCH("/products/:id", UpdateProduct)
	v1.DELETE("/products/:id", DeleteProduct)
	v1.GET("/service-types", ListServiceTypes)
	v1.POST("/service-types", CreateServiceType)
	v1.PATCH("/service-types/:id", UpdateServiceType)
	v1.DELETE("/service-types/:id", DeleteServiceType)
	return r
}

func TestProductEndpoints(t *testing.T) {
	setupControllerDB(t)
	r := catalogRouter()

	w := performRequest(t, r, http.MethodPost, "/api/v1/aircon-types", map[string]interface{}{"name": "Split Type"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(t, r, http.MethodPost, "/api/v1/aircon-types", map[string]interface{}{"name": "Split Type"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Inverter 1.5HP", "unit_price": "32999.5", "stock": 4, "type": "Split Type",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := responseData(t, w)
	assert.Equal(t, "32999.50", product["unit_price"])
	assert.Equal(t, "Split Type", product["type"])
	productID := uint(product["id"].(float64))

	w = performRequest(t, r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Window 1HP", "unit_price": "15000", "stock": 1, "type": "Floor Mounted",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(t, r, http.MethodPost, "/api/v1/products", map[string]interface{}{"name": "No Price"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = performRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/products/%d", productID), map[string]interface{}{"unit_price": "30000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "30000.00", responseData(t, w)["unit_price"])

	w = performRequest(t, r, http.MethodGet, "/api/v1/products?type=Split%20Type", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"].([]interface{}), 1)

	w = performRequest(t, r, http.MethodDelete, "/api/v1/aircon-types/Split%20Type", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, responseData(t, w)["type"])

	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", productID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestDeleteProductRemovesSalesEntries(t *testing.T) {
	db := setupControllerDB(t)
	r := catalogRouter()
	customer := testutil.CreateCustomer(t, db, "Juan dela Cruz")
	product := testutil.CreateProduct(t, db, "Split Type 1HP", "5.00", 10)
	order := testutil.CreateSalesOrder(t, db, customer.ID)
	salesRouter := salesRouter()

	w := performRequest(t, salesRouter, http.MethodPost, fmt.Sprintf("/api/v1/sales-orders/%d/entries", order.ID),
		map[string]interface{}{"product_id": product.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(t, salesRouter, http.MethodGet, fmt.Sprintf("/api/v1/sales-orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, "0.00", data["total_price"])
	assert.Nil(t, data["entries"])
}

func TestServiceTypeEndpoints(t *testing.T) {
	setupControllerDB(t)
	r := catalogRouter()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{"Valid service type", map[string]interface{}{"name": "Cleaning", "cost": "750"}, http.StatusCreated},
		{"Missing cost", map[string]interface{}{"name": "Repair"}, http.StatusBadRequest},
		{"Negative cost", map[string]interface{}{"name": "Repair", "cost": "-1"}, http.StatusBadRequest},
		{"Name too long", map[string]interface{}{"name": "This service name is far longer than fifty characters in total", "cost": "1"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, r, http.MethodPost, "/api/v1/service-types", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}

	w := performRequest(t, r, http.MethodGet, "/api/v1/service-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	types := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, types, 1)
	cleaning := types[0].(map[string]interface{})
	assert.Equal(t, "750.00", cleaning["cost"])

	w = performRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/service-types/%d", uint(cleaning["id"].(float64))),
		map[string]interface{}{"cost": "800.25"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "800.25", responseData(t, w)["cost"])

	w = performRequest(t, r, http.MethodDelete, "/api/v1/service-types/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
