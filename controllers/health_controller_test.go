package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseStatus(t *testing.T) {
	setupControllerDB(t)

	r := gin.New()
	r.GET("/api/v1/database/status", DatabaseStatus)

	w := performRequest(t, r, http.MethodGet, "/api/v1/database/status", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	response := decodeResponse(t, w)
	assert.True(t, response["success"].(bool))
	assert.Equal(t, "Database connected", response["message"])
	tables := response["tables"].([]interface{})
	assert.Contains(t, tables, "sales_orders")
	assert.Contains(t, tables, "product_units")
	assert.Contains(t, tables, "technician_schedules")
}
