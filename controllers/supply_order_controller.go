package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
)

// CreateSupplyOrderRequest represents the request body for opening a supply order
type CreateSupplyOrderRequest struct {
	DeliveryDate *string `json:"delivery_date"`
}

// ListSupplyOrders handles GET /api/v1/supply-orders with an optional ?status= filter
func ListSupplyOrders(c *gin.Context) {
	orders, err := orderService().ListSupplyOrders(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err, "Failed to retrieve supply orders")
		return
	}

	resp := make([]SupplyOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toSupplyOrderResponse(o))
	}
	respondData(c, http.StatusOK, resp)
}

// GetSupplyOrder handles GET /api/v1/supply-orders/:id
func GetSupplyOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := orderService().GetSupplyOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve supply order")
		return
	}
	respondData(c, http.StatusOK, toSupplyOrderResponse(*order))
}

// CreateSupplyOrder handles POST /api/v1/supply-orders
func CreateSupplyOrder(c *gin.Context) {
	var req CreateSupplyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}
	deliveryDate, err := utils.ParseOptionalDate(req.DeliveryDate)
	if err != nil {
		respondError(c, err, "Invalid delivery date")
		return
	}

	order, err := orderService().CreateSupplyOrder(c.Request.Context(), deliveryDate)
	if err != nil {
		respondError(c, err, "Failed to create supply order")
		return
	}
	respondData(c, http.StatusCreated, toSupplyOrderResponse(*order))
}

// UpdateSupplyOrder handles PATCH /api/v1/supply-orders/:id
func UpdateSupplyOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	deliveryDate, err := utils.ParseOptionalDate(req.DeliveryDate)
	if err != nil {
		respondError(c, err, "Invalid delivery date")
		return
	}

	order, err := orderService().UpdateSupplyOrderDelivery(c.Request.Context(), id, deliveryDate)
	if err != nil {
		respondError(c, err, "Failed to update supply order")
		return
	}
	respondData(c, http.StatusOK, toSupplyOrderResponse(*order))
}

// SetSupplyOrderStatus handles POST /api/v1/supply-orders/:id/status
func SetSupplyOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := orderService().SetSupplyOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update supply order status")
		return
	}
	respondData(c, http.StatusOK, toSupplyOrderResponse(*order))
}

// DeleteSupplyOrder handles DELETE /api/v1/supply-orders/:id
func DeleteSupplyOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteSupplyOrder(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete supply order")
		return
	}
	respondDeleted(c, "Supply order deleted")
}

// CreateSupplyEntry handles POST /api/v1/supply-orders/:id/entries
func CreateSupplyEntry(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProductEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().CreateSupplyEntry(c.Request.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to create supply entry")
		return
	}
	respondData(c, http.StatusCreated, toSupplyEntryResponse(*entry))
}

// UpdateSupplyEntry handles PATCH /api/v1/supply-entries/:id
func UpdateSupplyEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().UpdateSupplyEntry(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update supply entry")
		return
	}
	respondData(c, http.StatusOK, toSupplyEntryResponse(*entry))
}

// DeleteSupplyEntry handles DELETE /api/v1/supply-entries/:id
func DeleteSupplyEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteSupplyEntry(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete supply entry")
		return
	}
	respondDeleted(c, "Supply entry deleted")
}
