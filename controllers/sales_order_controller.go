package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/johncar-aircon/backoffice-api/utils"
)

// CreateSalesOrderRequest represents the request body for opening a sales order
type CreateSalesOrderRequest struct {
	CustomerID   uint    `json:"customer_id" binding:"required"`
	DeliveryDate *string `json:"delivery_date"`
}

// UpdateDeliveryRequest sets the delivery date of a sales or supply order;
// null clears it
type UpdateDeliveryRequest struct {
	DeliveryDate *string `json:"delivery_date"`
}

// StatusRequest represents the request body for a status change
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ProductEntryRequest represents the request body for a new sales or supply entry
type ProductEntryRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateProductEntryRequest represents the request body for editing a sales or supply entry
type UpdateProductEntryRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB())
}

// ListSalesOrders handles GET /api/v1/sales-orders with an optional ?status= filter
func ListSalesOrders(c *gin.Context) {
	orders, err := orderService().ListSalesOrders(c.Request.Context(), models.OrderStatus(c.Query("status")))
	if err != nil {
		respondError(c, err, "Failed to retrieve sales orders")
		return
	}

	resp := make([]SalesOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toSalesOrderResponse(o))
	}
	respondData(c, http.StatusOK, resp)
}

// GetSalesOrder handles GET /api/v1/sales-orders/:id
func GetSalesOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := orderService().GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve sales order")
		return
	}
	respondData(c, http.StatusOK, toSalesOrderResponse(*order))
}

// CreateSalesOrder handles POST /api/v1/sales-orders
func CreateSalesOrder(c *gin.Context) {
	var req CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	deliveryDate, err := utils.ParseOptionalDate(req.DeliveryDate)
	if err != nil {
		respondError(c, err, "Invalid delivery date")
		return
	}

	order, err := orderService().CreateSalesOrder(c.Request.Context(), req.CustomerID, deliveryDate)
	if err != nil {
		respondError(c, err, "Failed to create sales order")
		return
	}
	respondData(c, http.StatusCreated, toSalesOrderResponse(*order))
}

// UpdateSalesOrder handles PATCH /api/v1/sales-orders/:id
func UpdateSalesOrder(c *gin.Context) {
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

	order, err := orderService().UpdateSalesOrderDelivery(c.Request.Context(), id, deliveryDate)
	if err != nil {
		respondError(c, err, "Failed to update sales order")
		return
	}
	respondData(c, http.StatusOK, toSalesOrderResponse(*order))
}

// SetSalesOrderStatus handles POST /api/v1/sales-orders/:id/status
func SetSalesOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := orderService().SetSalesOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update sales order status")
		return
	}
	respondData(c, http.StatusOK, toSalesOrderResponse(*order))
}

// DeleteSalesOrder handles DELETE /api/v1/sales-orders/:id
func DeleteSalesOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteSalesOrder(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete sales order")
		return
	}
	respondDeleted(c, "Sales order deleted")
}

// CreateSalesEntry handles POST /api/v1/sales-orders/:id/entries
func CreateSalesEntry(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProductEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().CreateSalesEntry(c.Request.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to create sales entry")
		return
	}
	respondData(c, http.StatusCreated, toSalesEntryResponse(*entry))
}

// UpdateSalesEntry handles PATCH /api/v1/sales-entries/:id
func UpdateSalesEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().UpdateSalesEntry(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update sales entry")
		return
	}
	respondData(c, http.StatusOK, toSalesEntryResponse(*entry))
}

// DeleteSalesEntry handles DELETE /api/v1/sales-entries/:id
func DeleteSalesEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteSalesEntry(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete sales entry")
		return
	}
	respondDeleted(c, "Sales entry deleted")
}
