package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/models"
	"github.com/johncar-aircon/backoffice-api/utils"
	"gorm.io/datatypes"
)

// CreateServiceOrderRequest represents the request body for booking a service
type CreateServiceOrderRequest struct {
	CustomerID   uint   `json:"customer_id" binding:"required"`
	TechnicianID uint   `json:"technician_id" binding:"required"`
	ServiceDate  string `json:"service_date" binding:"required"`
}

// UpdateServiceOrderRequest reassigns the technician and/or moves the date
type UpdateServiceOrderRequest struct {
	TechnicianID *uint   `json:"technician_id"`
	ServiceDate  *string `json:"service_date"`
}

// ServiceEntryRequest represents the request body for a new service entry
type ServiceEntryRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateServiceEntryRequest represents the request body for editing a service entry
type UpdateServiceEntryRequest struct {
	ServiceID *uint `json:"service_id"`
	Quantity  *int  `json:"quantity"`
}

// ListServiceOrders handles GET /api/v1/service-orders with optional
// ?status= and ?technician_id= filters
func ListServiceOrders(c *gin.Context) {
	var technicianID uint
	if raw := c.Query("technician_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, utils.ValidationError("invalid technician_id %q", raw), "Invalid filter")
			return
		}
		technicianID = uint(id)
	}

	orders, err := orderService().ListServiceOrders(c.Request.Context(), models.OrderStatus(c.Query("status")), technicianID)
	if err != nil {
		respondError(c, err, "Failed to retrieve service orders")
		return
	}

	resp := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toServiceOrderResponse(o))
	}
	respondData(c, http.StatusOK, resp)
}

// GetServiceOrder handles GET /api/v1/service-orders/:id
func GetServiceOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := orderService().GetServiceOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve service order")
		return
	}
	respondData(c, http.StatusOK, toServiceOrderResponse(*order))
}

// CreateServiceOrder handles POST /api/v1/service-orders. The technician
// must have an active schedule on the service date's weekday.
func CreateServiceOrder(c *gin.Context) {
	var req CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	serviceDate, err := utils.ParseDate(req.ServiceDate)
	if err != nil {
		respondError(c, err, "Invalid service date")
		return
	}

	order, err := orderService().CreateServiceOrder(c.Request.Context(), req.CustomerID, req.TechnicianID, serviceDate)
	if err != nil {
		respondError(c, err, "Failed to create service order")
		return
	}
	respondData(c, http.StatusCreated, toServiceOrderResponse(*order))
}

// UpdateServiceOrder handles PATCH /api/v1/service-orders/:id
func UpdateServiceOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var serviceDate *datatypes.Date
	if req.ServiceDate != nil {
		d, err := utils.ParseDate(*req.ServiceDate)
		if err != nil {
			respondError(c, err, "Invalid service date")
			return
		}
		serviceDate = &d
	}

	order, err := orderService().UpdateServiceOrder(c.Request.Context(), id, req.TechnicianID, serviceDate)
	if err != nil {
		respondError(c, err, "Failed to update service order")
		return
	}
	respondData(c, http.StatusOK, toServiceOrderResponse(*order))
}

// SetServiceOrderStatus handles POST /api/v1/service-orders/:id/status
func SetServiceOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := orderService().SetServiceOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err, "Failed to update service order status")
		return
	}
	respondData(c, http.StatusOK, toServiceOrderResponse(*order))
}

// DeleteServiceOrder handles DELETE /api/v1/service-orders/:id
func DeleteServiceOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteServiceOrder(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete service order")
		return
	}
	respondDeleted(c, "Service order deleted")
}

// CreateServiceEntry handles POST /api/v1/service-orders/:id/entries
func CreateServiceEntry(c *gin.Context) {
	orderID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ServiceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().CreateServiceEntry(c.Request.Context(), orderID, req.ServiceID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to create service entry")
		return
	}
	respondData(c, http.StatusCreated, toServiceEntryResponse(*entry))
}

// UpdateServiceEntry handles PATCH /api/v1/service-entries/:id
func UpdateServiceEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := orderService().UpdateServiceEntry(c.Request.Context(), id, req.ServiceID, req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update service entry")
		return
	}
	respondData(c, http.StatusOK, toServiceEntryResponse(*entry))
}

// DeleteServiceEntry handles DELETE /api/v1/service-entries/:id
func DeleteServiceEntry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderService().DeleteServiceEntry(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete service entry")
		return
	}
	respondDeleted(c, "Service entry deleted")
}
