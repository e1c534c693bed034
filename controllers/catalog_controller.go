package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/services"
	"github.com/shopspring/decimal"
)

// CreateAirconTypeRequest represents the request body for creating an aircon type
type CreateAirconTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name      string           `json:"name" binding:"required,max=255"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
	Stock     int              `json:"stock" binding:"gte=0"`
	Type      *string          `json:"type"`
}

// UpdateProductRequest represents the request body for editing a product.
// Stock only moves through supply and sales entries.
type UpdateProductRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=255"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Type      *string          `json:"type"`
}

// ServiceTypeRequest represents the request body for creating or editing a service type
type ServiceTypeRequest struct {
	Name *string          `json:"name" binding:"omitempty,max=50"`
	Cost *decimal.Decimal `json:"cost"`
}

func catalogService() *services.CatalogService {
	return services.NewCatalogService(config.GetDB())
}

// ListAirconTypes handles GET /api/v1/aircon-types
func ListAirconTypes(c *gin.Context) {
	types, err := catalogService().ListAirconTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve aircon types")
		return
	}

	resp := make([]AirconTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, AirconTypeResponse{Name: t.Name})
	}
	respondData(c, http.StatusOK, resp)
}

// CreateAirconType handles POST /api/v1/aircon-types
func CreateAirconType(c *gin.Context) {
	var req CreateAirconTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	airconType, err := catalogService().CreateAirconType(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "Failed to create aircon type")
		return
	}
	respondData(c, http.StatusCreated, AirconTypeResponse{Name: airconType.Name})
}

// DeleteAirconType handles DELETE /api/v1/aircon-types/:name
func DeleteAirconType(c *gin.Context) {
	if err := catalogService().DeleteAirconType(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err, "Failed to delete aircon type")
		return
	}
	respondDeleted(c, "Aircon type deleted")
}

// ListProducts handles GET /api/v1/products with an optional ?type= filter
func ListProducts(c *gin.Context) {
	products, err := catalogService().ListProducts(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	resp := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	respondData(c, http.StatusOK, resp)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := catalogService().GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}
	respondData(c, http.StatusOK, toProductResponse(*product))
}

// CreateProduct handles POST /api/v1/products
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := catalogService().CreateProduct(c.Request.Context(), services.ProductInput{
		Name:      req.Name,
		UnitPrice: *req.UnitPrice,
		Stock:     req.Stock,
		TypeName:  req.Type,
	})
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}
	respondData(c, http.StatusCreated, toProductResponse(*product))
}

// UpdateProduct handles PATCH /api/v1/products/:id
func UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := catalogService().UpdateProduct(c.Request.Context(), id, services.ProductUpdate{
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		TypeName:  req.Type,
	})
	if err != nil {
		respondError(c, err, "Failed to update product")
		return
	}
	respondData(c, http.StatusOK, toProductResponse(*product))
}

// DeleteProduct handles DELETE /api/v1/products/:id
func DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := catalogService().DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete product")
		return
	}
	respondDeleted(c, "Product deleted")
}

// ListServiceTypes handles GET /api/v1/service-types
func ListServiceTypes(c *gin.Context) {
	serviceTypes, err := catalogService().ListServiceTypes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve service types")
		return
	}

	resp := make([]ServiceTypeResponse, 0, len(serviceTypes))
	for _, s := range serviceTypes {
		resp = append(resp, toServiceTypeResponse(s))
	}
	respondData(c, http.StatusOK, resp)
}

// GetServiceType handles GET /api/v1/service-types/:id
func GetServiceType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	serviceType, err := catalogService().GetServiceType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve service type")
		return
	}
	respondData(c, http.StatusOK, toServiceTypeResponse(*serviceType))
}

// CreateServiceType handles POST /api/v1/service-types
func CreateServiceType(c *gin.Context) {
	var req ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Name == nil || req.Cost == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "name and cost are required",
			},
		})
		return
	}

	serviceType, err := catalogService().CreateServiceType(c.Request.Context(), *req.Name, *req.Cost)
	if err != nil {
		respondError(c, err, "Failed to create service type")
		return
	}
	respondData(c, http.StatusCreated, toServiceTypeResponse(*serviceType))
}

// UpdateServiceType handles PATCH /api/v1/service-types/:id
func UpdateServiceType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	serviceType, err := catalogService().UpdateServiceType(c.Request.Context(), id, services.ServiceTypeInput{
		Name: req.Name,
		Cost: req.Cost,
	})
	if err != nil {
		respondError(c, err, "Failed to update service type")
		return
	}
	respondData(c, http.StatusOK, toServiceTypeResponse(*serviceType))
}

// DeleteServiceType handles DELETE /api/v1/service-types/:id
func DeleteServiceType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := catalogService().DeleteServiceType(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete service type")
		return
	}
	respondDeleted(c, "Service type deleted")
}
