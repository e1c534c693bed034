package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/controllers"
	"github.com/johncar-aircon/backoffice-api/middleware"
)

// MaintenanceScope is required on tokens that trigger maintenance jobs
const MaintenanceScope = "run:maintenance"

// SetupRouter builds the API router. Token validation is only installed when
// an Auth0 domain is configured.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", controllers.HealthCheck)
		v1.GET("/database/status", controllers.DatabaseStatus)
	}

	api := v1.Group("")
	if cfg.AuthEnabled() {
		api.Use(middleware.EnsureValidToken(cfg))
	}

	airconTypes := api.Group("/aircon-types")
	{
		airconTypes.GET("", controllers.ListAirconTypes)
		airconTypes.POST("", controllers.CreateAirconType)
		airconTypes.DELETE("/:name", controllers.DeleteAirconType)
	}

	products := api.Group("/products")
	{
		products.GET("", controllers.ListProducts)
		products.POST("", controllers.CreateProduct)
		products.GET("/:id", controllers.GetProduct)
		products.PATCH("/:id", controllers.UpdateProduct)
		products.DELETE("/:id", controllers.DeleteProduct)
	}

	serviceTypes := api.Group("/service-types")
	{
		serviceTypes.GET("", controllers.ListServiceTypes)
		serviceTypes.POST("", controllers.CreateServiceType)
		serviceTypes.GET("/:id", controllers.GetServiceType)
		serviceTypes.PATCH("/:id", controllers.UpdateServiceType)
		serviceTypes.DELETE("/:id", controllers.DeleteServiceType)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", controllers.ListCustomers)
		customers.POST("", controllers.CreateCustomer)
		customers.GET("/:id", controllers.GetCustomer)
		customers.PATCH("/:id", controllers.UpdateCustomer)
		customers.DELETE("/:id", controllers.DeleteCustomer)
	}

	technicians := api.Group("/technicians")
	{
		technicians.GET("", controllers.ListTechnicians)
		technicians.POST("", controllers.CreateTechnician)
		technicians.GET("/:id", controllers.GetTechnician)
		technicians.PATCH("/:id", controllers.UpdateTechnician)
		technicians.DELETE("/:id", controllers.DeleteTechnician)
		technicians.GET("/:id/schedules", controllers.ListSchedules)
		technicians.POST("/:id/schedules", controllers.CreateSchedule)
	}

	schedules := api.Group("/schedules")
	{
		schedules.PATCH("/:id", controllers.UpdateSchedule)
		schedules.DELETE("/:id", controllers.DeleteSchedule)
	}

	salesOrders := api.Group("/sales-orders")
	{
		salesOrders.GET("", controllers.ListSalesOrders)
		salesOrders.POST("", controllers.CreateSalesOrder)
		salesOrders.GET("/:id", controllers.GetSalesOrder)
		salesOrders.PATCH("/:id", controllers.UpdateSalesOrder)
		salesOrders.DELETE("/:id", controllers.DeleteSalesOrder)
		salesOrders.POST("/:id/status", controllers.SetSalesOrderStatus)
		salesOrders.POST("/:id/entries", controllers.CreateSalesEntry)
		salesOrders.GET("/:id/payments", controllers.ListSalesPayments)
		salesOrders.POST("/:id/payments", controllers.RecordSalesPayment)
	}

	salesEntries := api.Group("/sales-entries")
	{
		salesEntries.PATCH("/:id", controllers.UpdateSalesEntry)
		salesEntries.DELETE("/:id", controllers.DeleteSalesEntry)
	}

	serviceOrders := api.Group("/service-orders")
	{
		serviceOrders.GET("", controllers.ListServiceOrders)
		serviceOrders.POST("", controllers.CreateServiceOrder)
		serviceOrders.GET("/:id", controllers.GetServiceOrder)
		serviceOrders.PATCH("/:id", controllers.UpdateServiceOrder)
		serviceOrders.DELETE("/:id", controllers.DeleteServiceOrder)
		serviceOrders.POST("/:id/status", controllers.SetServiceOrderStatus)
		serviceOrders.POST("/:id/entries", controllers.CreateServiceEntry)
		serviceOrders.GET("/:id/payments", controllers.ListServicePayments)
		serviceOrders.POST("/:id/payments", controllers.RecordServicePayment)
	}

	serviceEntries := api.Group("/service-entries")
	{
		serviceEntries.PATCH("/:id", controllers.UpdateServiceEntry)
		serviceEntries.DELETE("/:id", controllers.DeleteServiceEntry)
	}

	supplyOrders := api.Group("/supply-orders")
	{
		supplyOrders.GET("", controllers.ListSupplyOrders)
		supplyOrders.POST("", controllers.CreateSupplyOrder)
		supplyOrders.GET("/:id", controllers.GetSupplyOrder)
		supplyOrders.PATCH("/:id", controllers.UpdateSupplyOrder)
		supplyOrders.DELETE("/:id", controllers.DeleteSupplyOrder)
		supplyOrders.POST("/:id/status", controllers.SetSupplyOrderStatus)
		supplyOrders.POST("/:id/entries", controllers.CreateSupplyEntry)
	}

	supplyEntries := api.Group("/supply-entries")
	{
		supplyEntries.PATCH("/:id", controllers.UpdateSupplyEntry)
		supplyEntries.DELETE("/:id", controllers.DeleteSupplyEntry)
	}

	maintenance := api.Group("/maintenance")
	if cfg.AuthEnabled() {
		maintenance.Use(middleware.RequireScope(MaintenanceScope))
	}
	{
		maintenance.POST("/reconcile", controllers.RunReconciliation)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
