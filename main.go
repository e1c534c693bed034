package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/routes"
	"github.com/johncar-aircon/backoffice-api/services"
)

func main() {
	log.Println("Starting Aircon Back Office API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	if err := config.MigrateDatabase(config.GetDB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	var store services.ReportStore
	if cfg.ReportArchiveEnabled() {
		store, err = services.InitS3ReportStore(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize report store: %v", err)
		}
		log.Printf("Reconciliation reports will be archived to s3://%s", cfg.AWSS3Bucket)
	}

	reconciler := services.NewReconciler(config.GetDB(), store, cfg.ReconcileRepair)
	scheduler, err := services.StartReconcileScheduler(cfg.ReconcileSchedule, reconciler)
	if err != nil {
		log.Fatalf("Failed to start reconciliation scheduler: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := newServer(cfg)

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// newServer wires the router into an http.Server listening on cfg.Port
func newServer(cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
