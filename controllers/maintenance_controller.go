package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/johncar-aircon/backoffice-api/config"
	"github.com/johncar-aircon/backoffice-api/middleware"
	"github.com/johncar-aircon/backoffice-api/services"
)

// ReconcileRequest represents the optional request body for a manual run
type ReconcileRequest struct {
	Repair *bool `json:"repair"`
}

// RunReconciliation handles POST /api/v1/maintenance/reconcile. Repair
// defaults to RECONCILE_REPAIR.
func RunReconciliation(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	repair := false
	if cfg := config.GetConfig(); cfg != nil {
		repair = cfg.ReconcileRepair
	}
	if req.Repair != nil {
		repair = *req.Repair
	}

	triggeredBy := "api"
	if operatorID, err := middleware.GetOperatorID(c); err == nil {
		triggeredBy = operatorID
	}

	ctx := c.Request.Context()
	store := services.GetReportStore()
	report, err := services.NewReconciler(config.GetDB(), store, repair).Run(ctx, triggeredBy)
	if report == nil {
		respondError(c, err, "Failed to run reconciliation")
		return
	}
	if err != nil {
		log.Printf("Reconciliation %s could not be archived: %v", report.RunID, err)
	}

	resp := gin.H{
		"report": report,
	}
	if report.ReportKey != "" {
		if url, err := store.GetReportURL(ctx, report.ReportKey); err != nil {
			log.Printf("Failed to get report URL: %v", err)
		} else {
			resp["report_url"] = url
		}
	}
	respondData(c, http.StatusOK, resp)
}
