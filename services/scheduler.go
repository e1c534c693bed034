package services

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// StartReconcileScheduler runs the reconciler on a standard five-field cron
// schedule. Stop the returned cron on shutdown.
func StartReconcileScheduler(schedule string, reconciler *Reconciler) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		report, err := reconciler.Run(context.Background(), "scheduler")
		if err != nil {
			log.Printf("Scheduled reconciliation failed: %v", err)
			return
		}
		log.Printf("Scheduled reconciliation %s finished with %d discrepancies", report.RunID, len(report.Discrepancies))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}

	c.Start()
	log.Printf("Reconciliation scheduler started with schedule %q", schedule)
	return c, nil
}
