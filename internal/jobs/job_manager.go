// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only job today is the shipment completion
// sweep, which closes delivered shipments after their grace period. Jobs are
// started and stopped together through JobManager.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"docurgent/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	completionJob *ShipmentCompletionJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	completeHandler commands.CompleteDeliveredShipmentsCommandHandler,
	completionGrace time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		completionJob: NewShipmentCompletionJob(completeHandler, completionGrace, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.completionJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment completion job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.completionJob.Stop()
}
