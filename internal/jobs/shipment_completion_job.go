package jobs

import (
	"context"
	"log/slog"
	"time"

	"docurgent/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShipmentCompletionJob sweeps delivered and confirmed shipments into the
// completed terminal state once their grace period has elapsed. Runs every
// minute; the sweep itself is idempotent, so an overlapping run only loses
// the CAS race and moves on.
type ShipmentCompletionJob struct {
	handler     commands.CompleteDeliveredShipmentsCommandHandler
	gracePeriod time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewShipmentCompletionJob creates the completion sweep job. The grace period
// controls how long a delivered shipment stays open for the recipient to
// dispute before the system closes it.
func NewShipmentCompletionJob(
	handler commands.CompleteDeliveredShipmentsCommandHandler,
	gracePeriod time.Duration,
	logger *slog.Logger,
) *ShipmentCompletionJob {
	return &ShipmentCompletionJob{
		handler:     handler,
		gracePeriod: gracePeriod,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "shipment_completion_job"),
	}
}

// Start begins the completion sweep, running at the top of every minute.
func (j *ShipmentCompletionJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCompleteDeliveredShipmentsCommand(j.gracePeriod)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shipment completion job misconfigured", "error", err)
			return
		}

		completed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shipment completion job failed", "error", err)
			return
		}

		if completed > 0 {
			j.logger.InfoContext(ctx, "Shipments completed", "count", completed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment completion job started (running every minute)")
	return nil
}

// Stop stops the completion sweep.
func (j *ShipmentCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment completion job stopped")
}
