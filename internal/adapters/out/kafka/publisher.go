// Package kafka publishes shipment lifecycle events for downstream consumers
// such as notification and analytics services. Publishing happens after the
// database commit and is best-effort: failures are logged, never propagated
// into the workflow.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"docurgent/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// StatusChangedPayload is the wire format of a status transition event.
// Messages are keyed by shipment ID so all events of one shipment land in the
// same partition, preserving their order.
type StatusChangedPayload struct {
	ShipmentID string    `json:"shipment_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ActorID    *string   `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StatusEventPublisher implements ports.EventPublisher on top of a kafka-go
// writer.
type StatusEventPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewStatusEventPublisher creates a publisher writing to the given broker and
// topic.
func NewStatusEventPublisher(brokerURL, topic string, logger *slog.Logger) *StatusEventPublisher {
	return &StatusEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokerURL),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// PublishStatusChanged emits a status transition event. Errors are logged and
// returned, but callers treat publishing as best-effort.
func (p *StatusEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	payload := StatusChangedPayload{
		ShipmentID: event.ShipmentID.String(),
		OldStatus:  event.OldStatus.String(),
		NewStatus:  event.NewStatus.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.ActorID != nil {
		actorID := event.ActorID.String()
		payload.ActorID = &actorID
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("marshal status event", "shipment_id", payload.ShipmentID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(payload.ShipmentID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("publish status event",
			"shipment_id", payload.ShipmentID,
			"new_status", payload.NewStatus,
			"error", err)
		return err
	}

	p.logger.Debug("status event published",
		"shipment_id", payload.ShipmentID,
		"old_status", payload.OldStatus,
		"new_status", payload.NewStatus)
	return nil
}

// Close shuts down the underlying writer.
func (p *StatusEventPublisher) Close() error {
	return p.writer.Close()
}
