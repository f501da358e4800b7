package cmd

import (
	"log/slog"

	httpin "docurgent/internal/adapters/in/http"
	"docurgent/internal/adapters/out/kafka"
	"docurgent/internal/adapters/out/postgres"
	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/application/usecases/queries"
	"docurgent/internal/core/domain/services"
	"docurgent/internal/core/ports"
	"docurgent/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All construction
// happens here so the rest of the code depends on interfaces only.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	matcher    services.RelayPointMatcher
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		matcher:    services.NewFirstActiveMatcher(),
		publisher:  kafka.NewStatusEventPublisher(config.KafkaHost, config.KafkaStatusEventTopic, logger),
		logger:     logger,
	}
}

// ClosePublisher flushes and closes the event publisher. Called on shutdown.
func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.matcher, c.publisher)
}

func (c *CompositionRoot) CreateAssignTravelerCommandHandler() commands.AssignTravelerCommandHandler {
	return commands.NewAssignTravelerCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateVerifyTravelerCommandHandler() commands.VerifyTravelerCommandHandler {
	return commands.NewVerifyTravelerCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateHandoffCommandHandler() commands.HandoffCommandHandler {
	return commands.NewHandoffCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.shipmentUoWFactory())
}

func (c *CompositionRoot) CreateDeliverCommandHandler() commands.DeliverCommandHandler {
	return commands.NewDeliverCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateConfirmReceiptCommandHandler() commands.ConfirmReceiptCommandHandler {
	return commands.NewConfirmReceiptCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCompleteDeliveredShipmentsCommandHandler() commands.CompleteDeliveredShipmentsCommandHandler {
	return commands.NewCompleteDeliveredShipmentsCommandHandler(c.shipmentUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRegisterRelayPointCommandHandler() commands.RegisterRelayPointCommandHandler {
	return commands.NewRegisterRelayPointCommandHandler(c.relayPointUoWFactory())
}

func (c *CompositionRoot) CreateVerifyRelayPointCommandHandler() commands.VerifyRelayPointCommandHandler {
	return commands.NewVerifyRelayPointCommandHandler(c.relayPointUoWFactory())
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTimelineQueryHandler() queries.GetTimelineQueryHandler {
	return queries.NewGetTimelineQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the HTTP adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateShipmentCommandHandler(),
		c.CreateAssignTravelerCommandHandler(),
		c.CreateCancelShipmentCommandHandler(),
		c.CreateCheckInCommandHandler(),
		c.CreateVerifyTravelerCommandHandler(),
		c.CreateHandoffCommandHandler(),
		c.CreateConfirmPickupCommandHandler(),
		c.CreateDeliverCommandHandler(),
		c.CreateConfirmReceiptCommandHandler(),
		c.CreateRegisterRelayPointCommandHandler(),
		c.CreateVerifyRelayPointCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateListShipmentsQueryHandler(),
		c.CreateGetTimelineQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCompleteDeliveredShipmentsCommandHandler(),
		config.CompletionGrace,
		c.logger,
	)
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) relayPointUoWFactory() commands.RelayPointUoWFactory {
	return FuncRelayPointUoWFactory(func() commands.RelayPointUoW {
		return c.uowFactory.Create()
	})
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncRelayPointUoWFactory func() commands.RelayPointUoW

func (f FuncRelayPointUoWFactory) Create() commands.RelayPointUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
