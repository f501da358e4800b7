package commands_test

import (
	"testing"
	"time"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteDeliveredShipmentsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCompleteDeliveredShipmentsCommand(48 * time.Hour)
	require.NoError(t, err)

	delivered := restoreTestShipment(t, kernel.NewUUID(), nil, shipment.StatusDelivered)
	confirmed := restoreTestShipment(t, kernel.NewUUID(), nil, shipment.StatusConfirmed)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllInStatusUpdatedBefore", mock.Anything, shipment.StatusDelivered, mock.Anything).
			Return([]*shipment.Shipment{delivered}, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, delivered, shipment.StatusDelivered).Return(nil).Once(),
		shipmentRepo.On("GetAllInStatusUpdatedBefore", mock.Anything, shipment.StatusConfirmed, mock.Anything).
			Return([]*shipment.Shipment{confirmed}, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, confirmed, shipment.StatusConfirmed).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Twice()

	h := commands.NewCompleteDeliveredShipmentsCommandHandler(factory, publisher)
	count, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, shipment.StatusCompleted, delivered.Status())
	assert.Equal(t, shipment.StatusCompleted, confirmed.Status())
	require.Len(t, delivered.PendingSteps(), 1)
	assert.Nil(t, delivered.PendingSteps()[0].ActorID(), "the sweep has no human actor")
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCompleteDeliveredShipmentsCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCompleteDeliveredShipmentsCommand(48 * time.Hour)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllInStatusUpdatedBefore", mock.Anything, shipment.StatusDelivered, mock.Anything).
			Return([]*shipment.Shipment{}, nil).Once(),
		shipmentRepo.On("GetAllInStatusUpdatedBefore", mock.Anything, shipment.StatusConfirmed, mock.Anything).
			Return([]*shipment.Shipment{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteDeliveredShipmentsCommandHandler(factory, nil)
	count, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNewCompleteDeliveredShipmentsCommand_RejectsNonPositiveGrace(t *testing.T) {
	_, err := commands.NewCompleteDeliveredShipmentsCommand(0)

	require.Error(t, err)
}
