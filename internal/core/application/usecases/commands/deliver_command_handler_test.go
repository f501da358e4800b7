package commands_test

import (
	"testing"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeliverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	traveler := mustActor(t, actor.RoleTraveler)
	travelerID := traveler.ID()
	s := restoreTestShipment(t, kernel.NewUUID(), &travelerID, shipment.StatusWithTraveler)

	cmd, err := commands.NewDeliverCommand(s.ID(), testDeliveryCode, traveler, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, s, shipment.StatusWithTraveler).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewDeliverCommandHandler(factory, publisher)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.StatusDelivered, s.Status())
	require.NotNil(t, s.CompletedAt())
	require.NotNil(t, s.CompletedBy())
	assert.True(t, s.CompletedBy().IsEqual(traveler.ID()))
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestDeliverCommandHandler_Handle_WrongCode(t *testing.T) {
	ctx := t.Context()
	traveler := mustActor(t, actor.RoleTraveler)
	travelerID := traveler.ID()
	s := restoreTestShipment(t, kernel.NewUUID(), &travelerID, shipment.StatusWithTraveler)

	cmd, err := commands.NewDeliverCommand(s.ID(), "RCVWRONG", traveler, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrInvalidCode)
	assert.Equal(t, shipment.StatusWithTraveler, s.Status(), "a failed code check changes nothing")
	assert.Empty(t, s.PendingSteps())
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeliverCommandHandler_Handle_NotAssignedTraveler(t *testing.T) {
	ctx := t.Context()
	assignedID := kernel.NewUUID()
	s := restoreTestShipment(t, kernel.NewUUID(), &assignedID, shipment.StatusWithTraveler)

	other := mustActor(t, actor.RoleTraveler)
	cmd, err := commands.NewDeliverCommand(s.ID(), testDeliveryCode, other, "")
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, s.ID()).Return(s, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeliverCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNotAuthorized)
	assert.Equal(t, shipment.StatusWithTraveler, s.Status())
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
