package commands_test

import (
	"testing"
	"time"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateParams(t *testing.T) commands.CreateShipmentParams {
	t.Helper()

	return commands.CreateShipmentParams{
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "10 Rue de Rivoli, Paris",
		RecipientName:      "Fatima Alami",
		RecipientPhone:     "+212661234567",
		DestinationAddress: "25 Boulevard Zerktouni, Casablanca",
		DocumentType:       shipment.DocumentTypePassportCopy,
		Description:        "Passport copy for visa renewal",
		OfferedPrice:       mustPrice(t, "45.00"),
	}
}

func eligibleRelayPoint(t *testing.T) *relaypoint.RelayPoint {
	t.Helper()

	now := time.Now().UTC()
	rp, err := relaypoint.RestoreRelayPoint(relaypoint.RestoreRelayPointParams{
		NewRelayPointParams: relaypoint.NewRelayPointParams{
			ID:           kernel.NewUUID(),
			UserID:       kernel.NewUUID(),
			LocationName: "Tabac de la Gare",
			Address:      "12 Place de la Gare",
			City:         "Paris",
			Country:      "France",
		},
		Verified:  true,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	return rp
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sender := mustActor(t, actor.RoleSender)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), sender, validCreateParams(t))
	require.NoError(t, err)

	rp := eligibleRelayPoint(t)
	shipmentRepo := new(MockShipmentRepository)
	relayPointRepo := new(MockRelayPointRepository)

	readUow := new(MockUoW)
	readUow.On("RelayPointRepository").Return(relayPointRepo).Once()
	relayPointRepo.On("GetAllActive", mock.Anything).Return([]*relaypoint.RelayPoint{rp}, nil).Once()

	txUow := new(MockUoW)
	mock.InOrder(
		txUow.On("Begin", ctx).Return(nil).Once(),
		txUow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		txUow.On("Commit", ctx).Return(nil).Once(),
		txUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(readUow).Once()
	factory.On("Create").Return(txUow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, services.NewFirstActiveMatcher(), publisher)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.StatusCreated, created.Status())
	assert.NotEmpty(t, created.Codes().Unique().Value())
	require.NotNil(t, created.RelayPointID())
	assert.True(t, created.RelayPointID().IsEqual(rp.ID()))
	shipmentRepo.AssertExpectations(t)
	readUow.AssertExpectations(t)
	txUow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_RetriesOnCodeCollision(t *testing.T) {
	ctx := t.Context()
	sender := mustActor(t, actor.RoleSender)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), sender, validCreateParams(t))
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	relayPointRepo := new(MockRelayPointRepository)

	readUow := new(MockUoW)
	readUow.On("RelayPointRepository").Return(relayPointRepo).Once()
	relayPointRepo.On("GetAllActive", mock.Anything).Return([]*relaypoint.RelayPoint{}, nil).Once()

	// First attempt collides and must be rolled back, never committed: the
	// unique violation aborts the underlying transaction.
	collidedUow := new(MockUoW)
	mock.InOrder(
		collidedUow.On("Begin", ctx).Return(nil).Once(),
		collidedUow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Add", mock.Anything, mock.Anything).Return(shipment.ErrUniqueCodeCollision).Once(),
		collidedUow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Second attempt runs on a fresh transaction and succeeds.
	retryUow := new(MockUoW)
	mock.InOrder(
		retryUow.On("Begin", ctx).Return(nil).Once(),
		retryUow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		retryUow.On("Commit", ctx).Return(nil).Once(),
		retryUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(readUow).Once()
	factory.On("Create").Return(collidedUow).Once()
	factory.On("Create").Return(retryUow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, services.NewFirstActiveMatcher(), nil)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, created.RelayPointID(), "no eligible relay point was available")
	shipmentRepo.AssertExpectations(t)
	collidedUow.AssertExpectations(t)
	collidedUow.AssertNotCalled(t, "Commit", ctx)
	retryUow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShipmentCommand{} // not constructed properly
	factory := new(MockUoWFactory)

	h := commands.NewCreateShipmentCommandHandler(factory, services.NewFirstActiveMatcher(), nil)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestNewCreateShipmentCommand_RejectsWrongRole(t *testing.T) {
	traveler := mustActor(t, actor.RoleTraveler)

	_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), traveler, validCreateParams(t))

	require.ErrorIs(t, err, commands.ErrNotAuthorized)
}
