package commands_test

import (
	"context"
	"testing"
	"time"

	"docurgent/internal/core/application/usecases/commands"
	"docurgent/internal/core/domain/model/actor"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment, expectedStatus shipment.Status) error {
	args := m.Called(ctx, s, expectedStatus)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByUniqueCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllInStatusUpdatedBefore(ctx context.Context, status shipment.Status, cutoff time.Time) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetTimeline(ctx context.Context, shipmentID kernel.UUID) ([]*shipment.DeliveryStep, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.DeliveryStep), args.Error(1)
}

type MockRelayPointRepository struct{ mock.Mock }

func (m *MockRelayPointRepository) Add(ctx context.Context, rp *relaypoint.RelayPoint) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRelayPointRepository) Update(ctx context.Context, rp *relaypoint.RelayPoint) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockRelayPointRepository) Get(ctx context.Context, id kernel.UUID) (*relaypoint.RelayPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relaypoint.RelayPoint), args.Error(1)
}

func (m *MockRelayPointRepository) GetAllActive(ctx context.Context) ([]*relaypoint.RelayPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*relaypoint.RelayPoint), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) RelayPointRepository() ports.RelayPointRepository {
	args := m.Called()
	return args.Get(0).(ports.RelayPointRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockRelayPointUoWFactory struct{ mock.Mock }

func (m *MockRelayPointUoWFactory) Create() commands.RelayPointUoW {
	args := m.Called()
	return args.Get(0).(commands.RelayPointUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Test fixtures.

func mustActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()

	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)

	return a
}

func mustPrice(t *testing.T, amount string) kernel.Price {
	t.Helper()

	p, err := kernel.NewPrice(amount)
	require.NoError(t, err)

	return p
}

const (
	testUniqueCode   = "DOCAB2C3"
	testDeliveryCode = "RCVDE4F5"
	testTravelerCode = "TRVGH6J7"
)

// restoreTestShipment rebuilds a shipment in the given status with the fixed
// test code set.
func restoreTestShipment(t *testing.T, senderID kernel.UUID, travelerID *kernel.UUID, status shipment.Status) *shipment.Shipment {
	t.Helper()

	codes, err := shipment.RestoreVerificationCodes(testUniqueCode, testDeliveryCode, testTravelerCode)
	require.NoError(t, err)

	var tripID *kernel.UUID
	if travelerID != nil {
		id := kernel.NewUUID()
		tripID = &id
	}

	now := time.Now().UTC()
	s, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                 kernel.NewUUID(),
		SenderID:           senderID,
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "10 Rue de Rivoli, Paris",
		RecipientName:      "Fatima Alami",
		RecipientPhone:     "+212661234567",
		DestinationAddress: "25 Boulevard Zerktouni, Casablanca",
		DocumentType:       shipment.DocumentTypePassportCopy,
		Description:        "Passport copy for visa renewal",
		TravelerID:         travelerID,
		TripID:             tripID,
		Codes:              codes,
		Status:             status,
		OfferedPrice:       mustPrice(t, "45.00"),
		CreatedAt:          now.Add(-time.Hour),
		UpdatedAt:          now.Add(-time.Hour),
	})
	require.NoError(t, err)

	return s
}
