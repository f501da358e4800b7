package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"docurgent/internal/adapters/out/postgres/shipmentrepo"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GormShipmentRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *shipmentrepo.GormShipmentRepository
}

func (suite *GormShipmentRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.DeliveryStepDTO{})
	suite.Require().NoError(err)

	suite.repo = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
}

func (suite *GormShipmentRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormShipmentRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, delivery_steps CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormShipmentRepositoryTestSuite) newShipment() *shipment.Shipment {
	price, err := kernel.NewPrice("45.00")
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(shipment.NewShipmentParams{
		ID:                 kernel.NewUUID(),
		SenderID:           kernel.NewUUID(),
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "10 Rue de Rivoli, Paris",
		RecipientName:      "Fatima Alami",
		RecipientPhone:     "+212661234567",
		DestinationAddress: "25 Boulevard Zerktouni, Casablanca",
		DocumentType:       shipment.DocumentTypePassportCopy,
		Description:        "Passport copy for visa renewal",
		OfferedPrice:       price,
	})
	suite.Require().NoError(err)

	return s
}

func (suite *GormShipmentRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	s := suite.newShipment()

	err := suite.repo.Add(ctx, s)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(s.ID()))
	suite.Equal(shipment.StatusCreated, loaded.Status())
	suite.Equal(s.Codes().Unique().Value(), loaded.Codes().Unique().Value())
	suite.Equal(s.Codes().Delivery().Value(), loaded.Codes().Delivery().Value())
	suite.Equal(s.Codes().Traveler().Value(), loaded.Codes().Traveler().Value())
	suite.Equal(s.SenderName(), loaded.SenderName())
	suite.Equal(s.OfferedPrice().Amount(), loaded.OfferedPrice().Amount())
	suite.Empty(loaded.PendingSteps(), "restored aggregates start with a clean timeline buffer")
}

func (suite *GormShipmentRepositoryTestSuite) TestAdd_PersistsCreationStep() {
	ctx := context.Background()
	s := suite.newShipment()

	err := suite.repo.Add(ctx, s)
	suite.Require().NoError(err)

	timeline, err := suite.repo.GetTimeline(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(timeline, 1)
	suite.Equal("Shipment Created", timeline[0].Name())
	suite.True(timeline[0].Completed())
	suite.Contains(timeline[0].Notes(), "Jean Dupont")
}

func (suite *GormShipmentRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormShipmentRepositoryTestSuite) TestGetByUniqueCode() {
	ctx := context.Background()
	s := suite.newShipment()
	err := suite.repo.Add(ctx, s)
	suite.Require().NoError(err)

	loaded, err := suite.repo.GetByUniqueCode(ctx, s.Codes().Unique().Value())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(s.ID()))

	_, err = suite.repo.GetByUniqueCode(ctx, "DOCZZZZZ")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormShipmentRepositoryTestSuite) TestUpdate_PersistsTransitionAndSteps() {
	ctx := context.Background()
	s := suite.newShipment()
	err := suite.repo.Add(ctx, s)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)

	operatorID := kernel.NewUUID()
	prev := loaded.Status()
	err = loaded.CheckIn(loaded.Codes().Unique().Value(), operatorID, "", time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, loaded, prev)
	suite.Require().NoError(err)

	reloaded, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.StatusAtRelayPoint, reloaded.Status())

	timeline, err := suite.repo.GetTimeline(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Require().Len(timeline, 2)
	suite.Equal("Shipment Created", timeline[0].Name())
	suite.Equal("Status changed to at_relay_point", timeline[1].Name())
}

func (suite *GormShipmentRepositoryTestSuite) TestUpdate_ConcurrentTransitionLosesRace() {
	ctx := context.Background()
	s := suite.newShipment()
	err := suite.repo.Add(ctx, s)
	suite.Require().NoError(err)

	// Two operators load the same shipment and both try to check it in.
	first, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	err = first.CheckIn(first.Codes().Unique().Value(), kernel.NewUUID(), "", now)
	suite.Require().NoError(err)
	err = second.CheckIn(second.Codes().Unique().Value(), kernel.NewUUID(), "", now)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, first, shipment.StatusCreated)
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, second, shipment.StatusCreated)
	suite.Require().ErrorIs(err, shipment.ErrIllegalTransition)

	// Exactly one transition landed, with exactly one timeline entry for it.
	timeline, err := suite.repo.GetTimeline(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Len(timeline, 2)
}

func (suite *GormShipmentRepositoryTestSuite) TestUpdate_NotFound() {
	s := suite.newShipment()

	err := suite.repo.Update(context.Background(), s, shipment.StatusCreated)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormShipmentRepositoryTestSuite) TestGetAllInStatusUpdatedBefore() {
	ctx := context.Background()

	stale := suite.newShipment()
	err := suite.repo.Add(ctx, stale)
	suite.Require().NoError(err)

	fresh := suite.newShipment()
	err = suite.repo.Add(ctx, fresh)
	suite.Require().NoError(err)

	// Age the first shipment past the cutoff.
	err = suite.db.Exec(
		"UPDATE shipments SET updated_at = ? WHERE id = ?",
		time.Now().UTC().Add(-72*time.Hour), stale.ID().Bytes(),
	).Error
	suite.Require().NoError(err)

	cutoff := time.Now().UTC().Add(-48 * time.Hour)
	result, err := suite.repo.GetAllInStatusUpdatedBefore(ctx, shipment.StatusCreated, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(stale.ID()))
}

func (suite *GormShipmentRepositoryTestSuite) TestAdd_DuplicateUniqueCode() {
	ctx := context.Background()

	restore := func(unique string) *shipment.Shipment {
		codes, err := shipment.RestoreVerificationCodes(unique, "RCVDE4F5", "TRVGH6J7")
		suite.Require().NoError(err)
		price, err := kernel.NewPrice("45.00")
		suite.Require().NoError(err)

		now := time.Now().UTC()
		s, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
			ID:                 kernel.NewUUID(),
			SenderID:           kernel.NewUUID(),
			SenderName:         "Jean Dupont",
			SenderPhone:        "+33612345678",
			SourceAddress:      "10 Rue de Rivoli, Paris",
			RecipientName:      "Fatima Alami",
			RecipientPhone:     "+212661234567",
			DestinationAddress: "25 Boulevard Zerktouni, Casablanca",
			DocumentType:       shipment.DocumentTypePassportCopy,
			Codes:              codes,
			Status:             shipment.StatusCreated,
			OfferedPrice:       price,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		suite.Require().NoError(err)
		return s
	}

	err := suite.repo.Add(ctx, restore("DOCAB2C3"))
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, restore("DOCAB2C3"))
	suite.Require().ErrorIs(err, shipment.ErrUniqueCodeCollision)
}

func TestGormShipmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormShipmentRepositoryTestSuite))
}
