package relaypointrepo_test

import (
	"context"
	"testing"
	"time"

	"docurgent/internal/adapters/out/postgres/relaypointrepo"
	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/relaypoint"
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

type GormRelayPointRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *relaypointrepo.GormRelayPointRepository
}

func (suite *GormRelayPointRepositoryTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&relaypointrepo.RelayPointDTO{})
	suite.Require().NoError(err)

	suite.repo = relaypointrepo.NewGormRelayPointRepository(db, &mockAggregateTracker{})
}

func (suite *GormRelayPointRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GormRelayPointRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE relay_points CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GormRelayPointRepositoryTestSuite) newRelayPoint(name string) *relaypoint.RelayPoint {
	geo, err := kernel.NewGeoPoint(48.8566, 2.3522)
	suite.Require().NoError(err)

	rp, err := relaypoint.NewRelayPoint(relaypoint.NewRelayPointParams{
		ID:           kernel.NewUUID(),
		UserID:       kernel.NewUUID(),
		LocationName: name,
		Address:      "12 Place de la Gare",
		City:         "Paris",
		Country:      "France",
		PostalCode:   "75010",
		Geo:          &geo,
	})
	suite.Require().NoError(err)

	return rp
}

func (suite *GormRelayPointRepositoryTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	rp := suite.newRelayPoint("Tabac de la Gare")

	err := suite.repo.Add(ctx, rp)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, rp.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(rp.ID()))
	suite.Equal("Tabac de la Gare", loaded.LocationName())
	suite.Require().NotNil(loaded.Geo())
	suite.InDelta(48.8566, loaded.Geo().Latitude(), 0.0001)
	suite.True(loaded.Active())
	suite.False(loaded.Verified())
}

func (suite *GormRelayPointRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GormRelayPointRepositoryTestSuite) TestUpdate_VerifyAndDeactivate() {
	ctx := context.Background()
	rp := suite.newRelayPoint("Tabac de la Gare")
	err := suite.repo.Add(ctx, rp)
	suite.Require().NoError(err)

	rp.Verify(time.Now().UTC())
	err = suite.repo.Update(ctx, rp)
	suite.Require().NoError(err)

	loaded, err := suite.repo.Get(ctx, rp.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEligible())

	loaded.Deactivate(time.Now().UTC())
	err = suite.repo.Update(ctx, loaded)
	suite.Require().NoError(err)

	reloaded, err := suite.repo.Get(ctx, rp.ID())
	suite.Require().NoError(err)
	suite.False(reloaded.Active())
}

func (suite *GormRelayPointRepositoryTestSuite) TestGetAllActive_ExcludesDeactivated() {
	ctx := context.Background()

	active := suite.newRelayPoint("Active")
	err := suite.repo.Add(ctx, active)
	suite.Require().NoError(err)

	inactive := suite.newRelayPoint("Inactive")
	inactive.Deactivate(time.Now().UTC())
	err = suite.repo.Add(ctx, inactive)
	suite.Require().NoError(err)

	result, err := suite.repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(active.ID()))
}

func TestGormRelayPointRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormRelayPointRepositoryTestSuite))
}
