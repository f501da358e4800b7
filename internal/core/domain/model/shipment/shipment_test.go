package shipment_test

import (
	"testing"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/core/domain/model/shipment"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	s, err := shipment.NewShipment(shipment.NewShipmentParams{
		ID:                 kernel.NewUUID(),
		SenderID:           kernel.NewUUID(),
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "123 Rue de Paris, 75001 Paris, France",
		RecipientName:      "Ahmed Benali",
		RecipientPhone:     "+212612345678",
		DestinationAddress: "456 Avenue Mohammed V, Casablanca, Morocco",
		DocumentType:       shipment.DocumentTypePassportCopy,
		Description:        "Passport copy for visa application",
		OfferedPrice:       kernel.ZeroPrice(),
		Now:                time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return s
}

func assignTraveler(t *testing.T, s *shipment.Shipment) kernel.UUID {
	t.Helper()

	travelerID := kernel.NewUUID()
	require.NoError(t, s.AssignTraveler(travelerID, kernel.NewUUID(), time.Now().UTC()))
	return travelerID
}

func TestNewShipment(t *testing.T) {
	s := newTestShipment(t)

	assert.Equal(t, shipment.StatusCreated, s.Status())
	assert.Equal(t, "Jean Dupont", s.SenderName())
	assert.Nil(t, s.TravelerID())
	assert.Nil(t, s.CompletedAt())

	codes := s.Codes()
	assert.Len(t, codes.Unique().Value(), 8)
	assert.Len(t, codes.Delivery().Value(), 8)
	assert.Len(t, codes.Traveler().Value(), 8)

	// Timeline starts with the creation entry.
	steps := s.PendingSteps()
	require.Len(t, steps, 1)
	assert.Equal(t, "Shipment Created", steps[0].Name())
	assert.True(t, steps[0].Completed())
	require.NotNil(t, steps[0].ActorID())
	assert.True(t, steps[0].ActorID().IsEqual(s.SenderID()))
	assert.Contains(t, steps[0].Notes(), "Jean Dupont")
}

func TestNewShipment_Validation(t *testing.T) {
	params := shipment.NewShipmentParams{
		ID:                 kernel.NewUUID(),
		SenderID:           kernel.NewUUID(),
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "Paris",
		RecipientName:      "Ahmed Benali",
		RecipientPhone:     "+212612345678",
		DestinationAddress: "Casablanca",
		DocumentType:       shipment.DocumentTypeOther,
		OfferedPrice:       kernel.ZeroPrice(),
	}

	t.Run("missing_sender_name", func(t *testing.T) {
		p := params
		p.SenderName = ""
		_, err := shipment.NewShipment(p)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid_document_type", func(t *testing.T) {
		p := params
		p.DocumentType = shipment.DocumentTypeUnknown
		_, err := shipment.NewShipment(p)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_price", func(t *testing.T) {
		p := params
		p.OfferedPrice = kernel.Price{}
		_, err := shipment.NewShipment(p)

		require.Error(t, err)
	})
}

func TestShipment_FullWorkflow(t *testing.T) {
	s := newTestShipment(t)
	codes := s.Codes()
	travelerID := assignTraveler(t, s)
	relayOperatorID := kernel.NewUUID()

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// Sender checks in at the relay point with the unique code.
	require.NoError(t, s.CheckIn(codes.Unique().Value(), relayOperatorID, "", base))
	assert.Equal(t, shipment.StatusAtRelayPoint, s.Status())

	// Relay point hands the envelope to the traveler.
	require.NoError(t, s.Handoff(codes.Traveler().Value(), relayOperatorID, "", base.Add(time.Hour)))
	assert.Equal(t, shipment.StatusWithTraveler, s.Status())

	// Traveler confirms pickup; status stays put.
	require.NoError(t, s.ConfirmPickup(codes.Traveler().Value(), travelerID, "", base.Add(2*time.Hour)))
	assert.Equal(t, shipment.StatusWithTraveler, s.Status())

	// Traveler delivers with the recipient's code.
	deliveredAt := base.Add(3 * time.Hour)
	require.NoError(t, s.Deliver(codes.Delivery().Value(), travelerID, "", deliveredAt))
	assert.Equal(t, shipment.StatusDelivered, s.Status())
	require.NotNil(t, s.CompletedAt())
	assert.Equal(t, deliveredAt, *s.CompletedAt())
	require.NotNil(t, s.CompletedBy())
	assert.True(t, s.CompletedBy().IsEqual(travelerID))

	// Timeline: creation, assignment, check-in, handoff, pickup, delivery.
	steps := s.PendingSteps()
	require.Len(t, steps, 6)
	for i := 1; i < len(steps); i++ {
		assert.False(t, steps[i].CompletedAt().Before(steps[i-1].CompletedAt()),
			"timeline timestamps must be non-decreasing")
	}
}

func TestShipment_CheckIn_WrongCode(t *testing.T) {
	s := newTestShipment(t)

	err := s.CheckIn("DOCWRONG", kernel.NewUUID(), "", time.Now().UTC())

	require.ErrorIs(t, err, shipment.ErrInvalidCode)
	assert.Equal(t, shipment.StatusCreated, s.Status())
	assert.Len(t, s.PendingSteps(), 1, "no timeline entry on rejected code")
}

func TestShipment_Deliver_SkippingRelay(t *testing.T) {
	s := newTestShipment(t)
	travelerID := assignTraveler(t, s)

	err := s.Deliver(s.Codes().Delivery().Value(), travelerID, "", time.Now().UTC())

	require.ErrorIs(t, err, shipment.ErrIllegalTransition)
	assert.Equal(t, shipment.StatusCreated, s.Status())
	assert.Len(t, s.PendingSteps(), 2, "creation and assignment entries only")
}

func TestShipment_ConfirmPickup_Idempotent(t *testing.T) {
	s := newTestShipment(t)
	codes := s.Codes()
	travelerID := assignTraveler(t, s)
	relayOperatorID := kernel.NewUUID()
	now := time.Now().UTC()

	require.NoError(t, s.CheckIn(codes.Unique().Value(), relayOperatorID, "", now))
	require.NoError(t, s.Handoff(codes.Traveler().Value(), relayOperatorID, "", now))

	require.NoError(t, s.ConfirmPickup(codes.Traveler().Value(), travelerID, "", now))
	require.NoError(t, s.ConfirmPickup(codes.Traveler().Value(), travelerID, "", now))

	assert.Equal(t, shipment.StatusWithTraveler, s.Status())
}

func TestShipment_Cancel(t *testing.T) {
	t.Run("from_created", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.Cancel(s.SenderID(), "changed my mind", time.Now().UTC()))

		assert.Equal(t, shipment.StatusCancelled, s.Status())
		steps := s.PendingSteps()
		last := steps[len(steps)-1]
		assert.Equal(t, "Shipment Cancelled", last.Name())
		assert.Equal(t, "Cancelled: changed my mind", last.Notes())
	})

	t.Run("after_delivered_rejected", func(t *testing.T) {
		s := newTestShipment(t)
		codes := s.Codes()
		travelerID := assignTraveler(t, s)
		operatorID := kernel.NewUUID()
		now := time.Now().UTC()

		require.NoError(t, s.CheckIn(codes.Unique().Value(), operatorID, "", now))
		require.NoError(t, s.Handoff(codes.Traveler().Value(), operatorID, "", now))
		require.NoError(t, s.Deliver(codes.Delivery().Value(), travelerID, "", now))

		err := s.Cancel(s.SenderID(), "too late", now)

		require.ErrorIs(t, err, shipment.ErrIllegalTransition)
		assert.Equal(t, shipment.StatusDelivered, s.Status())
	})
}

func TestShipment_AssignTraveler(t *testing.T) {
	t.Run("sets_traveler_and_trip_together", func(t *testing.T) {
		s := newTestShipment(t)
		travelerID := kernel.NewUUID()
		tripID := kernel.NewUUID()

		require.NoError(t, s.AssignTraveler(travelerID, tripID, time.Now().UTC()))

		require.NotNil(t, s.TravelerID())
		require.NotNil(t, s.TripID())
		assert.True(t, s.TravelerID().IsEqual(travelerID))
		assert.True(t, s.TripID().IsEqual(tripID))
		assert.Equal(t, shipment.StatusCreated, s.Status())
	})

	t.Run("exactly_once", func(t *testing.T) {
		s := newTestShipment(t)
		assignTraveler(t, s)

		err := s.AssignTraveler(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())

		require.ErrorIs(t, err, shipment.ErrTravelerAlreadyAssigned)
	})

	t.Run("only_from_created", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.CheckIn(s.Codes().Unique().Value(), kernel.NewUUID(), "", time.Now().UTC()))

		err := s.AssignTraveler(kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())

		require.ErrorIs(t, err, shipment.ErrIllegalTransition)
	})
}

func TestShipment_Complete(t *testing.T) {
	s := newTestShipment(t)
	codes := s.Codes()
	travelerID := assignTraveler(t, s)
	operatorID := kernel.NewUUID()
	now := time.Now().UTC()

	require.NoError(t, s.CheckIn(codes.Unique().Value(), operatorID, "", now))
	require.NoError(t, s.Handoff(codes.Traveler().Value(), operatorID, "", now))
	require.NoError(t, s.Deliver(codes.Delivery().Value(), travelerID, "", now))

	require.NoError(t, s.Complete(nil, "", now.Add(time.Hour)))

	assert.Equal(t, shipment.StatusCompleted, s.Status())
	steps := s.PendingSteps()
	last := steps[len(steps)-1]
	assert.Nil(t, last.ActorID(), "auto-completion has no human actor")
}

func TestShipment_VerifyCode(t *testing.T) {
	s := newTestShipment(t)
	codes := s.Codes()

	assert.True(t, s.VerifyCode(shipment.CodeKindUnique, codes.Unique().Value()))
	assert.True(t, s.VerifyCode(shipment.CodeKindTraveler, codes.Traveler().Value()))
	assert.False(t, s.VerifyCode(shipment.CodeKindUnique, codes.Traveler().Value()))
	assert.False(t, s.VerifyCode(shipment.CodeKindUnknown, codes.Unique().Value()))
}

func TestRestoreShipment(t *testing.T) {
	codes, err := shipment.RestoreVerificationCodes("DOCA2B3C", "RCVX4Y5Z", "TRVM6N7P")
	require.NoError(t, err)

	travelerID := kernel.NewUUID()
	tripID := kernel.NewUUID()
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	s, err := shipment.RestoreShipment(shipment.RestoreShipmentParams{
		ID:                 kernel.NewUUID(),
		SenderID:           kernel.NewUUID(),
		SenderName:         "Jean Dupont",
		SenderPhone:        "+33612345678",
		SourceAddress:      "Paris",
		RecipientName:      "Ahmed Benali",
		RecipientPhone:     "+212612345678",
		DestinationAddress: "Casablanca",
		DocumentType:       shipment.DocumentTypeDiploma,
		TravelerID:         &travelerID,
		TripID:             &tripID,
		Codes:              codes,
		Status:             shipment.StatusWithTraveler,
		OfferedPrice:       kernel.ZeroPrice(),
		CreatedAt:          created,
		UpdatedAt:          created.Add(time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, shipment.StatusWithTraveler, s.Status())
	assert.Empty(t, s.PendingSteps(), "restored aggregate has no pending steps")
	assert.True(t, s.IsTraveler(travelerID))
	assert.True(t, s.VerifyCode(shipment.CodeKindTraveler, "TRVM6N7P"))
}

func TestShipment_Validate_ZeroValue(t *testing.T) {
	var s shipment.Shipment

	require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
}
