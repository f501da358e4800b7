package shipment

import (
	"errors"
	"time"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

// Timeline step labels.
const (
	stepNameCreated        = "Shipment Created"
	stepNameAssigned       = "Assigned to Traveler"
	stepNamePickup         = "Pickup Confirmed"
	stepNameCancelled      = "Shipment Cancelled"
	stepNameStatusTemplate = "Status changed to "
)

var (
	// ErrShipmentIsNotConstructed is returned when using a Shipment that was
	// not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New(
		"Shipment must be created via NewShipment or RestoreShipment")

	// ErrTravelerAlreadyAssigned is returned when assignment is attempted on
	// a shipment that already has a traveler and trip set. Assignment happens
	// exactly once.
	ErrTravelerAlreadyAssigned = errors.New("shipment already has a traveler assigned")

	// ErrUniqueCodeCollision is returned by the persistence layer when the
	// minted unique code collides with an existing shipment. Callers mint a
	// fresh code set and retry.
	ErrUniqueCodeCollision = errors.New("unique code already in use")
)

// Shipment is the aggregate root of the courier workflow: one document
// delivery request moving from a sender through a relay point and a traveler
// to a recipient.
//
// Invariants:
//   - The three verification codes are minted at creation and immutable.
//   - Status moves monotonically along the workflow graph; the only sideways
//     exit is cancellation, and Delivered/Completed cannot be cancelled.
//   - Traveler and trip are set together, exactly once, only while Created.
//   - Every mutation appends a DeliveryStep; steps are append-only and belong
//     exclusively to this shipment.
//
// Mutations go through the operation methods below, which verify the
// presented code (where one is required) before touching any state.
type Shipment struct {
	id kernel.UUID

	senderID      kernel.UUID
	senderName    string
	senderPhone   string
	sourceAddress string

	recipientName      string
	recipientPhone     string
	destinationAddress string

	documentType DocumentType
	description  string

	travelerID   *kernel.UUID
	tripID       *kernel.UUID
	relayPointID *kernel.UUID

	codes VerificationCodes

	status       Status
	offeredPrice kernel.Price

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
	completedBy *kernel.UUID

	// pendingSteps holds timeline entries appended since the aggregate was
	// loaded. The repository persists them together with the status change
	// in one transaction.
	pendingSteps []*DeliveryStep

	guard guard.ConstructorGuard
}

// NewShipmentParams carries the sender-provided data for a new shipment.
type NewShipmentParams struct {
	ID                 kernel.UUID
	SenderID           kernel.UUID
	SenderName         string
	SenderPhone        string
	SourceAddress      string
	RecipientName      string
	RecipientPhone     string
	DestinationAddress string
	DocumentType       DocumentType
	Description        string
	OfferedPrice       kernel.Price
	Now                time.Time
}

// NewShipment creates a shipment in Created status with a freshly minted
// code set and the initial "Shipment Created" timeline entry.
func NewShipment(p NewShipmentParams) (*Shipment, error) {
	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	s := &Shipment{
		status: StatusCreated,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(p.ID),
		s.setSender(p.SenderID, p.SenderName, p.SenderPhone, p.SourceAddress),
		s.setRecipient(p.RecipientName, p.RecipientPhone, p.DestinationAddress),
		s.setDocument(p.DocumentType, p.Description),
		s.setOfferedPrice(p.OfferedPrice),
	); err != nil {
		return nil, err
	}

	codes, err := NewVerificationCodes()
	if err != nil {
		return nil, err
	}
	s.codes = codes

	s.createdAt = p.Now
	s.updatedAt = p.Now

	senderID := p.SenderID
	if err := s.appendStep(stepNameCreated, &senderID,
		"Shipment created by "+p.SenderName, p.Now); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipmentParams carries the persisted state of a shipment.
type RestoreShipmentParams struct {
	ID                 kernel.UUID
	SenderID           kernel.UUID
	SenderName         string
	SenderPhone        string
	SourceAddress      string
	RecipientName      string
	RecipientPhone     string
	DestinationAddress string
	DocumentType       DocumentType
	Description        string
	TravelerID         *kernel.UUID
	TripID             *kernel.UUID
	RelayPointID       *kernel.UUID
	Codes              VerificationCodes
	Status             Status
	OfferedPrice       kernel.Price
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time
	CompletedBy        *kernel.UUID
}

// RestoreShipment reconstructs a shipment from persistence. The timeline is
// not loaded; reads of the timeline go through the query side.
func RestoreShipment(p RestoreShipmentParams) (*Shipment, error) {
	s := &Shipment{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setID(p.ID),
		s.setSender(p.SenderID, p.SenderName, p.SenderPhone, p.SourceAddress),
		s.setRecipient(p.RecipientName, p.RecipientPhone, p.DestinationAddress),
		s.setDocument(p.DocumentType, p.Description),
		s.setOfferedPrice(p.OfferedPrice),
		p.Codes.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.TravelerID != nil {
		if err := p.TravelerID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.TripID != nil {
		if err := p.TripID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.RelayPointID != nil {
		if err := p.RelayPointID.Validate(); err != nil {
			return nil, err
		}
	}

	s.travelerID = p.TravelerID
	s.tripID = p.TripID
	s.relayPointID = p.RelayPointID
	s.codes = p.Codes
	s.status = p.Status
	s.createdAt = p.CreatedAt
	s.updatedAt = p.UpdatedAt
	s.completedAt = p.CompletedAt
	s.completedBy = p.CompletedBy

	return s, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// SenderID returns the sender's identity.
func (s *Shipment) SenderID() kernel.UUID { return s.senderID }

// SenderName returns the sender's display name.
func (s *Shipment) SenderName() string { return s.senderName }

// SenderPhone returns the sender's contact phone.
func (s *Shipment) SenderPhone() string { return s.senderPhone }

// SourceAddress returns the pickup address.
func (s *Shipment) SourceAddress() string { return s.sourceAddress }

// RecipientName returns the recipient's display name.
func (s *Shipment) RecipientName() string { return s.recipientName }

// RecipientPhone returns the recipient's contact phone.
func (s *Shipment) RecipientPhone() string { return s.recipientPhone }

// DestinationAddress returns the delivery address.
func (s *Shipment) DestinationAddress() string { return s.destinationAddress }

// DocumentType returns the carried document's category.
func (s *Shipment) DocumentType() DocumentType { return s.documentType }

// Description returns the optional free-text document description.
func (s *Shipment) Description() string { return s.description }

// TravelerID returns the assigned traveler, or nil before assignment.
func (s *Shipment) TravelerID() *kernel.UUID { return s.travelerID }

// TripID returns the assigned trip, or nil before assignment.
func (s *Shipment) TripID() *kernel.UUID { return s.tripID }

// RelayPointID returns the assigned relay point, or nil if none matched.
func (s *Shipment) RelayPointID() *kernel.UUID { return s.relayPointID }

// Codes returns the shipment's verification code set.
func (s *Shipment) Codes() VerificationCodes { return s.codes }

// Status returns the current workflow status.
func (s *Shipment) Status() Status { return s.status }

// OfferedPrice returns the price offered by the sender.
func (s *Shipment) OfferedPrice() kernel.Price { return s.offeredPrice }

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// CompletedAt returns the delivery completion timestamp, or nil.
func (s *Shipment) CompletedAt() *time.Time { return s.completedAt }

// CompletedBy returns the actor that completed the delivery, or nil.
func (s *Shipment) CompletedBy() *kernel.UUID { return s.completedBy }

// PendingSteps returns timeline entries appended since the aggregate was
// loaded, in append order.
func (s *Shipment) PendingSteps() []*DeliveryStep { return s.pendingSteps }

// IsSender reports whether the given actor is the shipment's sender.
func (s *Shipment) IsSender(actorID kernel.UUID) bool {
	return s.senderID.IsEqual(actorID)
}

// IsTraveler reports whether the given actor is the assigned traveler.
func (s *Shipment) IsTraveler(actorID kernel.UUID) bool {
	return s.travelerID != nil && s.travelerID.IsEqual(actorID)
}

// IsParticipant reports whether the given actor is the sender or the
// assigned traveler.
func (s *Shipment) IsParticipant(actorID kernel.UUID) bool {
	return s.IsSender(actorID) || s.IsTraveler(actorID)
}

// VerifyCode reports whether the presented code matches the stored code in
// the given slot. A pure equality check with no side effects.
func (s *Shipment) VerifyCode(kind CodeKind, presented string) bool {
	return s.codes.ForKind(kind).Matches(presented)
}

// AssignRelayPoint records the relay point that will custody the envelope.
// Only legal while the shipment is Created.
func (s *Shipment) AssignRelayPoint(relayPointID kernel.UUID) error {
	if err := relayPointID.Validate(); err != nil {
		return err
	}
	if s.status != StatusCreated {
		return NewIllegalTransitionError("assign relay point to", s.status)
	}

	s.relayPointID = &relayPointID
	return nil
}

// AssignTraveler sets the traveler and trip together, exactly once, while the
// shipment is Created. The status does not change.
func (s *Shipment) AssignTraveler(travelerID, tripID kernel.UUID, now time.Time) error {
	if err := errors.Join(travelerID.Validate(), tripID.Validate()); err != nil {
		return err
	}
	if err := s.status.ValidateAssign(); err != nil {
		return err
	}
	if s.travelerID != nil || s.tripID != nil {
		return ErrTravelerAlreadyAssigned
	}

	s.travelerID = &travelerID
	s.tripID = &tripID

	return s.appendStep(stepNameAssigned, &travelerID, "Shipment assigned to traveler", now)
}

// CheckIn verifies the sender's unique code and moves the shipment from
// Created to AtRelayPoint. The code is checked before any state mutation.
func (s *Shipment) CheckIn(presentedCode string, actorID kernel.UUID, notes string, now time.Time) error {
	if err := s.verifyCode(CodeKindUnique, presentedCode); err != nil {
		return err
	}

	newStatus, err := s.status.CheckIn()
	if err != nil {
		return err
	}
	s.status = newStatus

	if notes == "" {
		notes = "Sender checked in at relay point"
	}
	return s.appendStatusStep(actorID, notes, now)
}

// Handoff verifies the traveler code and moves the shipment from
// AtRelayPoint to WithTraveler.
func (s *Shipment) Handoff(presentedCode string, actorID kernel.UUID, notes string, now time.Time) error {
	if err := s.verifyCode(CodeKindTraveler, presentedCode); err != nil {
		return err
	}

	newStatus, err := s.status.Handoff()
	if err != nil {
		return err
	}
	s.status = newStatus

	if notes == "" {
		notes = "Envelope handed to traveler"
	}
	return s.appendStatusStep(actorID, notes, now)
}

// ConfirmPickup is the traveler-side acknowledgement of the handoff. It
// verifies the traveler code and requires WithTraveler status but does not
// change it; repeating the confirmation only appends another timeline note.
func (s *Shipment) ConfirmPickup(presentedCode string, actorID kernel.UUID, notes string, now time.Time) error {
	if err := s.verifyCode(CodeKindTraveler, presentedCode); err != nil {
		return err
	}
	if err := s.status.ValidatePickup(); err != nil {
		return err
	}

	if notes == "" {
		notes = "Pickup confirmed by traveler"
	}
	return s.appendStep(stepNamePickup, &actorID, notes, now)
}

// Deliver verifies the recipient's delivery code and moves the shipment from
// WithTraveler to Delivered, recording completion time and actor.
func (s *Shipment) Deliver(presentedCode string, actorID kernel.UUID, notes string, now time.Time) error {
	if err := s.verifyCode(CodeKindDelivery, presentedCode); err != nil {
		return err
	}

	newStatus, err := s.status.Deliver()
	if err != nil {
		return err
	}
	s.status = newStatus
	s.completedAt = &now
	s.completedBy = &actorID

	if notes == "" {
		notes = "Delivered to receiver successfully"
	}
	return s.appendStatusStep(actorID, notes, now)
}

// Confirm records the recipient's acknowledgement, Delivered -> Confirmed.
func (s *Shipment) Confirm(actorID kernel.UUID, now time.Time) error {
	newStatus, err := s.status.Confirm()
	if err != nil {
		return err
	}
	s.status = newStatus

	return s.appendStatusStep(actorID, "Receipt confirmed by recipient", now)
}

// Complete finalizes a Delivered or Confirmed shipment. The actor is
// optional: the auto-completion sweep has no human actor.
func (s *Shipment) Complete(actorID *kernel.UUID, notes string, now time.Time) error {
	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}
	s.status = newStatus

	if notes == "" {
		notes = "Shipment completed"
	}
	if err := s.appendStep(stepNameStatusTemplate+s.status.String(), actorID, notes, now); err != nil {
		return err
	}
	return nil
}

// Cancel moves a cancellable shipment to the terminal Cancelled status.
// Sender-only authorization is enforced by the role gateway, not here.
func (s *Shipment) Cancel(actorID kernel.UUID, reason string, now time.Time) error {
	newStatus, err := s.status.Cancel()
	if err != nil {
		return err
	}
	s.status = newStatus

	return s.appendStep(stepNameCancelled, &actorID, "Cancelled: "+reason, now)
}

func (s *Shipment) verifyCode(kind CodeKind, presented string) error {
	if !s.codes.ForKind(kind).Matches(presented) {
		return NewInvalidCodeError(kind, nil)
	}
	return nil
}

func (s *Shipment) appendStatusStep(actorID kernel.UUID, notes string, now time.Time) error {
	return s.appendStep(stepNameStatusTemplate+s.status.String(), &actorID, notes, now)
}

func (s *Shipment) appendStep(name string, actorID *kernel.UUID, notes string, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	step, err := NewDeliveryStep(kernel.NewUUID(), s.id, name, actorID, notes, now)
	if err != nil {
		return err
	}

	s.pendingSteps = append(s.pendingSteps, step)
	s.updatedAt = now
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setSender(senderID kernel.UUID, name, phone, address string) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("sender name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("sender phone")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("source address")
	}

	s.senderID = senderID
	s.senderName = name
	s.senderPhone = phone
	s.sourceAddress = address
	return nil
}

func (s *Shipment) setRecipient(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipient name")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("recipient phone")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("destination address")
	}

	s.recipientName = name
	s.recipientPhone = phone
	s.destinationAddress = address
	return nil
}

func (s *Shipment) setDocument(documentType DocumentType, description string) error {
	if err := documentType.Validate(); err != nil {
		return err
	}

	s.documentType = documentType
	s.description = description
	return nil
}

func (s *Shipment) setOfferedPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	s.offeredPrice = price
	return nil
}
