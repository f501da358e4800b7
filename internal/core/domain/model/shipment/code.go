package shipment

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

const (
	// codeLength is the total length of every verification code,
	// semantic prefix included.
	codeLength = 8

	// codeAlphabet contains uppercase letters and digits with the visually
	// ambiguous characters 0, O, I and 1 removed. Exactly 32 characters, so
	// a random byte masked with 0x1f maps onto it without modulo bias.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ErrInvalidCode indicates that a presented verification code does not match
// the stored code for the shipment and slot. A lookup miss and a value
// mismatch are deliberately collapsed into this one error at the boundary;
// the cause chain keeps them apart for internal logging.
var ErrInvalidCode = errors.New("verification code is invalid")

// InvalidCodeError carries the code slot that failed verification.
type InvalidCodeError struct {
	Kind  CodeKind
	Cause error
}

func (e *InvalidCodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrInvalidCode, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidCode, e.Kind)
}

func (e *InvalidCodeError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidCode, e.Cause}
	}
	return []error{ErrInvalidCode}
}

// NewInvalidCodeError creates an InvalidCodeError for the given slot.
func NewInvalidCodeError(kind CodeKind, cause error) *InvalidCodeError {
	return &InvalidCodeError{Kind: kind, Cause: cause}
}

// CodeKind identifies one of the three verification code slots of a shipment.
type CodeKind int

const (
	// CodeKindUnknown represents an invalid or undefined code kind.
	CodeKindUnknown CodeKind = iota

	// CodeKindUnique is the sender-presented code authorizing relay point
	// check-in. Prefix "DOC".
	CodeKindUnique

	// CodeKindDelivery is the recipient-presented code authorizing final
	// delivery confirmation. Prefix "RCV".
	CodeKindDelivery

	// CodeKindTraveler is the code authorizing relay-point-to-traveler
	// handoff and traveler-side pickup confirmation. Prefix "TRV".
	CodeKindTraveler
)

func getCodeKindPrefixes() map[CodeKind]string {
	return map[CodeKind]string{
		CodeKindUnique:   "DOC",
		CodeKindDelivery: "RCV",
		CodeKindTraveler: "TRV",
	}
}

// Prefix returns the semantic three-letter prefix for the code kind.
func (k CodeKind) Prefix() string {
	return getCodeKindPrefixes()[k]
}

// String returns a human-readable name for the code kind.
func (k CodeKind) String() string {
	switch k {
	case CodeKindUnique:
		return "unique_code"
	case CodeKindDelivery:
		return "delivery_code"
	case CodeKindTraveler:
		return "traveler_code"
	default:
		return "unknown"
	}
}

// Validate checks that the kind is one of the three defined slots.
func (k CodeKind) Validate() error {
	if _, ok := getCodeKindPrefixes()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("code kind",
			fmt.Errorf("%d is not a valid code kind", k))
	}
	return nil
}

// VerificationCode is a value object holding one 8-character verification
// code: a three-letter semantic prefix followed by five random characters
// from the restricted alphabet. Codes are immutable once generated.
//
// Codes are low-entropy human-presentable secrets, not credentials:
// verification is a plain equality check and must always be combined with an
// authenticated actor role and a status precondition.
type VerificationCode struct {
	kind  CodeKind
	value string

	guard guard.ConstructorGuard
}

// GenerateCode mints a fresh random code for the given slot.
func GenerateCode(kind CodeKind) (VerificationCode, error) {
	if err := kind.Validate(); err != nil {
		return VerificationCode{}, err
	}

	prefix := kind.Prefix()
	raw := make([]byte, codeLength-len(prefix))
	if _, err := rand.Read(raw); err != nil {
		return VerificationCode{}, fmt.Errorf("generate code: %w", err)
	}
	for i, b := range raw {
		raw[i] = codeAlphabet[b&0x1f]
	}

	return VerificationCode{
		kind:  kind,
		value: prefix + string(raw),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreCode reconstructs a code from persistence, validating its format.
func RestoreCode(kind CodeKind, value string) (VerificationCode, error) {
	if err := kind.Validate(); err != nil {
		return VerificationCode{}, err
	}
	if len(value) != codeLength {
		return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(kind.String(),
			fmt.Errorf("code must be exactly %d characters", codeLength))
	}
	if !strings.HasPrefix(value, kind.Prefix()) {
		return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(kind.String(),
			fmt.Errorf("code must start with prefix %s", kind.Prefix()))
	}
	for _, r := range value[len(kind.Prefix()):] {
		if !strings.ContainsRune(codeAlphabet, r) {
			return VerificationCode{}, errs.NewValueIsInvalidErrorWithCause(kind.String(),
				fmt.Errorf("character %q is outside the code alphabet", r))
		}
	}

	return VerificationCode{kind: kind, value: value, guard: guard.NewConstructorGuard()}, nil
}

// Kind returns the code slot this code belongs to.
func (c VerificationCode) Kind() CodeKind {
	return c.kind
}

// Value returns the code string.
func (c VerificationCode) Value() string {
	return c.value
}

// Matches reports whether the presented string equals the stored code.
// A pure equality check with no side effects.
func (c VerificationCode) Matches(presented string) bool {
	return c.value != "" && c.value == presented
}

// Validate ensures the code was created through GenerateCode or RestoreCode.
func (c VerificationCode) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError(
		"VerificationCode must be created via GenerateCode or RestoreCode"))
}

// VerificationCodes groups the three code slots of a shipment. All three are
// minted together at creation time and never change afterwards.
type VerificationCodes struct {
	unique   VerificationCode
	delivery VerificationCode
	traveler VerificationCode
}

// NewVerificationCodes mints the full code set for a new shipment.
func NewVerificationCodes() (VerificationCodes, error) {
	unique, err := GenerateCode(CodeKindUnique)
	if err != nil {
		return VerificationCodes{}, err
	}
	delivery, err := GenerateCode(CodeKindDelivery)
	if err != nil {
		return VerificationCodes{}, err
	}
	traveler, err := GenerateCode(CodeKindTraveler)
	if err != nil {
		return VerificationCodes{}, err
	}

	return VerificationCodes{unique: unique, delivery: delivery, traveler: traveler}, nil
}

// RestoreVerificationCodes reconstructs the code set from persistence.
func RestoreVerificationCodes(unique, delivery, traveler string) (VerificationCodes, error) {
	uniqueCode, err := RestoreCode(CodeKindUnique, unique)
	if err != nil {
		return VerificationCodes{}, err
	}
	deliveryCode, err := RestoreCode(CodeKindDelivery, delivery)
	if err != nil {
		return VerificationCodes{}, err
	}
	travelerCode, err := RestoreCode(CodeKindTraveler, traveler)
	if err != nil {
		return VerificationCodes{}, err
	}

	return VerificationCodes{unique: uniqueCode, delivery: deliveryCode, traveler: travelerCode}, nil
}

// Unique returns the sender-to-relay check-in code.
func (c VerificationCodes) Unique() VerificationCode {
	return c.unique
}

// Delivery returns the recipient-to-traveler delivery code.
func (c VerificationCodes) Delivery() VerificationCode {
	return c.delivery
}

// Traveler returns the traveler-to-relay handoff code.
func (c VerificationCodes) Traveler() VerificationCode {
	return c.traveler
}

// ForKind returns the code stored in the given slot.
func (c VerificationCodes) ForKind(kind CodeKind) VerificationCode {
	switch kind {
	case CodeKindUnique:
		return c.unique
	case CodeKindDelivery:
		return c.delivery
	case CodeKindTraveler:
		return c.traveler
	default:
		return VerificationCode{}
	}
}

// Validate checks all three slots were properly constructed.
func (c VerificationCodes) Validate() error {
	return errors.Join(
		c.unique.Validate(),
		c.delivery.Validate(),
		c.traveler.Validate(),
	)
}
