package kernel

import (
	"fmt"
	"regexp"

	"docurgent/internal/pkg/errs"
	"docurgent/internal/pkg/guard"
)

// priceFormat accepts non-negative decimal amounts with up to two fraction
// digits, e.g. "0", "25", "19.90".
var priceFormat = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ErrPriceIsNotConstructed is returned when validating a zero-value Price.
var ErrPriceIsNotConstructed = errs.NewValueIsRequiredError(
	"Price must be created via NewPrice or ZeroPrice")

// Price is a value object holding a monetary amount as a decimal string.
// Amounts are kept as strings end to end to avoid floating point drift;
// the workflow never does arithmetic on them.
type Price struct {
	amount string

	guard guard.ConstructorGuard
}

// NewPrice creates a Price from its decimal string representation.
func NewPrice(amount string) (Price, error) {
	if amount == "" {
		return Price{}, errs.NewValueIsRequiredError("amount")
	}
	if !priceFormat.MatchString(amount) {
		return Price{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%q is not a non-negative decimal", amount))
	}

	return Price{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// ZeroPrice returns the "0" amount used when no price was offered.
func ZeroPrice() Price {
	return Price{amount: "0", guard: guard.NewConstructorGuard()}
}

// Amount returns the decimal string representation.
func (p Price) Amount() string {
	return p.amount
}

// String implements fmt.Stringer.
func (p Price) String() string {
	return p.amount
}

// IsEqual compares two prices by their string representation.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}

// Validate ensures the price was created through a constructor.
func (p Price) Validate() error {
	return p.guard.Validate(ErrPriceIsNotConstructed)
}
