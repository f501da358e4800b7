package kernel_test

import (
	"testing"

	"docurgent/internal/core/domain/model/kernel"
	"docurgent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice(t *testing.T) {
	t.Run("valid_amounts", func(t *testing.T) {
		for _, amount := range []string{"0", "25", "19.9", "19.90"} {
			p, err := kernel.NewPrice(amount)

			require.NoError(t, err, amount)
			assert.Equal(t, amount, p.Amount())
		}
	})

	t.Run("invalid_amounts", func(t *testing.T) {
		for _, amount := range []string{"-5", "1.234", "abc", "1,5"} {
			_, err := kernel.NewPrice(amount)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, amount)
		}
	})

	t.Run("empty_amount", func(t *testing.T) {
		_, err := kernel.NewPrice("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestZeroPrice(t *testing.T) {
	p := kernel.ZeroPrice()

	require.NoError(t, p.Validate())
	assert.Equal(t, "0", p.Amount())
}

func TestPrice_Validate_ZeroValue(t *testing.T) {
	var p kernel.Price

	require.ErrorIs(t, p.Validate(), errs.ErrValueIsRequired)
}
