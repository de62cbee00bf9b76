package kernel_test

import (
	"testing"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuantity(t *testing.T) {
	require.NoError(t, kernel.ValidateQuantity("quantity", 0))
	require.NoError(t, kernel.ValidateQuantity("quantity", 12))

	err := kernel.ValidateQuantity("quantity", -1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "-1 is negative")
}

func TestValidatePositiveQuantity(t *testing.T) {
	require.NoError(t, kernel.ValidatePositiveQuantity("quantity", 1))

	for _, q := range []int{0, -3} {
		err := kernel.ValidatePositiveQuantity("quantity", q)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not greater than 0")
	}
}

func TestOutcome(t *testing.T) {
	assert.True(t, kernel.Changed.IsChanged())
	assert.False(t, kernel.Unchanged.IsChanged())
	assert.Equal(t, "changed", kernel.Changed.String())
	assert.Equal(t, "unchanged", kernel.Unchanged.String())

	var zero kernel.Outcome
	assert.Equal(t, kernel.Unchanged, zero)
}
