package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/pkg/validator"
)

type kind string

func (k kind) Validate() error {
	if k == "in" || k == "out" {
		return nil
	}
	return assert.AnError
}

type sample struct {
	Sku      string `form:"sku" validate:"required"`
	Quantity int    `form:"quantity" validate:"min=1"`
	Kind     kind   `form:"transaction_type" validate:"enum"`
}

func TestDefaultValidator(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	t.Run("Should accept valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(sample{Sku: "AB-1", Quantity: 3, Kind: "out"}))
	})

	t.Run("Should report form field names", func(t *testing.T) {
		err := v.Validate(sample{Sku: "", Quantity: 0, Kind: "sideways"})
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		summary := validator.Summary(err)
		assert.Contains(t, summary, "sku: field is required")
		assert.Contains(t, summary, "quantity: must be at least 1")
		assert.Contains(t, summary, "transaction_type: invalid enum value: sideways")
	})

	t.Run("Should accept any non empty sku", func(t *testing.T) {
		for _, sku := range []string{"AB 12", "SKU#5", "bad sku!"} {
			assert.NoError(t, v.Validate(sample{Sku: sku, Quantity: 1, Kind: "in"}), sku)
		}
	})
}
