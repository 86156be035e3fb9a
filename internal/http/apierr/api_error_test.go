package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-console/pkg/validator"
	"github.com/tuanvumaihuynh/inventory-console/pkg/zerror"
)

func TestNew(t *testing.T) {
	t.Run("Should map wrapped zerror", func(t *testing.T) {
		err := fmt.Errorf("api client login: %w",
			apperr.APIErr.WithMsg("Invalid credentials").WithStatus(zerror.StatusUnauthorized))

		res := apierr.New(err)
		assert.Equal(t, apperr.APIErrorCode, res.Code)
		assert.Equal(t, "Invalid credentials", res.Message)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Should keep field details of validation errors", func(t *testing.T) {
		v, err := validator.NewDefaultValidator()
		require.NoError(t, err)

		params := struct {
			Quantity int `form:"quantity" validate:"required,gt=0"`
		}{}
		vErr := v.Validate(params)
		require.Error(t, vErr)

		res := apierr.New(apperr.ValidationErr.WithMsg(validator.Summary(vErr)).WrapParent(vErr))
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		require.Len(t, res.Details, 1)
		assert.Equal(t, "quantity", res.Details[0].Field)
		assert.Equal(t, "quantity: field is required", res.Message)
	})

	t.Run("Should hide unknown errors", func(t *testing.T) {
		res := apierr.New(errors.New("db password is hunter2"))
		assert.Equal(t, apierr.InternalServerErr, res)
	})

	t.Run("Should map deadlines to gateway timeout", func(t *testing.T) {
		res := apierr.New(fmt.Errorf("fetch: %w", context.DeadlineExceeded))
		assert.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
	})
}
