package zerror_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/inventory-console/pkg/zerror"
)

func TestZError(t *testing.T) {
	base := zerror.NewBadGateway("TRANSPORT_ERROR", "transport error")

	t.Run("Should unwrap parent through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("call backend: %w", base.WrapParent(context.Canceled))

		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, base)

		zErr, ok := zerror.As(err)
		assert.True(t, ok)
		assert.Equal(t, zerror.StatusBadGateway, zErr.Status())
		assert.Equal(t, "transport error", zErr.Msg())
	})

	t.Run("Should not match a different code", func(t *testing.T) {
		other := zerror.NewBadGateway("OTHER", "other")
		assert.False(t, errors.Is(base, other))
	})

	t.Run("Should replace message", func(t *testing.T) {
		assert.Equal(t, "boom", base.WithMsg("boom").Msg())
		assert.Equal(t, "transport error", base.Msg())
	})
}

func TestStatusFromHTTP(t *testing.T) {
	cases := map[int]zerror.Status{
		400: zerror.StatusBadRequest,
		401: zerror.StatusUnauthorized,
		403: zerror.StatusForbidden,
		404: zerror.StatusNotFound,
		409: zerror.StatusConflict,
		418: zerror.StatusBadRequest,
		500: zerror.StatusInternalServerError,
		599: zerror.StatusInternalServerError,
		302: zerror.StatusUnknown,
	}
	for code, want := range cases {
		assert.Equal(t, want, zerror.StatusFromHTTP(code), "code %d", code)
	}
}
