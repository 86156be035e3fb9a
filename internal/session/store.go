package session

import (
	"context"

	"github.com/tuanvumaihuynh/inventory-console/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-console/internal/model"
)

// ErrNotFound is returned by Store.Get for unknown session ids.
var ErrNotFound = apperr.SessionNotFoundErr

// Store persists sessions by id.
type Store interface {
	Get(ctx context.Context, id string) (model.Session, error)
	Set(ctx context.Context, s model.Session) error
	// Replace atomically drops oldID (if any) and stores s.
	Replace(ctx context.Context, oldID string, s model.Session) error
	Clear(ctx context.Context, id string) error
}
