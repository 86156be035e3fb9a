package carrier_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/inventory-console/pkg/carrier"
	"github.com/tuanvumaihuynh/inventory-console/pkg/correlationid"
)

func TestHeaders(t *testing.T) {
	ctx := correlationid.NewContext(context.Background(), "corr-1")

	t.Run("Should put correlation id into message headers", func(t *testing.T) {
		headers := carrier.BuildHeaders(ctx)
		assert.Equal(t, "corr-1", headers[correlationid.Header])
	})

	t.Run("Should put correlation id into http headers", func(t *testing.T) {
		h := http.Header{}
		carrier.InjectHTTP(ctx, h)
		assert.Equal(t, "corr-1", h.Get(correlationid.Header))
	})

	t.Run("Should restore correlation id from record", func(t *testing.T) {
		rec := &kgo.Record{Headers: []kgo.RecordHeader{{Key: correlationid.Header, Value: []byte("corr-2")}}}
		id, ok := correlationid.FromContext(carrier.ContextFromRecord(context.Background(), rec))
		assert.True(t, ok)
		assert.Equal(t, "corr-2", id)
	})
}
