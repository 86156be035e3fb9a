package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-console/internal/activity"
	"github.com/tuanvumaihuynh/inventory-console/internal/log"
	"github.com/tuanvumaihuynh/inventory-console/internal/storage/mq"
	"github.com/tuanvumaihuynh/inventory-console/pkg/correlationid"
)

type fakeProducer struct {
	mu   sync.Mutex
	msgs []mq.ProduceMsg
	err  error
}

func (f *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	t.Run("Should produce the event with headers and key", func(t *testing.T) {
		producer := &fakeProducer{}
		pub := activity.NewKafkaPublisher(producer, "inventory.console.activity", log.Discard())

		ctx := correlationid.NewContext(context.Background(), "corr-1")
		pub.Publish(ctx, activity.Event{
			Type:     activity.TypeProductCreated,
			Username: "admin",
			Subject:  "SKU-1",
		})

		require.Len(t, producer.msgs, 1)
		msg := producer.msgs[0]
		assert.Equal(t, "inventory.console.activity", msg.Topic)
		require.NotNil(t, msg.PartitionKey)
		assert.Equal(t, "admin", *msg.PartitionKey)
		assert.Equal(t, "corr-1", msg.Headers[correlationid.Header])

		var ev activity.Event
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		assert.Equal(t, activity.TypeProductCreated, ev.Type)
		assert.Equal(t, "SKU-1", ev.Subject)
		assert.False(t, ev.OccurredAt.IsZero())
	})

	t.Run("Should swallow produce failures", func(t *testing.T) {
		producer := &fakeProducer{err: errors.New("broker down")}
		pub := activity.NewKafkaPublisher(producer, "t", log.Discard())

		assert.NotPanics(t, func() {
			pub.Publish(context.Background(), activity.Event{Type: activity.TypeLogout})
		})
		assert.Empty(t, producer.msgs)
	})
}
