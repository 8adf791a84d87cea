package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageRoutesEntityChange(t *testing.T) {
	eh := NewEventHandler()

	var received *models.EntityChangedEvent
	eh.OnEntityChanged(func(ctx context.Context, e *models.EntityChangedEvent) error {
		received = e
		return nil
	})
	eh.OnOrderStatusChanged(func(ctx context.Context, e *models.OrderStatusChangedEvent) error {
		t.Fatal("order status handler should not fire")
		return nil
	})

	event := models.EntityChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e1",
			EventType: models.EventTypeProductUpdated,
			Timestamp: time.Now(),
		},
		TenantID:   "t1",
		EntityType: models.EntityProduct,
		EntityID:   "p1",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	err = eh.HandleMessage(context.Background(), kafka.Message{Value: payload})
	require.NoError(t, err)
	require.NotNil(t, received)
	assert.Equal(t, "t1", received.TenantID)
	assert.Equal(t, models.EntityProduct, received.EntityType)
}

func TestHandleMessageRoutesOrderStatus(t *testing.T) {
	eh := NewEventHandler()

	var received *models.OrderStatusChangedEvent
	eh.OnOrderStatusChanged(func(ctx context.Context, e *models.OrderStatusChangedEvent) error {
		received = e
		return nil
	})

	event := models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e2",
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		TenantID: "t1",
		OrderID:  "o1",
		Status:   models.OrderStatusDelivered,
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	err = eh.HandleMessage(context.Background(), kafka.Message{Value: payload})
	require.NoError(t, err)
	require.NotNil(t, received)
	assert.Equal(t, models.OrderStatusDelivered, received.Status)
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	eh := NewEventHandler()
	err := eh.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestHandleMessageWithoutHandlersIsNoop(t *testing.T) {
	eh := NewEventHandler()

	payload, err := json.Marshal(models.BaseEvent{EventID: "e3", EventType: models.EventTypeCustomerDeleted})
	require.NoError(t, err)

	assert.NoError(t, eh.HandleMessage(context.Background(), kafka.Message{Value: payload}))
}
