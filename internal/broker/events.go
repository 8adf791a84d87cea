package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes entity-change events after successful remote
// writes so other dashboard instances can drop their cached copies. It
// satisfies the cache package's Events capability.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// EntityChanged publishes a change notification for one entity.
func (ep *EventPublisher) EntityChanged(ctx context.Context, eventType, tenantID, entityType, entityID string) error {
	event := &models.EntityChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
	}
	key := fmt.Sprintf("%s-%s", entityType, tenantID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// OrderStatusChanged publishes an order lifecycle transition.
func (ep *EventPublisher) OrderStatusChanged(ctx context.Context, tenantID, orderID string, status models.OrderStatus) error {
	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		TenantID: tenantID,
		OrderID:  orderID,
		Status:   status,
	}
	key := fmt.Sprintf("order-%s", tenantID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming change events.
type EventHandler struct {
	onEntityChanged func(context.Context, *models.EntityChangedEvent) error
	onOrderStatus   func(context.Context, *models.OrderStatusChangedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnEntityChanged registers a handler for entity-change events
func (eh *EventHandler) OnEntityChanged(handler func(context.Context, *models.EntityChangedEvent) error) {
	eh.onEntityChanged = handler
}

// OnOrderStatusChanged registers a handler for order status events
func (eh *EventHandler) OnOrderStatusChanged(handler func(context.Context, *models.OrderStatusChangedEvent) error) {
	eh.onOrderStatus = handler
}

// HandleMessage routes messages to the registered handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeOrderStatusChanged:
		if eh.onOrderStatus != nil {
			var event models.OrderStatusChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal order status event: %w", err)
			}
			return eh.onOrderStatus(ctx, &event)
		}

	default:
		if eh.onEntityChanged != nil {
			var event models.EntityChangedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal entity change event: %w", err)
			}
			return eh.onEntityChanged(ctx, &event)
		}
	}

	return nil
}
