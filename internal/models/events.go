package models

import "time"

// Event types
const (
	EventTypeProductCreated     = "PRODUCT_CREATED"
	EventTypeProductUpdated     = "PRODUCT_UPDATED"
	EventTypeProductDeleted     = "PRODUCT_DELETED"
	EventTypeCustomerCreated    = "CUSTOMER_CREATED"
	EventTypeCustomerUpdated    = "CUSTOMER_UPDATED"
	EventTypeCustomerDeleted    = "CUSTOMER_DELETED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
	EventTypeOrderDeleted       = "ORDER_DELETED"
)

// Entity kinds carried on change events, used by consumers to pick which
// cache to invalidate.
const (
	EntityProduct  = "product"
	EntityCustomer = "customer"
	EntityOrder    = "order"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// EntityChangedEvent is published after a successful remote write so other
// instances can drop their cached copy of the affected tenant's data.
type EntityChangedEvent struct {
	BaseEvent
	TenantID   string `json:"tenant_id"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

// OrderStatusChangedEvent is published when an order moves through its
// lifecycle; it carries the new status for consumers that care.
type OrderStatusChangedEvent struct {
	BaseEvent
	TenantID string      `json:"tenant_id"`
	OrderID  string      `json:"order_id"`
	Status   OrderStatus `json:"status"`
}
