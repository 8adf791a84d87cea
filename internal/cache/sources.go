package cache

import (
	"context"

	"wholesale-dashboard/internal/models"
)

// The stores are generic over these data-source capabilities; the sqlx
// gateway is the production implementation and tests plug in fakes.

type ProductSource interface {
	FetchProducts(ctx context.Context, tenantID string) ([]models.Product, error)
	CreateProduct(ctx context.Context, tenantID string, input models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, updates models.ProductUpdate) error
	DeleteProduct(ctx context.Context, id string) error
}

type CustomerSource interface {
	FetchCustomers(ctx context.Context, tenantID string) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, tenantID string, input models.CustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, updates models.CustomerUpdate) error
	DeleteCustomer(ctx context.Context, id string) error
}

type OrderSource interface {
	FetchOrders(ctx context.Context, tenantID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
}

type ConversationSource interface {
	FetchConversations(ctx context.Context, tenantID string) ([]models.Conversation, []models.ChatMessage, error)
}

type TenantSource interface {
	FetchTenants(ctx context.Context) ([]models.Tenant, error)
}

// Source is the full gateway capability set the registry wires against.
type Source interface {
	ProductSource
	CustomerSource
	OrderSource
	ConversationSource
	TenantSource
}

// Events receives change notifications after successful remote writes.
// Implementations may fan them out to other instances; publish failures
// must not block the write path.
type Events interface {
	EntityChanged(ctx context.Context, eventType, tenantID, entityType, entityID string) error
	OrderStatusChanged(ctx context.Context, tenantID, orderID string, status models.OrderStatus) error
}

// Registry bundles one instance of every entity store. It is constructed
// once per application and passed around explicitly; there is no package
// level singleton.
type Registry struct {
	Products      *ProductStore
	Customers     *CustomerStore
	Orders        *OrderStore
	Conversations *ConversationStore
	Tenants       *TenantStore
}

// NewRegistry wires every store against the given source. events may be
// nil when no broker is configured.
func NewRegistry(source Source, events Events) *Registry {
	return &Registry{
		Products:      NewProductStore(source, events),
		Customers:     NewCustomerStore(source, events),
		Orders:        NewOrderStore(source, events),
		Conversations: NewConversationStore(source),
		Tenants:       NewTenantStore(source),
	}
}

// Invalidate drops the staleness key of the store caching the given
// entity type. Used by the change-event consumer for cross-instance
// cache coherence.
func (r *Registry) Invalidate(entityType string) {
	switch entityType {
	case models.EntityProduct:
		r.Products.Invalidate()
	case models.EntityCustomer:
		r.Customers.Invalidate()
	case models.EntityOrder:
		r.Orders.Invalidate()
	}
}
