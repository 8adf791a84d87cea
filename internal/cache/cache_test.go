package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source; per-entity fail flags make the next
// call for that entity return an error.
type fakeSource struct {
	products      map[string][]models.Product
	customers     map[string][]models.Customer
	orders        map[string][]models.Order
	conversations map[string][]models.Conversation
	messages      []models.ChatMessage
	tenants       []models.Tenant

	fetchCalls map[string]int
	fail       map[string]bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		products:      make(map[string][]models.Product),
		customers:     make(map[string][]models.Customer),
		orders:        make(map[string][]models.Order),
		conversations: make(map[string][]models.Conversation),
		fetchCalls:    make(map[string]int),
		fail:          make(map[string]bool),
	}
}

var errRemote = errors.New("remote store unavailable")

func (f *fakeSource) FetchProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	f.fetchCalls["products"]++
	if f.fail["products"] {
		return nil, errRemote
	}
	return f.products[tenantID], nil
}

func (f *fakeSource) CreateProduct(ctx context.Context, tenantID string, input models.ProductInput) (*models.Product, error) {
	if f.fail["products"] {
		return nil, errRemote
	}
	p := models.Product{ID: "generated", TenantID: tenantID, Name: input.Name, Price: input.Price}
	f.products[tenantID] = append(f.products[tenantID], p)
	return &p, nil
}

func (f *fakeSource) UpdateProduct(ctx context.Context, id string, updates models.ProductUpdate) error {
	if f.fail["products"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) DeleteProduct(ctx context.Context, id string) error {
	if f.fail["products"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) FetchCustomers(ctx context.Context, tenantID string) ([]models.Customer, error) {
	f.fetchCalls["customers"]++
	if f.fail["customers"] {
		return nil, errRemote
	}
	return f.customers[tenantID], nil
}

func (f *fakeSource) CreateCustomer(ctx context.Context, tenantID string, input models.CustomerInput) (*models.Customer, error) {
	if f.fail["customers"] {
		return nil, errRemote
	}
	c := models.Customer{ID: "generated", TenantID: tenantID, Name: input.Name, Segment: models.SegmentNew}
	return &c, nil
}

func (f *fakeSource) UpdateCustomer(ctx context.Context, id string, updates models.CustomerUpdate) error {
	if f.fail["customers"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) DeleteCustomer(ctx context.Context, id string) error {
	if f.fail["customers"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) FetchOrders(ctx context.Context, tenantID string) ([]models.Order, error) {
	f.fetchCalls["orders"]++
	if f.fail["orders"] {
		return nil, errRemote
	}
	return f.orders[tenantID], nil
}

func (f *fakeSource) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if f.fail["orders"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) DeleteOrder(ctx context.Context, id string) error {
	if f.fail["orders"] {
		return errRemote
	}
	return nil
}

func (f *fakeSource) FetchConversations(ctx context.Context, tenantID string) ([]models.Conversation, []models.ChatMessage, error) {
	f.fetchCalls["conversations"]++
	if f.fail["conversations"] {
		return nil, nil, errRemote
	}
	return f.conversations[tenantID], f.messages, nil
}

func (f *fakeSource) FetchTenants(ctx context.Context) ([]models.Tenant, error) {
	f.fetchCalls["tenants"]++
	if f.fail["tenants"] {
		return nil, errRemote
	}
	return f.tenants, nil
}

// fakeEvents records published notifications.
type fakeEvents struct {
	entityEvents []string
	statusEvents []models.OrderStatus
}

func (f *fakeEvents) EntityChanged(ctx context.Context, eventType, tenantID, entityType, entityID string) error {
	f.entityEvents = append(f.entityEvents, eventType)
	return nil
}

func (f *fakeEvents) OrderStatusChanged(ctx context.Context, tenantID, orderID string, status models.OrderStatus) error {
	f.statusEvents = append(f.statusEvents, status)
	return nil
}

func seededSource() *fakeSource {
	source := newFakeSource()
	source.products["t1"] = []models.Product{
		{ID: "p1", TenantID: "t1", Name: "Arroz", Price: 3500, Stock: 10},
		{ID: "p2", TenantID: "t1", Name: "Frijol", Price: 5200, Stock: 4},
	}
	source.products["t2"] = []models.Product{
		{ID: "p3", TenantID: "t2", Name: "Aceite", Price: 12000, Stock: 7},
	}
	return source
}

func TestLoadCachesPerTenant(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Load(ctx, "t1")

	assert.Equal(t, 1, source.fetchCalls["products"])
	assert.Len(t, store.ByTenant("t1"), 2)
	assert.False(t, store.Loading())
}

func TestByTenantNeverLeaksOtherTenants(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)

	store.Load(context.Background(), "t1")

	assert.Empty(t, store.ByTenant("t2"))
	assert.Empty(t, store.ByTenant(""))
}

func TestTenantSwitchRefetches(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Load(ctx, "t2")

	assert.Equal(t, 2, source.fetchCalls["products"])
	require.Len(t, store.ByTenant("t2"), 1)
	assert.Equal(t, "p3", store.ByTenant("t2")[0].ID)
	// the previous tenant's rows were replaced wholesale
	assert.Empty(t, store.ByTenant("t1"))
}

func TestInvalidateForcesReload(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Invalidate()
	// cached rows stay visible until the next load
	assert.Len(t, store.ByTenant("t1"), 2)

	store.Load(ctx, "t1")
	assert.Equal(t, 2, source.fetchCalls["products"])
}

func TestFailedLoadKeepsPreviousItems(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Invalidate()
	source.fail["products"] = true
	store.Load(ctx, "t1")

	// stale beats empty
	assert.Len(t, store.ByTenant("t1"), 2)
	assert.False(t, store.Loading())
}

func TestFailedFirstLoadLeavesCacheEmpty(t *testing.T) {
	source := seededSource()
	source.fail["products"] = true
	store := NewProductStore(source, nil)

	store.Load(context.Background(), "t1")

	assert.Empty(t, store.ByTenant("t1"))
	assert.False(t, store.Loading())
}

func TestCreateAppendsAndNotifies(t *testing.T) {
	source := seededSource()
	events := &fakeEvents{}
	store := NewProductStore(source, events)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Create(ctx, "t1", models.ProductInput{Name: "Panela", Price: 2800})

	items := store.ByTenant("t1")
	require.Len(t, items, 3)
	assert.Equal(t, "Panela", items[2].Name)
	assert.Equal(t, []string{models.EventTypeProductCreated}, events.entityEvents)
}

func TestCreateFailureLeavesCacheUntouched(t *testing.T) {
	source := seededSource()
	events := &fakeEvents{}
	store := NewProductStore(source, events)
	ctx := context.Background()

	store.Load(ctx, "t1")
	source.fail["products"] = true
	store.Create(ctx, "t1", models.ProductInput{Name: "Panela", Price: 2800})

	assert.Len(t, store.ByTenant("t1"), 2)
	assert.Empty(t, events.entityEvents)
}

func TestUpdateMergesSparseFields(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	before := store.ByTenant("t1")[0]

	price := 4000.0
	store.Update(ctx, "p1", models.ProductUpdate{Price: &price})

	after := store.ByTenant("t1")[0]
	assert.Equal(t, 4000.0, after.Price)
	// untouched fields survive the patch
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Stock, after.Stock)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestDeleteRemovesFromCache(t *testing.T) {
	source := seededSource()
	store := NewProductStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.Delete(ctx, "p1")

	items := store.ByTenant("t1")
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
}

func TestUpdateStatusStampsLifecycleTimes(t *testing.T) {
	source := newFakeSource()
	source.orders["t1"] = []models.Order{
		{ID: "o1", TenantID: "t1", Status: models.OrderStatusPending},
	}
	events := &fakeEvents{}
	store := NewOrderStore(source, events)
	ctx := context.Background()

	store.Load(ctx, "t1")
	store.UpdateStatus(ctx, "o1", models.OrderStatusConfirmed)

	order := store.ByTenant("t1")[0]
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)
	assert.Nil(t, order.DeliveredAt)
	confirmedAt := *order.ConfirmedAt

	time.Sleep(time.Millisecond)
	store.UpdateStatus(ctx, "o1", models.OrderStatusDelivered)

	order = store.ByTenant("t1")[0]
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)
	// the earlier confirmation survives the delivered transition
	require.NotNil(t, order.ConfirmedAt)
	assert.Equal(t, confirmedAt, *order.ConfirmedAt)

	assert.Equal(t, []models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusDelivered}, events.statusEvents)
}

func TestUpdateStatusFailureKeepsOrder(t *testing.T) {
	source := newFakeSource()
	source.orders["t1"] = []models.Order{
		{ID: "o1", TenantID: "t1", Status: models.OrderStatusPending},
	}
	store := NewOrderStore(source, nil)
	ctx := context.Background()

	store.Load(ctx, "t1")
	source.fail["orders"] = true
	store.UpdateStatus(ctx, "o1", models.OrderStatusConfirmed)

	order := store.ByTenant("t1")[0]
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.ConfirmedAt)
}

func TestAddMessageIsLocalOnly(t *testing.T) {
	source := newFakeSource()
	source.conversations["t1"] = []models.Conversation{
		{ID: "v1", TenantID: "t1", CustomerName: "Ana"},
	}
	store := NewConversationStore(source)
	ctx := context.Background()

	store.Load(ctx, "t1")
	message := store.AddMessage("v1", "¿Tienen arroz?", "text", models.SenderAgent)

	assert.NotEmpty(t, message.ID)
	assert.Equal(t, models.MessageSent, message.Status)

	messages := store.MessagesByConversation("v1")
	require.Len(t, messages, 1)
	assert.Equal(t, "¿Tienen arroz?", messages[0].Content)

	conv := store.ByTenant("t1")[0]
	assert.Equal(t, message.Timestamp, conv.LastMessageAt)
}

func TestTenantStoreByID(t *testing.T) {
	source := newFakeSource()
	source.tenants = []models.Tenant{
		{ID: "t1", Name: "Distribuidora Uno"},
		{ID: "t2", Name: "Distribuidora Dos"},
	}
	store := NewTenantStore(source)

	store.Load(context.Background())

	require.NotNil(t, store.ByID("t2"))
	assert.Equal(t, "Distribuidora Dos", store.ByID("t2").Name)
	assert.Nil(t, store.ByID("missing"))
	assert.Len(t, store.All(), 2)
	assert.Equal(t, 1, source.fetchCalls["tenants"])
}

func TestRegistryInvalidateByEntityType(t *testing.T) {
	source := seededSource()
	registry := NewRegistry(source, nil)
	ctx := context.Background()

	registry.Products.Load(ctx, "t1")
	registry.Invalidate(models.EntityProduct)
	registry.Products.Load(ctx, "t1")

	assert.Equal(t, 2, source.fetchCalls["products"])

	// unknown entity types are ignored
	registry.Invalidate("webhook")
}
