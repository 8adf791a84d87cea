package cache

import (
	"context"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"go.uber.org/zap"
)

// CustomerStore caches one tenant's customers and mediates writes.
type CustomerStore struct {
	cache  *tenantCache[models.Customer]
	source CustomerSource
	events Events
	logger *zap.Logger
}

func NewCustomerStore(source CustomerSource, events Events) *CustomerStore {
	return &CustomerStore{
		cache:  newTenantCache("customers", source.FetchCustomers, func(c models.Customer) string { return c.TenantID }),
		source: source,
		events: events,
		logger: util.GetLogger(),
	}
}

func (s *CustomerStore) Load(ctx context.Context, tenantID string) {
	s.cache.load(ctx, tenantID)
}

func (s *CustomerStore) ByTenant(tenantID string) []models.Customer {
	return s.cache.byTenant(tenantID)
}

func (s *CustomerStore) Loading() bool { return s.cache.isLoading() }

func (s *CustomerStore) Invalidate() { s.cache.invalidate() }

// Create writes the customer remotely and appends the server-assigned
// entity to the cache.
func (s *CustomerStore) Create(ctx context.Context, tenantID string, input models.CustomerInput) {
	customer, err := s.source.CreateCustomer(ctx, tenantID, input)
	if err != nil {
		util.EntityWritesTotal.WithLabelValues("customers", "create", "error").Inc()
		s.logger.Error("Failed to create customer",
			zap.String("tenant_id", tenantID), zap.Error(err))
		return
	}

	s.cache.add(*customer)
	util.EntityWritesTotal.WithLabelValues("customers", "create", "success").Inc()
	s.notify(ctx, models.EventTypeCustomerCreated, tenantID, customer.ID)
}

// Update patches the customer remotely, then merges the same sparse
// fields into the cached copy and refreshes its UpdatedAt.
func (s *CustomerStore) Update(ctx context.Context, id string, updates models.CustomerUpdate) {
	if err := s.source.UpdateCustomer(ctx, id, updates); err != nil {
		util.EntityWritesTotal.WithLabelValues("customers", "update", "error").Inc()
		s.logger.Error("Failed to update customer", zap.String("id", id), zap.Error(err))
		return
	}

	var tenantID string
	s.cache.patch(
		func(c models.Customer) bool { return c.ID == id },
		func(c *models.Customer) {
			tenantID = c.TenantID
			applyCustomerUpdate(c, updates)
			c.UpdatedAt = time.Now()
		})
	util.EntityWritesTotal.WithLabelValues("customers", "update", "success").Inc()
	s.notify(ctx, models.EventTypeCustomerUpdated, tenantID, id)
}

// Delete removes the customer remotely and then from the cache.
func (s *CustomerStore) Delete(ctx context.Context, id string) {
	if err := s.source.DeleteCustomer(ctx, id); err != nil {
		util.EntityWritesTotal.WithLabelValues("customers", "delete", "error").Inc()
		s.logger.Error("Failed to delete customer", zap.String("id", id), zap.Error(err))
		return
	}

	var tenantID string
	s.cache.patch(
		func(c models.Customer) bool { return c.ID == id },
		func(c *models.Customer) { tenantID = c.TenantID })
	s.cache.remove(func(c models.Customer) bool { return c.ID == id })
	util.EntityWritesTotal.WithLabelValues("customers", "delete", "success").Inc()
	s.notify(ctx, models.EventTypeCustomerDeleted, tenantID, id)
}

func (s *CustomerStore) notify(ctx context.Context, eventType, tenantID, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.EntityChanged(ctx, eventType, tenantID, models.EntityCustomer, id); err != nil {
		s.logger.Warn("Failed to publish customer change",
			zap.String("id", id), zap.Error(err))
	}
}

// applyCustomerUpdate merges only the supplied fields into the entity.
func applyCustomerUpdate(c *models.Customer, updates models.CustomerUpdate) {
	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.BusinessName != nil {
		c.BusinessName = *updates.BusinessName
	}
	if updates.Phone != nil {
		c.Phone = *updates.Phone
	}
	if updates.Email != nil {
		c.Email = *updates.Email
	}
	if updates.Address != nil {
		c.Address = *updates.Address
	}
	if updates.City != nil {
		c.City = *updates.City
	}
	if updates.Zone != nil {
		c.Zone = *updates.Zone
	}
	if updates.Segment != nil {
		c.Segment = *updates.Segment
	}
	if updates.Notes != nil {
		c.Notes = *updates.Notes
	}
}
