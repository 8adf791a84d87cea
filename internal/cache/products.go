package cache

import (
	"context"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"go.uber.org/zap"
)

// ProductStore caches one tenant's catalog and mediates product writes.
type ProductStore struct {
	cache  *tenantCache[models.Product]
	source ProductSource
	events Events
	logger *zap.Logger
}

func NewProductStore(source ProductSource, events Events) *ProductStore {
	return &ProductStore{
		cache:  newTenantCache("products", source.FetchProducts, func(p models.Product) string { return p.TenantID }),
		source: source,
		events: events,
		logger: util.GetLogger(),
	}
}

// Load fills the cache for the tenant unless it is already loaded.
func (s *ProductStore) Load(ctx context.Context, tenantID string) {
	s.cache.load(ctx, tenantID)
}

// ByTenant returns the cached products of the tenant; it never fetches.
func (s *ProductStore) ByTenant(tenantID string) []models.Product {
	return s.cache.byTenant(tenantID)
}

func (s *ProductStore) Loading() bool { return s.cache.isLoading() }

func (s *ProductStore) Invalidate() { s.cache.invalidate() }

// Create writes the product remotely and appends the server-assigned
// entity to the cache. On failure the cache is untouched.
func (s *ProductStore) Create(ctx context.Context, tenantID string, input models.ProductInput) {
	product, err := s.source.CreateProduct(ctx, tenantID, input)
	if err != nil {
		util.EntityWritesTotal.WithLabelValues("products", "create", "error").Inc()
		s.logger.Error("Failed to create product",
			zap.String("tenant_id", tenantID), zap.Error(err))
		return
	}

	s.cache.add(*product)
	util.EntityWritesTotal.WithLabelValues("products", "create", "success").Inc()
	s.notify(ctx, models.EventTypeProductCreated, tenantID, product.ID)
}

// Update patches the product remotely, then merges the same sparse fields
// into the cached copy and refreshes its UpdatedAt.
func (s *ProductStore) Update(ctx context.Context, id string, updates models.ProductUpdate) {
	if err := s.source.UpdateProduct(ctx, id, updates); err != nil {
		util.EntityWritesTotal.WithLabelValues("products", "update", "error").Inc()
		s.logger.Error("Failed to update product", zap.String("id", id), zap.Error(err))
		return
	}

	var tenantID string
	s.cache.patch(
		func(p models.Product) bool { return p.ID == id },
		func(p *models.Product) {
			tenantID = p.TenantID
			applyProductUpdate(p, updates)
			p.UpdatedAt = time.Now()
		})
	util.EntityWritesTotal.WithLabelValues("products", "update", "success").Inc()
	s.notify(ctx, models.EventTypeProductUpdated, tenantID, id)
}

// Delete removes the product remotely and then from the cache.
func (s *ProductStore) Delete(ctx context.Context, id string) {
	if err := s.source.DeleteProduct(ctx, id); err != nil {
		util.EntityWritesTotal.WithLabelValues("products", "delete", "error").Inc()
		s.logger.Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		return
	}

	var tenantID string
	s.cache.patch(
		func(p models.Product) bool { return p.ID == id },
		func(p *models.Product) { tenantID = p.TenantID })
	s.cache.remove(func(p models.Product) bool { return p.ID == id })
	util.EntityWritesTotal.WithLabelValues("products", "delete", "success").Inc()
	s.notify(ctx, models.EventTypeProductDeleted, tenantID, id)
}

func (s *ProductStore) notify(ctx context.Context, eventType, tenantID, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.EntityChanged(ctx, eventType, tenantID, models.EntityProduct, id); err != nil {
		s.logger.Warn("Failed to publish product change",
			zap.String("id", id), zap.Error(err))
	}
}

// applyProductUpdate merges only the supplied fields into the entity.
func applyProductUpdate(p *models.Product, updates models.ProductUpdate) {
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.SKU != nil {
		p.SKU = *updates.SKU
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
	if updates.Price != nil {
		p.Price = *updates.Price
	}
	if updates.Stock != nil {
		p.Stock = *updates.Stock
	}
	if updates.MinStock != nil {
		p.MinStock = *updates.MinStock
	}
	if updates.Unit != nil {
		p.Unit = *updates.Unit
	}
	if updates.IsActive != nil {
		p.IsActive = *updates.IsActive
	}
	if updates.Tags != nil {
		p.Tags = *updates.Tags
	}
}
