package cache

import (
	"context"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"go.uber.org/zap"
)

// OrderStore caches one tenant's orders. Orders are created by the
// conversational channel, not through this store; only their status and
// existence are mutated here.
type OrderStore struct {
	cache  *tenantCache[models.Order]
	source OrderSource
	events Events
	logger *zap.Logger
}

func NewOrderStore(source OrderSource, events Events) *OrderStore {
	return &OrderStore{
		cache:  newTenantCache("orders", source.FetchOrders, func(o models.Order) string { return o.TenantID }),
		source: source,
		events: events,
		logger: util.GetLogger(),
	}
}

func (s *OrderStore) Load(ctx context.Context, tenantID string) {
	s.cache.load(ctx, tenantID)
}

func (s *OrderStore) ByTenant(tenantID string) []models.Order {
	return s.cache.byTenant(tenantID)
}

func (s *OrderStore) Loading() bool { return s.cache.isLoading() }

func (s *OrderStore) Invalidate() { s.cache.invalidate() }

// UpdateStatus writes the status remotely, then mirrors the gateway's
// timestamp rule on the cached order so readers see the transition
// without waiting for a refetch: confirmed stamps ConfirmedAt, delivered
// stamps DeliveredAt, and an earlier ConfirmedAt survives the delivered
// transition.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) {
	if err := s.source.UpdateOrderStatus(ctx, id, status); err != nil {
		util.EntityWritesTotal.WithLabelValues("orders", "update_status", "error").Inc()
		s.logger.Error("Failed to update order status",
			zap.String("id", id), zap.String("status", string(status)), zap.Error(err))
		return
	}

	now := time.Now()
	var tenantID string
	s.cache.patch(
		func(o models.Order) bool { return o.ID == id },
		func(o *models.Order) {
			tenantID = o.TenantID
			o.Status = status
			o.UpdatedAt = now
			switch status {
			case models.OrderStatusConfirmed:
				o.ConfirmedAt = &now
			case models.OrderStatusDelivered:
				o.DeliveredAt = &now
			}
		})

	util.EntityWritesTotal.WithLabelValues("orders", "update_status", "success").Inc()
	util.OrderStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	if s.events != nil {
		if err := s.events.OrderStatusChanged(ctx, tenantID, id, status); err != nil {
			s.logger.Warn("Failed to publish order status change",
				zap.String("id", id), zap.Error(err))
		}
	}
}

// Delete removes the order remotely (items first, then the order row) and
// then from the cache. A partial remote delete is logged like any other
// failure and the cached order stays.
func (s *OrderStore) Delete(ctx context.Context, id string) {
	if err := s.source.DeleteOrder(ctx, id); err != nil {
		util.EntityWritesTotal.WithLabelValues("orders", "delete", "error").Inc()
		s.logger.Error("Failed to delete order", zap.String("id", id), zap.Error(err))
		return
	}

	var tenantID string
	s.cache.patch(
		func(o models.Order) bool { return o.ID == id },
		func(o *models.Order) { tenantID = o.TenantID })
	s.cache.remove(func(o models.Order) bool { return o.ID == id })
	util.EntityWritesTotal.WithLabelValues("orders", "delete", "success").Inc()
	if s.events != nil {
		if err := s.events.EntityChanged(ctx, models.EventTypeOrderDeleted, tenantID, models.EntityOrder, id); err != nil {
			s.logger.Warn("Failed to publish order deletion",
				zap.String("id", id), zap.Error(err))
		}
	}
}
