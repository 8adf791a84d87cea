package worker

import (
	"context"
	"log"

	"wholesale-dashboard/internal/broker"
	"wholesale-dashboard/internal/cache"
	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/redisclient"
)

// RefreshWorker consumes entity-change events published by sibling
// dashboard instances and drops the matching local cache plus the cached
// stats snapshot, so the next load refetches fresh data.
type RefreshWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	stores       *cache.Registry
	redis        *redisclient.Client
}

// NewRefreshWorker creates a new cache refresh worker. redis may be nil.
func NewRefreshWorker(
	consumer *broker.Consumer,
	stores *cache.Registry,
	redis *redisclient.Client,
) *RefreshWorker {
	w := &RefreshWorker{
		consumer: consumer,
		stores:   stores,
		redis:    redis,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnEntityChanged(w.handleEntityChanged)
	eventHandler.OnOrderStatusChanged(w.handleOrderStatusChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *RefreshWorker) Start(ctx context.Context) error {
	log.Println("Starting cache refresh worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *RefreshWorker) Stop() error {
	log.Println("Stopping cache refresh worker...")
	return w.consumer.Close()
}

func (w *RefreshWorker) handleEntityChanged(ctx context.Context, event *models.EntityChangedEvent) error {
	w.stores.Invalidate(event.EntityType)
	w.dropStats(ctx, event.TenantID)
	return nil
}

func (w *RefreshWorker) handleOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	w.stores.Invalidate(models.EntityOrder)
	w.dropStats(ctx, event.TenantID)
	return nil
}

// dropStats invalidates the tenant's dashboard snapshot; any write to the
// tenant's data changes its KPIs.
func (w *RefreshWorker) dropStats(ctx context.Context, tenantID string) {
	if w.redis == nil || tenantID == "" {
		return
	}
	if err := w.redis.InvalidateDashboardStats(ctx, tenantID); err != nil {
		log.Printf("Failed to drop stats snapshot for tenant %s: %v", tenantID, err)
	}
}
