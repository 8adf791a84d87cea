package store

import (
	"context"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/stats"
	"wholesale-dashboard/internal/util"

	"golang.org/x/sync/errgroup"
)

// GenerateDashboardStats fetches the tenant's orders, customers and
// products in parallel and hands them to the aggregation engine. Any
// fetch failure aborts the whole computation.
func (s *Store) GenerateDashboardStats(ctx context.Context, tenantID string) (*models.DashboardStats, error) {
	ctx, span := util.StartSpan(ctx, "Store.GenerateDashboardStats")
	defer span.End()

	start := time.Now()
	defer func() {
		util.StatsGenerationLatency.Observe(time.Since(start).Seconds())
	}()

	var (
		orders    []models.Order
		customers []models.Customer
		products  []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.FetchOrders(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.FetchCustomers(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.FetchProducts(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := stats.Compute(orders, customers, products, time.Now(), s.lang)
	return &result, nil
}
