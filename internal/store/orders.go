package store

import (
	"context"
	"fmt"
	"time"

	"wholesale-dashboard/internal/i18n"
	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/jmoiron/sqlx"
)

// FetchOrders retrieves a tenant's orders, newest first, assembled from
// three reads: the order rows, the referenced customers (name and phone
// only) and the order items grouped per order. An order whose customer no
// longer exists still comes back, with a localized placeholder name and an
// empty phone; a dangling reference is never an error.
func (s *Store) FetchOrders(ctx context.Context, tenantID string) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchOrders")
	defer span.End()

	var orderRows []orderRow
	err := s.db.SelectContext(ctx, &orderRows,
		"SELECT * FROM orders WHERE tenant_id = $1 ORDER BY created_at DESC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	if len(orderRows) == 0 {
		return []models.Order{}, nil
	}

	customerIDs := make([]string, 0, len(orderRows))
	seen := make(map[string]bool, len(orderRows))
	orderIDs := make([]string, 0, len(orderRows))
	for _, row := range orderRows {
		orderIDs = append(orderIDs, row.ID)
		if !seen[row.CustomerID] {
			seen[row.CustomerID] = true
			customerIDs = append(customerIDs, row.CustomerID)
		}
	}

	refs, err := s.customerRefs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItemsByOrder(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	unknown := i18n.UnknownCustomer(s.lang)
	orders := make([]models.Order, 0, len(orderRows))
	for _, row := range orderRows {
		name, phone := unknown, ""
		if ref, ok := refs[row.CustomerID]; ok {
			name, phone = ref.Name, ref.Phone
		}
		orders = append(orders, toOrder(row, items[row.ID], name, phone))
	}
	return orders, nil
}

// customerRefs fetches the name+phone projection for a set of customer ids.
func (s *Store) customerRefs(ctx context.Context, ids []string) (map[string]customerRef, error) {
	refs := make(map[string]customerRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	query, args, err := sqlx.In("SELECT id, name, phone FROM customers WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build customer lookup: %w", err)
	}
	query = s.db.Rebind(query)

	var rows []customerRef
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch customer refs: %w", err)
	}
	for _, row := range rows {
		refs[row.ID] = row
	}
	return refs, nil
}

// orderItemsByOrder fetches every item of the given orders, grouped by
// order id.
func (s *Store) orderItemsByOrder(ctx context.Context, orderIDs []string) (map[string][]models.OrderItem, error) {
	grouped := make(map[string][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In("SELECT * FROM order_items WHERE order_id IN (?)", orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build order item lookup: %w", err)
	}
	query = s.db.Rebind(query)

	var rows []orderItemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	for _, row := range rows {
		grouped[row.OrderID] = append(grouped[row.OrderID], toOrderItem(row))
	}
	return grouped, nil
}

// UpdateOrderStatus writes the new status. Moving to confirmed stamps
// confirmed_at, moving to delivered stamps delivered_at; every other
// status is a plain write. Status and timestamp land in one row update.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	ctx, span := util.StartSpan(ctx, "Store.UpdateOrderStatus")
	defer span.End()

	var err error
	switch status {
	case models.OrderStatusConfirmed:
		_, err = s.db.ExecContext(ctx,
			"UPDATE orders SET status = $1, confirmed_at = $2, updated_at = NOW() WHERE id = $3",
			status, time.Now(), id)
	case models.OrderStatusDelivered:
		_, err = s.db.ExecContext(ctx,
			"UPDATE orders SET status = $1, delivered_at = $2, updated_at = NOW() WHERE id = $3",
			status, time.Now(), id)
	default:
		_, err = s.db.ExecContext(ctx,
			"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
			status, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// DeleteOrder removes the order's items and then the order row. If the
// second delete fails the items are already gone; that partial state is
// surfaced as an error, not swallowed.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "Store.DeleteOrder")
	defer span.End()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete order %s after its items were removed: %w", id, err)
	}
	return nil
}
