package store

import (
	"context"
	"fmt"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"
)

// FetchTenants retrieves all active tenants ordered by name.
func (s *Store) FetchTenants(ctx context.Context) ([]models.Tenant, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchTenants")
	defer span.End()

	var rows []tenantRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM tenants WHERE is_active = true ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenants: %w", err)
	}

	tenants := make([]models.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, toTenant(row))
	}
	return tenants, nil
}

// FetchUsers retrieves the dashboard users of one tenant. The remote
// super_admin role collapses to admin.
func (s *Store) FetchUsers(ctx context.Context, tenantID string) ([]models.User, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchUsers")
	defer span.End()

	var rows []userRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM users WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUser(row))
	}
	return users, nil
}
