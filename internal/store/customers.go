package store

import (
	"context"
	"fmt"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/huandu/go-sqlbuilder"
)

// FetchCustomers retrieves a tenant's customers ordered by name. The
// averageOrderValue aggregate is derived during transformation, never read
// from the remote store.
func (s *Store) FetchCustomers(ctx context.Context, tenantID string) ([]models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchCustomers")
	defer span.End()

	var rows []customerRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM customers WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	customers := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, toCustomer(row))
	}
	return customers, nil
}

// CreateCustomer inserts a customer for the tenant and returns the stored
// entity. Aggregate fields start at zero on the remote side.
func (s *Store) CreateCustomer(ctx context.Context, tenantID string, input models.CustomerInput) (*models.Customer, error) {
	ctx, span := util.StartSpan(ctx, "Store.CreateCustomer")
	defer span.End()

	segment := input.Segment
	if segment == "" {
		segment = models.SegmentNew
	}

	query := `
		INSERT INTO customers (tenant_id, name, business_name, phone, email,
			address, city, zone, customer_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`

	var row customerRow
	err := s.db.GetContext(ctx, &row, query,
		tenantID, input.Name, nullable(input.BusinessName), input.Phone,
		nullable(input.Email), input.Address, input.City, input.Zone,
		segmentToRemote(segment), nullable(input.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	customer := toCustomer(row)
	return &customer, nil
}

// customerUpdateAssignments collects the SET clauses for the supplied
// fields only; the segment enum is translated to its remote spelling.
func customerUpdateAssignments(ub *sqlbuilder.UpdateBuilder, updates models.CustomerUpdate) []string {
	var sets []string
	if updates.Name != nil {
		sets = append(sets, ub.Assign("name", *updates.Name))
	}
	if updates.BusinessName != nil {
		sets = append(sets, ub.Assign("business_name", *updates.BusinessName))
	}
	if updates.Phone != nil {
		sets = append(sets, ub.Assign("phone", *updates.Phone))
	}
	if updates.Email != nil {
		sets = append(sets, ub.Assign("email", *updates.Email))
	}
	if updates.Address != nil {
		sets = append(sets, ub.Assign("address", *updates.Address))
	}
	if updates.City != nil {
		sets = append(sets, ub.Assign("city", *updates.City))
	}
	if updates.Zone != nil {
		sets = append(sets, ub.Assign("zone", *updates.Zone))
	}
	if updates.Segment != nil {
		sets = append(sets, ub.Assign("customer_type", segmentToRemote(*updates.Segment)))
	}
	if updates.Notes != nil {
		sets = append(sets, ub.Assign("notes", *updates.Notes))
	}
	return sets
}

// UpdateCustomer applies a sparse patch to one customer row.
func (s *Store) UpdateCustomer(ctx context.Context, id string, updates models.CustomerUpdate) error {
	ctx, span := util.StartSpan(ctx, "Store.UpdateCustomer")
	defer span.End()

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("customers")
	sets := customerUpdateAssignments(ub, updates)
	if len(sets) == 0 {
		return nil
	}
	ub.Set(sets...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// DeleteCustomer hard-deletes one customer row.
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "Store.DeleteCustomer")
	defer span.End()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// nullable maps an empty string to NULL for optional text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
