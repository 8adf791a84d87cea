package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
)

// FetchProducts retrieves a tenant's catalog ordered by name, with the
// category foreign key resolved to its display name.
func (s *Store) FetchProducts(ctx context.Context, tenantID string) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "Store.FetchProducts")
	defer span.End()

	categories, err := s.categoryNames(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var rows []productRow
	err = s.db.SelectContext(ctx, &rows,
		"SELECT * FROM products WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		var category string
		if row.CategoryID != nil {
			category = categories[*row.CategoryID]
		}
		products = append(products, toProduct(row, category))
	}
	return products, nil
}

// categoryNames resolves the tenant's category id -> name table.
func (s *Store) categoryNames(ctx context.Context, tenantID string) (map[string]string, error) {
	var rows []productCategoryRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name FROM product_categories WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product categories: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// categoryIDByName resolves a category name to its id by exact match
// within the tenant. No match yields nil, not an error: the product is
// simply created without a category.
func (s *Store) categoryIDByName(ctx context.Context, tenantID, name string) (*string, error) {
	if name == "" {
		return nil, nil
	}
	var id string
	err := s.db.GetContext(ctx, &id,
		"SELECT id FROM product_categories WHERE tenant_id = $1 AND name = $2 LIMIT 1",
		tenantID, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}
	return &id, nil
}

// CreateProduct inserts a product for the tenant and returns the stored
// entity. A missing SKU is generated from the current time.
func (s *Store) CreateProduct(ctx context.Context, tenantID string, input models.ProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "Store.CreateProduct")
	defer span.End()

	categoryID, err := s.categoryIDByName(ctx, tenantID, input.Category)
	if err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = fmt.Sprintf("SKU-%d", time.Now().UnixMilli())
	}
	unit := input.Unit
	if unit == "" {
		unit = "unidad"
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO products (tenant_id, category_id, sku, name, description, unit,
			price, cost, stock, min_stock, is_active, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *`

	var row productRow
	err = s.db.GetContext(ctx, &row, query,
		tenantID, categoryID, sku, input.Name, input.Description, unit,
		input.Price, input.CostPrice, input.Stock, input.MinStock, isActive, pq.Array(tags))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	product := toProduct(row, input.Category)
	return &product, nil
}

// productUpdateAssignments collects the SET clauses for the supplied
// fields only; absent fields are never sent to the remote store.
func productUpdateAssignments(ub *sqlbuilder.UpdateBuilder, updates models.ProductUpdate) []string {
	var sets []string
	if updates.Name != nil {
		sets = append(sets, ub.Assign("name", *updates.Name))
	}
	if updates.SKU != nil {
		sets = append(sets, ub.Assign("sku", *updates.SKU))
	}
	if updates.Description != nil {
		sets = append(sets, ub.Assign("description", *updates.Description))
	}
	if updates.Price != nil {
		sets = append(sets, ub.Assign("price", *updates.Price))
	}
	if updates.Stock != nil {
		sets = append(sets, ub.Assign("stock", *updates.Stock))
	}
	if updates.MinStock != nil {
		sets = append(sets, ub.Assign("min_stock", *updates.MinStock))
	}
	if updates.Unit != nil {
		sets = append(sets, ub.Assign("unit", *updates.Unit))
	}
	if updates.IsActive != nil {
		sets = append(sets, ub.Assign("is_active", *updates.IsActive))
	}
	if updates.Tags != nil {
		sets = append(sets, ub.Assign("tags", pq.Array(*updates.Tags)))
	}
	return sets
}

// UpdateProduct applies a sparse patch to one product row.
func (s *Store) UpdateProduct(ctx context.Context, id string, updates models.ProductUpdate) error {
	ctx, span := util.StartSpan(ctx, "Store.UpdateProduct")
	defer span.End()

	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("products")
	sets := productUpdateAssignments(ub, updates)
	if len(sets) == 0 {
		return nil
	}
	ub.Set(sets...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// DeleteProduct hard-deletes one product row.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "Store.DeleteProduct")
	defer span.End()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
