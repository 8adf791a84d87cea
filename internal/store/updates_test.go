package store

import (
	"testing"

	"wholesale-dashboard/internal/models"

	"github.com/huandu/go-sqlbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUpdateAssignmentsSparse(t *testing.T) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("products")

	price := 4200.0
	stock := 12
	sets := productUpdateAssignments(ub, models.ProductUpdate{Price: &price, Stock: &stock})
	require.Len(t, sets, 2)

	ub.Set(sets...)
	ub.Where(ub.Equal("id", "p1"))
	query, args := ub.Build()

	assert.Contains(t, query, "price")
	assert.Contains(t, query, "stock")
	assert.NotContains(t, query, "name")
	assert.NotContains(t, query, "is_active")
	assert.Contains(t, args, 4200.0)
	assert.Contains(t, args, 12)
	assert.Contains(t, args, "p1")
}

func TestProductUpdateAssignmentsEmpty(t *testing.T) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("products")

	sets := productUpdateAssignments(ub, models.ProductUpdate{})
	assert.Empty(t, sets)
}

func TestCustomerUpdateAssignmentsTranslatesSegment(t *testing.T) {
	ub := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	ub.Update("customers")

	segment := models.SegmentFrequent
	sets := customerUpdateAssignments(ub, models.CustomerUpdate{Segment: &segment})
	require.Len(t, sets, 1)

	ub.Set(sets...)
	ub.Where(ub.Equal("id", "c1"))
	query, args := ub.Build()

	// the domain spelling never reaches the remote store
	assert.Contains(t, query, "customer_type")
	assert.Contains(t, args, "vip")
	assert.NotContains(t, args, "frequent")
}
