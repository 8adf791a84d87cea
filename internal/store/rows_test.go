package store

import (
	"encoding/json"
	"testing"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestSegmentMappingIsBijective(t *testing.T) {
	require.Len(t, segmentFromRemoteMap, 4)
	require.Len(t, segmentToRemoteMap, 4)
	for remote, seg := range segmentFromRemoteMap {
		assert.Equal(t, remote, segmentToRemote(seg))
	}
	for seg, remote := range segmentToRemoteMap {
		assert.Equal(t, seg, segmentFromRemote(remote))
	}
}

func TestSegmentMappingUnknownValues(t *testing.T) {
	assert.Equal(t, models.SegmentNew, segmentFromRemote("wholesale"))
	assert.Equal(t, "new", segmentToRemote(models.CustomerSegment("bogus")))
}

func TestRoleFromRemoteCollapsesSuperAdmin(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, roleFromRemote("super_admin"))
	assert.Equal(t, models.RoleAdmin, roleFromRemote("admin"))
	assert.Equal(t, models.RoleOperator, roleFromRemote("operator"))
	assert.Equal(t, models.RoleViewer, roleFromRemote("viewer"))
}

func TestToTenantSettingsOverlayDefaults(t *testing.T) {
	row := tenantRow{
		ID:       "t1",
		Name:     "distribuidora",
		IsActive: true,
		Settings: json.RawMessage(`{"welcomeMessage":"Hola!","upsellEnabled":false}`),
	}

	tenant := toTenant(row)

	// stored keys win, absent keys keep their default
	assert.Equal(t, "Hola!", tenant.Settings.WelcomeMessage)
	assert.False(t, tenant.Settings.UpsellEnabled)
	assert.Equal(t, "08:00", tenant.Settings.BusinessHoursStart)
	assert.True(t, tenant.Settings.NotificationsEnabled)
}

func TestToTenantPrefersBusinessName(t *testing.T) {
	row := tenantRow{ID: "t1", Name: "acct-001", BusinessName: strPtr("Distribuidora La Plaza")}
	tenant := toTenant(row)

	assert.Equal(t, "Distribuidora La Plaza", tenant.Name)
	assert.Equal(t, "Bienvenido a Distribuidora La Plaza", tenant.Settings.WelcomeMessage)
	assert.Equal(t, "Colombia", tenant.Country)
	assert.Equal(t, "COP", tenant.Currency)
}

func TestToCustomerRecomputesAverage(t *testing.T) {
	row := customerRow{
		ID:           "c1",
		Name:         "Ana",
		CustomerType: "vip",
		TotalOrders:  4,
		TotalSpent:   1000,
	}

	customer := toCustomer(row)

	assert.Equal(t, models.SegmentFrequent, customer.Segment)
	assert.Equal(t, 250.0, customer.AverageOrderValue)

	row.TotalOrders = 0
	assert.Zero(t, toCustomer(row).AverageOrderValue)
}

func TestToProductDefaults(t *testing.T) {
	row := productRow{
		ID:       "p1",
		TenantID: "t1",
		Name:     "Arroz",
		SKU:      "SKU-1",
		Price:    3500,
		IsActive: true,
	}

	product := toProduct(row, "Granos")

	assert.Equal(t, "Granos", product.Category)
	assert.Equal(t, "unidad", product.Unit)
	assert.NotNil(t, product.Tags)
	assert.Empty(t, product.Tags)
	assert.Nil(t, product.CostPrice)
}

func TestToOrderDefaults(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	row := orderRow{
		ID:          "o1",
		TenantID:    "t1",
		CustomerID:  "c1",
		OrderNumber: "ORD-001",
		Status:      "pending",
		Subtotal:    100,
		Total:       100,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	order := toOrder(row, nil, "Ana", "+573001112233")

	assert.Equal(t, models.SourceWhatsApp, order.Source)
	assert.Equal(t, created, order.DeliveryDate)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Zero(t, order.Tax)
	assert.Nil(t, order.ConfirmedAt)
}

func TestToConversationStatusCollapse(t *testing.T) {
	active := conversationRow{ID: "v1", Status: "active"}
	assert.Equal(t, models.ConversationActive, toConversation(active, "Ana", "x").Status)

	archived := conversationRow{ID: "v2", Status: "archived"}
	assert.Equal(t, models.ConversationClosed, toConversation(archived, "Ana", "x").Status)
}

func TestToChatMessageDirection(t *testing.T) {
	inbound := messageRow{ID: "m1", Direction: "inbound", CreatedAt: time.Now()}
	assert.Equal(t, models.SenderCustomer, toChatMessage(inbound).Sender)

	outbound := messageRow{ID: "m2", Direction: "outbound", CreatedAt: time.Now()}
	msg := toChatMessage(outbound)
	assert.Equal(t, models.SenderBot, msg.Sender)
	assert.Equal(t, "text", msg.Type)
	assert.Equal(t, models.MessageSent, msg.Status)
}
