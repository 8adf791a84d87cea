package store

import (
	"encoding/json"
	"time"

	"wholesale-dashboard/internal/models"

	"github.com/lib/pq"
)

// Row types mirror the remote tables one to one. Every remote read is
// scanned into one of these before it becomes a domain entity so schema
// drift fails here instead of at arbitrary call sites.

type tenantRow struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	BusinessName   *string         `db:"business_name"`
	WhatsAppNumber *string         `db:"whatsapp_number"`
	BusinessType   *string         `db:"business_type"`
	Address        *string         `db:"address"`
	City           *string         `db:"city"`
	Country        *string         `db:"country"`
	Timezone       *string         `db:"timezone"`
	Currency       *string         `db:"currency"`
	IsActive       bool            `db:"is_active"`
	Settings       json.RawMessage `db:"settings"`
	CreatedAt      time.Time       `db:"created_at"`
}

type userRow struct {
	ID          string     `db:"id"`
	TenantID    string     `db:"tenant_id"`
	Email       string     `db:"email"`
	FullName    string     `db:"full_name"`
	Role        string     `db:"role"`
	CreatedAt   time.Time  `db:"created_at"`
	LastLoginAt *time.Time `db:"last_login_at"`
}

type productCategoryRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type productRow struct {
	ID          string         `db:"id"`
	TenantID    string         `db:"tenant_id"`
	CategoryID  *string        `db:"category_id"`
	SKU         string         `db:"sku"`
	Name        string         `db:"name"`
	Description *string        `db:"description"`
	Unit        *string        `db:"unit"`
	Price       float64        `db:"price"`
	Cost        *float64       `db:"cost"`
	Stock       *int           `db:"stock"`
	MinStock    *int           `db:"min_stock"`
	IsActive    bool           `db:"is_active"`
	Tags        pq.StringArray `db:"tags"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type customerRow struct {
	ID            string     `db:"id"`
	TenantID      string     `db:"tenant_id"`
	Name          string     `db:"name"`
	BusinessName  *string    `db:"business_name"`
	Phone         string     `db:"phone"`
	Email         *string    `db:"email"`
	Address       *string    `db:"address"`
	City          *string    `db:"city"`
	Zone          *string    `db:"zone"`
	CustomerType  string     `db:"customer_type"`
	LastOrderDate *time.Time `db:"last_order_date"`
	TotalOrders   int        `db:"total_orders"`
	TotalSpent    float64    `db:"total_spent"`
	Notes         *string    `db:"notes"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// customerRef is the name+phone projection used when resolving order and
// conversation references.
type customerRef struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
}

type orderRow struct {
	ID               string     `db:"id"`
	TenantID         string     `db:"tenant_id"`
	CustomerID       string     `db:"customer_id"`
	OrderNumber      string     `db:"order_number"`
	Status           string     `db:"status"`
	Subtotal         float64    `db:"subtotal"`
	Tax              *float64   `db:"tax"`
	Discount         *float64   `db:"discount"`
	Total            float64    `db:"total"`
	Source           *string    `db:"source"`
	DeliveryAddress  *string    `db:"delivery_address"`
	DeliveryZone     *string    `db:"delivery_zone"`
	DeliveryDate     *time.Time `db:"delivery_date"`
	DeliveryTimeSlot *string    `db:"delivery_time_slot"`
	Notes            *string    `db:"notes"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	ConfirmedAt      *time.Time `db:"confirmed_at"`
	DeliveredAt      *time.Time `db:"delivered_at"`
}

type orderItemRow struct {
	ID          string  `db:"id"`
	OrderID     string  `db:"order_id"`
	ProductID   string  `db:"product_id"`
	ProductName string  `db:"product_name"`
	ProductSKU  string  `db:"product_sku"`
	Quantity    int     `db:"quantity"`
	UnitPrice   float64 `db:"unit_price"`
	Subtotal    float64 `db:"subtotal"`
	Notes       *string `db:"notes"`
}

type conversationRow struct {
	ID            string     `db:"id"`
	TenantID      string     `db:"tenant_id"`
	CustomerID    *string    `db:"customer_id"`
	Phone         string     `db:"phone"`
	Status        string     `db:"status"`
	LastMessageAt *time.Time `db:"last_message_at"`
	OrderID       *string    `db:"order_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type messageRow struct {
	ID             string     `db:"id"`
	ConversationID string     `db:"conversation_id"`
	Content        *string    `db:"content"`
	MessageType    *string    `db:"message_type"`
	Direction      string     `db:"direction"`
	Status         *string    `db:"status"`
	SentAt         *time.Time `db:"sent_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

// The remote customer_type enum spells segments differently than the
// domain. Both directions must stay total bijections over the four known
// values or segments silently corrupt on round-trip.

var segmentFromRemoteMap = map[string]models.CustomerSegment{
	"vip":      models.SegmentFrequent,
	"regular":  models.SegmentOccasional,
	"new":      models.SegmentNew,
	"inactive": models.SegmentInactive,
}

var segmentToRemoteMap = map[models.CustomerSegment]string{
	models.SegmentFrequent:   "vip",
	models.SegmentOccasional: "regular",
	models.SegmentNew:        "new",
	models.SegmentInactive:   "inactive",
}

func segmentFromRemote(customerType string) models.CustomerSegment {
	if seg, ok := segmentFromRemoteMap[customerType]; ok {
		return seg
	}
	return models.SegmentNew
}

func segmentToRemote(seg models.CustomerSegment) string {
	if ct, ok := segmentToRemoteMap[seg]; ok {
		return ct
	}
	return "new"
}

// roleFromRemote collapses the remote super_admin role onto admin; the
// domain role enum is deliberately smaller than the remote one.
func roleFromRemote(role string) models.UserRole {
	if role == "super_admin" {
		return models.RoleAdmin
	}
	return models.UserRole(role)
}

func strOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

func floatOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func timeOr(p *time.Time, def time.Time) time.Time {
	if p != nil {
		return *p
	}
	return def
}

// defaultSettings is the baseline every tenant starts from; keys present
// in the stored settings blob override it field by field.
func defaultSettings(name string) models.TenantSettings {
	return models.TenantSettings{
		BusinessHoursStart:        "08:00",
		BusinessHoursEnd:          "20:00",
		BusinessDays:              []int{1, 2, 3, 4, 5, 6},
		WelcomeMessage:            "Bienvenido a " + name,
		OrderConfirmationTemplate: "Tu pedido {orderNumber} ha sido confirmado.",
		UpsellEnabled:             true,
		AutoConfirmOrders:         false,
		NotificationsEnabled:      true,
	}
}

func toTenant(row tenantRow) models.Tenant {
	name := strOr(row.BusinessName, row.Name)

	settings := defaultSettings(name)
	if len(row.Settings) > 0 {
		// Unmarshal over the defaults: keys absent from the blob keep
		// their default value.
		_ = json.Unmarshal(row.Settings, &settings)
	}

	return models.Tenant{
		ID:             row.ID,
		Name:           name,
		WhatsAppNumber: strOr(row.WhatsAppNumber, ""),
		BusinessType:   strOr(row.BusinessType, ""),
		Address:        strOr(row.Address, ""),
		City:           strOr(row.City, ""),
		Country:        strOr(row.Country, "Colombia"),
		Timezone:       strOr(row.Timezone, "America/Bogota"),
		Currency:       strOr(row.Currency, "COP"),
		IsActive:       row.IsActive,
		Settings:       settings,
		CreatedAt:      row.CreatedAt,
	}
}

func toUser(row userRow) models.User {
	return models.User{
		ID:        row.ID,
		TenantID:  row.TenantID,
		Email:     row.Email,
		Name:      row.FullName,
		Role:      roleFromRemote(row.Role),
		CreatedAt: row.CreatedAt,
		LastLogin: row.LastLoginAt,
	}
}

func toProduct(row productRow, categoryName string) models.Product {
	tags := []string(row.Tags)
	if tags == nil {
		tags = []string{}
	}
	return models.Product{
		ID:          row.ID,
		TenantID:    row.TenantID,
		Name:        row.Name,
		SKU:         row.SKU,
		Description: strOr(row.Description, ""),
		Price:       row.Price,
		CostPrice:   row.Cost,
		Stock:       intOr(row.Stock, 0),
		MinStock:    intOr(row.MinStock, 0),
		Category:    categoryName,
		Unit:        strOr(row.Unit, "unidad"),
		IsActive:    row.IsActive,
		Tags:        tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toCustomer(row customerRow) models.Customer {
	avg := 0.0
	if row.TotalOrders > 0 {
		avg = row.TotalSpent / float64(row.TotalOrders)
	}
	return models.Customer{
		ID:                row.ID,
		TenantID:          row.TenantID,
		Name:              row.Name,
		BusinessName:      strOr(row.BusinessName, ""),
		Phone:             row.Phone,
		Email:             strOr(row.Email, ""),
		Address:           strOr(row.Address, ""),
		City:              strOr(row.City, ""),
		Zone:              strOr(row.Zone, ""),
		Segment:           segmentFromRemote(row.CustomerType),
		LastOrderDate:     row.LastOrderDate,
		TotalOrders:       row.TotalOrders,
		TotalSpent:        row.TotalSpent,
		AverageOrderValue: avg,
		Notes:             strOr(row.Notes, ""),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

func toOrderItem(row orderItemRow) models.OrderItem {
	return models.OrderItem{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		ProductSKU:  row.ProductSKU,
		Quantity:    row.Quantity,
		UnitPrice:   row.UnitPrice,
		Subtotal:    row.Subtotal,
		Notes:       strOr(row.Notes, ""),
	}
}

func toOrder(row orderRow, items []models.OrderItem, customerName, customerPhone string) models.Order {
	source := strOr(row.Source, string(models.SourceWhatsApp))
	return models.Order{
		ID:              row.ID,
		TenantID:        row.TenantID,
		CustomerID:      row.CustomerID,
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		OrderNumber:     row.OrderNumber,
		Items:           items,
		Status:          models.OrderStatus(row.Status),
		Subtotal:        row.Subtotal,
		Tax:             floatOr(row.Tax, 0),
		Discount:        floatOr(row.Discount, 0),
		Total:           row.Total,
		Source:          models.OrderSource(source),
		DeliveryAddress: strOr(row.DeliveryAddress, ""),
		DeliveryZone:    strOr(row.DeliveryZone, ""),
		DeliveryDate:    timeOr(row.DeliveryDate, row.CreatedAt),
		DeliveryTime:    strOr(row.DeliveryTimeSlot, ""),
		Notes:           strOr(row.Notes, ""),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		ConfirmedAt:     row.ConfirmedAt,
		DeliveredAt:     row.DeliveredAt,
	}
}

func toConversation(row conversationRow, customerName, customerPhone string) models.Conversation {
	status := models.ConversationClosed
	if row.Status == string(models.ConversationActive) {
		status = models.ConversationActive
	}
	return models.Conversation{
		ID:            row.ID,
		TenantID:      row.TenantID,
		CustomerID:    strOr(row.CustomerID, ""),
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Status:        status,
		LastMessageAt: timeOr(row.LastMessageAt, row.UpdatedAt),
		CreatedAt:     row.CreatedAt,
		OrderID:       strOr(row.OrderID, ""),
	}
}

func toChatMessage(row messageRow) models.ChatMessage {
	sender := models.SenderBot
	if row.Direction == "inbound" {
		sender = models.SenderCustomer
	}
	return models.ChatMessage{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		Content:        strOr(row.Content, ""),
		Type:           strOr(row.MessageType, "text"),
		Sender:         sender,
		Timestamp:      timeOr(row.SentAt, row.CreatedAt),
		Status:         models.MessageStatus(strOr(row.Status, string(models.MessageSent))),
	}
}
