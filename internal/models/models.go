package models

import "time"

// CustomerSegment classifies a customer for analytics and marketing.
type CustomerSegment string

const (
	SegmentFrequent   CustomerSegment = "frequent"
	SegmentOccasional CustomerSegment = "occasional"
	SegmentNew        CustomerSegment = "new"
	SegmentInactive   CustomerSegment = "inactive"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderSource is the channel an order came in through.
type OrderSource string

const (
	SourceWhatsApp  OrderSource = "whatsapp"
	SourceManual    OrderSource = "manual"
	SourceRecurring OrderSource = "recurring"
)

// ConversationStatus tracks where a chat stands in the ordering flow.
type ConversationStatus string

const (
	ConversationActive         ConversationStatus = "active"
	ConversationPendingOrder   ConversationStatus = "pending_order"
	ConversationOrderConfirmed ConversationStatus = "order_confirmed"
	ConversationClosed         ConversationStatus = "closed"
)

// MessageSender identifies who wrote a chat message.
type MessageSender string

const (
	SenderCustomer MessageSender = "customer"
	SenderBot      MessageSender = "bot"
	SenderAgent    MessageSender = "agent"
)

// MessageStatus is the delivery state of a chat message.
type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// UserRole is the dashboard permission level. The remote schema knows an
// extra super_admin role which collapses to admin on read.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
	RoleViewer   UserRole = "viewer"
)

// TenantSettings is the per-tenant behaviour configuration stored as a
// JSON blob alongside the tenant row.
type TenantSettings struct {
	BusinessHoursStart        string `json:"businessHoursStart"`
	BusinessHoursEnd          string `json:"businessHoursEnd"`
	BusinessDays              []int  `json:"businessDays"`
	WelcomeMessage            string `json:"welcomeMessage"`
	OrderConfirmationTemplate string `json:"orderConfirmationTemplate"`
	UpsellEnabled             bool   `json:"upsellEnabled"`
	AutoConfirmOrders         bool   `json:"autoConfirmOrders"`
	NotificationsEnabled      bool   `json:"notificationsEnabled"`
}

// Tenant is an isolated wholesaler account, the unit of data partitioning.
type Tenant struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	WhatsAppNumber string         `json:"whatsappNumber"`
	BusinessType   string         `json:"businessType"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Country        string         `json:"country"`
	Timezone       string         `json:"timezone"`
	Currency       string         `json:"currency"`
	IsActive       bool           `json:"isActive"`
	Settings       TenantSettings `json:"settings"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// User is a dashboard login belonging to one tenant.
type User struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenantId"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      UserRole   `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Product is a catalog entry. Category is the resolved category name, not
// the remote foreign key.
type Product struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CostPrice   *float64  `json:"costPrice,omitempty"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	IsActive    bool      `json:"isActive"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Customer is a buyer reached through the conversational channel.
// TotalOrders and TotalSpent come from the remote store; AverageOrderValue
// is recomputed on every read and never stored as ground truth.
type Customer struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenantId"`
	Name              string          `json:"name"`
	BusinessName      string          `json:"businessName,omitempty"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email,omitempty"`
	Address           string          `json:"address"`
	City              string          `json:"city"`
	Zone              string          `json:"zone"`
	Segment           CustomerSegment `json:"segment"`
	LastOrderDate     *time.Time      `json:"lastOrderDate,omitempty"`
	TotalOrders       int             `json:"totalOrders"`
	TotalSpent        float64         `json:"totalSpent"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// OrderItem is one line of an order with the product name, SKU and price
// snapshotted at order time. Subtotal = Quantity * UnitPrice.
type OrderItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	ProductSKU  string  `json:"productSku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
	Notes       string  `json:"notes,omitempty"`
}

// Order is a customer order. CustomerName/CustomerPhone are snapshotted at
// read time and are not updated if the customer record changes later.
// Total = Subtotal - Discount + Tax; discount and tax are absolute amounts.
type Order struct {
	ID              string      `json:"id"`
	TenantID        string      `json:"tenantId"`
	CustomerID      string      `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	OrderNumber     string      `json:"orderNumber"`
	Items           []OrderItem `json:"items"`
	Status          OrderStatus `json:"status"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	Discount        float64     `json:"discount"`
	Total           float64     `json:"total"`
	Source          OrderSource `json:"source"`
	DeliveryAddress string      `json:"deliveryAddress"`
	DeliveryZone    string      `json:"deliveryZone"`
	DeliveryDate    time.Time   `json:"deliveryDate"`
	DeliveryTime    string      `json:"deliveryTime"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	ConfirmedAt     *time.Time  `json:"confirmedAt,omitempty"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty"`
}

// ChatMessage is one message inside a WhatsApp conversation.
type ChatMessage struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	Content        string        `json:"content"`
	Type           string        `json:"type"`
	Sender         MessageSender `json:"sender"`
	Timestamp      time.Time     `json:"timestamp"`
	Status         MessageStatus `json:"status"`
}

// Conversation is a WhatsApp thread with one customer.
type Conversation struct {
	ID            string             `json:"id"`
	TenantID      string             `json:"tenantId"`
	CustomerID    string             `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Status        ConversationStatus `json:"status"`
	LastMessageAt time.Time          `json:"lastMessageAt"`
	CreatedAt     time.Time          `json:"createdAt"`
	OrderID       string             `json:"orderId,omitempty"`
}

// ProductInput carries the fields a caller may supply when creating a
// product. Zero values fall back to gateway defaults.
type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	CostPrice   *float64 `json:"costPrice"`
	Stock       int      `json:"stock"`
	MinStock    int      `json:"minStock"`
	Category    string   `json:"category"`
	Unit        string   `json:"unit"`
	IsActive    *bool    `json:"isActive"`
	Tags        []string `json:"tags"`
}

// ProductUpdate is a sparse patch: nil means "leave the field untouched".
type ProductUpdate struct {
	Name        *string   `json:"name"`
	SKU         *string   `json:"sku"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	MinStock    *int      `json:"minStock"`
	Unit        *string   `json:"unit"`
	IsActive    *bool     `json:"isActive"`
	Tags        *[]string `json:"tags"`
}

// CustomerInput carries the fields a caller may supply when creating a
// customer. Aggregate fields start at zero.
type CustomerInput struct {
	Name         string          `json:"name" binding:"required"`
	BusinessName string          `json:"businessName"`
	Phone        string          `json:"phone" binding:"required"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Zone         string          `json:"zone"`
	Segment      CustomerSegment `json:"segment"`
	Notes        string          `json:"notes"`
}

// CustomerUpdate is a sparse patch: nil means "leave the field untouched".
type CustomerUpdate struct {
	Name         *string          `json:"name"`
	BusinessName *string          `json:"businessName"`
	Phone        *string          `json:"phone"`
	Email        *string          `json:"email"`
	Address      *string          `json:"address"`
	City         *string          `json:"city"`
	Zone         *string          `json:"zone"`
	Segment      *CustomerSegment `json:"segment"`
	Notes        *string          `json:"notes"`
}

// TopProduct is a dashboard ranking entry, keyed by product id.
type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// TopCustomer is a dashboard ranking entry.
type TopCustomer struct {
	Name   string  `json:"name"`
	Orders int     `json:"orders"`
	Spent  float64 `json:"spent"`
}

// DayPoint is one point of the 7-day sales series.
type DayPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// CategorySales is the revenue attributed to one product category.
type CategorySales struct {
	Category string  `json:"category"`
	Sales    float64 `json:"sales"`
}

// StatusCount is a histogram bucket over order statuses.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

// SourceCount is a histogram bucket over order sources.
type SourceCount struct {
	Source OrderSource `json:"source"`
	Count  int         `json:"count"`
}

// DashboardStats is the derived analytics snapshot for one tenant. It is
// never persisted; it is recomputed from orders, customers and products.
type DashboardStats struct {
	TotalSales        float64         `json:"totalSales"`
	TotalOrders       int             `json:"totalOrders"`
	ActiveCustomers   int             `json:"activeCustomers"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	OrdersToday       int             `json:"ordersToday"`
	SalesToday        float64         `json:"salesToday"`
	PendingOrders     int             `json:"pendingOrders"`
	TopProducts       []TopProduct    `json:"topProducts"`
	TopCustomers      []TopCustomer   `json:"topCustomers"`
	SalesByDay        []DayPoint      `json:"salesByDay"`
	SalesByCategory   []CategorySales `json:"salesByCategory"`
	OrdersByStatus    []StatusCount   `json:"ordersByStatus"`
	OrdersBySource    []SourceCount   `json:"ordersBySource"`
}
