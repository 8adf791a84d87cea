package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"wholesale-dashboard/internal/cache"
	"wholesale-dashboard/internal/i18n"
	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/redisclient"
	"wholesale-dashboard/internal/session"
	"wholesale-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsSource produces a fresh dashboard snapshot for one tenant.
type StatsSource interface {
	GenerateDashboardStats(ctx context.Context, tenantID string) (*models.DashboardStats, error)
}

// Handler contains HTTP handlers
type Handler struct {
	stores   *cache.Registry
	sessions *session.Manager
	stats    StatsSource
	redis    *redisclient.Client
	statsTTL time.Duration
}

// NewHandler creates a new HTTP handler. redis may be nil; the stats
// endpoint then recomputes on every request.
func NewHandler(stores *cache.Registry, sessions *session.Manager, stats StatsSource, redis *redisclient.Client, statsTTL time.Duration) *Handler {
	return &Handler{
		stores:   stores,
		sessions: sessions,
		stats:    stats,
		redis:    redis,
		statsTTL: statsTTL,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/login", h.login)
		v1.POST("/logout", h.logout)
		v1.GET("/session", h.currentSession)
		v1.PUT("/session/language", h.setLanguage)

		v1.GET("/tenants", h.listTenants)

		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.GET("/customers", h.listCustomers)
		v1.POST("/customers", h.createCustomer)
		v1.PATCH("/customers/:id", h.updateCustomer)
		v1.DELETE("/customers/:id", h.deleteCustomer)

		v1.GET("/orders", h.listOrders)
		v1.PATCH("/orders/:id/status", h.updateOrderStatus)
		v1.DELETE("/orders/:id", h.deleteOrder)

		v1.GET("/conversations", h.listConversations)
		v1.GET("/conversations/:id/messages", h.listMessages)
		v1.POST("/conversations/:id/messages", h.addMessage)

		v1.GET("/dashboard/stats", h.dashboardStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

type loginRequest struct {
	TenantID string `json:"tenantId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// login selects a tenant and user. Unknown users become demo admins; only
// an unknown tenant is rejected.
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if !h.sessions.Login(c.Request.Context(), req.TenantID, req.Email) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown tenant"})
		return
	}

	c.JSON(http.StatusOK, h.sessions.Current())
}

func (h *Handler) logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *Handler) currentSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessions.Current())
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

func (h *Handler) setLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.sessions.SetLanguage(c.Request.Context(), i18n.Parse(req.Language))
	c.JSON(http.StatusOK, h.sessions.Current())
}

func (h *Handler) listTenants(c *gin.Context) {
	h.stores.Tenants.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"tenants": h.stores.Tenants.All()})
}

// tenantID resolves the tenant scope of a request: explicit query param
// first, the session's tenant otherwise.
func (h *Handler) tenantID(c *gin.Context) string {
	if id := c.Query("tenant_id"); id != "" {
		return id
	}
	return h.sessions.CurrentTenantID()
}

func (h *Handler) listProducts(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	h.stores.Products.Load(c.Request.Context(), tenantID)
	c.JSON(http.StatusOK, gin.H{"products": h.stores.Products.ByTenant(tenantID)})
}

// createProduct accepts the write and reports the resulting cache state.
// Store mutations are fail-soft: a remote failure is logged by the store
// and the cache is simply unchanged.
func (h *Handler) createProduct(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.stores.Products.Create(c.Request.Context(), tenantID, input)
	c.JSON(http.StatusAccepted, gin.H{"products": h.stores.Products.ByTenant(tenantID)})
}

func (h *Handler) updateProduct(c *gin.Context) {
	var updates models.ProductUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.stores.Products.Update(c.Request.Context(), c.Param("id"), updates)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	h.stores.Products.Delete(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) listCustomers(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	h.stores.Customers.Load(c.Request.Context(), tenantID)
	c.JSON(http.StatusOK, gin.H{"customers": h.stores.Customers.ByTenant(tenantID)})
}

func (h *Handler) createCustomer(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.stores.Customers.Create(c.Request.Context(), tenantID, input)
	c.JSON(http.StatusAccepted, gin.H{"customers": h.stores.Customers.ByTenant(tenantID)})
}

func (h *Handler) updateCustomer(c *gin.Context) {
	var updates models.CustomerUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.stores.Customers.Update(c.Request.Context(), c.Param("id"), updates)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	h.stores.Customers.Delete(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) listOrders(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	h.stores.Orders.Load(c.Request.Context(), tenantID)
	c.JSON(http.StatusOK, gin.H{"orders": h.stores.Orders.ByTenant(tenantID)})
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.stores.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) deleteOrder(c *gin.Context) {
	h.stores.Orders.Delete(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) listConversations(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	h.stores.Conversations.Load(c.Request.Context(), tenantID)
	c.JSON(http.StatusOK, gin.H{"conversations": h.stores.Conversations.ByTenant(tenantID)})
}

func (h *Handler) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"messages": h.stores.Conversations.MessagesByConversation(c.Param("id")),
	})
}

type addMessageRequest struct {
	Content string               `json:"content" binding:"required"`
	Type    string               `json:"type"`
	Sender  models.MessageSender `json:"sender"`
}

// addMessage appends a simulated chat message; nothing is sent to the
// conversational channel.
func (h *Handler) addMessage(c *gin.Context) {
	var req addMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.Type == "" {
		req.Type = "text"
	}
	if req.Sender == "" {
		req.Sender = models.SenderAgent
	}

	message := h.stores.Conversations.AddMessage(c.Param("id"), req.Content, req.Type, req.Sender)
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// dashboardStats serves the tenant's analytics snapshot, from the Redis
// cache when a fresh one exists.
func (h *Handler) dashboardStats(c *gin.Context) {
	tenantID := h.tenantID(c)
	if tenantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No tenant selected"})
		return
	}

	ctx := c.Request.Context()
	if h.redis != nil {
		cached, err := h.redis.GetDashboardStats(ctx, tenantID)
		if err == nil && cached != nil {
			util.StatsCacheHitsTotal.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, cached)
			return
		}
		util.StatsCacheHitsTotal.WithLabelValues("miss").Inc()
	}

	stats, err := h.stats.GenerateDashboardStats(ctx, tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate dashboard stats",
			"details": err.Error(),
		})
		return
	}

	if h.redis != nil {
		_ = h.redis.SetDashboardStats(ctx, tenantID, stats, h.statsTTL)
	}
	c.JSON(http.StatusOK, stats)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
