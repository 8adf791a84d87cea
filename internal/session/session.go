// Package session holds the authenticated tenant and user. Its state
// change on login is what makes the entity caches stale for the new
// tenant; consumers are responsible for calling Load with the new tenant
// id afterwards, nothing is auto-wired.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"wholesale-dashboard/internal/cache"
	"wholesale-dashboard/internal/i18n"
	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserSource resolves the dashboard users of a tenant.
type UserSource interface {
	FetchUsers(ctx context.Context, tenantID string) ([]models.User, error)
}

// Persister stores the session snapshot across restarts. May be nil.
type Persister interface {
	SaveSession(ctx context.Context, data []byte) error
	LoadSession(ctx context.Context) ([]byte, error)
	ClearSession(ctx context.Context) error
}

// Snapshot is the externally visible session state.
type Snapshot struct {
	Tenant        *models.Tenant `json:"tenant"`
	User          *models.User   `json:"user"`
	Authenticated bool           `json:"authenticated"`
	Language      i18n.Language  `json:"language"`
}

// Manager is the app-level session store.
type Manager struct {
	mu            sync.RWMutex
	tenant        *models.Tenant
	user          *models.User
	authenticated bool
	language      i18n.Language

	tenants   *cache.TenantStore
	users     UserSource
	persister Persister
	logger    *zap.Logger
}

func NewManager(tenants *cache.TenantStore, users UserSource, persister Persister) *Manager {
	return &Manager{
		language:  i18n.Spanish,
		tenants:   tenants,
		users:     users,
		persister: persister,
		logger:    util.GetLogger(),
	}
}

// SetLanguage switches the session's display language; it survives logins
// and logouts and is persisted with the rest of the snapshot.
func (m *Manager) SetLanguage(ctx context.Context, lang i18n.Language) {
	m.mu.Lock()
	m.language = lang
	m.mu.Unlock()
	m.persist(ctx)
}

// Language returns the session's display language.
func (m *Manager) Language() i18n.Language {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.language
}

// Login selects the tenant and resolves the user by email. When no user
// matches, a demo admin is fabricated from the email's local part instead
// of failing; this permissiveness is the intended demo behaviour, not a
// security mechanism. Returns false only when the tenant is unknown.
func (m *Manager) Login(ctx context.Context, tenantID, email string) bool {
	m.tenants.Load(ctx)
	tenant := m.tenants.ByID(tenantID)
	if tenant == nil {
		util.LoginsTotal.WithLabelValues("unknown_tenant").Inc()
		return false
	}

	user := m.findUser(ctx, tenantID, email)
	if user == nil {
		user = &models.User{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			Email:     email,
			Name:      localPart(email),
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		}
		util.LoginsTotal.WithLabelValues("demo_user").Inc()
	} else {
		util.LoginsTotal.WithLabelValues("success").Inc()
	}

	m.mu.Lock()
	m.tenant = tenant
	m.user = user
	m.authenticated = true
	m.mu.Unlock()

	m.persist(ctx)
	m.logger.Info("Logged in",
		zap.String("tenant_id", tenant.ID),
		zap.String("user", user.Email))
	return true
}

func (m *Manager) findUser(ctx context.Context, tenantID, email string) *models.User {
	users, err := m.users.FetchUsers(ctx, tenantID)
	if err != nil {
		m.logger.Warn("Failed to fetch users during login",
			zap.String("tenant_id", tenantID), zap.Error(err))
		return nil
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}

// Logout clears the tenant, user and authenticated flag.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.tenant = nil
	m.user = nil
	m.authenticated = false
	m.mu.Unlock()

	if m.persister != nil {
		if err := m.persister.ClearSession(ctx); err != nil {
			m.logger.Warn("Failed to clear persisted session", zap.Error(err))
		}
	}
}

// Current returns the session snapshot.
func (m *Manager) Current() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		Tenant:        m.tenant,
		User:          m.user,
		Authenticated: m.authenticated,
		Language:      m.language,
	}
}

// CurrentTenantID returns the selected tenant id, or "".
func (m *Manager) CurrentTenantID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tenant == nil {
		return ""
	}
	return m.tenant.ID
}

// Restore loads a persisted session snapshot, if any.
func (m *Manager) Restore(ctx context.Context) {
	if m.persister == nil {
		return
	}
	data, err := m.persister.LoadSession(ctx)
	if err != nil || len(data) == 0 {
		return
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		m.logger.Warn("Failed to decode persisted session", zap.Error(err))
		return
	}

	m.mu.Lock()
	m.tenant = snap.Tenant
	m.user = snap.User
	m.authenticated = snap.Authenticated
	if snap.Language != "" {
		m.language = snap.Language
	}
	m.mu.Unlock()
}

func (m *Manager) persist(ctx context.Context) {
	if m.persister == nil {
		return
	}
	data, err := json.Marshal(m.Current())
	if err != nil {
		return
	}
	if err := m.persister.SaveSession(ctx, data); err != nil {
		m.logger.Warn("Failed to persist session", zap.Error(err))
	}
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
