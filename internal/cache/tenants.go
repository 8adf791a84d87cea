package cache

import (
	"context"
	"sync"

	"wholesale-dashboard/internal/models"
	"wholesale-dashboard/internal/util"

	"go.uber.org/zap"
)

// TenantStore caches the active tenant list. It is the only store without
// tenant scoping, since it IS the tenant list; the staleness rule
// degenerates to "loaded once".
type TenantStore struct {
	mu      sync.RWMutex
	tenants []models.Tenant
	loading bool
	loaded  bool

	source TenantSource
	logger *zap.Logger
}

func NewTenantStore(source TenantSource) *TenantStore {
	return &TenantStore{
		source: source,
		logger: util.GetLogger(),
	}
}

// Load fetches the tenant list unless it is already cached. A failed
// fetch keeps the previous list.
func (s *TenantStore) Load(ctx context.Context) {
	s.mu.Lock()
	if s.loaded && len(s.tenants) > 0 {
		s.mu.Unlock()
		util.CacheHitsTotal.WithLabelValues("tenants").Inc()
		return
	}
	s.loading = true
	s.mu.Unlock()

	tenants, err := s.source.FetchTenants(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		util.CacheLoadsTotal.WithLabelValues("tenants", "error").Inc()
		s.logger.Error("Failed to load tenants", zap.Error(err))
		return
	}

	s.tenants = tenants
	s.loaded = true
	util.CacheLoadsTotal.WithLabelValues("tenants", "success").Inc()
}

// All returns the cached tenant list.
func (s *TenantStore) All() []models.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Tenant, len(s.tenants))
	copy(result, s.tenants)
	return result
}

// ByID returns the cached tenant with the given id, or nil.
func (s *TenantStore) ByID(id string) *models.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tenants {
		if s.tenants[i].ID == id {
			tenant := s.tenants[i]
			return &tenant
		}
	}
	return nil
}

func (s *TenantStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *TenantStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	util.CacheInvalidationsTotal.WithLabelValues("tenants").Inc()
}
