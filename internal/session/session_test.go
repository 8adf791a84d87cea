package session

import (
	"context"
	"errors"
	"testing"

	"wholesale-dashboard/internal/cache"
	"wholesale-dashboard/internal/i18n"
	"wholesale-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenantSource struct {
	tenants []models.Tenant
}

func (f *fakeTenantSource) FetchTenants(ctx context.Context) ([]models.Tenant, error) {
	return f.tenants, nil
}

type fakeUserSource struct {
	users []models.User
	err   error
}

func (f *fakeUserSource) FetchUsers(ctx context.Context, tenantID string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

type memPersister struct {
	data []byte
}

func (p *memPersister) SaveSession(ctx context.Context, data []byte) error {
	p.data = data
	return nil
}

func (p *memPersister) LoadSession(ctx context.Context) ([]byte, error) {
	return p.data, nil
}

func (p *memPersister) ClearSession(ctx context.Context) error {
	p.data = nil
	return nil
}

func newTestManager(users *fakeUserSource, persister Persister) *Manager {
	tenants := cache.NewTenantStore(&fakeTenantSource{tenants: []models.Tenant{
		{ID: "t1", Name: "Distribuidora Uno"},
	}})
	return NewManager(tenants, users, persister)
}

func TestLoginKnownUser(t *testing.T) {
	users := &fakeUserSource{users: []models.User{
		{ID: "u1", TenantID: "t1", Email: "ana@uno.co", Name: "Ana", Role: models.RoleOperator},
	}}
	m := newTestManager(users, nil)

	ok := m.Login(context.Background(), "t1", "ana@uno.co")

	require.True(t, ok)
	snap := m.Current()
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.User)
	assert.Equal(t, "u1", snap.User.ID)
	assert.Equal(t, models.RoleOperator, snap.User.Role)
	assert.Equal(t, "t1", m.CurrentTenantID())
}

func TestLoginUnknownUserBecomesDemoAdmin(t *testing.T) {
	m := newTestManager(&fakeUserSource{}, nil)

	ok := m.Login(context.Background(), "t1", "visitante@demo.co")

	require.True(t, ok)
	user := m.Current().User
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "visitante", user.Name)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "t1", user.TenantID)
}

func TestLoginFetchErrorStillSucceeds(t *testing.T) {
	users := &fakeUserSource{err: errors.New("remote store unavailable")}
	m := newTestManager(users, nil)

	ok := m.Login(context.Background(), "t1", "ana@uno.co")

	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, m.Current().User.Role)
}

func TestLoginUnknownTenantFails(t *testing.T) {
	m := newTestManager(&fakeUserSource{}, nil)

	ok := m.Login(context.Background(), "missing", "ana@uno.co")

	assert.False(t, ok)
	assert.False(t, m.Current().Authenticated)
	assert.Empty(t, m.CurrentTenantID())
}

func TestLogoutClearsState(t *testing.T) {
	persister := &memPersister{}
	m := newTestManager(&fakeUserSource{}, persister)
	ctx := context.Background()

	require.True(t, m.Login(ctx, "t1", "ana@uno.co"))
	assert.NotEmpty(t, persister.data)

	m.Logout(ctx)

	snap := m.Current()
	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.Tenant)
	assert.Nil(t, snap.User)
	assert.Empty(t, persister.data)
}

func TestRestoreRoundTrip(t *testing.T) {
	persister := &memPersister{}
	first := newTestManager(&fakeUserSource{}, persister)
	ctx := context.Background()
	require.True(t, first.Login(ctx, "t1", "ana@uno.co"))

	second := newTestManager(&fakeUserSource{}, persister)
	second.Restore(ctx)

	snap := second.Current()
	assert.True(t, snap.Authenticated)
	require.NotNil(t, snap.Tenant)
	assert.Equal(t, "t1", snap.Tenant.ID)
}

func TestRestoreWithNothingPersisted(t *testing.T) {
	m := newTestManager(&fakeUserSource{}, &memPersister{})

	m.Restore(context.Background())

	assert.False(t, m.Current().Authenticated)
}

func TestLanguageSurvivesLogout(t *testing.T) {
	m := newTestManager(&fakeUserSource{}, nil)
	ctx := context.Background()

	assert.Equal(t, i18n.Spanish, m.Language())

	m.SetLanguage(ctx, i18n.English)
	require.True(t, m.Login(ctx, "t1", "ana@uno.co"))
	m.Logout(ctx)

	assert.Equal(t, i18n.English, m.Language())
	assert.Equal(t, i18n.English, m.Current().Language)
}

func TestLocalPart(t *testing.T) {
	assert.Equal(t, "ana", localPart("ana@uno.co"))
	assert.Equal(t, "sinarroba", localPart("sinarroba"))
	assert.Equal(t, "@raro", localPart("@raro"))
}
