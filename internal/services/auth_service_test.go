package services

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsd/internal/models"
	"vsd/internal/storage"
	"vsd/internal/testutil"
)

// mockDevices stands in for one physical device; seen flips when the
// fingerprint record is first read, mirroring the real service.
type mockDevices struct {
	id   string
	seen bool
}

func (m *mockDevices) GetOrCreateDeviceID() string { return m.id }

func (m *mockDevices) GetFingerprint() models.DeviceFingerprint {
	m.seen = true
	return models.DeviceFingerprint{ID: m.id}
}

func (m *mockDevices) IsNewDevice() bool { return !m.seen }

func newTestAuthService(store storage.KVStore, devices DeviceServiceInterface) *AuthService {
	return NewAuthService(store, devices, &testutil.MockLogger{}).(*AuthService)
}

func TestAuthService_FirstBootstrapCreatesAdmin(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1"})

	session := as.Bootstrap()
	require.True(t, session.Authenticated)
	require.NotNil(t, session.User)

	assert.Equal(t, "dev-1", session.User.DeviceID)
	assert.NotEmpty(t, session.User.Username)
	assert.True(t, as.IsAdmin(session.User.ID))

	registry := as.Registry()
	require.Len(t, registry, 1)
	assert.Equal(t, session.User.ID, registry[0].ID)
	assert.True(t, registry[0].IsAdmin)
}

func TestAuthService_SecondDeviceIsNotAdmin(t *testing.T) {
	store := storage.NewMemoryStore()

	first := newTestAuthService(store, &mockDevices{id: "dev-1"}).Bootstrap()
	second := newTestAuthService(store, &mockDevices{id: "dev-2"}).Bootstrap()

	require.True(t, second.Authenticated)
	assert.NotEqual(t, first.User.ID, second.User.ID)

	as := newTestAuthService(store, &mockDevices{id: "dev-2", seen: true})
	assert.True(t, as.IsAdmin(first.User.ID))
	assert.False(t, as.IsAdmin(second.User.ID))
}

func TestAuthService_ReturningUserKeepsIdentity(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1"})

	first := as.Bootstrap()
	time.Sleep(2 * time.Millisecond)
	second := as.Bootstrap()

	require.True(t, second.Authenticated)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, first.User.Username, second.User.Username)
	assert.GreaterOrEqual(t, second.User.LastLogin, first.User.LastLogin)

	// The registry does not grow on a returning bootstrap.
	assert.Len(t, as.Registry(), 1)
}

func TestAuthService_LogoutThenBootstrapStaysUnauthenticated(t *testing.T) {
	store := storage.NewMemoryStore()
	devices := &mockDevices{id: "dev-1"}
	as := newTestAuthService(store, devices)

	created := as.Bootstrap()
	require.True(t, created.Authenticated)

	as.Logout()
	assert.Nil(t, as.Current())

	// The device is known but carries no account: no silent re-creation.
	session := as.Bootstrap()
	assert.False(t, session.Authenticated)
	assert.Nil(t, session.User)

	// Device identity and registry history survive the logout.
	assert.Len(t, as.Registry(), 1)
	assert.True(t, as.IsAdmin(created.User.ID))
}

func TestAuthService_LoginBindsAccountToDevice(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1", seen: true})

	session := as.Login(models.UserAccount{ID: "uid_x", Username: "alice"})
	require.True(t, session.Authenticated)
	assert.Equal(t, "dev-1", session.User.DeviceID)

	// The account is now the device's bootstrap identity.
	next := as.Bootstrap()
	require.True(t, next.Authenticated)
	assert.Equal(t, "uid_x", next.User.ID)
	assert.Equal(t, "alice", next.User.Username)
}

func TestAuthService_LoginActsAsProfileEdit(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1"})

	created := as.Bootstrap()
	account := *created.User
	account.Username = "renamed"
	account.Email = "renamed@example.com"

	as.Login(account)

	next := as.Bootstrap()
	assert.Equal(t, created.User.ID, next.User.ID)
	assert.Equal(t, "renamed", next.User.Username)
	assert.Equal(t, "renamed@example.com", next.User.Email)
}

func TestAuthService_MalformedAccountFallsThrough(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Set("user_dev-1", "{broken")

	logger := &testutil.MockLogger{}
	as := NewAuthService(store, &mockDevices{id: "dev-1", seen: true}, logger).(*AuthService)

	session := as.Bootstrap()
	assert.False(t, session.Authenticated)
	assert.True(t, logger.HasLevel("warn"))
}

func TestAuthService_CurrentReflectsLastSession(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1"})

	assert.Nil(t, as.Current())

	session := as.Bootstrap()
	assert.Same(t, session, as.Current())
}

func TestAuthService_IsAdminEmptyID(t *testing.T) {
	store := storage.NewMemoryStore()
	as := newTestAuthService(store, &mockDevices{id: "dev-1"})

	assert.False(t, as.IsAdmin(""))
	as.Bootstrap()
	assert.False(t, as.IsAdmin(""))
}

func TestAuthService_SameMillisecondBootstrapsMintDistinctIDs(t *testing.T) {
	store := storage.NewMemoryStore()
	frozen := func() time.Time { return time.UnixMilli(1756600000000) }

	first := newTestAuthService(store, &mockDevices{id: "dev-1"})
	first.now = frozen
	second := newTestAuthService(store, &mockDevices{id: "dev-2"})
	second.now = frozen

	a := first.Bootstrap()
	b := second.Bootstrap()
	require.NotNil(t, a.User)
	require.NotNil(t, b.User)

	// Identical clock readings must not collapse two devices into one
	// identity: that would let the second account pass the admin check.
	assert.NotEqual(t, a.User.ID, b.User.ID)
	assert.NotEqual(t, a.User.Username, b.User.Username)
	assert.True(t, first.IsAdmin(a.User.ID))
	assert.False(t, first.IsAdmin(b.User.ID))
}

func TestAuthService_ConcurrentFirstBootstrapSingleAdmin(t *testing.T) {
	store := storage.NewMemoryStore()

	const racers = 20
	sessions := make([]*models.Session, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			as := newTestAuthService(store, &mockDevices{id: "dev-" + strconv.Itoa(n)})
			sessions[n] = as.Bootstrap()
		}(i)
	}
	wg.Wait()

	// The admin pointer is claimed exactly once no matter the interleaving.
	checker := newTestAuthService(store, &mockDevices{id: "dev-x", seen: true})
	admins := 0
	for _, session := range sessions {
		require.NotNil(t, session.User)
		if checker.IsAdmin(session.User.ID) {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}
