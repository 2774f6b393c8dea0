package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/cocktail-service/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, timeout time.Duration) (*SessionStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := newSessionStore(timeout, time.Hour, zap.NewNop(), clock.Now)
	t.Cleanup(store.Close)
	return store, clock
}

func TestSessionStoreCreateAndValidate(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)

	id := store.Create(domain.StaffRoleBarkeeper)
	require.NotEmpty(t, id)

	sess, ok := store.Validate(id)
	require.True(t, ok)
	assert.Equal(t, domain.StaffRoleBarkeeper, sess.Role)
	assert.Equal(t, clock.Now(), sess.CreatedAt)
	assert.Equal(t, clock.Now(), sess.LastAccessAt)
}

func TestSessionStoreValidateRefreshesLastAccess(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)
	id := store.Create(domain.StaffRoleAdmin)

	var previous time.Time
	for i := 0; i < 3; i++ {
		clock.Advance(10 * time.Minute)
		sess, ok := store.Validate(id)
		require.True(t, ok)
		assert.True(t, sess.LastAccessAt.After(previous), "LastAccessAt must be monotonically refreshed")
		previous = sess.LastAccessAt
	}
	assert.Equal(t, clock.Now(), previous)
}

func TestSessionStoreLazyExpiry(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)
	id := store.Create(domain.StaffRoleAdmin)

	// Idle past the timeout with no sweep running in between.
	clock.Advance(time.Hour + time.Second)

	_, ok := store.Validate(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "expired entry must be removed by the validate path")
}

func TestSessionStoreRepeatedValidationExtendsLifetime(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)
	id := store.Create(domain.StaffRoleBarkeeper)

	for i := 0; i < 4; i++ {
		clock.Advance(45 * time.Minute)
		_, ok := store.Validate(id)
		require.True(t, ok, "session must stay alive while validated inside the idle window")
	}
}

func TestSessionStoreTerminate(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	id := store.Create(domain.StaffRoleAdmin)

	store.Terminate(id)
	_, ok := store.Validate(id)
	assert.False(t, ok)

	// Idempotent on unknown and already-removed ids.
	store.Terminate(id)
	store.Terminate("no-such-session")
	assert.Equal(t, 0, store.Len())
}

func TestSessionStoreSweepEvictsIdleSessions(t *testing.T) {
	store, clock := newTestStore(t, time.Hour)

	stale := store.Create(domain.StaffRoleAdmin)
	clock.Advance(30 * time.Minute)
	fresh := store.Create(domain.StaffRoleBarkeeper)

	clock.Advance(45 * time.Minute)
	store.sweep()

	assert.Equal(t, 1, store.Len())
	_, ok := store.Validate(stale)
	assert.False(t, ok)
	_, ok = store.Validate(fresh)
	assert.True(t, ok)
}

func TestSessionStoreConcurrentValidate(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	id := store.Create(domain.StaffRoleBarkeeper)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Validate(id)
		}()
	}
	wg.Wait()

	_, ok := store.Validate(id)
	assert.True(t, ok)
}
