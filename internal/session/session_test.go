package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/models"
)

type fakeStore struct {
	token        string
	tokenCleared bool
	tab          models.Tab
}

func (f *fakeStore) SaveToken(token string) error {
	f.token = token
	return nil
}

func (f *fakeStore) ClearToken() error {
	f.token = ""
	f.tokenCleared = true
	return nil
}

func (f *fakeStore) SaveActiveTab(tab models.Tab) error {
	f.tab = tab
	return nil
}

func TestController_StartsLoggedOut(t *testing.T) {
	c := NewController(&fakeStore{}, logging.Nop())

	assert.Equal(t, LoggedOut, c.State())
	assert.Empty(t, c.Token())
}

func TestController_LoggedInPersistsTokenAndLoads(t *testing.T) {
	st := &fakeStore{}
	c := NewController(st, logging.Nop())

	require.NoError(t, c.LoggedIn("tok-1"))

	assert.Equal(t, Loading, c.State())
	assert.Equal(t, "tok-1", c.Token())
	assert.Equal(t, "tok-1", st.token)
}

func TestController_RestoreSkipsEmptyToken(t *testing.T) {
	c := NewController(&fakeStore{}, logging.Nop())

	c.Restore("")
	assert.Equal(t, LoggedOut, c.State())

	c.Restore("tok-2")
	assert.Equal(t, Loading, c.State())
	assert.Equal(t, "tok-2", c.Token())
}

func TestController_LoadSettledOnlyFromLoading(t *testing.T) {
	c := NewController(&fakeStore{}, logging.Nop())

	// Settling while logged out must not fabricate a session.
	c.LoadSettled()
	assert.Equal(t, LoggedOut, c.State())

	c.Restore("tok")
	c.LoadSettled()
	assert.Equal(t, Ready, c.State())

	// Idempotent once ready.
	c.LoadSettled()
	assert.Equal(t, Ready, c.State())
}

func TestController_LogoutClearsTokenOnly(t *testing.T) {
	st := &fakeStore{}
	c := NewController(st, logging.Nop())
	require.NoError(t, c.LoggedIn("tok"))
	require.NoError(t, c.SwitchTab(models.TabMedia))
	c.LoadSettled()

	require.NoError(t, c.Logout())

	assert.Equal(t, LoggedOut, c.State())
	assert.Empty(t, c.Token())
	assert.True(t, st.tokenCleared)
	assert.Equal(t, models.TabMedia, st.tab, "active tab persists through logout")
}

func TestIdleTimer_ExpiresAfterTimeout(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	timer := NewIdleTimer(start, 10*time.Minute)

	assert.False(t, timer.Expired(start))
	assert.False(t, timer.Expired(start.Add(10*time.Minute-time.Second)))
	assert.True(t, timer.Expired(start.Add(10*time.Minute)))
	assert.True(t, timer.Expired(start.Add(time.Hour)))
}

func TestIdleTimer_TouchResetsCountdown(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	timer := NewIdleTimer(start, 10*time.Minute)

	// Activity at minute nine pushes the deadline out.
	timer.Touch(start.Add(9 * time.Minute))

	assert.False(t, timer.Expired(start.Add(10*time.Minute)))
	assert.False(t, timer.Expired(start.Add(18*time.Minute)))
	assert.True(t, timer.Expired(start.Add(19*time.Minute)))
}

func TestIdleTimer_Remaining(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	timer := NewIdleTimer(start, 10*time.Minute)

	assert.Equal(t, 10*time.Minute, timer.Remaining(start))
	assert.Equal(t, time.Minute, timer.Remaining(start.Add(9*time.Minute)))
	assert.Zero(t, timer.Remaining(start.Add(time.Hour)))
}

func TestIdleTimer_ZeroTimeoutUsesDefault(t *testing.T) {
	start := time.Now()
	timer := NewIdleTimer(start, 0)

	assert.Equal(t, DefaultIdleTimeout, timer.Remaining(start))
}
