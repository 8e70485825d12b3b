package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serbanv/pano/internal/api"
	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/models"
	"github.com/serbanv/pano/internal/session"
	"github.com/serbanv/pano/internal/store"
	"github.com/serbanv/pano/internal/triage"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	st, err := store.Open(t.TempDir(), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return Deps{
		API:         api.New("http://127.0.0.1:1", logging.Nop()),
		Store:       st,
		Ctl:         session.NewController(st, logging.Nop()),
		Log:         logging.Nop(),
		IdleTimeout: 10 * time.Minute,
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testMessages() []models.Message {
	return []models.Message{
		{ID: 1, Name: "Ana", Email: "ana@example.com", Content: "first", CreatedAt: "2024-01-01"},
		{ID: 2, Name: "Dan", Email: "dan@example.com", Content: "second", CreatedAt: "2024-01-02"},
		{ID: 3, Name: "Maria", Email: "maria@example.com", Content: "third", CreatedAt: "2024-01-03"},
	}
}

// readyDashboard builds a dashboard that has settled both initial fetches.
func readyDashboard(t *testing.T, deps Deps, msgs []models.Message, items []models.MediaItem) DashboardModel {
	t.Helper()

	deps.Ctl.Restore("tok")
	m := NewDashboardModel(deps, "tok")

	updated, _ := m.Update(messagesFetchedMsg{messages: msgs})
	m = updated.(DashboardModel)
	updated, _ = m.Update(mediaFetchedMsg{items: items})
	m = updated.(DashboardModel)

	require.Equal(t, session.Ready, deps.Ctl.State())
	return m
}

func TestDashboard_PartialFailureStillReachesReady(t *testing.T) {
	deps := newTestDeps(t)
	deps.Ctl.Restore("tok")
	m := NewDashboardModel(deps, "tok")

	updated, _ := m.Update(messagesFetchedMsg{err: errors.New("boom")})
	m = updated.(DashboardModel)
	assert.Equal(t, session.Loading, deps.Ctl.State(), "one result is not enough")

	updated, _ = m.Update(mediaFetchedMsg{items: []models.MediaItem{{ID: 1, Title: "Clip"}}})
	m = updated.(DashboardModel)

	assert.Equal(t, session.Ready, deps.Ctl.State())
	assert.Equal(t, "Could not load messages.", m.messagesErr)
	assert.Empty(t, m.mediaErr)
	assert.Equal(t, 1, m.mediaView.collection.Len(), "healthy dataset still populated")
}

func TestDashboard_FetchHydratesStatuses(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	for _, msg := range testMessages() {
		assert.Equal(t, models.StatusUnread, triage.StatusFor(m.statuses, msg.ID))
	}

	// Hydration persists, so new arrivals are recognized next session.
	state, err := deps.Store.Load()
	require.NoError(t, err)
	assert.Len(t, state.Statuses, 3)
}

func TestDashboard_IdleTimeoutForcesLogout(t *testing.T) {
	deps := newTestDeps(t)
	require.NoError(t, deps.Store.SaveToken("tok"))
	m := readyDashboard(t, deps, testMessages(), nil)

	next, _ := m.Update(idleTickMsg(time.Now().Add(11 * time.Minute)))

	_, isLogin := next.(LoginModel)
	assert.True(t, isLogin, "expired session must land on the login view")
	assert.Equal(t, session.LoggedOut, deps.Ctl.State())

	state, err := deps.Store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token, "persisted token removed on idle logout")
}

func TestDashboard_IdleTickReschedulesWhileActive(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, nil, nil)

	next, cmd := m.Update(idleTickMsg(time.Now()))

	_, isDash := next.(DashboardModel)
	assert.True(t, isDash)
	assert.NotNil(t, cmd, "tick chain continues while logged in")
}

func TestDashboard_ManualLogoutKeepsTabAndStatuses(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(DashboardModel)
	require.Equal(t, models.TabMedia, m.tab)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	_, isLogin := next.(LoginModel)
	require.True(t, isLogin)

	state, err := deps.Store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
	assert.Equal(t, models.TabMedia, state.ActiveTab, "tab survives for the next login")
	assert.Len(t, state.Statuses, 3, "status map survives for the next login")
}

func TestDashboard_StaleResultAfterLogoutIsIgnored(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, nil, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	login, isLogin := next.(LoginModel)
	require.True(t, isLogin)

	// A fetch that was in flight during logout resolves late; the login
	// view just drops it.
	after, _ := login.Update(messagesFetchedMsg{messages: testMessages()})
	_, stillLogin := after.(LoginModel)
	assert.True(t, stillLogin)
	assert.Equal(t, session.LoggedOut, deps.Ctl.State())
}

func TestDashboard_TabSwitchPersists(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, nil, nil)

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(DashboardModel)
	assert.Equal(t, models.TabMedia, m.tab)

	state, err := deps.Store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.TabMedia, state.ActiveTab)

	// A fresh dashboard picks the persisted tab back up.
	m2 := NewDashboardModel(deps, "tok")
	assert.Equal(t, models.TabMedia, m2.tab)
}
