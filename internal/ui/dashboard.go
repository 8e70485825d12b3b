package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/serbanv/pano/internal/models"
	"github.com/serbanv/pano/internal/session"
	"github.com/serbanv/pano/internal/triage"
)

// How often the dashboard checks whether the idle deadline passed. The
// tick chain is only rescheduled while logged in, so no timer outlives a
// logout.
const idleCheckInterval = 15 * time.Second

type messagesFetchedMsg struct {
	messages []models.Message
	err      error
}

type mediaFetchedMsg struct {
	items []models.MediaItem
	err   error
}

type idleTickMsg time.Time

// DashboardModel is the authenticated view: two tabs over the message
// triage list and the media collection, plus the idle-timeout watchdog.
type DashboardModel struct {
	deps  Deps
	token string
	tab   models.Tab

	messages []models.Message
	statuses map[int]models.Status

	messagesSettled bool
	mediaSettled    bool
	messagesErr     string
	mediaErr        string
	errText         string

	spinner spinner.Model
	idle    *session.IdleTimer

	msgView   messagesView
	mediaView mediaView

	windowWidth  int
	windowHeight int
}

// NewDashboardModel builds the dashboard for a fresh or restored token,
// picking up the persisted tab and status map from the session store.
func NewDashboardModel(deps Deps, token string) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	tab := models.TabMessages
	statuses := map[int]models.Status{}
	if state, err := deps.Store.Load(); err == nil {
		if state.ActiveTab.Valid() {
			tab = state.ActiveTab
		}
		statuses = state.Statuses
	} else {
		deps.Log.Warn("failed to load persisted state", "err", err)
	}

	return DashboardModel{
		deps:         deps,
		token:        token,
		tab:          tab,
		statuses:     statuses,
		spinner:      s,
		idle:         session.NewIdleTimer(time.Now(), deps.IdleTimeout),
		msgView:      newMessagesView(),
		mediaView:    newMediaView(),
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	// Both fetches run concurrently; the dashboard counts both results,
	// in either order, before the session is considered ready.
	return tea.Batch(
		m.spinner.Tick,
		m.fetchMessagesCmd(),
		m.fetchMediaCmd(),
		idleTickCmd(),
	)
}

func (m DashboardModel) fetchMessagesCmd() tea.Cmd {
	return func() tea.Msg {
		messages, err := m.deps.API.ListMessages(context.Background(), m.token)
		return messagesFetchedMsg{messages: messages, err: err}
	}
}

func (m DashboardModel) fetchMediaCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.API.ListMedia(context.Background(), m.token)
		return mediaFetchedMsg{items: items, err: err}
	}
}

func idleTickCmd() tea.Cmd {
	return tea.Tick(idleCheckInterval, func(t time.Time) tea.Msg {
		return idleTickMsg(t)
	})
}

func (m DashboardModel) loading() bool {
	return m.deps.Ctl.State() == session.Loading
}

func (m *DashboardModel) maybeSettle() {
	if m.messagesSettled && m.mediaSettled {
		m.deps.Ctl.LoadSettled()
	}
}

// logout tears the session down and returns to the login view. Any fetch
// still in flight delivers its result to a model that ignores it.
func (m DashboardModel) logout() (tea.Model, tea.Cmd) {
	if err := m.deps.Ctl.Logout(); err != nil {
		m.deps.Log.Warn("failed to clear token", "err", err)
	}

	login := NewLoginModel(m.deps)
	if m.windowWidth > 0 {
		updated, _ := login.Update(tea.WindowSizeMsg{Width: m.windowWidth, Height: m.windowHeight})
		login = updated.(LoginModel)
	}
	return login, login.Init()
}

func (m DashboardModel) switchTab(tab models.Tab) DashboardModel {
	if m.tab == tab {
		return m
	}
	m.tab = tab
	if err := m.deps.Ctl.SwitchTab(tab); err != nil {
		m.deps.Log.Warn("failed to persist active tab", "err", err)
	}
	return m
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.resizeMessagesView(msg)
		m.resizeMediaView(msg)
		return m, nil

	case messagesFetchedMsg:
		m.messagesSettled = true
		if msg.err != nil {
			m.messagesErr = "Could not load messages."
			m.deps.Log.Warn("messages fetch failed", "err", msg.err)
		} else {
			m.messagesErr = ""
			m.messages = msg.messages
			if err := triage.Adopt(m.statuses, m.messages, m.deps.Store); err != nil {
				m.deps.Log.Warn("failed to persist status map", "err", err)
			}
		}
		m.maybeSettle()
		return m, nil

	case mediaFetchedMsg:
		m.mediaSettled = true
		if msg.err != nil {
			m.mediaErr = "Could not load media."
			m.deps.Log.Warn("media fetch failed", "err", msg.err)
		} else {
			m.mediaErr = ""
			m.mediaView.collection.SetItems(msg.items)
			m.refreshMediaList()
		}
		m.maybeSettle()
		return m, nil

	case mediaSavedMsg:
		return m.handleMediaSaved(msg)

	case mediaDeletedMsg:
		return m.handleMediaDeleted(msg)

	case idleTickMsg:
		if m.idle.Expired(time.Time(msg)) {
			m.deps.Log.Info("idle timeout reached")
			return m.logout()
		}
		return m, idleTickCmd()

	case spinner.TickMsg:
		if m.loading() || m.mediaView.saving {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		m.idle.Touch(time.Now())
		return m, nil

	case tea.KeyMsg:
		m.idle.Touch(time.Now())
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Text inputs and modals capture keys before global shortcuts.
	if m.msgView.capturesKeys() && m.tab == models.TabMessages {
		return m.updateMessagesView(msg)
	}
	if m.mediaView.capturesKeys() && m.tab == models.TabMedia {
		return m.updateMediaView(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "ctrl+l":
		return m.logout()

	case "tab":
		if m.tab == models.TabMessages {
			return m.switchTab(models.TabMedia), nil
		}
		return m.switchTab(models.TabMessages), nil

	case "1":
		return m.switchTab(models.TabMessages), nil

	case "2":
		return m.switchTab(models.TabMedia), nil
	}

	if m.loading() {
		return m, nil
	}

	if m.tab == models.TabMessages {
		return m.updateMessagesView(msg)
	}
	return m.updateMediaView(msg)
}

func (m DashboardModel) View() string {
	header := titleStyle.Render("Pano") + "\n"
	header += m.renderTabs() + "\n\n"

	s := header

	if m.messagesErr != "" {
		s += errorStyle.Render(m.messagesErr) + "\n"
	}
	if m.mediaErr != "" {
		s += errorStyle.Render(m.mediaErr) + "\n"
	}
	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n"
	}
	if m.messagesErr != "" || m.mediaErr != "" || m.errText != "" {
		s += "\n"
	}

	if m.loading() {
		s += fmt.Sprintf("  %s Loading...\n", m.spinner.View())
		return s
	}

	if m.tab == models.TabMessages {
		s += m.viewMessages()
	} else {
		s += m.viewMedia()
	}
	return s
}

func (m DashboardModel) renderTabs() string {
	unread := 0
	for _, msg := range m.messages {
		if triage.StatusFor(m.statuses, msg.ID) == models.StatusUnread {
			unread++
		}
	}

	messagesLabel := "1 Messages"
	if unread > 0 {
		messagesLabel = fmt.Sprintf("1 Messages (%d new)", unread)
	}
	mediaLabel := fmt.Sprintf("2 Media (%d)", m.mediaView.collection.Len())

	tabs := ""
	if m.tab == models.TabMessages {
		tabs += activeTabStyle.Render(messagesLabel) + tabStyle.Render(mediaLabel)
	} else {
		tabs += tabStyle.Render(messagesLabel) + activeTabStyle.Render(mediaLabel)
	}
	return tabs
}
