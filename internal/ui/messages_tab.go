package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/serbanv/pano/internal/models"
	"github.com/serbanv/pano/internal/triage"
)

// messagesView is the per-tab state of the triage list: filter, search,
// page, in-page cursor, bulk selection and the two modals (message detail
// and delete confirmation). All of it is ephemeral.
type messagesView struct {
	filter     models.Filter
	search     textinput.Model
	searching  bool
	page       int
	cursor     int
	selected   map[int]bool
	detail     *models.Message
	detailVP   viewport.Model
	confirmIDs []int
}

func newMessagesView() messagesView {
	search := textinput.New()
	search.Placeholder = "Search messages"
	search.CharLimit = 100
	search.Width = 40

	vp := viewport.New(76, 16)

	return messagesView{
		filter:   models.FilterUnread,
		search:   search,
		page:     1,
		selected: map[int]bool{},
		detailVP: vp,
	}
}

// capturesKeys reports whether an input or modal should receive keys before
// the global shortcuts.
func (v messagesView) capturesKeys() bool {
	return v.searching || v.detail != nil || len(v.confirmIDs) > 0
}

func (v messagesView) selectedIDs() []int {
	ids := make([]int, 0, len(v.selected))
	for id, on := range v.selected {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (m *DashboardModel) resizeMessagesView(msg tea.WindowSizeMsg) {
	m.msgView.detailVP.Width = msg.Width - 4
	m.msgView.detailVP.Height = msg.Height - 10
}

func (m DashboardModel) visibleMessages() []models.Message {
	return triage.Visible(m.messages, m.statuses, m.msgView.filter, m.msgView.search.Value())
}

// resetMessagesPage returns to page one and drops the selection; called
// whenever the filter or query changes so the view never shows a stale
// page or a selection that crosses filters.
func (m *DashboardModel) resetMessagesPage() {
	m.msgView.page = 1
	m.msgView.cursor = 0
	m.msgView.selected = map[int]bool{}
}

func (m DashboardModel) highlightedMessage() (models.Message, bool) {
	visible := m.visibleMessages()
	page := triage.Page(visible, m.msgView.page)
	if len(page) == 0 {
		return models.Message{}, false
	}

	cursor := m.msgView.cursor
	if cursor >= len(page) {
		cursor = len(page) - 1
	}
	return page[cursor], true
}

func (m DashboardModel) updateMessagesView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.msgView.confirmIDs) > 0 {
		return m.updateDeleteConfirm(msg)
	}
	if m.msgView.detail != nil {
		return m.updateMessageDetail(msg)
	}
	if m.msgView.searching {
		return m.updateMessageSearch(msg)
	}

	switch msg.String() {
	case "f":
		m.msgView.filter = nextFilter(m.msgView.filter)
		m.resetMessagesPage()
		return m, nil

	case "/":
		m.msgView.searching = true
		m.msgView.search.Focus()
		return m, textinput.Blink

	case "j", "down":
		page := triage.Page(m.visibleMessages(), m.msgView.page)
		if m.msgView.cursor < len(page)-1 {
			m.msgView.cursor++
		}
		return m, nil

	case "k", "up":
		if m.msgView.cursor > 0 {
			m.msgView.cursor--
		}
		return m, nil

	case "l", "right":
		n := len(m.visibleMessages())
		m.msgView.page = triage.ClampPage(m.msgView.page+1, n)
		m.msgView.cursor = 0
		return m, nil

	case "h", "left":
		n := len(m.visibleMessages())
		m.msgView.page = triage.ClampPage(m.msgView.page-1, n)
		m.msgView.cursor = 0
		return m, nil

	case " ", "space":
		if message, ok := m.highlightedMessage(); ok {
			if triage.StatusFor(m.statuses, message.ID) != models.StatusDeleted {
				m.msgView.selected[message.ID] = !m.msgView.selected[message.ID]
			}
		}
		return m, nil

	case "enter":
		if message, ok := m.highlightedMessage(); ok {
			if triage.StatusFor(m.statuses, message.ID) != models.StatusDeleted {
				if err := triage.Set(m.statuses, m.deps.Store, message.ID, models.StatusRead); err != nil {
					m.deps.Log.Warn("failed to persist status map", "err", err)
				}
			}
			m.openMessageDetail(message)
		}
		return m, nil

	case "d":
		if message, ok := m.highlightedMessage(); ok {
			if triage.StatusFor(m.statuses, message.ID) != models.StatusDeleted {
				m.msgView.confirmIDs = []int{message.ID}
			}
		}
		return m, nil

	case "x":
		if ids := m.msgView.selectedIDs(); len(ids) > 0 {
			m.msgView.confirmIDs = ids
		}
		return m, nil

	case "a":
		if ids := m.msgView.selectedIDs(); len(ids) > 0 {
			if err := triage.SetMany(m.statuses, m.deps.Store, ids, models.StatusRead); err != nil {
				m.deps.Log.Warn("failed to persist status map", "err", err)
			}
			m.msgView.selected = map[int]bool{}
		}
		return m, nil

	case "u":
		if message, ok := m.highlightedMessage(); ok {
			if triage.StatusFor(m.statuses, message.ID) == models.StatusDeleted {
				if err := triage.Set(m.statuses, m.deps.Store, message.ID, models.StatusUnread); err != nil {
					m.deps.Log.Warn("failed to persist status map", "err", err)
				}
			}
		}
		return m, nil

	case "r":
		m.messagesSettled = false
		return m, tea.Batch(m.spinner.Tick, m.fetchMessagesCmd())
	}

	return m, nil
}

func (m DashboardModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := triage.SetMany(m.statuses, m.deps.Store, m.msgView.confirmIDs, models.StatusDeleted); err != nil {
			m.deps.Log.Warn("failed to persist status map", "err", err)
		}
		m.msgView.confirmIDs = nil
		m.msgView.selected = map[int]bool{}
		m.msgView.page = triage.ClampPage(m.msgView.page, len(m.visibleMessages()))
		m.msgView.cursor = 0
		return m, nil

	case "n", "N", "esc":
		m.msgView.confirmIDs = nil
		return m, nil
	}
	return m, nil
}

func (m DashboardModel) updateMessageDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "q" {
		m.msgView.detail = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.msgView.detailVP, cmd = m.msgView.detailVP.Update(msg)
	return m, cmd
}

func (m DashboardModel) updateMessageSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.msgView.searching = false
		m.msgView.search.Blur()
		return m, nil

	case "esc":
		m.msgView.searching = false
		m.msgView.search.Blur()
		m.msgView.search.SetValue("")
		m.resetMessagesPage()
		return m, nil
	}

	before := m.msgView.search.Value()
	var cmd tea.Cmd
	m.msgView.search, cmd = m.msgView.search.Update(msg)
	if m.msgView.search.Value() != before {
		m.resetMessagesPage()
	}
	return m, cmd
}

func (m *DashboardModel) openMessageDetail(message models.Message) {
	copied := message
	m.msgView.detail = &copied

	wrapWidth := m.msgView.detailVP.Width
	if wrapWidth <= 0 {
		wrapWidth = 76
	}

	var content strings.Builder
	content.WriteString(mutedStyle.Render(message.CreatedAt) + "\n\n")
	content.WriteString(normalStyle.Render("Name:  "+message.Name) + "\n")
	content.WriteString(normalStyle.Render("Email: "+message.Email) + "\n")
	content.WriteString(normalStyle.Render("Phone: "+message.Phone) + "\n\n")
	content.WriteString(normalStyle.Render(wordwrap.String(message.Content, wrapWidth-2)))

	m.msgView.detailVP.SetContent(content.String())
	m.msgView.detailVP.GotoTop()
}

func nextFilter(f models.Filter) models.Filter {
	switch f {
	case models.FilterAll:
		return models.FilterUnread
	case models.FilterUnread:
		return models.FilterRead
	case models.FilterRead:
		return models.FilterDeleted
	default:
		return models.FilterAll
	}
}

func filterLabel(f models.Filter) string {
	switch f {
	case models.FilterUnread:
		return "New"
	case models.FilterRead:
		return "Read"
	case models.FilterDeleted:
		return "Removed"
	default:
		return "All"
	}
}

func (m DashboardModel) viewMessages() string {
	if m.msgView.detail != nil {
		return m.viewMessageDetail()
	}
	if len(m.msgView.confirmIDs) > 0 {
		return m.viewDeleteConfirm()
	}

	visible := m.visibleMessages()
	page := triage.ClampPage(m.msgView.page, len(visible))
	pageMessages := triage.Page(visible, page)

	var b strings.Builder
	b.WriteString(selectedStyle.Render(fmt.Sprintf("Messages: %s", filterLabel(m.msgView.filter))))
	if m.msgView.filter != models.FilterDeleted {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d", len(visible))))
	}
	b.WriteString("\n")

	if m.msgView.searching {
		b.WriteString(m.msgView.search.View() + "\n")
	} else if query := strings.TrimSpace(m.msgView.search.Value()); query != "" {
		b.WriteString(mutedStyle.Render("Search: "+query) + "\n")
	}

	if ids := m.msgView.selectedIDs(); len(ids) > 0 && m.msgView.filter != models.FilterDeleted {
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d selected", len(ids))) +
			mutedStyle.Render("  a: mark read • x: remove") + "\n")
	}
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("  No messages here.") + "\n")
	}

	cursor := m.msgView.cursor
	if cursor >= len(pageMessages) && len(pageMessages) > 0 {
		cursor = len(pageMessages) - 1
	}

	for i, message := range pageMessages {
		b.WriteString(m.renderMessageCard(message, i == cursor))
	}

	if len(visible) > triage.PageSize {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\nPage %d of %d", page, triage.PageCount(len(visible)))) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.messagesHelp()))
	return b.String()
}

func (m DashboardModel) renderMessageCard(message models.Message, highlighted bool) string {
	status := triage.StatusFor(m.statuses, message.ID)

	marker := "  "
	if highlighted {
		marker = selectedStyle.Render("> ")
	}

	check := "[ ]"
	if m.msgView.selected[message.ID] {
		check = "[x]"
	}
	if status == models.StatusDeleted {
		check = "   "
	}

	badge := ""
	switch status {
	case models.StatusUnread:
		badge = " " + unreadBadgeStyle.Render("new")
	case models.StatusDeleted:
		badge = " " + deletedBadgeStyle.Render("removed")
	}

	preview := message.Content
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}

	line := fmt.Sprintf("%s%s %s • %s%s\n", marker, check, message.CreatedAt, message.Email, badge)
	line += "      " + mutedStyle.Render(preview) + "\n"
	return line
}

func (m DashboardModel) messagesHelp() string {
	if m.msgView.filter == models.FilterDeleted {
		return "j/k: move • h/l: pages • enter: view • u: restore • f: filter • /: search • tab: media • ctrl+l: logout • q: quit"
	}
	return "j/k: move • h/l: pages • space: select • enter: view • d: remove • f: filter • /: search • tab: media • ctrl+l: logout • q: quit"
}

func (m DashboardModel) viewMessageDetail() string {
	s := selectedStyle.Render("Message") + "\n\n"
	s += m.msgView.detailVP.View() + "\n\n"
	s += helpStyle.Render("j/k: scroll • esc: close")
	return s
}

func (m DashboardModel) viewDeleteConfirm() string {
	count := len(m.msgView.confirmIDs)
	noun := "messages"
	if count == 1 {
		noun = "message"
	}

	s := selectedStyle.Render("Confirm removal") + "\n\n"
	s += normalStyle.Render(fmt.Sprintf("Remove %d %s?", count, noun)) + "\n"
	s += mutedStyle.Render("Removed messages can be restored from the Removed filter.") + "\n\n"
	s += helpStyle.Render("y: remove • n/esc: cancel")
	return s
}
