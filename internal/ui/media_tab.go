package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/serbanv/pano/internal/api"
	"github.com/serbanv/pano/internal/media"
	"github.com/serbanv/pano/internal/models"
)

type mediaItem struct {
	item models.MediaItem
}

func (i mediaItem) Title() string       { return i.item.Title }
func (i mediaItem) Description() string { return i.item.URL }
func (i mediaItem) FilterValue() string { return i.item.Title }

type mediaSavedMsg struct {
	item    models.MediaItem
	editing bool
	err     error
}

type mediaDeletedMsg struct {
	id  int
	err error
}

// mediaView is the media tab: the cached collection, the bubbles list over
// it, the title/url form and the delete confirmation.
type mediaView struct {
	collection media.Collection
	list       list.Model

	showForm   bool
	editingID  int // 0 while creating
	titleInput textinput.Model
	urlInput   textinput.Model
	focusIndex int

	confirmID int // 0 while no delete pending
	saving    bool
}

func newMediaView() mediaView {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("5")).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("8"))

	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Media"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	titleInput := textinput.New()
	titleInput.Placeholder = "Clip title"
	titleInput.CharLimit = 200
	titleInput.Width = 50

	urlInput := textinput.New()
	urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	urlInput.CharLimit = 500
	urlInput.Width = 50

	return mediaView{
		list:       l,
		titleInput: titleInput,
		urlInput:   urlInput,
	}
}

func (v mediaView) capturesKeys() bool {
	return v.showForm || v.confirmID != 0
}

func (m *DashboardModel) resizeMediaView(msg tea.WindowSizeMsg) {
	m.mediaView.list.SetWidth(msg.Width)
	m.mediaView.list.SetHeight(msg.Height - 10)
}

// refreshMediaList rebuilds the bubbles list from the collection after any
// confirmed change.
func (m *DashboardModel) refreshMediaList() {
	items := m.mediaView.collection.Items()
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = mediaItem{item: item}
	}
	m.mediaView.list.SetItems(listItems)
	m.mediaView.list.Title = fmt.Sprintf("Media - %d of %d clips", len(items), media.Cap)
}

func (m DashboardModel) saveMediaCmd(editingID int, title, url string) tea.Cmd {
	return func() tea.Msg {
		if editingID != 0 {
			item, err := m.deps.API.UpdateMedia(context.Background(), m.token, editingID, title, url)
			return mediaSavedMsg{item: item, editing: true, err: err}
		}
		item, err := m.deps.API.CreateMedia(context.Background(), m.token, title, url)
		return mediaSavedMsg{item: item, editing: false, err: err}
	}
}

func (m DashboardModel) deleteMediaCmd(id int) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.API.DeleteMedia(context.Background(), m.token, id)
		return mediaDeletedMsg{id: id, err: err}
	}
}

// handleMediaSaved reconciles a create/update result. On failure the list
// is left exactly as it was and only the error line changes.
func (m DashboardModel) handleMediaSaved(msg mediaSavedMsg) (tea.Model, tea.Cmd) {
	m.mediaView.saving = false
	if msg.err != nil {
		m.errText = api.Humanize(msg.err)
		m.deps.Log.Warn("media save failed", "err", msg.err)
		return m, nil
	}

	if msg.editing {
		m.mediaView.collection.ApplyUpdate(msg.item)
	} else {
		m.mediaView.collection.ApplyCreate(msg.item)
	}
	m.refreshMediaList()
	m.closeMediaForm()
	m.errText = ""
	return m, nil
}

func (m DashboardModel) handleMediaDeleted(msg mediaDeletedMsg) (tea.Model, tea.Cmd) {
	m.mediaView.saving = false
	if msg.err != nil {
		m.errText = api.Humanize(msg.err)
		m.deps.Log.Warn("media delete failed", "id", msg.id, "err", msg.err)
		return m, nil
	}

	m.mediaView.collection.ApplyDelete(msg.id)
	m.refreshMediaList()
	m.errText = ""
	return m, nil
}

func (m *DashboardModel) openMediaForm(item *models.MediaItem) {
	m.mediaView.showForm = true
	m.mediaView.focusIndex = 0
	m.mediaView.titleInput.Focus()
	m.mediaView.urlInput.Blur()

	if item != nil {
		m.mediaView.editingID = item.ID
		m.mediaView.titleInput.SetValue(item.Title)
		m.mediaView.urlInput.SetValue(item.URL)
	} else {
		m.mediaView.editingID = 0
		m.mediaView.titleInput.SetValue("")
		m.mediaView.urlInput.SetValue("")
	}
}

func (m *DashboardModel) closeMediaForm() {
	m.mediaView.showForm = false
	m.mediaView.editingID = 0
	m.mediaView.titleInput.SetValue("")
	m.mediaView.urlInput.SetValue("")
	m.mediaView.titleInput.Blur()
	m.mediaView.urlInput.Blur()
}

func (m DashboardModel) updateMediaView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mediaView.confirmID != 0 {
		return m.updateMediaDeleteConfirm(msg)
	}
	if m.mediaView.showForm {
		return m.updateMediaForm(msg)
	}

	switch msg.String() {
	case "n", "a":
		if !m.mediaView.collection.CanCreate(false) {
			m.errText = fmt.Sprintf("The home page shows at most %d clips. Remove one first.", media.Cap)
			return m, nil
		}
		m.errText = ""
		m.openMediaForm(nil)
		return m, textinput.Blink

	case "enter":
		if item, ok := m.selectedMediaItem(); ok {
			m.errText = ""
			m.openMediaForm(&item)
			return m, textinput.Blink
		}
		return m, nil

	case "d", "delete":
		if item, ok := m.selectedMediaItem(); ok {
			m.mediaView.confirmID = item.ID
		}
		return m, nil

	case "r":
		m.mediaSettled = false
		return m, tea.Batch(m.spinner.Tick, m.fetchMediaCmd())
	}

	var cmd tea.Cmd
	m.mediaView.list, cmd = m.mediaView.list.Update(msg)
	return m, cmd
}

func (m DashboardModel) selectedMediaItem() (models.MediaItem, bool) {
	item, ok := m.mediaView.list.SelectedItem().(mediaItem)
	if !ok {
		return models.MediaItem{}, false
	}
	return item.item, true
}

func (m DashboardModel) updateMediaDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.mediaView.confirmID
		m.mediaView.confirmID = 0
		m.mediaView.saving = true
		return m, tea.Batch(m.spinner.Tick, m.deleteMediaCmd(id))

	case "n", "N", "esc":
		m.mediaView.confirmID = 0
		return m, nil
	}
	return m, nil
}

func (m DashboardModel) updateMediaForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeMediaForm()
		m.errText = ""
		return m, nil

	case "tab", "shift+tab", "up", "down":
		if m.mediaView.focusIndex == 0 {
			m.mediaView.focusIndex = 1
			m.mediaView.titleInput.Blur()
			m.mediaView.urlInput.Focus()
		} else {
			m.mediaView.focusIndex = 0
			m.mediaView.urlInput.Blur()
			m.mediaView.titleInput.Focus()
		}
		return m, textinput.Blink

	case "ctrl+s", "enter":
		title := strings.TrimSpace(m.mediaView.titleInput.Value())
		url := strings.TrimSpace(m.mediaView.urlInput.Value())
		if title == "" || url == "" {
			m.errText = "Title and link are both required."
			return m, nil
		}
		m.errText = ""
		m.mediaView.saving = true
		return m, tea.Batch(m.spinner.Tick, m.saveMediaCmd(m.mediaView.editingID, title, url))
	}

	var cmd tea.Cmd
	if m.mediaView.focusIndex == 0 {
		m.mediaView.titleInput, cmd = m.mediaView.titleInput.Update(msg)
	} else {
		m.mediaView.urlInput, cmd = m.mediaView.urlInput.Update(msg)
	}
	return m, cmd
}

func (m DashboardModel) viewMedia() string {
	if m.mediaView.confirmID != 0 {
		s := selectedStyle.Render("Delete clip") + "\n\n"
		s += normalStyle.Render("Delete this clip from the site?") + "\n"
		s += errorStyle.Render("This cannot be undone.") + "\n\n"
		s += helpStyle.Render("y: delete • n/esc: cancel")
		return s
	}

	if m.mediaView.showForm {
		return m.viewMediaForm()
	}

	var b strings.Builder

	if m.mediaView.saving {
		b.WriteString(fmt.Sprintf("  %s Working...\n\n", m.spinner.View()))
	}

	if m.mediaView.collection.Len() == 0 {
		b.WriteString(selectedStyle.Render("Media") + "\n\n")
		b.WriteString(mutedStyle.Render("  No clips yet. Press 'n' to add one.") + "\n")
	} else {
		b.WriteString(m.mediaView.list.View() + "\n")
	}

	if !m.mediaView.collection.CanCreate(false) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("At the %d-clip limit for the home page.", media.Cap)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("j/k: navigate • n: new • enter: edit • d: delete • r: refresh • tab: messages • ctrl+l: logout • q: quit"))
	return b.String()
}

func (m DashboardModel) viewMediaForm() string {
	var b strings.Builder

	title := "New clip"
	if m.mediaView.editingID != 0 {
		title = "Edit clip"
	}
	b.WriteString(selectedStyle.Render(title) + "\n\n")

	if m.mediaView.saving {
		b.WriteString(fmt.Sprintf("  %s Saving...\n", m.spinner.View()))
		return b.String()
	}

	renderLabel := func(label string, focused bool) string {
		if focused {
			return inputStyle.Render(label)
		}
		return mutedStyle.Render(label)
	}

	b.WriteString(renderLabel("Title:", m.mediaView.focusIndex == 0) + "\n")
	b.WriteString(m.mediaView.titleInput.View() + "\n\n")
	b.WriteString(renderLabel("YouTube link:", m.mediaView.focusIndex == 1) + "\n")
	b.WriteString(m.mediaView.urlInput.View() + "\n\n")
	b.WriteString(helpStyle.Render("tab: switch field • ctrl+s/enter: save • esc: cancel"))
	return b.String()
}
