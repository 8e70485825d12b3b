package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serbanv/pano/internal/models"
	"github.com/serbanv/pano/internal/triage"
)

func TestMessages_DefaultFilterShowsNewestFirst(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	require.Equal(t, models.FilterUnread, m.msgView.filter)
	visible := m.visibleMessages()
	require.Len(t, visible, 3)
	assert.Equal(t, 3, visible[0].ID)
	assert.Equal(t, 1, visible[2].ID)
}

func TestMessages_EnterMarksReadAndOpensDetail(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(DashboardModel)

	require.NotNil(t, m.msgView.detail)
	assert.Equal(t, 3, m.msgView.detail.ID, "cursor starts on the newest message")
	assert.Equal(t, models.StatusRead, triage.StatusFor(m.statuses, 3))

	state, err := deps.Store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.StatusRead, state.Statuses[3], "read status persisted")

	updated, _ = m.Update(keyMsg("esc"))
	m = updated.(DashboardModel)
	assert.Nil(t, m.msgView.detail)
}

func TestMessages_BulkDeleteConfirmFlow(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	// Select the top two messages.
	updated, _ := m.Update(keyMsg(" "))
	m = updated.(DashboardModel)
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(DashboardModel)
	updated, _ = m.Update(keyMsg(" "))
	m = updated.(DashboardModel)
	require.ElementsMatch(t, []int{2, 3}, m.msgView.selectedIDs())

	// Asking for removal is only step one.
	updated, _ = m.Update(keyMsg("x"))
	m = updated.(DashboardModel)
	require.ElementsMatch(t, []int{2, 3}, m.msgView.confirmIDs)
	assert.Equal(t, models.StatusUnread, triage.StatusFor(m.statuses, 2), "nothing removed before confirmation")

	// Confirming applies and clears the selection.
	updated, _ = m.Update(keyMsg("y"))
	m = updated.(DashboardModel)
	assert.Empty(t, m.msgView.confirmIDs)
	assert.Empty(t, m.msgView.selectedIDs())
	assert.Equal(t, models.StatusDeleted, triage.StatusFor(m.statuses, 2))
	assert.Equal(t, models.StatusDeleted, triage.StatusFor(m.statuses, 3))

	m.msgView.filter = models.FilterDeleted
	assert.ElementsMatch(t, []int{2, 3}, messageIDs(m.visibleMessages()))
}

func TestMessages_DeleteConfirmCancel(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(DashboardModel)
	require.Len(t, m.msgView.confirmIDs, 1)

	updated, _ = m.Update(keyMsg("n"))
	m = updated.(DashboardModel)
	assert.Empty(t, m.msgView.confirmIDs)
	assert.Equal(t, models.StatusUnread, triage.StatusFor(m.statuses, 3))
}

func TestMessages_RestoreMovesDeletedBackToUnread(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)

	require.NoError(t, triage.Set(m.statuses, deps.Store, 3, models.StatusDeleted))
	m.msgView.filter = models.FilterDeleted
	require.Equal(t, []int{3}, messageIDs(m.visibleMessages()))

	updated, _ := m.Update(keyMsg("u"))
	m = updated.(DashboardModel)

	assert.Equal(t, models.StatusUnread, triage.StatusFor(m.statuses, 3))
	assert.Empty(t, m.visibleMessages(), "restored message left the deleted filter")

	m.msgView.filter = models.FilterUnread
	assert.Contains(t, messageIDs(m.visibleMessages()), 3)
}

func TestMessages_FilterCycleResetsPageAndSelection(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, manyMessages(14), nil)

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(DashboardModel)
	updated, _ = m.Update(keyMsg("l"))
	m = updated.(DashboardModel)
	require.Equal(t, 2, m.msgView.page)
	require.Len(t, m.msgView.selectedIDs(), 1)

	updated, _ = m.Update(keyMsg("f"))
	m = updated.(DashboardModel)

	assert.Equal(t, models.FilterRead, m.msgView.filter)
	assert.Equal(t, 1, m.msgView.page)
	assert.Empty(t, m.msgView.selectedIDs())
}

func TestMessages_PageNavigationClamps(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, manyMessages(13), nil)

	require.Equal(t, 3, triage.PageCount(13))

	// Walk past the last page; it sticks at 3.
	for i := 0; i < 5; i++ {
		updated, _ := m.Update(keyMsg("l"))
		m = updated.(DashboardModel)
	}
	assert.Equal(t, 3, m.msgView.page)

	updated, _ := m.Update(keyMsg("h"))
	m = updated.(DashboardModel)
	assert.Equal(t, 2, m.msgView.page)
}

func TestMessages_SearchNarrowsAndResetsPage(t *testing.T) {
	deps := newTestDeps(t)
	m := readyDashboard(t, deps, testMessages(), nil)
	m.msgView.filter = models.FilterAll

	updated, _ := m.Update(keyMsg("/"))
	m = updated.(DashboardModel)
	require.True(t, m.msgView.searching)

	for _, r := range "ana" {
		updated, _ = m.Update(keyMsg(string(r)))
		m = updated.(DashboardModel)
	}
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(DashboardModel)

	assert.False(t, m.msgView.searching)
	assert.Equal(t, []int{1}, messageIDs(m.visibleMessages()))
	assert.Equal(t, 1, m.msgView.page)
}

func messageIDs(msgs []models.Message) []int {
	out := make([]int, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func manyMessages(n int) []models.Message {
	msgs := make([]models.Message, n)
	for i := range msgs {
		msgs[i] = models.Message{ID: i + 1, CreatedAt: "2024-01-01"}
	}
	return msgs
}
