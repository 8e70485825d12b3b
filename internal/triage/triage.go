// Package triage derives the visible message list from raw server data plus
// the locally tracked status map. Statuses never leave the machine; the
// server only knows the messages themselves.
package triage

import (
	"sort"
	"strings"
	"time"

	"github.com/serbanv/pano/internal/models"
)

// PageSize is the fixed number of messages per page.
const PageSize = 6

// Saver persists the status map. *store.Store satisfies it; tests pass a
// recording stub.
type Saver interface {
	SaveStatusMap(map[int]models.Status) error
}

// StatusFor returns the recorded status for id, defaulting to unread for
// any message never seen before.
func StatusFor(statuses map[int]models.Status, id int) models.Status {
	if status, ok := statuses[id]; ok && status.Valid() {
		return status
	}
	return models.StatusUnread
}

// Adopt records unread for every message id missing from the map and
// persists when anything was added, so new arrivals are recognized on
// each load. The map is mutated in place.
func Adopt(statuses map[int]models.Status, msgs []models.Message, saver Saver) error {
	grew := false
	for _, m := range msgs {
		if _, ok := statuses[m.ID]; !ok {
			statuses[m.ID] = models.StatusUnread
			grew = true
		}
	}
	if !grew {
		return nil
	}
	return saver.SaveStatusMap(statuses)
}

// Set records a single status change and persists the map.
func Set(statuses map[int]models.Status, saver Saver, id int, status models.Status) error {
	statuses[id] = status
	return saver.SaveStatusMap(statuses)
}

// SetMany records a status for every id and persists once. An empty id
// list is a no-op and does not touch the store.
func SetMany(statuses map[int]models.Status, saver Saver, ids []int, status models.Status) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		statuses[id] = status
	}
	return saver.SaveStatusMap(statuses)
}

// Visible filters, searches and sorts messages for display.
//
// Filter all hides deleted messages; any other filter keeps exactly the
// messages whose status matches. A non-empty query keeps messages whose
// name, email, phone or content contains it, case-insensitively. The
// result is sorted by created_at descending, stable on the input order.
func Visible(msgs []models.Message, statuses map[int]models.Status, filter models.Filter, query string) []models.Message {
	query = strings.ToLower(strings.TrimSpace(query))

	visible := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		status := StatusFor(statuses, m.ID)
		if filter == models.FilterAll {
			if status == models.StatusDeleted {
				continue
			}
		} else if models.Filter(status) != filter {
			continue
		}

		if query != "" && !matches(m, query) {
			continue
		}
		visible = append(visible, m)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return parseCreatedAt(visible[i].CreatedAt).After(parseCreatedAt(visible[j].CreatedAt))
	})
	return visible
}

func matches(m models.Message, query string) bool {
	return strings.Contains(strings.ToLower(m.Name), query) ||
		strings.Contains(strings.ToLower(m.Email), query) ||
		strings.Contains(strings.ToLower(m.Phone), query) ||
		strings.Contains(strings.ToLower(m.Content), query)
}

// parseCreatedAt tries the timestamp layouts the backend has been seen to
// emit. Unparseable values sort last, keeping their relative order.
func parseCreatedAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// PageCount reports how many pages n messages fill, never less than one.
func PageCount(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, PageCount(n)] so a shrinking result set
// never leaves the view on an empty page.
func ClampPage(page, n int) int {
	if page < 1 {
		return 1
	}
	if max := PageCount(n); page > max {
		return max
	}
	return page
}

// Page returns the 1-based page window of visible messages.
func Page(visible []models.Message, page int) []models.Message {
	page = ClampPage(page, len(visible))
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end]
}
