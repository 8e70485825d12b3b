// Package media holds the in-memory copy of the site's curated video list
// and reconciles it with confirmed API results. The list is never mutated
// optimistically; every Apply* runs only after the server said yes.
package media

import "github.com/serbanv/pano/internal/models"

// Cap is the soft limit on items advertised by the UI. The home page shows
// at most nine clips, so creating a tenth is blocked client-side; the
// server does not enforce it.
const Cap = 9

// Collection is the cached media list.
type Collection struct {
	items []models.MediaItem
}

// SetItems replaces the whole list, as after the initial fetch.
func (c *Collection) SetItems(items []models.MediaItem) {
	c.items = items
}

// Items returns the current list in display order.
func (c *Collection) Items() []models.MediaItem {
	return c.items
}

func (c *Collection) Len() int {
	return len(c.items)
}

// CanCreate reports whether a new item may be created. Editing an existing
// item is always allowed, even at the cap.
func (c *Collection) CanCreate(editing bool) bool {
	return editing || len(c.items) < Cap
}

// ApplyCreate prepends the newly created item; most-recent-first ordering
// falls out of the prepend, there is no sort.
func (c *Collection) ApplyCreate(item models.MediaItem) {
	c.items = append([]models.MediaItem{item}, c.items...)
}

// ApplyUpdate replaces the entry with the same id in place, leaving the
// list order unchanged. Unknown ids are ignored.
func (c *Collection) ApplyUpdate(item models.MediaItem) {
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i] = item
			return
		}
	}
}

// ApplyDelete removes the entry with the given id, if present.
func (c *Collection) ApplyDelete(id int) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
