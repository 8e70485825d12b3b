package models

// Message is a contact-form submission as returned by the server.
// All fields are server-owned; the client never edits a message, it
// only tracks a local triage status keyed by ID.
type Message struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// MediaItem is a curated video link shown on the public site.
type MediaItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Status is the local triage classification of a message.
type Status string

const (
	StatusUnread  Status = "unread"
	StatusRead    Status = "read"
	StatusDeleted Status = "deleted"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead || s == StatusDeleted
}

// Filter selects which messages the triage view shows.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterUnread  Filter = "unread"
	FilterRead    Filter = "read"
	FilterDeleted Filter = "deleted"
)

// Tab identifies a dashboard tab.
type Tab string

const (
	TabMessages Tab = "messages"
	TabMedia    Tab = "media"
)

// Valid reports whether t names a real tab.
func (t Tab) Valid() bool {
	return t == TabMessages || t == TabMedia
}
