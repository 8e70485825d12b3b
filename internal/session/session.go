// Package session tracks the authentication lifecycle: logged out, loading
// the initial data, or ready. It owns the bearer token and decides what
// survives a logout (the persisted tab and status map do; the token and
// everything in memory does not).
package session

import (
	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/models"
)

// State is the controller's position in the lifecycle.
type State int

const (
	LoggedOut State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// TokenStore is the slice of the session store the controller needs.
type TokenStore interface {
	SaveToken(token string) error
	ClearToken() error
	SaveActiveTab(tab models.Tab) error
}

// Controller manages login, logout and the transition to ready once the
// initial fetches settle.
type Controller struct {
	state State
	token string
	store TokenStore
	log   logging.Logger
}

func NewController(store TokenStore, log logging.Logger) *Controller {
	return &Controller{state: LoggedOut, store: store, log: log}
}

func (c *Controller) State() State  { return c.state }
func (c *Controller) Token() string { return c.token }

// Restore resumes a session from a token found in the store at startup.
// It does not persist anything; the token is already saved.
func (c *Controller) Restore(token string) {
	if token == "" {
		return
	}
	c.token = token
	c.state = Loading
	c.log.Info("session restored")
}

// LoggedIn records a fresh token after a successful login and persists it
// so a restart resumes the session.
func (c *Controller) LoggedIn(token string) error {
	c.token = token
	c.state = Loading
	c.log.Info("logged in")
	return c.store.SaveToken(token)
}

// LoadSettled marks the initial dual fetch as resolved. Partial failure
// still reaches ready; the failing side reports its own error text.
func (c *Controller) LoadSettled() {
	if c.state == Loading {
		c.state = Ready
	}
}

// SwitchTab persists the active tab so the next session opens where this
// one left off.
func (c *Controller) SwitchTab(tab models.Tab) error {
	return c.store.SaveActiveTab(tab)
}

// Logout drops the token, in memory and in the store. The persisted active
// tab and status map are deliberately left alone so they survive the next
// login.
func (c *Controller) Logout() error {
	c.token = ""
	c.state = LoggedOut
	c.log.Info("logged out")
	return c.store.ClearToken()
}
