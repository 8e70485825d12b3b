package ui

import (
	"time"

	"github.com/serbanv/pano/internal/api"
	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/session"
	"github.com/serbanv/pano/internal/store"
)

// Deps bundles the collaborators every view needs. Views are values and get
// copied freely by bubbletea, so everything in here is a pointer or
// immutable.
type Deps struct {
	API         *api.Client
	Store       *store.Store
	Ctl         *session.Controller
	Log         logging.Logger
	IdleTimeout time.Duration
}
