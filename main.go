package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/serbanv/pano/internal/api"
	"github.com/serbanv/pano/internal/config"
	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/session"
	"github.com/serbanv/pano/internal/store"
	"github.com/serbanv/pano/internal/ui"
)

const version = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "-v", "--version":
			fmt.Printf("Pano v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		default:
			fmt.Printf("Unknown command: %s\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	cfg := config.Load()

	log, closeLog, err := logging.OpenFileLogger(cfg.DataDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	st, err := store.Open(cfg.DataDir, log)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctl := session.NewController(st, log)
	deps := ui.Deps{
		API:         api.New(cfg.APIOrigin, log),
		Store:       st,
		Ctl:         ctl,
		Log:         log,
		IdleTimeout: cfg.IdleTimeout,
	}

	var initialModel tea.Model = ui.NewLoginModel(deps)
	if state, err := st.Load(); err == nil && state.Token != "" {
		ctl.Restore(state.Token)
		initialModel = ui.NewDashboardModel(deps, state.Token)
	}

	p := tea.NewProgram(initialModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `Pano - Terminal admin dashboard

Usage:
  pano               Start the dashboard
  pano version       Show version information
  pano help          Show this help message

Configuration:
  PANO_API_ORIGIN    Backend origin (default http://localhost:3001)
  PANO_DATA_DIR      State directory (default ~/.pano)
  PANO_IDLE_TIMEOUT  Auto-logout after inactivity (default 10m)
  A .env file in the working directory and ~/.pano/config.yml
  (api_origin, idle_timeout) are also read.

Sign in:
  Enter the admin password; the session token is kept in ~/.pano/pano.db
  so restarting the app resumes the session. Ten minutes without input
  logs the session out.

Messages:
  j/k               Move within the page
  h/l               Previous / next page (6 messages per page)
  f                 Cycle filter: all, new, read, removed
  /                 Search name, email, phone and content
  space             Select for bulk actions
  a                 Mark selected as read
  x                 Remove selected (asks for confirmation)
  enter             Open a message (marks it read)
  d                 Remove the highlighted message
  u                 Restore a removed message to new
  r                 Refresh from the server

Media:
  n                 New clip (at most 9 on the home page)
  enter             Edit the selected clip
  d                 Delete the selected clip
  ctrl+s            Save the form
  r                 Refresh from the server

Anywhere:
  tab or 1/2        Switch tabs
  ctrl+l            Log out
  q / ctrl+c        Quit

Notes:
  - Read/removed flags are local to this machine; the server never
    sees them.
`
	fmt.Print(help)
}
