package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/serbanv/pano/internal/api"
)

type loginResultMsg struct {
	token string
	err   error
}

// LoginModel asks for the admin password and exchanges it for a token.
type LoginModel struct {
	deps         Deps
	input        textinput.Model
	spinner      spinner.Model
	loggingIn    bool
	errText      string
	windowWidth  int
	windowHeight int
}

func NewLoginModel(deps Deps) LoginModel {
	ti := textinput.New()
	ti.Placeholder = "Admin password"
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	return LoginModel{
		deps:         deps,
		input:        ti,
		spinner:      s,
		windowWidth:  80,
		windowHeight: 30,
	}
}

func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LoginModel) loginCmd(password string) tea.Cmd {
	return func() tea.Msg {
		token, err := m.deps.API.Login(context.Background(), password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.errText = api.Humanize(msg.err)
			m.input.Focus()
			return m, textinput.Blink
		}

		if err := m.deps.Ctl.LoggedIn(msg.token); err != nil {
			m.deps.Log.Warn("failed to persist token", "err", err)
		}

		dash := NewDashboardModel(m.deps, msg.token)
		if m.windowWidth > 0 {
			updated, _ := dash.Update(tea.WindowSizeMsg{Width: m.windowWidth, Height: m.windowHeight})
			dash = updated.(DashboardModel)
		}
		return dash, dash.Init()

	case spinner.TickMsg:
		if m.loggingIn {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			password := strings.TrimSpace(m.input.Value())
			if password == "" || m.loggingIn {
				return m, nil
			}
			m.loggingIn = true
			m.errText = ""
			m.input.SetValue("")
			m.input.Blur()
			return m, tea.Batch(m.spinner.Tick, m.loginCmd(password))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m LoginModel) View() string {
	s := titleStyle.Render("Pano") + "\n"
	s += mutedStyle.Render("Site admin dashboard") + "\n\n"

	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n\n"
	}

	if m.loggingIn {
		s += statusStyle.Render(m.spinner.View()+" Signing in...") + "\n"
	} else {
		s += inputStyle.Render("Password:") + "\n"
		s += m.input.View() + "\n"
	}

	s += "\n" + helpStyle.Render("enter: sign in • esc: quit")
	return s
}
