package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("213")).
		MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("213")).
		Padding(0, 2)

	normalStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255"))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)

	statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("117"))

	unreadBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("220"))

	deletedBadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("203"))

	selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("213"))

	inputStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("117")).
		Bold(true)
)
