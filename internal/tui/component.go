package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Component is the interface for all TUI components.
type Component interface {
	// Init initializes the component.
	Init() tea.Cmd

	// Update handles messages and returns the updated component.
	Update(msg tea.Msg) (Component, tea.Cmd)

	// View renders the component.
	View() string

	// Title returns the component title.
	Title() string

	// SetSize sets the component dimensions.
	SetSize(width, height int)

	// Width returns the component width.
	Width() int

	// Height returns the component height.
	Height() int
}

// Styles

// Styles holds the shared component styles.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Accent   lipgloss.Style
	Current  lipgloss.Style
}

// DefaultStyles returns default styling.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("238")),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("204")),
		Current: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("160")),
	}
}

// Align lays lines out to width, right-aligned for right-to-left languages.
func Align(content string, width int, rtl bool) string {
	if width <= 0 {
		return content
	}
	style := lipgloss.NewStyle().Width(width)
	if rtl {
		style = style.Align(lipgloss.Right)
	}
	return style.Render(content)
}

// Truncate truncates a string to fit within a width, counting runes.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// PadRight pads a string to a given width, counting runes.
func PadRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}
