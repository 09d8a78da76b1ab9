package harness

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/artpar/marquee/internal/app"
	"github.com/artpar/marquee/internal/config"
	"github.com/artpar/marquee/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
)

// cmdWait bounds how long a command may run before its message is dropped.
// Timers such as notification clears never finish within it.
const cmdWait = 500 * time.Millisecond

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession represents an active TUI test session.
type TUISession struct {
	runner *TUIRunner
	app    *app.App
	model  *views.BrowserView
	t      *testing.T
}

// Start starts a new TUI session and loads the first page.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.StartWithSize(t, 120, 40)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	application, err := app.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open app: %v", err)
	}
	t.Cleanup(func() { application.Close() })
	application.Load(context.Background())

	model := views.NewBrowserView(application)
	model.SetSize(width, height)
	model.SetClipboard(func(string) error { return nil })

	s := &TUISession{
		runner: r,
		app:    application,
		model:  model,
		t:      t,
	}
	s.executeCmd(model.Init())
	return s
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	updated, cmd := s.model.Update(parseKeyMsg(key))
	s.model = updated.(*views.BrowserView)
	s.executeCmd(cmd)
	return s
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		if r == ' ' {
			s.SendKey("space")
			continue
		}
		s.SendKey(string(r))
	}
	return s
}

// executeCmd executes a tea.Cmd and feeds the resulting messages back into
// the model. Batches are expanded; quit messages are ignored.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdWait):
		return
	}

	switch msg := msg.(type) {
	case nil, tea.QuitMsg:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			s.executeCmd(c)
		}
		return
	}

	updated, next := s.model.Update(msg)
	s.model = updated.(*views.BrowserView)
	s.executeCmd(next)
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Model returns the underlying BrowserView for direct assertions.
func (s *TUISession) Model() *views.BrowserView {
	return s.model
}

// App returns the application behind the session.
func (s *TUISession) App() *app.App {
	return s.app
}

// WaitForOutput waits for specific text in output.
func (s *TUISession) WaitForOutput(text string) error {
	timeout := s.runner.harness.timeout
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	return &TimeoutError{text: text, timeout: timeout}
}

// TimeoutError represents a timeout waiting for output.
type TimeoutError struct {
	text    string
	timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + e.timeout.String() + " waiting for: " + e.text
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
