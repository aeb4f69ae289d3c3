package signin

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studyhub/internal/modules/session/dto"
	"studyhub/internal/ui/theme"
)

type SessionPort interface {
	SignIn(ctx context.Context, email, password string) (sessiondto.SessionOutput, error)
	SignInAnonymous(ctx context.Context) (sessiondto.SessionOutput, error)
}

// SignedInMsg reports the outcome of a sign-in attempt.
type SignedInMsg struct {
	Session sessiondto.SessionOutput
	Err     error
}

type Model struct {
	port     SessionPort
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	message  string
	width    int
	height   int
}

func New(port SessionPort) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{port: port, email: email, password: password}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case SignedInMsg:
		m.busy = false
		if msg.Err != nil {
			// Auth failures carry a message fit for display.
			m.message = msg.Err.Error()
			return m, nil
		}
		m.message = ""
		m.password.SetValue("")
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "ctrl+g":
			m.busy = true
			m.message = "signing in as guest…"
			return m, m.guestCmd()
		case "enter":
			if m.focus == 0 {
				m.toggleFocus()
				return m, nil
			}
			m.busy = true
			m.message = "signing in…"
			return m, m.signInCmd(strings.TrimSpace(m.email.Value()), m.password.Value())
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sign in") + "\n\n")
	sb.WriteString(m.email.View() + "\n")
	sb.WriteString(m.password.View() + "\n\n")
	if m.message != "" {
		style := theme.Error
		if m.busy {
			style = theme.Muted
		}
		sb.WriteString(style.Render(m.message) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("enter: sign in  tab: next field  ctrl+g: continue as guest  ctrl+c: quit"))
	box := theme.Pane.Width(56).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) toggleFocus() {
	if m.focus == 0 {
		m.focus = 1
		m.email.Blur()
		m.password.Focus()
		return
	}
	m.focus = 0
	m.password.Blur()
	m.email.Focus()
}

func (m Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.SignIn(context.Background(), email, password)
		return SignedInMsg{Session: out, Err: err}
	}
}

func (m Model) guestCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.SignInAnonymous(context.Background())
		return SignedInMsg{Session: out, Err: err}
	}
}
