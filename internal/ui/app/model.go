package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notificationdto "studyhub/internal/modules/notification/dto"
	progressdto "studyhub/internal/modules/progress/dto"
	timerdto "studyhub/internal/modules/timer/dto"
	"studyhub/internal/platform/events"
	"studyhub/internal/ui/components"
	"studyhub/internal/ui/signal"
	"studyhub/internal/ui/theme"
	homeview "studyhub/internal/ui/views/home"
	listeningview "studyhub/internal/ui/views/listening"
	notificationsview "studyhub/internal/ui/views/notifications"
	settingsview "studyhub/internal/ui/views/settings"
	signinview "studyhub/internal/ui/views/signin"
	speakingview "studyhub/internal/ui/views/speaking"
	timerview "studyhub/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SessionPort interface {
	signinview.SessionPort
	homeview.SessionPort
	Route() string
	SignOut(ctx context.Context) error
}

type NotificationPort interface {
	notificationsview.NotificationPort
	settingsview.PreferencesPort
	Export(ctx context.Context, path string) (notificationdto.ExportOutput, error)
}

type ProgressPort interface {
	homeview.ProgressPort
	SetTodayGoal(ctx context.Context, input progressdto.GoalInput) (progressdto.GoalOutput, error)
	Export(ctx context.Context, path string) (progressdto.ExportOutput, error)
}

type TimerPort interface {
	timerview.TimerPort
	SetMinutes(minutes int) (timerdto.CountdownOutput, error)
}

type Deps struct {
	Session       SessionPort
	Notifications NotificationPort
	Progress      ProgressPort
	Listening     listeningview.ListeningPort
	Speaking      speakingview.SpeakingPort
	Timer         TimerPort
}

// Forward relays bus signals into a running program.
func Forward(sub events.Subscriber, program *tea.Program) func() {
	return signal.Forward(sub, program)
}

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabNotifications
	tabListening
	tabSpeaking
	tabTimer
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{"Home", "Notifications", "Listening", "Speaking", "Timer", "Settings"}

const routeSignIn = "signin"

// StatusMsg replaces the status line.
type StatusMsg struct{ Text string }

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Tab, k.Palette}, {k.Help, k.Quit}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model routes between the sign-in screen and the tabbed dashboard. Key
// presses go to the visible view only; every other message reaches all
// views so background loads and ticks land where they belong.
type Model struct {
	deps  Deps
	route string

	signIn        signinview.Model
	home          homeview.Model
	notifications notificationsview.Model
	listening     listeningview.Model
	speaking      speakingview.Model
	timer         timerview.Model
	settings      settingsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(deps Deps) Model {
	return Model{
		deps:          deps,
		route:         deps.Session.Route(),
		signIn:        signinview.New(deps.Session),
		home:          homeview.New(deps.Progress, deps.Session),
		notifications: notificationsview.New(deps.Notifications),
		listening:     listeningview.New(deps.Listening),
		speaking:      speakingview.New(deps.Speaking),
		timer:         timerview.New(deps.Timer),
		settings:      settingsview.New(deps.Progress, deps.Notifications),
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.signIn.Init(), m.notifications.Init(), m.listening.Init()}
	if m.route != routeSignIn {
		cmds = append(cmds, m.home.Init(), m.settings.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.broadcast(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3})

	case signal.SessionChangedMsg:
		return m, m.sessionChanged()

	case StatusMsg:
		m.status = msg.Text
		return m, nil

	case components.PaletteSubmitMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		return m, m.executePalette(msg.Invocation)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.route == routeSignIn {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.signIn, cmd = m.signIn.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if !m.capturing() {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			case "shift+tab":
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			}
		} else if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, m.updateActive(msg)
	}

	return m, m.broadcast(msg)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.route == routeSignIn {
		return m.signIn.View()
	}
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHome:
		return m.home.View()
	case tabNotifications:
		return m.notifications.View()
	case tabListening:
		return m.listening.View()
	case tabSpeaking:
		return m.speaking.View()
	case tabTimer:
		return m.timer.View()
	case tabSettings:
		return m.settings.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	bar := "studyhub  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	bell := theme.Muted.Render("🔔")
	if n := m.notifications.Unread(); n > 0 {
		bell += " " + theme.Badge.Render(strconv.Itoa(n))
	}
	left := bell + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  ::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── routing ─────────────────────────────────────────────────────────────────

func (m Model) capturing() bool {
	switch m.activeTab {
	case tabNotifications:
		return m.notifications.Filtering()
	case tabListening:
		return m.listening.Capturing()
	}
	return false
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabHome:
		m.home, cmd = m.home.Update(msg)
	case tabNotifications:
		m.notifications, cmd = m.notifications.Update(msg)
	case tabListening:
		m.listening, cmd = m.listening.Update(msg)
	case tabSpeaking:
		m.speaking, cmd = m.speaking.Update(msg)
	case tabTimer:
		m.timer, cmd = m.timer.Update(msg)
	case tabSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return cmd
}

func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 7)
	m.signIn, cmds[0] = m.signIn.Update(msg)
	m.home, cmds[1] = m.home.Update(msg)
	m.notifications, cmds[2] = m.notifications.Update(msg)
	m.listening, cmds[3] = m.listening.Update(msg)
	m.speaking, cmds[4] = m.speaking.Update(msg)
	m.timer, cmds[5] = m.timer.Update(msg)
	m.settings, cmds[6] = m.settings.Update(msg)
	return tea.Batch(cmds...)
}

// sessionChanged follows the session route. Entering the dashboard reloads
// every per-user view; leaving it closes the open exercise.
func (m *Model) sessionChanged() tea.Cmd {
	route := m.deps.Session.Route()
	if route == m.route {
		return nil
	}
	m.route = route
	if route == routeSignIn {
		m.listening.Close()
		m.activeTab = tabHome
		m.status = "signed out"
		return nil
	}
	m.status = "signed in"
	return tea.Batch(m.home.Refresh(), m.notifications.Refresh(), m.settings.Refresh(), m.settings.Init())
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m *Model) executePalette(inv components.Invocation) tea.Cmd {
	ctx := context.Background()
	switch inv.Name {
	case "notify:read-all":
		return statusCmd(func() (string, error) {
			return "all notifications read", m.deps.Notifications.MarkAllRead(ctx)
		})

	case "notify:clear":
		return statusCmd(func() (string, error) {
			return "notifications cleared", m.deps.Notifications.Clear(ctx)
		})

	case "notify:export":
		path := inv.Args[0]
		return statusCmd(func() (string, error) {
			out, err := m.deps.Notifications.Export(ctx, path)
			return fmt.Sprintf("exported %d notifications to %s", out.Count, out.Path), err
		})

	case "progress:export":
		path := inv.Args[0]
		return statusCmd(func() (string, error) {
			out, err := m.deps.Progress.Export(ctx, path)
			return "exported progress to " + out.Path, err
		})

	case "goal:set":
		vals := make([]int, len(inv.Args))
		for i, arg := range inv.Args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				m.status = "goal values must be whole numbers"
				return nil
			}
			vals[i] = v
		}
		return statusCmd(func() (string, error) {
			_, err := m.deps.Progress.SetTodayGoal(ctx, progressdto.GoalInput{
				ReadingMinutesTarget:   vals[0],
				ListeningMinutesTarget: vals[1],
				WritingTasksTarget:     vals[2],
				VocabularyTarget:       vals[3],
			})
			return "today's goal saved", err
		})

	case "timer:set":
		minutes, err := strconv.Atoi(inv.Args[0])
		if err != nil {
			m.status = "minutes must be a whole number"
			return nil
		}
		if _, err := m.deps.Timer.SetMinutes(minutes); err != nil {
			m.status = err.Error()
			return nil
		}
		m.status = fmt.Sprintf("timer set to %d minutes", minutes)
		return nil

	case "signout":
		return statusCmd(func() (string, error) {
			return "signed out", m.deps.Session.SignOut(ctx)
		})
	}
	m.status = "unknown command: " + inv.Name
	return nil
}

func statusCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := fn()
		if err != nil {
			return StatusMsg{Text: err.Error()}
		}
		return StatusMsg{Text: text}
	}
}
