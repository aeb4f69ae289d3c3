package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notificationdto "studyhub/internal/modules/notification/dto"
	"studyhub/internal/ui/signal"
	"studyhub/internal/ui/theme"
)

type NotificationPort interface {
	List(ctx context.Context) []notificationdto.NotificationOutput
	Unread(ctx context.Context) int
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	Clear(ctx context.Context) error
}

type LoadedMsg struct {
	Gen    int
	Items  []notificationdto.NotificationOutput
	Unread int
}

// ActionMsg reports a failed mark/clear. Successful actions show up through
// the change signal instead.
type ActionMsg struct{ Err error }

type item struct {
	n notificationdto.NotificationOutput
}

func (i item) Title() string {
	if i.n.Read {
		return i.n.Message
	}
	return "● " + i.n.Message
}

func (i item) Description() string {
	return fmt.Sprintf("%s  %s", i.n.Type, i.n.CreatedAt.Local().Format(time.DateTime))
}

func (i item) FilterValue() string { return i.n.Message }

type Model struct {
	port   NotificationPort
	list   list.Model
	gen    int
	unread int
	err    string
	width  int
	height int
}

func New(port NotificationPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Notifications"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("notification", "notifications")
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd {
	return m.load(m.gen)
}

func (m *Model) Refresh() tea.Cmd {
	m.gen++
	return m.load(m.gen)
}

// Unread is the bell badge count.
func (m Model) Unread() int { return m.unread }

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case signal.NotificationsChangedMsg:
		return m, m.Refresh()

	case LoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.unread = msg.Unread
		items := make([]list.Item, len(msg.Items))
		for i, n := range msg.Items {
			items[i] = item{n: n}
		}
		return m, m.list.SetItems(items)

	case ActionMsg:
		if msg.Err != nil {
			m.err = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok && !it.n.Read {
				return m, m.action(func(ctx context.Context) error { return m.port.MarkRead(ctx, it.n.ID) })
			}
			return m, nil
		case "a":
			return m, m.action(m.port.MarkAllRead)
		case "x":
			return m, m.action(m.port.Clear)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := theme.Muted.Render("enter: mark read  a: mark all read  x: clear  /: filter")
	if m.err != "" {
		footer = theme.Error.Render(m.err) + "  " + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}

func (m Model) load(gen int) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		return LoadedMsg{Gen: gen, Items: port.List(ctx), Unread: port.Unread(ctx)}
	}
}

func (m Model) action(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Err: fn(context.Background())}
	}
}
