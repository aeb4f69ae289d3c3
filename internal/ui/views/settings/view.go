package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	notificationdto "studyhub/internal/modules/notification/dto"
	progressdto "studyhub/internal/modules/progress/dto"
	"studyhub/internal/ui/signal"
	"studyhub/internal/ui/theme"
)

type StatsPort interface {
	Stats(ctx context.Context) progressdto.StatsOutput
}

type PreferencesPort interface {
	Settings(ctx context.Context) notificationdto.SettingsOutput
	UpdateSettings(ctx context.Context, push, email bool) error
}

type StatsMsg struct {
	Gen   int
	Stats progressdto.StatsOutput
}

type PreferencesMsg struct {
	Prefs notificationdto.SettingsOutput
}

// SavedMsg reports a preference update. On failure the previous values are
// restored.
type SavedMsg struct {
	Prev notificationdto.SettingsOutput
	Err  error
}

type Model struct {
	stats StatsPort
	prefs PreferencesPort

	gen     int
	current progressdto.StatsOutput
	values  notificationdto.SettingsOutput
	saving  bool
	err     string
}

func New(stats StatsPort, prefs PreferencesPort) Model {
	return Model{stats: stats, prefs: prefs}
}

func (m Model) Init() tea.Cmd {
	prefs := m.prefs
	return tea.Batch(m.loadStats(m.gen), func() tea.Msg {
		return PreferencesMsg{Prefs: prefs.Settings(context.Background())}
	})
}

func (m *Model) Refresh() tea.Cmd {
	m.gen++
	return m.loadStats(m.gen)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signal.ProgressChangedMsg:
		return m, m.Refresh()

	case StatsMsg:
		if msg.Gen == m.gen {
			m.current = msg.Stats
		}

	case PreferencesMsg:
		m.values = msg.Prefs

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.values = msg.Prev
			m.err = msg.Err.Error()
		}

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		next := m.values
		switch msg.String() {
		case "p":
			next.PushNotificationsEnabled = !next.PushNotificationsEnabled
		case "e":
			next.EmailUpdatesEnabled = !next.EmailUpdatesEnabled
		default:
			return m, nil
		}
		prev := m.values
		m.values = next
		m.saving = true
		m.err = ""
		prefs := m.prefs
		return m, func() tea.Msg {
			err := prefs.UpdateSettings(context.Background(), next.PushNotificationsEnabled, next.EmailUpdatesEnabled)
			return SavedMsg{Prev: prev, Err: err}
		}
	}
	return m, nil
}

func (m Model) View() string {
	s := m.current
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Statistics") + "\n")
	sb.WriteString(fmt.Sprintf("exercises completed  %d\nhours practiced      %.1f\nvocabulary words     %d\ntests completed      %d\nday streak           %d\n\n",
		s.ExercisesCompleted, s.HoursPracticed, s.VocabularyWords, s.TestsCompleted, s.DayStreak))
	sb.WriteString(theme.Title.Render("Notifications") + "\n")
	sb.WriteString("push notifications   " + onOff(m.values.PushNotificationsEnabled) + "\n")
	sb.WriteString("email updates        " + onOff(m.values.EmailUpdatesEnabled) + "\n")
	if m.err != "" {
		sb.WriteString("\n" + theme.Error.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("p: toggle push  e: toggle email"))
	return sb.String()
}

func (m Model) loadStats(gen int) tea.Cmd {
	stats := m.stats
	return func() tea.Msg {
		return StatsMsg{Gen: gen, Stats: stats.Stats(context.Background())}
	}
}

func onOff(v bool) string {
	if v {
		return theme.Good.Render("on")
	}
	return theme.Muted.Render("off")
}
