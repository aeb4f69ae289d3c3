package home

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "studyhub/internal/modules/progress/dto"
	sessiondto "studyhub/internal/modules/session/dto"
	"studyhub/internal/ui/signal"
	"studyhub/internal/ui/theme"
)

type ProgressPort interface {
	Summary(ctx context.Context) progressdto.SummaryOutput
	Stats(ctx context.Context) progressdto.StatsOutput
	TodayGoal(ctx context.Context) (progressdto.GoalOutput, error)
}

type SessionPort interface {
	Current(ctx context.Context) (sessiondto.SessionOutput, error)
}

// LoadedMsg carries one dashboard refresh. Gen identifies the request so a
// late answer to an older refresh is dropped.
type LoadedMsg struct {
	Gen     int
	User    sessiondto.SessionOutput
	Summary progressdto.SummaryOutput
	Stats   progressdto.StatsOutput
	Goal    progressdto.GoalOutput
	GoalErr error
}

type Model struct {
	progress ProgressPort
	session  SessionPort
	spinner  spinner.Model

	gen     int
	loading bool
	data    LoadedMsg
	width   int
	height  int
}

func New(progress ProgressPort, session SessionPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{progress: progress, session: session, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(m.gen), m.spinner.Tick)
}

// Refresh starts a reload and invalidates any reload still in flight.
func (m *Model) Refresh() tea.Cmd {
	m.gen++
	return m.load(m.gen)
}

func (m Model) load(gen int) tea.Cmd {
	progress, session := m.progress, m.session
	return func() tea.Msg {
		ctx := context.Background()
		msg := LoadedMsg{Gen: gen}
		msg.User, _ = session.Current(ctx)
		msg.Summary = progress.Summary(ctx)
		msg.Stats = progress.Stats(ctx)
		msg.Goal, msg.GoalErr = progress.TodayGoal(ctx)
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case signal.ProgressChangedMsg:
		return m, m.Refresh()
	case LoadedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.data = msg
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading dashboard…")
	}
	d := m.data
	name := d.User.FirstName
	if name == "" {
		name = "there"
	}

	var head strings.Builder
	head.WriteString(theme.Title.Render("Welcome back, "+name) + "\n")
	if d.User.IsPremium {
		head.WriteString(theme.Hot.Render("premium") + "\n")
	}

	s := d.Summary
	summary := fmt.Sprintf("%s\nreading    %d\nlistening  %d\nwriting    %d\nspeaking   %d",
		theme.Title.Render("Completed"), s.Reading, s.Listening, s.Writing, s.Speaking)
	if s.HasStreak {
		summary += fmt.Sprintf("\nstreak     %d", s.Streak)
	}

	st := d.Stats
	stats := fmt.Sprintf("%s\nexercises   %d\nhours       %.1f\nvocabulary  %d\ntests       %d\nday streak  %d",
		theme.Title.Render("Statistics"), st.ExercisesCompleted, st.HoursPracticed, st.VocabularyWords, st.TestsCompleted, st.DayStreak)

	goal := theme.Title.Render("Today's goal") + "\n"
	if d.GoalErr != nil {
		goal += theme.Muted.Render("unavailable")
	} else {
		g := d.Goal
		goal += fmt.Sprintf("reading    %d min\nlistening  %d min\nwriting    %d tasks\nvocabulary %d words",
			g.ReadingMinutesTarget, g.ListeningMinutesTarget, g.WritingTasksTarget, g.VocabularyTarget)
		if g.Completed {
			goal += "\n" + theme.Good.Render("completed")
		}
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(26).Render(summary),
		theme.Pane.Width(26).Render(stats),
		theme.Pane.Width(26).Render(goal),
	)
	return lipgloss.JoinVertical(lipgloss.Left, head.String(), cards)
}
