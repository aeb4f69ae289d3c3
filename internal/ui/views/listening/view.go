package listening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	listeningdto "studyhub/internal/modules/listening/dto"
	listeningin "studyhub/internal/modules/listening/port/in"
	"studyhub/internal/ui/theme"
)

const (
	tickEvery = 250 * time.Millisecond
	seekStep  = 10 * time.Second
)

type ListeningPort interface {
	Exercises(ctx context.Context) ([]listeningdto.ExerciseOutput, error)
	Open(ctx context.Context, exerciseID string) (listeningin.Session, error)
	Submit(ctx context.Context, exerciseID string, answers map[string]string) (listeningdto.SubmitOutput, error)
}

type ExercisesMsg struct {
	Items []listeningdto.ExerciseOutput
	Err   error
}

type OpenedMsg struct {
	Gen     int
	Session listeningin.Session
	Err     error
}

type SubmittedMsg struct {
	Result listeningdto.SubmitOutput
	Err    error
}

type tickMsg struct{ gen int }

// Model drives one open exercise at a time. The player is only touched from
// Update, so playback stays on the program goroutine.
type Model struct {
	port      ListeningPort
	exercises []listeningdto.ExerciseOutput
	cursor    int

	gen      int
	session  *listeningin.Session
	section  int
	question int
	answers  map[string]string
	input    textinput.Model
	bar      progress.Model

	status string
	width  int
	height int
}

func New(port ListeningPort) Model {
	in := textinput.New()
	in.Placeholder = "answer"
	in.CharLimit = 120
	return Model{
		port:    port,
		input:   in,
		bar:     progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage()),
		answers: map[string]string{},
	}
}

func (m Model) Init() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		items, err := port.Exercises(context.Background())
		return ExercisesMsg{Items: items, Err: err}
	}
}

// Capturing reports whether typed keys belong to the answer field.
func (m Model) Capturing() bool { return m.input.Focused() }

// Close pauses the open exercise and stops its ticks.
func (m *Model) Close() {
	if m.session != nil && m.session.Player.Snapshot().State == "playing" {
		_ = m.session.Player.TogglePlay()
	}
	m.session = nil
	m.gen++
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = max(msg.Width-20, 10)
		return m, nil

	case ExercisesMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.exercises = msg.Items
		return m, nil

	case OpenedMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		sess := msg.Session
		m.session = &sess
		m.section, m.question = 0, 0
		m.answers = map[string]string{}
		m.status = ""
		return m, m.tick()

	case tickMsg:
		if msg.gen != m.gen || m.session == nil {
			return m, nil
		}
		m.session.Advance(tickEvery)
		return m, m.tick()

	case SubmittedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("%d/%d correct, band %.1f", msg.Result.Correct, msg.Result.Total, msg.Result.Band)
		}
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateAnswer(msg)
		}
		if m.session == nil {
			return m.updatePicker(msg)
		}
		return m.updatePlayer(msg)
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.exercises)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.exercises) == 0 {
			return m, nil
		}
		m.gen++
		gen, id, port := m.gen, m.exercises[m.cursor].ID, m.port
		m.status = "opening…"
		return m, func() tea.Msg {
			sess, err := port.Open(context.Background(), id)
			return OpenedMsg{Gen: gen, Session: sess, Err: err}
		}
	}
	return m, nil
}

func (m Model) updatePlayer(msg tea.KeyMsg) (Model, tea.Cmd) {
	player := m.session.Player
	sections := m.session.Exercise.Sections
	var err error
	switch msg.String() {
	case " ":
		err = player.TogglePlay()
	case "n":
		if m.section < len(sections)-1 {
			m.section++
			err = player.LoadAndMaybePlay(sections[m.section].ID, false)
		}
	case "p":
		if m.section > 0 {
			m.section--
			err = player.LoadAndMaybePlay(sections[m.section].ID, false)
		}
	case "r":
		player.Reset()
	case "[":
		err = player.Seek(player.Snapshot().Position - seekStep)
	case "]":
		err = player.Seek(player.Snapshot().Position + seekStep)
	case "up", "k":
		if m.question > 0 {
			m.question--
		}
	case "down", "j":
		if m.question < len(m.session.Exercise.Questions)-1 {
			m.question++
		}
	case "enter":
		if len(m.session.Exercise.Questions) > 0 {
			q := m.session.Exercise.Questions[m.question]
			m.input.SetValue(m.answers[q.ID])
			return m, m.input.Focus()
		}
	case "ctrl+s":
		answers := make(map[string]string, len(m.answers))
		for k, v := range m.answers {
			answers[k] = v
		}
		id, port := m.session.Exercise.ID, m.port
		m.status = "submitting…"
		return m, func() tea.Msg {
			out, err := port.Submit(context.Background(), id, answers)
			return SubmittedMsg{Result: out, Err: err}
		}
	case "esc":
		m.Close()
		return m, nil
	}
	if err != nil {
		m.status = err.Error()
	} else if msg.String() == " " {
		m.status = ""
	}
	return m, nil
}

func (m Model) updateAnswer(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		q := m.session.Exercise.Questions[m.question]
		m.answers[q.ID] = strings.TrimSpace(m.input.Value())
		m.input.Blur()
		if m.question < len(m.session.Exercise.Questions)-1 {
			m.question++
		}
		return m, nil
	case "esc":
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.session == nil {
		return m.pickerView()
	}
	ex := m.session.Exercise
	snap := m.session.Player.Snapshot()

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(ex.Title) + "  " + theme.Muted.Render(ex.Level) + "\n\n")
	for i, s := range ex.Sections {
		label := fmt.Sprintf(" %d. %s ", i+1, s.Title)
		if i == m.section {
			sb.WriteString(theme.Hot.Render(label))
		} else {
			sb.WriteString(theme.Muted.Render(label))
		}
	}
	sb.WriteString("\n")
	if m.section < len(ex.Sections) {
		sb.WriteString(theme.Muted.Render(ex.Sections[m.section].Instructions) + "\n")
	}

	percent := 0.0
	if snap.Duration > 0 {
		percent = float64(snap.Position) / float64(snap.Duration)
	}
	sb.WriteString("\n" + m.bar.ViewAs(percent) + "\n")
	state := snap.State
	if snap.Blocked {
		state += " (press space to play)"
	}
	sb.WriteString(fmt.Sprintf("%s / %s  %s\n\n", clock(snap.Position), clock(snap.Duration), state))

	for i, q := range ex.Questions {
		marker := "  "
		if i == m.question {
			marker = theme.Hot.Render("> ")
		}
		answer := m.answers[q.ID]
		if i == m.question && m.input.Focused() {
			answer = m.input.View()
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", marker, q.Prompt, theme.Good.Render(answer)))
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: play/pause  n/p: section  [/]: seek  r: reset  enter: answer  ctrl+s: submit  esc: close"))
	return sb.String()
}

func (m Model) pickerView() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Listening exercises") + "\n\n")
	if len(m.exercises) == 0 {
		sb.WriteString(theme.Muted.Render("no exercises") + "\n")
	}
	for i, ex := range m.exercises {
		line := fmt.Sprintf("%s  (%d sections)", ex.Title, len(ex.Sections))
		if i == m.cursor {
			sb.WriteString(theme.Hot.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: open"))
	return sb.String()
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(tickEvery, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func clock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
