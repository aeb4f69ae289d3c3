package timer

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timerdto "studyhub/internal/modules/timer/dto"
	"studyhub/internal/ui/signal"
	"studyhub/internal/ui/theme"
)

type TimerPort interface {
	Start() (timerdto.CountdownOutput, error)
	Stop() timerdto.CountdownOutput
	Reset() timerdto.CountdownOutput
	Status() timerdto.CountdownOutput
}

type Model struct {
	port   TimerPort
	out    timerdto.CountdownOutput
	bar    progress.Model
	err    string
	width  int
	height int
}

func New(port TimerPort) Model {
	return Model{
		port: port,
		out:  port.Status(),
		bar:  progress.New(progress.WithSolidFill(string(theme.Peach)), progress.WithoutPercentage()),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = max(msg.Width/2, 10)

	case signal.TimerChangedMsg:
		m.out = m.port.Status()

	case tea.KeyMsg:
		m.err = ""
		switch msg.String() {
		case " ":
			if m.out.State == "running" {
				m.out = m.port.Stop()
				break
			}
			out, err := m.port.Start()
			if err != nil {
				m.err = err.Error()
				break
			}
			m.out = out
		case "r":
			m.out = m.port.Reset()
		}
	}
	return m, nil
}

func (m Model) View() string {
	elapsed := 0.0
	if m.out.Total > 0 {
		elapsed = 1 - float64(m.out.Remaining)/float64(m.out.Total)
	}
	clock := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(m.out.Display)
	if m.out.State == "finished" {
		clock = theme.Hot.Render(m.out.Display + "  time is up")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Exam timer") + "\n\n")
	sb.WriteString(clock + "\n\n")
	sb.WriteString(m.bar.ViewAs(elapsed) + "\n")
	sb.WriteString(theme.Muted.Render(m.out.State) + "\n")
	if m.err != "" {
		sb.WriteString("\n" + theme.Error.Render(m.err) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: start/stop  r: reset"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
