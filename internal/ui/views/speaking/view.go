package speaking

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	speakingdto "studyhub/internal/modules/speaking/dto"
	"studyhub/internal/ui/theme"
)

type SpeakingPort interface {
	Record(ctx context.Context) (speakingdto.RecordingOutput, error)
	Stop(ctx context.Context) (speakingdto.RecordingOutput, error)
	Discard() (speakingdto.RecordingOutput, error)
	Status() speakingdto.RecordingOutput
}

type StateMsg struct {
	Out speakingdto.RecordingOutput
	Err error
}

type tickMsg struct{ gen int }

type Model struct {
	port      SpeakingPort
	out       speakingdto.RecordingOutput
	startedAt time.Time
	gen       int
	err       string
	busy      bool
}

func New(port SpeakingPort) Model {
	return Model{port: port, out: port.Status()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.busy = false
		m.out = msg.Out
		m.err = ""
		if msg.Err != nil {
			m.err = msg.Err.Error()
		}
		if m.out.State == "recording" {
			m.startedAt = time.Now()
			m.gen++
			return m, tick(m.gen)
		}
		return m, nil

	case tickMsg:
		if msg.gen == m.gen && m.out.State == "recording" {
			return m, tick(m.gen)
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		port := m.port
		switch msg.String() {
		case "r":
			m.busy = true
			return m, func() tea.Msg {
				out, err := port.Record(context.Background())
				return StateMsg{Out: out, Err: err}
			}
		case "s":
			m.busy = true
			return m, func() tea.Msg {
				out, err := port.Stop(context.Background())
				return StateMsg{Out: out, Err: err}
			}
		case "d":
			m.busy = true
			return m, func() tea.Msg {
				out, err := port.Discard()
				return StateMsg{Out: out, Err: err}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Speaking practice") + "\n\n")
	switch m.out.State {
	case "recording":
		elapsed := time.Since(m.startedAt).Truncate(time.Second)
		sb.WriteString(theme.Error.Render("● recording") + "  " + elapsed.String() + "\n")
	case "stopped":
		sb.WriteString(theme.Good.Render("recorded") + fmt.Sprintf("  %s  %d bytes\n", m.out.MIMEType, m.out.Size))
		sb.WriteString(theme.Muted.Render(m.out.AssetPath) + "\n")
	case "requesting":
		sb.WriteString(theme.Muted.Render("waiting for microphone…") + "\n")
	default:
		sb.WriteString(theme.Muted.Render("idle") + "\n")
	}
	if m.out.Reported {
		sb.WriteString(theme.Muted.Render("completion recorded") + "\n")
	}
	msg := m.err
	if msg == "" {
		msg = m.out.Error
	}
	if msg != "" {
		sb.WriteString("\n" + theme.Error.Render(msg) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("r: record  s: stop  d: discard"))
	return sb.String()
}

func tick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}
