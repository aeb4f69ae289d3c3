package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studyhub/internal/ui/theme"
)

// Command describes one palette command and the positional arguments it takes.
type Command struct {
	Name string
	Args []string
	Help string
}

// Usage renders the command the way the hint list shows it.
func (c Command) Usage() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " <" + strings.Join(c.Args, "> <") + ">"
}

// Commands is the palette's command table. app.Model dispatches on Name.
var Commands = []Command{
	{Name: "notify:read-all", Help: "mark every notification read"},
	{Name: "notify:clear", Help: "delete all notifications"},
	{Name: "notify:export", Args: []string{"path.xlsx"}, Help: "write notifications to a spreadsheet"},
	{Name: "progress:export", Args: []string{"path.xlsx"}, Help: "write summary and stats to a spreadsheet"},
	{Name: "goal:set", Args: []string{"reading-min", "listening-min", "writing-tasks", "vocabulary"}, Help: "save today's goal"},
	{Name: "timer:set", Args: []string{"minutes"}, Help: "change the exam countdown"},
	{Name: "signout", Help: "end the session"},
}

var ErrUnknownCommand = errors.New("unknown command")

// Invocation is a parsed palette line.
type Invocation struct {
	Name string
	Args []string
}

// ParseCommand splits input into a command and its arguments and checks the
// argument count against Commands. Extra arguments are an error too.
func ParseCommand(input string) (Invocation, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Invocation{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}
	name := strings.ToLower(parts[0])
	for _, c := range Commands {
		if c.Name != name {
			continue
		}
		if len(parts)-1 != len(c.Args) {
			return Invocation{Name: name}, fmt.Errorf("usage: %s", c.Usage())
		}
		return Invocation{Name: name, Args: parts[1:]}, nil
	}
	return Invocation{}, fmt.Errorf("%w: %s", ErrUnknownCommand, parts[0])
}

// Complete returns the commands whose name starts with the first word of input.
func Complete(input string) []Command {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if i := strings.IndexByte(prefix, ' '); i >= 0 {
		prefix = prefix[:i]
	}
	var out []Command
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// PaletteSubmitMsg carries a parsed command, or the parse error to show.
type PaletteSubmitMsg struct {
	Invocation Invocation
	Err        error
}

type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintHelpStyle = lipgloss.NewStyle().Foreground(theme.Overlay0)
)

const maxHints = 5

// Palette is the ":" overlay. Tab completes a unique command name.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			inv, err := ParseCommand(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Invocation: inv, Err: err} }
		case "tab":
			if matches := Complete(p.input.Value()); len(matches) == 1 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(matches[0].Name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matches := Complete(p.input.Value())
	if len(matches) > maxHints {
		matches = matches[:maxHints]
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matches) > 0 {
		sb.WriteString("\n")
		for _, c := range matches {
			sb.WriteString(hintStyle.Render("  "+c.Usage()) + "  " + hintHelpStyle.Render(c.Help) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 72
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
