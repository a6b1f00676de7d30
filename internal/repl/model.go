package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/metaphox/monkey/internal/diag"
)

// maxEntries bounds the scrollback kept in memory.
const maxEntries = 200

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Options configures the terminal UI.
type Options struct {
	Prompt string
	Color  bool
	In     io.Reader // nil means the terminal
	Out    io.Writer // nil means the terminal
}

type entry struct {
	input  string
	output string
	failed bool
}

// Model is the bubbletea model of the shell.
type Model struct {
	input   textinput.Model
	session string
	prompt  string
	printer diag.Printer
	color   bool

	entries []entry
	history []string
	histIdx int // len(history) means "new input"

	quitting bool
}

// NewModel creates the shell model with a fresh session id.
func NewModel(opts Options) Model {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "let x = 1 + 2 * 3;"
	ti.CharLimit = 4096
	ti.Focus()

	return Model{
		input:   ti,
		session: uuid.NewString(),
		prompt:  prompt,
		printer: diag.Printer{Color: opts.Color},
		color:   opts.Color,
	}
}

// Session returns the id shown in the header.
func (m Model) Session() string { return m.session }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(10, msg.Width-len(m.prompt)-1)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.submit()
			return m, nil

		case tea.KeyUp:
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.SetValue("")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return
	}

	res := Eval(line)
	m.entries = append(m.entries, entry{input: line, output: res.Output(m.printer), failed: res.Failed()})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}

	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	m.histIdx = len(m.history)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.style(headerStyle, "monkey parser"))
	b.WriteString(" ")
	b.WriteString(m.style(mutedStyle, "session "+shortID(m.session)))
	b.WriteString("\n\n")

	for _, e := range m.entries {
		b.WriteString(m.style(mutedStyle, m.prompt+e.input))
		b.WriteString("\n")
		if e.failed {
			b.WriteString(m.style(failStyle, e.output))
		} else {
			b.WriteString(m.style(okStyle, e.output))
		}
		b.WriteString("\n")
	}

	if m.quitting {
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.style(mutedStyle, "enter: parse • ↑/↓: history • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) style(s lipgloss.Style, text string) string {
	if !m.color {
		return text
	}
	return s.Render(text)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the terminal UI and blocks until the user quits.
func Run(opts Options) error {
	var progOpts []tea.ProgramOption
	if opts.In != nil {
		progOpts = append(progOpts, tea.WithInput(opts.In))
	}
	if opts.Out != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Out))
	}
	_, err := tea.NewProgram(NewModel(opts), progOpts...).Run()
	return err
}
