package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/candid/text"
	"github.com/wippyai/candid/types"
	"github.com/wippyai/candid/value"
	"github.com/wippyai/candid/wire"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	hexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// shownHistory is how many evaluated entries the REPL keeps on screen.
const shownHistory = 5

// NewReplCommand creates the repl command.
func NewReplCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate Candid text interactively",
		Long: `Start an interactive session. Each line is parsed as an argument list and
shown in canonical form with its types and wire encoding as you type. A hex
message starting with 4449444c is decoded instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(newReplModel(opts),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
}

// evaluation is what the REPL shows for one line of input.
type evaluation struct {
	err       error
	canonical string
	types     string
	hex       string
}

// evaluate parses src as an argument list and encodes it, or decodes it
// when it is a hex message.
func evaluate(src string, p value.Printer) evaluation {
	src = strings.TrimSpace(src)
	if src == "" {
		return evaluation{}
	}

	if data, err := parseHex(src); err == nil && bytes.HasPrefix(data, wire.Magic) {
		m, err := wire.DecodeMessage(data)
		if err != nil {
			return evaluation{err: err}
		}
		return evaluation{
			canonical: p.Args(m.Args),
			types:     types.TupleString(m.Types),
			hex:       hex.EncodeToString(data),
		}
	}

	args, err := text.ParseArgs(src)
	if err != nil {
		return evaluation{err: err}
	}
	ts, err := args.Types()
	if err != nil {
		return evaluation{err: err}
	}
	data, err := wire.EncodeWithTypes(args, ts)
	if err != nil {
		return evaluation{err: err}
	}
	return evaluation{
		canonical: p.Args(args),
		types:     types.TupleString(ts),
		hex:       hex.EncodeToString(data),
	}
}

type replEntry struct {
	input  string
	result evaluation
}

type replModel struct {
	opts    *Options
	history []replEntry
	live    evaluation
	input   textinput.Model
	// recall indexes history while browsing it with up and down; it equals
	// len(history) when not browsing.
	recall int
}

func newReplModel(opts *Options) *replModel {
	ti := textinput.New()
	ti.Placeholder = `(42 : nat8, record { name = "alice" })`
	ti.Prompt = "candid> "
	ti.PromptStyle = promptStyle
	ti.Width = 72
	ti.Focus()
	return &replModel{opts: opts, input: ti}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d", "esc":
			return m, tea.Quit

		case "enter":
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}
			m.history = append(m.history, replEntry{input: src, result: evaluate(src, m.opts.printer())})
			m.recall = len(m.history)
			m.input.Reset()
			m.live = evaluation{}
			return m, nil

		case "up":
			if m.recall > 0 {
				m.recall--
				m.setInput(m.history[m.recall].input)
			}
			return m, nil

		case "down":
			if m.recall < len(m.history)-1 {
				m.recall++
				m.setInput(m.history[m.recall].input)
			} else {
				m.recall = len(m.history)
				m.setInput("")
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 10)
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.live = evaluate(m.input.Value(), m.opts.printer())
	}
	return m, cmd
}

func (m *replModel) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.live = evaluate(s, m.opts.printer())
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Candid REPL"))
	b.WriteString("\n\n")

	start := max(len(m.history)-shownHistory, 0)
	for _, e := range m.history[start:] {
		b.WriteString(promptStyle.Render("candid> "))
		b.WriteString(e.input)
		b.WriteString("\n")
		writeEvaluation(&b, e.result)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	writeEvaluation(&b, m.live)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ history • esc quit"))
	return b.String()
}

func writeEvaluation(b *strings.Builder, e evaluation) {
	if e.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		b.WriteString("\n")
		return
	}
	if e.canonical == "" {
		return
	}
	b.WriteString(resultStyle.Render(e.canonical))
	b.WriteString("\n")
	b.WriteString(typeStyle.Render(": " + e.types))
	b.WriteString("\n")
	b.WriteString(hexStyle.Render(e.hex))
	b.WriteString("\n")
}
