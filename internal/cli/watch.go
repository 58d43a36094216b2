package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/flow"
	"github.com/matzehuels/ripple/pkg/pipeline"
)

// Watch styles
var (
	watchDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	watchHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// watchCommand creates the watch command for interactive input editing.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		step      float32
		precision int
	)

	cmd := &cobra.Command{
		Use:   "watch [script.rpl]",
		Short: "Edit inputs live and watch values recompute",
		Long: `Edit inputs live and watch values recompute.

The watch command compiles the script and opens an interactive table of
its inputs and derived values. Changing an input replays the change
through the graph; every derived value shows whether the last edit
reached it (fresh) or its memoized value was reused (cached).

Keys: ↑/↓ or k/j select an input, +/- nudge it by the step, digits type
an exact value (enter commits, esc cancels), r restores the script's
original inputs, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("step") && c.Config.Watch.Step > 0 {
				step = c.Config.Watch.Step
			}
			if step <= 0 {
				step = 1
			}
			if !cmd.Flags().Changed("precision") && c.Config.Eval.Precision != 0 {
				precision = c.Config.Eval.Precision
			}
			return c.runWatch(cmd.Context(), args[0], step, resolvePrecision(precision))
		},
	}

	cmd.Flags().Float32Var(&step, "step", 0, "amount +/- moves an input (default 1)")
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "decimal places for displayed values (default 6)")

	return cmd
}

// runWatch compiles the script and runs the interactive table.
func (c *CLI) runWatch(ctx context.Context, path string, step float32, precision int) error {
	logger := loggerFromContext(ctx)

	source, err := readScript(path)
	if err != nil {
		return err
	}
	prog, err := expr.Compile(source)
	if err != nil {
		return err
	}
	if len(prog.InputNames()) == 0 {
		PrintError("%s has no inputs to edit", path)
		printNextStep("Evaluate it instead", fmt.Sprintf("ripple eval %s", path))
		return nil
	}

	logger.Debugf("Watching %d inputs, %d derived values", len(prog.InputNames()), len(prog.Names()))

	m := newWatchModel(prog, scriptName(path), step, precision)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// resolvePrecision clamps a precision flag the same way the pipeline does.
func resolvePrecision(p int) int {
	opts := pipeline.Options{Precision: p}
	opts.SetEvalDefaults()
	return opts.Precision
}

// =============================================================================
// watchModel - Live input editing
// =============================================================================

// watchModel is the bubbletea model for the watch command. One probe per
// derived value records whether the last edit reached it, which drives the
// fresh/cached badge in the status column.
type watchModel struct {
	prog      *expr.Program
	script    string
	step      float32
	precision int

	inputs  []string
	derived []string
	initial []float32 // scripted input values, index-aligned with inputs
	probes  map[string]*flow.Probe
	fresh   map[string]bool

	cursor  int
	editing string // digits typed so far; empty when not editing
	height  int
}

// newWatchModel builds the model and primes the graph. An empty memo slot
// never rebroadcasts, so edits are only measurable once everything has been
// computed at least once.
func newWatchModel(prog *expr.Program, script string, step float32, precision int) watchModel {
	m := watchModel{
		prog:      prog,
		script:    script,
		step:      step,
		precision: precision,
		inputs:    prog.InputNames(),
		derived:   prog.Names(),
		height:    15,
	}
	m.initial = make([]float32, len(m.inputs))
	for i, name := range m.inputs {
		m.initial[i], _ = prog.Value(name)
	}
	m.probes = make(map[string]*flow.Probe, len(m.derived))
	m.fresh = make(map[string]bool, len(m.derived))
	for _, name := range m.derived {
		p := flow.NewProbe()
		if n, ok := prog.Node(name); ok {
			p.Attach(n)
		}
		m.probes[name] = p
		m.fresh[name] = true // first paint computes everything
	}
	prog.Eval()
	return m
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.editing != "" {
				m.editing = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.editing = ""
			}
		case "down", "j":
			if m.cursor < len(m.inputs)-1 {
				m.cursor++
				m.editing = ""
			}
		case "+", "=":
			m.editing = ""
			m.nudge(m.step)
		case "-":
			if m.editing != "" {
				// A minus mid-edit flips the sign of the typed value.
				if strings.HasPrefix(m.editing, "-") {
					m.editing = m.editing[1:]
				} else {
					m.editing = "-" + m.editing
				}
				return m, nil
			}
			m.nudge(-m.step)
		case "enter":
			if m.editing == "" {
				return m, nil
			}
			if v, err := strconv.ParseFloat(m.editing, 32); err == nil {
				m.commit(m.inputs[m.cursor], float32(v))
			}
			m.editing = ""
		case "backspace":
			if m.editing != "" {
				m.editing = m.editing[:len(m.editing)-1]
			}
		case "r":
			m.editing = ""
			m.reset()
		default:
			if len(key) == 1 && (key[0] >= '0' && key[0] <= '9' || key[0] == '.') {
				if key != "." || !strings.Contains(m.editing, ".") {
					m.editing += key
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// commit applies one input edit, records which derived values it reached,
// and recomputes so the next edit starts from a full graph.
func (m watchModel) commit(name string, v float32) {
	for _, p := range m.probes {
		p.Reset()
	}
	_ = m.prog.SetInput(name, v) // name comes from the program itself
	for _, d := range m.derived {
		m.fresh[d] = m.probes[d].Count() > 0
	}
	m.prog.Eval()
}

// nudge moves the selected input by delta.
func (m watchModel) nudge(delta float32) {
	name := m.inputs[m.cursor]
	v, err := m.prog.Value(name)
	if err != nil {
		return
	}
	m.commit(name, v+delta)
}

// reset restores every input to its scripted value.
func (m watchModel) reset() {
	for _, p := range m.probes {
		p.Reset()
	}
	for i, name := range m.inputs {
		_ = m.prog.SetInput(name, m.initial[i])
	}
	for _, d := range m.derived {
		m.fresh[d] = m.probes[d].Count() > 0
	}
	m.prog.Eval()
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Watch " + m.script))
	b.WriteString("\n")
	b.WriteString(watchDimStyle.Render("↑/↓ select  +/- nudge  0-9 type  ⏎ commit  r reset  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i, name := range m.inputs {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		v, _ := m.prog.Value(name)
		value := formatFloat(v, m.precision)
		if i == m.cursor && m.editing != "" {
			value = m.editing + "▌"
		}
		rows = append(rows, []string{cursor, name, value, "input"})
	}

	derived := m.derived
	overflow := 0
	if limit := m.height - len(m.inputs); limit > 0 && len(derived) > limit {
		overflow = len(derived) - limit
		derived = derived[:limit]
	}
	for _, name := range derived {
		status := iconCached
		if m.fresh[name] {
			status = iconFresh
		}
		v, _ := m.prog.Value(name)
		rows = append(rows, []string{"  ", name, formatFloat(v, m.precision), status})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Value", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return watchHeaderStyle
			}

			base := lipgloss.NewStyle()
			if row < len(m.inputs) {
				if col == 3 {
					return base.Foreground(colorDim)
				}
				if row == m.cursor {
					return base.Foreground(colorCyan).Bold(true)
				}
				return base.Foreground(colorWhite)
			}

			switch col {
			case 2:
				return base.Foreground(colorCyan)
			case 3:
				name := derived[row-len(m.inputs)]
				if m.fresh[name] {
					return base.Foreground(colorGray)
				}
				return base.Foreground(colorGreen)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if overflow > 0 {
		b.WriteString(watchDimStyle.Render(fmt.Sprintf("  … %d more values", overflow)))
		b.WriteString("\n")
	}
	b.WriteString(watchDimStyle.Render(fmt.Sprintf("  [%d inputs · %d values · step %s]",
		len(m.inputs), len(m.derived), formatFloat(m.step, m.precision))))
	b.WriteString("\n")

	return b.String()
}
