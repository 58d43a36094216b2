package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ripple/pkg/errors"
	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/flow"
	"github.com/matzehuels/ripple/pkg/pipeline"
)

// evalCommand creates the eval command for computing script values.
func (c *CLI) evalCommand() *cobra.Command {
	var (
		sets      []string
		only      []string
		precision int
		trace     bool
	)

	cmd := &cobra.Command{
		Use:   "eval [script.rpl]",
		Short: "Evaluate a script and print its values",
		Long: `Evaluate a script and print its values.

The eval command compiles the script into a dataflow graph, applies any
--set overrides to its inputs, and pulls the reported values through the
graph. Without --only it prints every derived value in declaration order.

Use --trace to watch each override's invalidation travel through the graph
before values are recomputed.

Use 'watch' to edit inputs interactively, or 'dot' to export the graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSets(sets)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("precision") && c.Config.Eval.Precision != 0 {
				precision = c.Config.Eval.Precision
			}
			return c.runEval(cmd.Context(), args[0], evalParams{
				overrides: overrides,
				only:      only,
				precision: precision,
				trace:     trace,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "override an input as name=value (repeatable)")
	cmd.Flags().StringSliceVar(&only, "only", nil, "print only these names (comma-separated)")
	cmd.Flags().IntVarP(&precision, "precision", "p", 0, "decimal places for printed values (default 6)")
	cmd.Flags().BoolVar(&trace, "trace", false, "show how far each --set cascades through the graph")

	return cmd
}

// evalParams carries the parsed eval flags.
type evalParams struct {
	overrides []setOverride
	only      []string
	precision int
	trace     bool
}

// runEval compiles the script, applies overrides, and prints the values.
func (c *CLI) runEval(ctx context.Context, path string, params evalParams) error {
	timer := newProgress(c.Logger)

	source, err := readScript(path)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Source:    source,
		Name:      scriptName(path),
		Sets:      setsAsMap(params.overrides),
		Only:      params.only,
		Precision: params.precision,
	}
	opts.SetEvalDefaults()

	var (
		prog   *expr.Program
		values []expr.NamedValue
	)
	if params.trace {
		prog, values, err = traceEval(source, params, opts.Precision)
		if err != nil {
			return err
		}
	} else {
		runner, err := c.newRunner(true) // eval never touches the artifact cache
		if err != nil {
			return err
		}
		defer runner.Close()

		result, err := runner.Evaluate(ctx, opts)
		if err != nil {
			return err
		}
		prog, values = result.Program, result.Values
	}

	for _, v := range values {
		printNamedValue(v.Name, formatFloat(v.Value, opts.Precision))
	}
	timer.done(fmt.Sprintf("Evaluated %s", scriptName(path)))

	printNewline()
	printStats(len(prog.InputNames()), len(prog.Names()), false)
	printNextStep("Visualize it", fmt.Sprintf("ripple dot %s --values", path))
	return nil
}

// traceEval compiles and evaluates the script itself so probes can observe
// each override's cascade. The graph is evaluated before every override;
// an empty slot never rebroadcasts, so cascades are only countable when
// they start from a fully computed graph.
func traceEval(source string, params evalParams, precision int) (*expr.Program, []expr.NamedValue, error) {
	prog, err := expr.Compile(source)
	if err != nil {
		return nil, nil, err
	}

	probe := flow.NewProbe()
	derived := prog.Names()
	for _, name := range derived {
		if n, ok := prog.Node(name); ok {
			probe.Attach(n)
		}
	}

	prog.Eval()
	for _, o := range params.overrides {
		probe.Reset()
		if err := prog.SetInput(o.name, o.value); err != nil {
			return nil, nil, err
		}
		printInfo("set %s = %s", StyleHighlight.Render(o.name), formatFloat(o.value, precision))
		printDetail("invalidated %d of %d derived values", probe.Count(), len(derived))
		prog.Eval()
	}

	values, err := selectValues(prog, params.only)
	if err != nil {
		return nil, nil, err
	}
	return prog, values, nil
}

// selectValues reports the named values, or every derived value when only
// is empty.
func selectValues(prog *expr.Program, only []string) ([]expr.NamedValue, error) {
	if len(only) == 0 {
		return prog.Eval(), nil
	}
	values := make([]expr.NamedValue, 0, len(only))
	for _, name := range only {
		v, err := prog.Value(name)
		if err != nil {
			return nil, err
		}
		values = append(values, expr.NamedValue{Name: name, Value: v})
	}
	return values, nil
}

// setOverride is one parsed --set flag.
type setOverride struct {
	name  string
	value float32
}

// parseSets parses repeated name=value flags, preserving flag order so
// trace output applies overrides in the order they were given.
func parseSets(pairs []string) ([]setOverride, error) {
	overrides := make([]setOverride, 0, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidValue, "invalid --set %q (expected name=value)", pair)
		}
		name = strings.TrimSpace(name)
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidValue, "invalid --set value %q for %s", raw, name)
		}
		overrides = append(overrides, setOverride{name: name, value: float32(v)})
	}
	return overrides, nil
}

// setsAsMap converts parsed overrides to the pipeline's map form. Later
// flags win on duplicate names.
func setsAsMap(overrides []setOverride) map[string]float32 {
	if len(overrides) == 0 {
		return nil
	}
	sets := make(map[string]float32, len(overrides))
	for _, o := range overrides {
		sets[o.name] = o.value
	}
	return sets
}

// formatFloat renders v with at most prec decimal places, trimming trailing
// zeros so whole numbers print bare.
func formatFloat(v float32, prec int) string {
	s := strconv.FormatFloat(float64(v), 'f', prec, 32)
	if prec > 0 && strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
