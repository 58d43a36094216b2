package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/render"
)

// treeCommand creates the tree command for terminal graph inspection.
func (c *CLI) treeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [script.rpl]",
		Short: "Print a script's dependency tree",
		Long: `Print a script's dependency tree.

The tree command compiles the script and prints one box-drawing tree per
sink (a value nothing else depends on). A node that feeds several
consumers is expanded once and marked (shared) afterwards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runTree compiles the script and prints its dependency trees.
func runTree(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	source, err := readScript(path)
	if err != nil {
		return err
	}
	prog, err := expr.Compile(source)
	if err != nil {
		return err
	}

	snap := render.Capture(prog.Roots(), prog.Label)
	logger.Debugf("Captured %d nodes, %d edges", len(snap.Nodes), len(snap.Edges))

	fmt.Print(render.Tree(snap))
	return nil
}
