package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ripple/pkg/pipeline"
)

// dotCommand creates the dot command for exporting a script's graph.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		rankdir    string
		values     bool
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "dot [script.rpl]",
		Short: "Export a script's graph as DOT or SVG",
		Long: `Export a script's graph as DOT or SVG.

The dot command compiles the script and renders its dataflow graph in
Graphviz DOT format, or as SVG through the embedded graphviz engine. With
--values every node label carries the node's current value.

A single format with no --output streams to stdout, so the output can be
piped straight into graphviz. Otherwise artifacts are written next to the
script (or under --output) as one file per format.

Rendered artifacts are cached locally for faster subsequent runs. Use
--refresh to re-render and rewrite the cache, or --no-cache to leave the
cache untouched entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && c.Config.Dot.Format != "" {
				formatsStr = c.Config.Dot.Format
			}
			if !cmd.Flags().Changed("rankdir") && c.Config.Dot.Rankdir != "" {
				rankdir = c.Config.Dot.Rankdir
			}
			if !cmd.Flags().Changed("values") && c.Config.Dot.Values {
				values = true
			}
			if refresh && noCache {
				printWarning("--refresh has no effect with --no-cache")
			}

			opts := pipeline.Options{
				Formats: parseFormats(formatsStr),
				Rankdir: rankdir,
				Values:  values,
				Refresh: refresh,
			}
			opts.SetRenderDefaults()
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateRankdir(opts.Rankdir); err != nil {
				return err
			}
			return c.runDot(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when a cached artifact exists")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg (comma-separated)")
	cmd.Flags().StringVar(&rankdir, "rankdir", "", "graph direction: TB (default), BT, LR, RL")
	cmd.Flags().BoolVar(&values, "values", false, "include current values in node labels")

	return cmd
}

// runDot compiles the script and writes the rendered artifacts.
func (c *CLI) runDot(ctx context.Context, path string, opts pipeline.Options, output string, noCache bool) error {
	source, err := readScript(path)
	if err != nil {
		return err
	}
	opts.Source = source
	opts.Name = scriptName(path)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, "Rendering graph...")
	result, err := runner.Execute(ctx, opts)
	spin.stop()
	if err != nil {
		return err
	}

	return writeArtifacts(result, opts.Formats, path, output)
}

// writeArtifacts writes rendered artifacts to stdout or to files. A single
// format with no explicit output streams to stdout, which keeps
// `ripple dot script.rpl | dot -Tpng` working; everything else becomes one
// file per format.
func writeArtifacts(result *pipeline.Result, formats []string, input, output string) error {
	if len(formats) == 1 && output == "" {
		return writeArtifact("", result.Artifacts[formats[0]])
	}

	base := basePath(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %s", strings.Join(formats, ", "))
	for _, path := range paths {
		printFile(path)
	}
	printStats(len(result.Program.InputNames()), len(result.Program.Names()), result.CacheInfo.RenderHit)
	return nil
}

// writeArtifact writes one artifact to path, or to stdout when path is
// empty.
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends in
// a known format extension, that extension is stripped so a per-format
// suffix can be appended.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
