// Package pipeline provides the core evaluation pipeline for Ripple.
//
// This package implements the complete parse → build → eval → render pipeline
// shared by every CLI command. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Turn script source into an AST
//  2. Build: Assemble the dataflow graph from the AST
//  3. Eval: Pull the reported values through the graph
//  4. Render: Generate output in various formats (DOT, SVG)
//
// Only the render stage is cached. Parsing, building, and evaluating a
// script are microsecond work; pushing DOT through the embedded graphviz
// engine is not.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  src,
//	    Name:    "payroll",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Evaluate without rendering:
//
//	result, err := runner.Evaluate(ctx, opts)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripple/pkg/cache"
	"github.com/matzehuels/ripple/pkg/errors"
	"github.com/matzehuels/ripple/pkg/expr"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultPrecision is the number of decimal places used when printing
	// values. Six digits covers everything a float32 can reliably carry.
	DefaultPrecision = 6

	// MaxPrecision caps the precision option. Beyond eight decimal places
	// float32 output is noise.
	MaxPrecision = 8

	// DefaultRankdir is the default graphviz rank direction.
	DefaultRankdir = "TB"

	// DefaultName labels runs whose options carry no script name.
	DefaultName = "script"
)

// Format constants for output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// ValidRankdirs is the set of supported graphviz rank directions.
var ValidRankdirs = map[string]bool{
	"TB": true,
	"BT": true,
	"LR": true,
	"RL": true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the evaluation pipeline.
type Options struct {
	// Eval options
	Source    string             // script text
	Name      string             // script name, for logs and hooks
	Sets      map[string]float32 // input overrides applied before eval
	Only      []string           // report only these names (default: every derived value)
	Precision int                // decimal places for printed values; 0 means DefaultPrecision

	// Render options
	Formats []string // output formats (dot, svg)
	Rankdir string   // graphviz rank direction
	Values  bool     // annotate rendered nodes with current values
	Refresh bool     // bypass the artifact cache read, rewrite fresh results

	// Runtime options
	Logger *log.Logger // overrides the runner's logger for this run

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Program is the compiled dataflow graph.
	Program *expr.Program

	// ScriptHash is the content hash of the script source.
	ScriptHash string

	// Values are the reported values: every derived node in declaration
	// order, or the names selected by Options.Only.
	Values []expr.NamedValue

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. NodeCount counts named
// nodes: inputs plus derived values.
type Stats struct {
	StmtCount  int
	NodeCount  int
	ParseTime  time.Duration
	BuildTime  time.Duration
	EvalTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage. Only rendering is
// cached, so only RenderHit can be set.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankdir checks that a graphviz rank direction is valid.
func ValidateRankdir(rankdir string) error {
	if !ValidRankdirs[rankdir] {
		return errors.New(errors.ErrCodeInvalidValue, "invalid rankdir %q (must be one of: TB, BT, LR, RL)", rankdir)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetEvalDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetEvalDefaults sets default values for evaluation.
// A negative precision means no decimal places at all.
func (o *Options) SetEvalDefaults() {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Precision == 0 {
		o.Precision = DefaultPrecision
	}
	if o.Precision < 0 {
		o.Precision = 0
	}
	if o.Precision > MaxPrecision {
		o.Precision = MaxPrecision
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDOT}
	}
	if o.Rankdir == "" {
		o.Rankdir = DefaultRankdir
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateRankdir(o.Rankdir)
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:  format,
		Rankdir: o.Rankdir,
		Values:  o.Values,
	}
	// Input overrides only reach artifacts that embed values.
	if o.Values {
		opts.Sets = o.Sets
	}
	return opts
}
