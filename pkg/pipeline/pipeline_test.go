package pipeline

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ripple/pkg/cache"
	"github.com/matzehuels/ripple/pkg/errors"
	"github.com/matzehuels/ripple/pkg/expr"
	"github.com/matzehuels/ripple/pkg/observability"
)

const sampleSource = "input x = 2\ny = x * 3\n"

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"invalid", true},
		{"DOT", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) error code = %v, want %v", tt.format, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"dot", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"dot", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateRankdir(t *testing.T) {
	tests := []struct {
		rankdir string
		wantErr bool
	}{
		{"TB", false},
		{"BT", false},
		{"LR", false},
		{"RL", false},
		{"lr", true}, // case-sensitive
		{"diagonal", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateRankdir(tt.rankdir)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRankdir(%q) error = %v, wantErr %v", tt.rankdir, err, tt.wantErr)
		}
	}
}

func TestSetEvalDefaults(t *testing.T) {
	tests := []struct {
		precision int
		want      int
	}{
		{0, DefaultPrecision},
		{-1, 0},
		{3, 3},
		{MaxPrecision, MaxPrecision},
		{12, MaxPrecision},
	}

	for _, tt := range tests {
		opts := Options{Precision: tt.precision}
		opts.SetEvalDefaults()
		if opts.Precision != tt.want {
			t.Errorf("SetEvalDefaults() with %d: Precision = %d, want %d", tt.precision, opts.Precision, tt.want)
		}
		if opts.Name != DefaultName {
			t.Errorf("Name should be %q, got %q", DefaultName, opts.Name)
		}
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatDOT {
		t.Errorf("Formats should be [dot], got %v", opts.Formats)
	}
	if opts.Rankdir != DefaultRankdir {
		t.Errorf("Rankdir should be %s, got %s", DefaultRankdir, opts.Rankdir)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: sampleSource}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalPrecision := opts.Precision
	originalFormats := slices.Clone(opts.Formats)
	originalRankdir := opts.Rankdir

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Precision != originalPrecision {
		t.Error("Precision changed on second call")
	}
	if !slices.Equal(opts.Formats, originalFormats) {
		t.Error("Formats changed on second call")
	}
	if opts.Rankdir != originalRankdir {
		t.Error("Rankdir changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Rankdir: "LR", Sets: map[string]float32{"x": 5}}

	ko := opts.ArtifactKeyOpts("dot")
	if ko.Format != "dot" || ko.Rankdir != "LR" || ko.Values {
		t.Errorf("unexpected key opts: %+v", ko)
	}
	if ko.Sets != nil {
		t.Error("Sets should not reach the key without Values")
	}

	opts.Values = true
	ko = opts.ArtifactKeyOpts("dot")
	if !ko.Values || len(ko.Sets) != 1 {
		t.Errorf("Sets should reach the key with Values: %+v", ko)
	}
}

func TestRunnerExecuteDOT(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Source:  sampleSource,
		Name:    "sample",
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.StmtCount != 2 {
		t.Errorf("StmtCount = %d, want 2", result.Stats.StmtCount)
	}
	if result.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", result.Stats.NodeCount)
	}
	if len(result.Values) != 1 || result.Values[0].Name != "y" || result.Values[0].Value != 6 {
		t.Errorf("Values = %v, want [{y 6}]", result.Values)
	}
	if result.ScriptHash == "" {
		t.Error("ScriptHash should be set")
	}
	if result.CacheInfo.RenderHit {
		t.Error("NullCache should never report a render hit")
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph G") {
		t.Errorf("DOT artifact missing digraph header:\n%s", dot)
	}
	if !strings.Contains(dot, `label="y"`) {
		t.Errorf("DOT artifact missing y node:\n%s", dot)
	}
}

func TestRunnerExecuteCachesArtifacts(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	opts := Options{Source: sampleSource, Formats: []string{FormatDOT}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache read
	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute() error = %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run should not report a cache hit")
	}
}

func TestRunnerEvaluateSetsAndOnly(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Evaluate(context.Background(), Options{
		Source: sampleSource,
		Sets:   map[string]float32{"x": 5},
		Only:   []string{"y", "x"},
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	want := []expr.NamedValue{{Name: "y", Value: 15}, {Name: "x", Value: 5}}
	if !slices.Equal(result.Values, want) {
		t.Errorf("Values = %v, want %v", result.Values, want)
	}
	if result.Artifacts != nil {
		t.Error("Evaluate() should not render artifacts")
	}
}

func TestRunnerEvaluateErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	tests := []struct {
		opts Options
		code errors.Code
	}{
		{Options{Source: "y ="}, errors.ErrCodeInvalidScript},
		{Options{Source: sampleSource, Sets: map[string]float32{"zz": 1}}, errors.ErrCodeUnknownName},
		{Options{Source: sampleSource, Only: []string{"zz"}}, errors.ErrCodeUnknownName},
		{Options{Source: sampleSource, Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		_, err := r.Evaluate(context.Background(), tt.opts)
		if err == nil {
			t.Errorf("Evaluate(%+v) should fail", tt.opts)
			continue
		}
		if !errors.Is(err, tt.code) {
			t.Errorf("Evaluate(%+v) error = %v, want code %v", tt.opts, err, tt.code)
		}
	}
}

func TestRenderValues(t *testing.T) {
	p, err := expr.Compile(sampleSource)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	artifacts, err := Render(context.Background(), p, Options{
		Formats: []string{FormatDOT},
		Values:  true,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	dot := string(artifacts[FormatDOT])
	if !strings.Contains(dot, `label="y\n6"`) {
		t.Errorf("DOT should carry the current value of y:\n%s", dot)
	}
	if !strings.Contains(dot, `label="x\n2"`) {
		t.Errorf("DOT should carry the current value of x:\n%s", dot)
	}
}

// recordingHooks captures completion events in order.
type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnParseComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "parse")
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "build")
}

func (h *recordingHooks) OnEvalComplete(_ context.Context, _ string, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "eval")
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, _ error) {
	h.events = append(h.events, "render")
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{Source: sampleSource, Formats: []string{FormatDOT}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{"parse", "build", "eval", "render"}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("hook events = %v, want %v", hooks.events, want)
	}
}
