package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/ripple/pkg/flow"
)

func sampleSnapshot() *Snapshot {
	x := flow.NewInput()
	x.Set(2)
	y := flow.Mul(x, flow.Const(3))

	names := map[flow.Node]string{x: "x", y: "y"}
	return Capture([]flow.Node{x, y}, func(n flow.Node) string { return names[n] })
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sampleSnapshot(), Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, "rankdir=TB") {
		t.Error("ToDOT() output missing default rankdir")
	}
	if !strings.Contains(dot, `"n0"`) {
		t.Error("ToDOT() output missing node n0")
	}
	if !strings.Contains(dot, `label="x"`) {
		t.Error("ToDOT() output missing label x")
	}
	if !strings.Contains(dot, `"n0" -> "n1"`) {
		t.Error("ToDOT() output missing dependency edge")
	}
}

func TestToDOT_Rankdir(t *testing.T) {
	dot := ToDOT(sampleSnapshot(), Options{Rankdir: "LR"})

	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("ToDOT() output missing rankdir=LR")
	}
}

func TestToDOT_Values(t *testing.T) {
	dot := ToDOT(sampleSnapshot(), Options{Values: true})

	if !strings.Contains(dot, `label="y\n6"`) {
		t.Errorf("ToDOT() values output missing computed value:\n%s", dot)
	}
	if !strings.Contains(dot, `label="x\n2"`) {
		t.Errorf("ToDOT() values output missing input value:\n%s", dot)
	}
	// Constants already show their value as the label.
	if !strings.Contains(dot, `label="3"`) {
		t.Errorf("ToDOT() constant label changed:\n%s", dot)
	}
}

func TestFmtAttrs_Input(t *testing.T) {
	n := Node{ID: "n0", Kind: flow.KindInput}
	attrs := fmtAttrs(n, "x")

	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "lightblue") {
		t.Errorf("fmtAttrs() input missing fill: %v", attrs)
	}
}

func TestFmtAttrs_Const(t *testing.T) {
	n := Node{ID: "n0", Kind: flow.KindConst}
	attrs := fmtAttrs(n, "3")

	joined := strings.Join(attrs, " ")
	if !strings.Contains(joined, "dashed") {
		t.Errorf("fmtAttrs() const missing dashed style: %v", attrs)
	}
	if !strings.Contains(joined, "lightgrey") {
		t.Errorf("fmtAttrs() const missing grey fill: %v", attrs)
	}
}

func TestFmtAttrs_Computed(t *testing.T) {
	n := Node{ID: "n0", Kind: flow.KindComputed}
	attrs := fmtAttrs(n, "y")

	if len(attrs) != 1 {
		t.Errorf("fmtAttrs() computed node should have 1 attr, got %d: %v", len(attrs), attrs)
	}
}

func TestToDOT_EscapesLabels(t *testing.T) {
	snap := &Snapshot{Nodes: []Node{{ID: "n0", Label: `say "hi"`, Kind: flow.KindComputed}}}

	dot := ToDOT(snap, Options{})

	if !strings.Contains(dot, `label="say \"hi\""`) {
		t.Errorf("ToDOT() did not escape label:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)

	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 100.50 200.00"`) {
		t.Errorf("normalizeViewBox() viewBox = %s", got)
	}
	if !strings.Contains(got, `width="100" height="200"`) {
		t.Errorf("normalizeViewBox() dimensions = %s", got)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	svg := []byte(`<svg><g/></svg>`)

	if got := string(normalizeViewBox(svg)); got != string(svg) {
		t.Errorf("normalizeViewBox() = %s, want unchanged", got)
	}
}
