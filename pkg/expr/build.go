package expr

import (
	"strconv"

	"github.com/matzehuels/ripple/pkg/errors"
	"github.com/matzehuels/ripple/pkg/flow"
)

type builtin struct {
	arity int
	make  func(args []flow.Node) flow.Node
}

// builtins maps script function names to graph constructors.
var builtins = map[string]builtin{
	"sin":  {1, func(a []flow.Node) flow.Node { return flow.Sin(a[0]) }},
	"cos":  {1, func(a []flow.Node) flow.Node { return flow.Cos(a[0]) }},
	"tan":  {1, func(a []flow.Node) flow.Node { return flow.Tan(a[0]) }},
	"sqrt": {1, func(a []flow.Node) flow.Node { return flow.Sqrt(a[0]) }},
	"abs":  {1, func(a []flow.Node) flow.Node { return flow.Abs(a[0]) }},
	"exp":  {1, func(a []flow.Node) flow.Node { return flow.Exp(a[0]) }},
	"ln":   {1, func(a []flow.Node) flow.Node { return flow.Ln(a[0]) }},
	"neg":  {1, func(a []flow.Node) flow.Node { return flow.Neg(a[0]) }},
	"pow":  {2, func(a []flow.Node) flow.Node { return flow.Pow(a[0], a[1]) }},
	"min":  {2, func(a []flow.Node) flow.Node { return flow.Min(a[0], a[1]) }},
	"max":  {2, func(a []flow.Node) flow.Node { return flow.Max(a[0], a[1]) }},
}

// NamedValue pairs a script name with its current value.
type NamedValue struct {
	Name  string
	Value float32
}

// Program is a compiled script bound to a live dataflow graph. Inputs stay
// settable after the build; derived values recompute on demand.
type Program struct {
	inputs     map[string]*flow.Input
	nodes      map[string]flow.Node
	inputOrder []string
	order      []string
	labels     map[flow.Node]string
	named      map[flow.Node]bool
}

// Compile parses and builds in one step.
func Compile(src string) (*Program, error) {
	script, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Build(script)
}

// Build compiles a parsed script into a Program. Statements bind in source
// order, and a reference only resolves to a name declared above it, so the
// resulting graph cannot contain a cycle.
func Build(script *Script) (*Program, error) {
	p := &Program{
		inputs: make(map[string]*flow.Input),
		nodes:  make(map[string]flow.Node),
		labels: make(map[flow.Node]string),
		named:  make(map[flow.Node]bool),
	}
	for _, stmt := range script.Stmts {
		switch s := stmt.(type) {
		case *InputStmt:
			if err := p.declare(s.Pos, s.Name); err != nil {
				return nil, err
			}
			in := flow.NewInput()
			if s.Init != nil {
				in.Set(s.Init.Value)
			}
			p.inputs[s.Name] = in
			p.nodes[s.Name] = in
			p.inputOrder = append(p.inputOrder, s.Name)
			p.setName(in, s.Name)
		case *AssignStmt:
			if err := p.declare(s.Pos, s.Name); err != nil {
				return nil, err
			}
			n, err := p.build(s.Expr)
			if err != nil {
				return nil, err
			}
			p.nodes[s.Name] = n
			p.order = append(p.order, s.Name)
			p.setName(n, s.Name)
		}
	}
	return p, nil
}

func (p *Program) declare(pos Pos, name string) error {
	if err := errors.ValidateName(name); err != nil {
		return errors.NewAt(errors.ErrCodeInvalidName, pos.Line, pos.Col, "%s", errors.UserMessage(err))
	}
	if _, ok := p.nodes[name]; ok {
		return errors.NewAt(errors.ErrCodeDuplicateName, pos.Line, pos.Col, "%q is already defined", name)
	}
	return nil
}

// setName records the script name of a node. A node keeps its first name,
// so an alias like "b = a" does not relabel a.
func (p *Program) setName(n flow.Node, name string) {
	if p.named[n] {
		return
	}
	p.named[n] = true
	p.labels[n] = name
}

func (p *Program) build(e Expr) (flow.Node, error) {
	switch e := e.(type) {
	case *NumberLit:
		return p.constNode(e.Value), nil
	case *Ref:
		n, ok := p.nodes[e.Name]
		if !ok {
			return nil, errors.NewAt(errors.ErrCodeUnknownName, e.Pos.Line, e.Pos.Col, "unknown name %q", e.Name)
		}
		return n, nil
	case *Unary:
		// Negating a literal folds into the constant itself.
		if lit, ok := e.X.(*NumberLit); ok {
			return p.constNode(-lit.Value), nil
		}
		x, err := p.build(e.X)
		if err != nil {
			return nil, err
		}
		return p.opNode(flow.Neg(x), "neg"), nil
	case *Binary:
		x, err := p.build(e.X)
		if err != nil {
			return nil, err
		}
		y, err := p.build(e.Y)
		if err != nil {
			return nil, err
		}
		return p.opNode(binaryNode(e.Op, x, y), e.Op), nil
	case *Call:
		b, ok := builtins[e.Func]
		if !ok {
			return nil, errors.NewAt(errors.ErrCodeUnknownFunc, e.Pos.Line, e.Pos.Col, "unknown function %q", e.Func)
		}
		if len(e.Args) != b.arity {
			return nil, errors.NewAt(errors.ErrCodeBadArity, e.Pos.Line, e.Pos.Col, "%s takes %d argument(s), got %d", e.Func, b.arity, len(e.Args))
		}
		args := make([]flow.Node, len(e.Args))
		for i, a := range e.Args {
			n, err := p.build(a)
			if err != nil {
				return nil, err
			}
			args[i] = n
		}
		return p.opNode(b.make(args), e.Func), nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "unhandled expression %T", e)
}

func binaryNode(op string, x, y flow.Node) flow.Node {
	switch op {
	case "+":
		return flow.Add(x, y)
	case "-":
		return flow.Sub(x, y)
	case "*":
		return flow.Mul(x, y)
	case "/":
		return flow.Div(x, y)
	case "^":
		return flow.Pow(x, y)
	}
	// The parser only produces the operators above.
	panic("expr: unknown operator " + op)
}

func (p *Program) constNode(v float32) flow.Node {
	n := flow.Const(v)
	// Equal constants share one handle, so a named one keeps its name.
	if !p.named[n] {
		p.labels[n] = formatValue(v)
	}
	return n
}

func (p *Program) opNode(n flow.Node, label string) flow.Node {
	p.labels[n] = label
	return n
}

func formatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// InputNames returns input names in declaration order.
func (p *Program) InputNames() []string {
	return append([]string(nil), p.inputOrder...)
}

// Names returns derived names in declaration order.
func (p *Program) Names() []string {
	return append([]string(nil), p.order...)
}

// SetInput sets the value of a named input.
func (p *Program) SetInput(name string, v float32) error {
	in, ok := p.inputs[name]
	if !ok {
		return errors.New(errors.ErrCodeUnknownName, "no input named %q", name)
	}
	in.Set(v)
	return nil
}

// Value returns the current value of any named node.
func (p *Program) Value(name string) (float32, error) {
	n, ok := p.nodes[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownName, "no node named %q", name)
	}
	return n.Value(), nil
}

// Node returns the graph node bound to a name.
func (p *Program) Node(name string) (flow.Node, bool) {
	n, ok := p.nodes[name]
	return n, ok
}

// Label returns the display label of a node the build created: its script
// name for named nodes, the literal value for constants, the operator or
// function name for anonymous interior nodes. Nodes the build did not
// create label as "".
func (p *Program) Label(n flow.Node) string {
	return p.labels[n]
}

// Roots returns every named node, inputs first, each group in declaration
// order.
func (p *Program) Roots() []flow.Node {
	roots := make([]flow.Node, 0, len(p.inputOrder)+len(p.order))
	for _, name := range p.inputOrder {
		roots = append(roots, p.nodes[name])
	}
	for _, name := range p.order {
		roots = append(roots, p.nodes[name])
	}
	return roots
}

// Eval computes every derived value in declaration order.
func (p *Program) Eval() []NamedValue {
	out := make([]NamedValue, len(p.order))
	for i, name := range p.order {
		out[i] = NamedValue{Name: name, Value: p.nodes[name].Value()}
	}
	return out
}
