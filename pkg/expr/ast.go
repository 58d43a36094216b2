package expr

// Expr is an expression tree node.
type Expr interface {
	exprNode()
	// Position returns the source position of the expression.
	Position() Pos
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Pos   Pos
	Value float32
}

// Ref refers to a name declared earlier in the script.
type Ref struct {
	Pos  Pos
	Name string
}

// Unary is a prefix operation. Op is "-".
type Unary struct {
	Pos Pos
	Op  string
	X   Expr
}

// Binary is an infix operation. Op is one of "+", "-", "*", "/", "^".
type Binary struct {
	Pos  Pos
	Op   string
	X, Y Expr
}

// Call applies a built-in function to arguments.
type Call struct {
	Pos  Pos
	Func string
	Args []Expr
}

func (e *NumberLit) exprNode() {}
func (e *Ref) exprNode()       {}
func (e *Unary) exprNode()     {}
func (e *Binary) exprNode()    {}
func (e *Call) exprNode()      {}

func (e *NumberLit) Position() Pos { return e.Pos }
func (e *Ref) Position() Pos       { return e.Pos }
func (e *Unary) Position() Pos     { return e.Pos }
func (e *Binary) Position() Pos    { return e.Pos }
func (e *Call) Position() Pos      { return e.Pos }

// Stmt is a single script statement.
type Stmt interface {
	stmtNode()
}

// InputStmt declares a mutable input. Init is nil when the declaration
// carries no initial value, in which case the input starts at zero.
type InputStmt struct {
	Pos  Pos
	Name string
	Init *NumberLit
}

// AssignStmt binds a name to the value of an expression.
type AssignStmt struct {
	Pos  Pos
	Name string
	Expr Expr
}

func (s *InputStmt) stmtNode()  {}
func (s *AssignStmt) stmtNode() {}

// Script is a parsed script, statements in source order.
type Script struct {
	Stmts []Stmt
}
