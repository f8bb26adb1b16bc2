// ast.go — the typed syntax tree produced by the parser.
//
// A Program is an ordered list of Routines. The tree is built once by
// parser.go and never mutated afterwards; the executor only reads it.
// Every node records the 1-based line/column of the token that introduced
// it so runtime diagnostics can point back into the source.
package puffin

import (
	"strconv"
	"strings"
)

// Program is the parsed form of one source text.
type Program struct {
	Routines []Routine
}

// RoutineKind selects the Routine variant.
type RoutineKind int

const (
	RoutineBegin RoutineKind = iota // begin { ... }
	RoutineEnd                      // end { ... }
	RoutineCond                     // [condition] [action]
)

// Routine is a top-level unit of a program.
//
// For RoutineBegin and RoutineEnd, Cond is always nil and Action is the
// (possibly empty) setup/teardown block. For RoutineCond either field may be
// nil: a missing condition means the action always runs, a missing action
// means the routine has no observable effect.
type Routine struct {
	Kind   RoutineKind
	Cond   Expr
	Action *Action
	Line   int
	Col    int
}

// Action is a brace-delimited, ordered list of statements.
type Action struct {
	Stmts []Stmt
}

// Stmt is a statement inside an action block.
type Stmt interface {
	stmtNode()
}

// PrintStmt emits the decimal value of Expr followed by a newline.
type PrintStmt struct {
	Expr Expr
	Line int
	Col  int
}

// AssignStmt stores the value of Expr into Target.
type AssignStmt struct {
	Target Ident
	Expr   Expr
	Line   int
	Col    int
}

func (*PrintStmt) stmtNode()  {}
func (*AssignStmt) stmtNode() {}

// Ident names a variable. Index is nil for scalars; for array references it
// is the subscript expression, evaluated at access time.
type Ident struct {
	Name  string
	Index Expr
	Line  int
	Col   int
}

// IsArray reports whether the identifier is an array reference.
func (id Ident) IsArray() bool { return id.Index != nil }

// Expr is an expression node. Pos returns the 1-based line/column used for
// runtime diagnostics.
type Expr interface {
	exprNode()
	Pos() (line, col int)
}

// IntLit is a non-negative integer literal.
type IntLit struct {
	Value int64
	Line  int
	Col   int
}

// VarExpr reads a scalar or array variable.
type VarExpr struct {
	Ident Ident
}

// BinaryExpr applies Op to Left and Right (left evaluated first).
type BinaryExpr struct {
	Op    Op
	Left  Expr
	Right Expr
	Line  int
	Col   int
}

func (*IntLit) exprNode()     {}
func (*VarExpr) exprNode()    {}
func (*BinaryExpr) exprNode() {}

func (e *IntLit) Pos() (int, int)     { return e.Line, e.Col }
func (e *VarExpr) Pos() (int, int)    { return e.Ident.Line, e.Ident.Col }
func (e *BinaryExpr) Pos() (int, int) { return e.Line, e.Col }

// Op is a binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	default:
		return "?"
	}
}

// precedence ranks operators for the precedence-climbing parser.
// All operators are left-associative.
func (op Op) precedence() int {
	switch op {
	case OpMul, OpDiv:
		return 3
	case OpAdd, OpSub:
		return 2
	default: // comparisons
		return 1
	}
}

// FormatExpr renders an expression as a fully parenthesized prefix form,
// e.g. "(+ 2 (* 3 4))". Used by tests and debugging output.
func FormatExpr(e Expr) string {
	var b strings.Builder
	formatExpr(&b, e)
	return b.String()
}

func formatExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *IntLit:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *VarExpr:
		b.WriteString(n.Ident.Name)
		if n.Ident.IsArray() {
			b.WriteByte('[')
			formatExpr(b, n.Ident.Index)
			b.WriteByte(']')
		}
	case *BinaryExpr:
		b.WriteByte('(')
		b.WriteString(n.Op.String())
		b.WriteByte(' ')
		formatExpr(b, n.Left)
		b.WriteByte(' ')
		formatExpr(b, n.Right)
		b.WriteByte(')')
	}
}
