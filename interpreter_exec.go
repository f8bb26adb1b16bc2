// interpreter_exec.go — evaluator and executor (private).
//
// Execution is a straight-line drive over the parsed program:
//
//	begin actions (source order)
//	  -> each conditional routine exactly once (source order)
//	  -> end actions (source order)
//
// Inside the executor, fatal runtime errors travel as a panic carrying a
// *RuntimeError and are recovered at the exec boundary, so deeply nested
// evaluation does not have to thread an error return through every arm.
// Nothing escapes the package: the public entry points in interpreter.go
// always surface a plain error.
package puffin

import (
	"fmt"
	"io"
)

// rtAbort is the internal abort signal for fatal runtime errors.
type rtAbort struct {
	err *RuntimeError
}

type executor struct {
	env *Env
	out io.Writer
}

// exec runs prog against env, converting the abort signal back to an error.
func (ip *Interpreter) exec(prog *Program, env *Env) (err error) {
	x := &executor{env: env, out: ip.Out}
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtAbort)
			if !ok {
				panic(r)
			}
			err = sig.err
		}
	}()

	for _, r := range prog.Routines {
		if r.Kind == RoutineBegin {
			x.runAction(r.Action)
		}
	}
	for _, r := range prog.Routines {
		if r.Kind != RoutineCond {
			continue
		}
		if r.Cond != nil && !x.eval(r.Cond).Truthy() {
			continue
		}
		if r.Action != nil {
			x.runAction(r.Action)
		}
	}
	for _, r := range prog.Routines {
		if r.Kind == RoutineEnd {
			x.runAction(r.Action)
		}
	}
	return nil
}

// evalIn evaluates a single expression against env (the REPL echo path).
func (ip *Interpreter) evalIn(e Expr, env *Env) (v Value, err error) {
	x := &executor{env: env, out: ip.Out}
	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(rtAbort)
			if !ok {
				panic(r)
			}
			err = sig.err
		}
	}()
	return x.eval(e), nil
}

func (x *executor) runAction(a *Action) {
	for _, s := range a.Stmts {
		switch st := s.(type) {
		case *PrintStmt:
			v := x.eval(st.Expr)
			fmt.Fprintf(x.out, "%s\n", v)
		case *AssignStmt:
			v := x.eval(st.Expr)
			x.assign(st.Target, v)
		}
	}
}

func (x *executor) assign(id Ident, v Value) {
	if id.IsArray() {
		idx := x.eval(id.Index)
		x.check(x.env.WriteIndex(id.Name, idx.AsInt(), v.AsInt()), id.Line, id.Col)
		return
	}
	x.check(x.env.WriteScalar(id.Name, v.AsInt()), id.Line, id.Col)
}

// eval computes the integer value of e. Operands evaluate left before right.
func (x *executor) eval(e Expr) Value {
	switch n := e.(type) {
	case *IntLit:
		return Int(n.Value)
	case *VarExpr:
		return x.readVar(n.Ident)
	case *BinaryExpr:
		l := x.eval(n.Left).AsInt()
		r := x.eval(n.Right).AsInt()
		return Int(x.apply(n, l, r))
	default:
		panic(fmt.Sprintf("unhandled expression node %T", e))
	}
}

func (x *executor) readVar(id Ident) Value {
	if id.IsArray() {
		idx := x.eval(id.Index)
		v, err := x.env.ReadIndex(id.Name, idx.AsInt())
		x.check(err, id.Line, id.Col)
		return Int(v)
	}
	v, err := x.env.ReadScalar(id.Name)
	x.check(err, id.Line, id.Col)
	return Int(v)
}

func (x *executor) apply(n *BinaryExpr, l, r int64) int64 {
	switch n.Op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		if r == 0 {
			x.fail(&RuntimeError{Kind: RTDivisionByZero, Msg: "division by zero"}, n.Line, n.Col)
		}
		return l / r
	case OpEq:
		return boolToInt(l == r)
	case OpLess:
		return boolToInt(l < r)
	case OpLessEq:
		return boolToInt(l <= r)
	case OpGreater:
		return boolToInt(l > r)
	case OpGreaterEq:
		return boolToInt(l >= r)
	default:
		panic(fmt.Sprintf("unhandled operator %v", n.Op))
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// check aborts on err, stamping the node position onto position-less
// environment errors.
func (x *executor) check(err error, line, col int) {
	if err == nil {
		return
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		re = &RuntimeError{Msg: err.Error()}
	}
	x.fail(re, line, col)
}

func (x *executor) fail(re *RuntimeError, line, col int) {
	if re.Line == 0 {
		re.Line, re.Col = line, col
	}
	panic(rtAbort{err: re})
}
