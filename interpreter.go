// interpreter.go — public surface of the Puffin runtime.
//
// OVERVIEW
// --------
// This file holds the exported half of the runtime: the tagged value model,
// the variable environment, structured runtime errors, and the Interpreter
// entry points. The evaluator and executor live in interpreter_exec.go.
//
// VALUES
// ------
// `Value` is a tagged sum. Only the integer variant exists today — the
// language admits nothing but non-negative integer literals — but keeping
// the tag means adding floats or other numeric kinds later is a new tag,
// not a new representation.
//
// ENVIRONMENT
// -----------
// `Env` maps names to slots. A slot is either a scalar or a sparse integer-
// keyed array; the first write to a name fixes which, and every later access
// re-checks the kind in both directions (a program may first use a name as a
// scalar and only later, erroneously, as an array). Reads of unbound names
// or unset array indices yield 0.
//
// ENTRY POINTS
// ------------
// An Interpreter writes print output to its `Out` sink. Two modes:
//   - Ephemeral: `Run`/`RunSource` execute a program against a fresh
//     environment that is discarded afterwards. This is the normal batch
//     path: begin routines, each conditional routine once, end routines.
//   - Persistent: `RunPersistent`/`RunPersistentSource` execute against the
//     interpreter's long-lived `Global` environment, so assignments survive
//     across calls. This is the REPL path; as a convenience, a source that
//     is a single guard with no action ("1 + 2") is evaluated and returned
//     as a Value instead of being discarded as a no-op.
//
// ERRORS
// ------
// All entry points return a plain error. Runtime failures are *RuntimeError
// with a Kind (division by zero, scalar/array kind conflict) and, when the
// failing AST node is known, a 1-based position. Any error aborts the run
// immediately; no further statements execute.
package puffin

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

////////////////////////////////////////////////////////////////////////////////
//                                   VALUES
////////////////////////////////////////////////////////////////////////////////

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTInt ValueTag = iota // int64
)

// Value is the runtime carrier for evaluated expressions.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Int constructs an integer Value.
func Int(n int64) Value { return Value{Tag: VTInt, Data: n} }

// AsInt returns the integer payload. It panics if the tag is not VTInt,
// which cannot happen for values produced by this evaluator.
func (v Value) AsInt() int64 { return v.Data.(int64) }

// Truthy reports whether the value counts as true in a condition:
// any non-zero integer.
func (v Value) Truthy() bool { return v.AsInt() != 0 }

// String renders the decimal representation used by `print`.
func (v Value) String() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	default:
		return "<unknown>"
	}
}

////////////////////////////////////////////////////////////////////////////////
//                               RUNTIME ERRORS
////////////////////////////////////////////////////////////////////////////////

// RuntimeErrorKind classifies runtime failures.
type RuntimeErrorKind int

const (
	RTDivisionByZero RuntimeErrorKind = iota
	RTNameKindConflict
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case RTDivisionByZero:
		return "division by zero"
	case RTNameKindConflict:
		return "name kind conflict"
	default:
		return "runtime error"
	}
}

// RuntimeError is a fatal execution error. Line/Col are 1-based when known
// and zero when the failure is not traceable to a single token.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("RUNTIME ERROR: %s", e.Msg)
}

////////////////////////////////////////////////////////////////////////////////
//                                 ENVIRONMENT
////////////////////////////////////////////////////////////////////////////////

type slotKind int

const (
	slotScalar slotKind = iota
	slotArray
)

func (k slotKind) String() string {
	if k == slotArray {
		return "an array"
	}
	return "a scalar"
}

// slot is one bound name. Exactly one of scalar/arr is live, per kind.
type slot struct {
	kind   slotKind
	scalar int64
	arr    map[int64]int64
}

// Env is the runtime store of all scalar and array bindings for one
// execution. It is exclusively owned by the executing goroutine.
type Env struct {
	slots map[string]*slot
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{slots: map[string]*slot{}}
}

// lookup fetches the slot for name and checks its kind. It does not create
// a slot; absent names are reported as (nil, nil) so reads default to zero.
func (e *Env) lookup(name string, want slotKind) (*slot, error) {
	s, ok := e.slots[name]
	if !ok {
		return nil, nil
	}
	if s.kind != want {
		return nil, &RuntimeError{
			Kind: RTNameKindConflict,
			Msg:  fmt.Sprintf("%q is %s, used as %s", name, s.kind, want),
		}
	}
	return s, nil
}

// bind fetches or creates the slot for name, fixing its kind on first use.
func (e *Env) bind(name string, want slotKind) (*slot, error) {
	s, err := e.lookup(name, want)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &slot{kind: want}
		if want == slotArray {
			s.arr = map[int64]int64{}
		}
		e.slots[name] = s
	}
	return s, nil
}

// ReadScalar returns the value of scalar name, 0 if unbound.
func (e *Env) ReadScalar(name string) (int64, error) {
	s, err := e.lookup(name, slotScalar)
	if err != nil || s == nil {
		return 0, err
	}
	return s.scalar, nil
}

// ReadIndex returns arr[index], 0 if the array or the index is unset.
func (e *Env) ReadIndex(name string, index int64) (int64, error) {
	s, err := e.lookup(name, slotArray)
	if err != nil || s == nil {
		return 0, err
	}
	return s.arr[index], nil
}

// WriteScalar sets scalar name, binding it on first use.
func (e *Env) WriteScalar(name string, v int64) error {
	s, err := e.bind(name, slotScalar)
	if err != nil {
		return err
	}
	s.scalar = v
	return nil
}

// WriteIndex sets arr[index], binding the array on first use.
func (e *Env) WriteIndex(name string, index, v int64) error {
	s, err := e.bind(name, slotArray)
	if err != nil {
		return err
	}
	s.arr[index] = v
	return nil
}

////////////////////////////////////////////////////////////////////////////////
//                                 INTERPRETER
////////////////////////////////////////////////////////////////////////////////

// Interpreter drives program execution. Out receives one decimal line per
// executed print statement, in execution order; writes are synchronous, so
// output order always matches statement order.
type Interpreter struct {
	// Global is the persistent environment used by RunPersistent*.
	Global *Env
	// Out is the print sink. Defaults to os.Stdout.
	Out io.Writer
}

// NewInterpreter creates an interpreter writing to out (os.Stdout when nil).
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		Global: NewEnv(),
		Out:    out,
	}
}

// Run executes prog against a fresh environment: begin routines in source
// order, then each conditional routine exactly once, then end routines.
// The first runtime error aborts the run.
func (ip *Interpreter) Run(prog *Program) error {
	return ip.exec(prog, NewEnv())
}

// RunSource parses and runs src. Lex, parse, and runtime errors are
// returned with a caret-annotated source snippet.
func (ip *Interpreter) RunSource(src string) error {
	prog, err := Parse(src)
	if err != nil {
		return WrapErrorWithSource(err, src)
	}
	if err := ip.Run(prog); err != nil {
		return WrapErrorWithSource(err, src)
	}
	return nil
}

// RunPersistent executes prog against the Global environment. When prog is
// a single guard with no action, the guard is evaluated and returned with
// echoed=true instead of being run as a (no-op) routine.
func (ip *Interpreter) RunPersistent(prog *Program) (v Value, echoed bool, err error) {
	if e := echoExpr(prog); e != nil {
		v, err = ip.evalIn(e, ip.Global)
		return v, err == nil, err
	}
	return Value{}, false, ip.exec(prog, ip.Global)
}

// RunPersistentSource parses src and calls RunPersistent, wrapping any
// error with a source snippet.
func (ip *Interpreter) RunPersistentSource(src string) (Value, bool, error) {
	prog, err := Parse(src)
	if err != nil {
		return Value{}, false, WrapErrorWithSource(err, src)
	}
	v, echoed, err := ip.RunPersistent(prog)
	if err != nil {
		return Value{}, false, WrapErrorWithSource(err, src)
	}
	return v, echoed, nil
}

// echoExpr returns the lone condition of a one-routine, guard-only program,
// or nil when prog is anything else.
func echoExpr(prog *Program) Expr {
	if len(prog.Routines) != 1 {
		return nil
	}
	r := prog.Routines[0]
	if r.Kind != RoutineCond || r.Cond == nil || r.Action != nil {
		return nil
	}
	return r.Cond
}
