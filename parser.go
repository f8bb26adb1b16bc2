// parser.go — recursive-descent parser for Puffin.
//
// OVERVIEW
// --------
// The parser consumes the token stream produced by lexer.go and builds the
// typed AST defined in ast.go. Structure mirrors the grammar:
//
//	program        = routine*
//	routine        = "begin" action
//	               | "end" action
//	               | [condition] [action]
//	action         = "{" statement_list? "}"
//	statement_list = statement (";" statement?)*     // empty statements OK
//	statement      = "print" expression
//	               | identifier ("=" | "+=" | "-=") expression
//	identifier     = ID ("[" expression "]")?
//
// The grammar's expression production is left-recursive and precedence-free;
// expressions are parsed with precedence climbing instead, using the table in
// ast.go ("*" "/" bind tighter than "+" "-", which bind tighter than the
// comparisons; everything is left-associative). Compound assignments are
// desugared here: `x += e` parses as `x = x + e`.
//
// A condition is any expression not immediately followed by "{". A routine
// may carry a condition, an action, or both; `begin`/`end` always carry an
// action. Parsing fails fast on the first structural error with a
// *ParseError; there is no recovery or partial AST.
//
// The interactive mode (ParseInteractive) is for the REPL: when the token
// stream ends in the middle of a construct, the error is marked incomplete
// (IsIncomplete) so the caller can prompt for a continuation line instead of
// reporting a syntax error.
package puffin

import "fmt"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses a complete Puffin source string and returns its Program.
func Parse(src string) (*Program, error) {
	return parse(src, false)
}

// ParseInteractive parses in REPL-friendly mode. Unterminated constructs at
// EOF produce an incomplete error (see IsIncomplete) instead of a hard
// syntax error.
func ParseInteractive(src string) (*Program, error) {
	return parse(src, true)
}

// ParseError is a structural error from the parser. It reports the expected
// construct, the token actually found, and its position.
type ParseError struct {
	Line       int // 1-based
	Col        int // 0-based
	Msg        string
	incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is an interactive-mode parse error caused
// by input ending mid-construct.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.incomplete
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                            PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

func parse(src string, interactive bool) (*Program, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, interactive: interactive}
	return p.program()
}

type parser struct {
	toks        []Token
	i           int
	interactive bool
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

// errAt builds a ParseError at the given token, flagging it incomplete when
// the parser is interactive and the stream ended early.
func (p *parser) errAt(got Token, msg string) error {
	e := &ParseError{Line: got.Line, Col: got.Col, Msg: msg}
	if p.interactive && got.Type == EOF {
		e.incomplete = true
	}
	return e
}

func describe(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

// ─────────────────────────────── productions ─────────────────────────────────

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for !p.atEnd() {
		r, err := p.routine()
		if err != nil {
			return nil, err
		}
		prog.Routines = append(prog.Routines, r)
	}
	return prog, nil
}

func (p *parser) routine() (Routine, error) {
	tok := p.peek()
	switch tok.Type {
	case BEGIN, END:
		p.i++
		if _, err := p.need(LCURLY, fmt.Sprintf("expected '{' after %q", tok.Lexeme)); err != nil {
			return Routine{}, err
		}
		act, err := p.action()
		if err != nil {
			return Routine{}, err
		}
		kind := RoutineBegin
		if tok.Type == END {
			kind = RoutineEnd
		}
		return Routine{Kind: kind, Action: act, Line: tok.Line, Col: tok.Col + 1}, nil
	case LCURLY:
		// Unconditional routine: action only.
		p.i++
		act, err := p.action()
		if err != nil {
			return Routine{}, err
		}
		return Routine{Kind: RoutineCond, Action: act, Line: tok.Line, Col: tok.Col + 1}, nil
	default:
		// Guarded routine: condition, then an optional action.
		cond, err := p.expression(0)
		if err != nil {
			return Routine{}, err
		}
		r := Routine{Kind: RoutineCond, Cond: cond, Line: tok.Line, Col: tok.Col + 1}
		if p.match(LCURLY) {
			act, err := p.action()
			if err != nil {
				return Routine{}, err
			}
			r.Action = act
		}
		return r, nil
	}
}

// action parses the statement list up to and including the closing '}'.
// The opening '{' has already been consumed.
func (p *parser) action() (*Action, error) {
	act := &Action{}
	for {
		// Runs of ';' are empty statements and parse as no-ops.
		if p.match(SEMI) {
			continue
		}
		if p.match(RCURLY) {
			return act, nil
		}
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "expected '}' to close action")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		act.Stmts = append(act.Stmts, s)
		// A statement is followed by ';' or the closing '}'.
		if p.match(SEMI) {
			continue
		}
		if _, err := p.need(RCURLY, fmt.Sprintf("expected ';' or '}' after statement, found %s", describe(p.peek()))); err != nil {
			return nil, err
		}
		return act, nil
	}
}

func (p *parser) statement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case PRINT:
		p.i++
		e, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		return &PrintStmt{Expr: e, Line: tok.Line, Col: tok.Col + 1}, nil
	case ID:
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		op := p.peek()
		switch op.Type {
		case ASSIGN:
			p.i++
			e, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			return &AssignStmt{Target: id, Expr: e, Line: tok.Line, Col: tok.Col + 1}, nil
		case PLUS_ASSIGN, MINUS_ASSIGN:
			p.i++
			e, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			return &AssignStmt{Target: id, Expr: desugarCompound(id, op, e), Line: tok.Line, Col: tok.Col + 1}, nil
		default:
			return nil, p.errAt(op, fmt.Sprintf("expected '=' after identifier %q, found %s", id.Name, describe(op)))
		}
	default:
		return nil, p.errAt(tok, fmt.Sprintf("expected statement, found %s", describe(tok)))
	}
}

// desugarCompound turns `id += e` into the expression `id + e` (and the same
// for `-=`), so the executor only ever sees plain assignments.
func desugarCompound(id Ident, op Token, rhs Expr) Expr {
	kind := OpAdd
	if op.Type == MINUS_ASSIGN {
		kind = OpSub
	}
	return &BinaryExpr{
		Op:    kind,
		Left:  &VarExpr{Ident: id},
		Right: rhs,
		Line:  op.Line,
		Col:   op.Col + 1,
	}
}

// identifier parses a scalar name with an optional "[ expression ]" subscript.
func (p *parser) identifier() (Ident, error) {
	tok, err := p.need(ID, fmt.Sprintf("expected identifier, found %s", describe(p.peek())))
	if err != nil {
		return Ident{}, err
	}
	id := Ident{Name: tok.Lexeme, Line: tok.Line, Col: tok.Col + 1}
	if p.match(LSQUARE) {
		idx, err := p.expression(0)
		if err != nil {
			return Ident{}, err
		}
		if _, err := p.need(RSQUARE, "expected ']' to close array subscript"); err != nil {
			return Ident{}, err
		}
		id.Index = idx
	}
	return id, nil
}

// ─────────────────────────────── expressions ─────────────────────────────────

// binOpFor maps an operator token to its Op, if any.
func binOpFor(t TokenType) (Op, bool) {
	switch t {
	case PLUS:
		return OpAdd, true
	case MINUS:
		return OpSub, true
	case MULT:
		return OpMul, true
	case DIV:
		return OpDiv, true
	case EQ:
		return OpEq, true
	case LESS:
		return OpLess, true
	case LESS_EQ:
		return OpLessEq, true
	case GREATER:
		return OpGreater, true
	case GREATER_EQ:
		return OpGreaterEq, true
	default:
		return 0, false
	}
}

// expression implements precedence climbing. minPrec is the lowest operator
// precedence this call may consume; recursing with prec+1 on the right
// operand makes every level left-associative.
func (p *parser) expression(minPrec int) (Expr, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.peek()
		op, ok := binOpFor(opTok.Type)
		if !ok || op.precedence() < minPrec {
			return left, nil
		}
		p.i++
		right, err := p.expression(op.precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Op:    op,
			Left:  left,
			Right: right,
			Line:  opTok.Line,
			Col:   opTok.Col + 1,
		}
	}
}

func (p *parser) factor() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.i++
		return &IntLit{Value: tok.Literal.(int64), Line: tok.Line, Col: tok.Col + 1}, nil
	case ID:
		id, err := p.identifier()
		if err != nil {
			return nil, err
		}
		return &VarExpr{Ident: id}, nil
	default:
		return nil, p.errAt(tok, fmt.Sprintf("expected expression, found %s", describe(tok)))
	}
}
