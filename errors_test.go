// errors_test.go
package puffin

import (
	"errors"
	"strings"
	"testing"
)

func Test_Wrap_Syntax_Error_Snippet(t *testing.T) {
	src := "begin { x = 5 }\n{ print }\nend { print x }"
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("want parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	for _, part := range []string{
		"SYNTAX ERROR at 2:9:",
		"   1 | begin { x = 5 }",
		"   2 | { print }",
		"   3 | end { print x }",
	} {
		if !strings.Contains(msg, part) {
			t.Fatalf("snippet missing %q:\n%s", part, msg)
		}
	}

	// Caret sits under column 9 of the offending line.
	caretLine := "     | " + strings.Repeat(" ", 8) + "^"
	if !strings.Contains(msg, caretLine) {
		t.Fatalf("caret misplaced:\n%s", msg)
	}
}

func Test_Wrap_Lex_Error_Snippet(t *testing.T) {
	src := "x = $"
	l := NewLexer(src)
	_, err := l.Scan()
	if err == nil {
		t.Fatalf("want lex error")
	}
	msg := WrapErrorWithSource(err, src).Error()
	if !strings.Contains(msg, "LEXICAL ERROR at 1:5:") {
		t.Fatalf("wrong header:\n%s", msg)
	}
	if !strings.Contains(msg, "     |     ^") {
		t.Fatalf("caret misplaced:\n%s", msg)
	}
}

func Test_Wrap_With_Name_Labels_Source(t *testing.T) {
	src := "{ print }"
	_, err := Parse(src)
	msg := WrapErrorWithName(err, "script.pf", src).Error()
	if !strings.Contains(msg, "SYNTAX ERROR in script.pf at 1:9:") {
		t.Fatalf("missing source name:\n%s", msg)
	}
}

func Test_Wrap_Runtime_Error_Without_Position(t *testing.T) {
	re := &RuntimeError{Kind: RTNameKindConflict, Msg: "boom"}
	if got := WrapErrorWithSource(re, "src"); got != error(re) {
		t.Fatalf("position-less runtime errors must pass through, got %v", got)
	}
}

func Test_Wrap_Foreign_Error_Passthrough(t *testing.T) {
	e := errors.New("not ours")
	if got := WrapErrorWithSource(e, "whatever"); got != e {
		t.Fatalf("foreign errors must pass through, got %v", got)
	}
}

func Test_Wrap_Clamps_Out_Of_Range_Positions(t *testing.T) {
	re := &RuntimeError{Kind: RTDivisionByZero, Line: 99, Col: 99, Msg: "division by zero"}
	msg := WrapErrorWithSource(re, "x = 1").Error()
	if !strings.Contains(msg, "division by zero") {
		t.Fatalf("clamped rendering lost the message:\n%s", msg)
	}
}
