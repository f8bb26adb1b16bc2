// errors.go — user-facing error wrapping and caret-snippet rendering.
//
// Turns the structured lexer/parser/runtime diagnostics into readable
// snippets with a caret pointing at the offending column:
//
//	SYNTAX ERROR at 2:9: expected '}' to close action
//
//	   1 | begin { x = 5 }
//	   2 | x > 3 { print x
//	     |         ^
//
// The snippet shows up to one line of context before and after the error,
// numbers the lines, and places the caret under the 1-based column. Output
// is plain text, suitable for logs and terminals. Errors of any other type
// pass through unchanged.
package puffin

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns err augmented with a caret-annotated snippet
// of src. It recognizes *LexError, *ParseError, and *RuntimeError; all other
// errors are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("in <name>")
// included in the header, for errors out of named files.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		// Lexer Col is 0-based; render as 1-based.
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "SYNTAX ERROR", srcName, e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		if e.Line == 0 {
			// Not traceable to a token; no snippet to draw.
			return err
		}
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// snippet builds the header plus caret block. Coordinates are treated as
// 1-based and clamped to the source bounds so rendering never panics.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
