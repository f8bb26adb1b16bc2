// lexer_test.go
package puffin

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer(src)
	ts, err := l.Scan()
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Examples_BeginRoutine(t *testing.T) {
	src := `begin { x = 5; print x }`
	want := []TokenType{
		BEGIN, LCURLY, ID, ASSIGN, INTEGER, SEMI, PRINT, ID, RCURLY,
	}
	got := wantTypes(t, src, want)
	if got[4].Literal.(int64) != 5 {
		t.Fatalf("integer literal not parsed: %v", got[4].Literal)
	}
}

func Test_Lexer_Examples_GuardedRoutine(t *testing.T) {
	src := `x > 3 { print x * 2 }`
	wantTypes(t, src, []TokenType{
		ID, GREATER, INTEGER, LCURLY, PRINT, ID, MULT, INTEGER, RCURLY,
	})
}

func Test_Lexer_Examples_ArraySubscript(t *testing.T) {
	src := `counts[i + 1] = counts[i] / 2`
	wantTypes(t, src, []TokenType{
		ID, LSQUARE, ID, PLUS, INTEGER, RSQUARE, ASSIGN,
		ID, LSQUARE, ID, RSQUARE, DIV, INTEGER,
	})
}

func Test_Lexer_TwoCharOperators(t *testing.T) {
	src := `== >= <= += -= = > < + -`
	wantTypes(t, src, []TokenType{
		EQ, GREATER_EQ, LESS_EQ, PLUS_ASSIGN, MINUS_ASSIGN,
		ASSIGN, GREATER, LESS, PLUS, MINUS,
	})
}

func Test_Lexer_Keywords_Are_CaseSensitive(t *testing.T) {
	got := wantTypes(t, `begin Begin print printx end`, []TokenType{
		BEGIN, ID, PRINT, ID, END,
	})
	if got[1].Lexeme != "Begin" || got[3].Lexeme != "printx" {
		t.Fatalf("identifier lexemes wrong: %q, %q", got[1].Lexeme, got[3].Lexeme)
	}
}

func Test_Lexer_Comments_Skipped(t *testing.T) {
	src := `
# setup block
begin { x = 1 } # trailing note
# done
`
	wantTypes(t, src, []TokenType{
		BEGIN, LCURLY, ID, ASSIGN, INTEGER, RCURLY,
	})
}

func Test_Lexer_Token_Positions(t *testing.T) {
	src := "begin {\n  print 42\n}"
	ts := toks(t, src)
	// print is on line 2, after two spaces (0-based col 2).
	var printTok, intTok *Token
	for i := range ts {
		switch ts[i].Type {
		case PRINT:
			printTok = &ts[i]
		case INTEGER:
			intTok = &ts[i]
		}
	}
	if printTok == nil || printTok.Line != 2 || printTok.Col != 2 {
		t.Fatalf("print token position wrong: %+v", printTok)
	}
	if intTok == nil || intTok.Line != 2 || intTok.Col != 8 {
		t.Fatalf("integer token position wrong: %+v", intTok)
	}
}

func Test_Lexer_Malformed_Integer(t *testing.T) {
	l := NewLexer("x = 12ab")
	_, err := l.Scan()
	if err == nil {
		t.Fatalf("want lex error for malformed integer")
	}
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if le.Line != 1 || le.Col != 4 {
		t.Fatalf("error position wrong: %d:%d", le.Line, le.Col)
	}
	if !strings.Contains(le.Msg, "12ab") {
		t.Fatalf("error message should name the offending lexeme: %q", le.Msg)
	}
}

func Test_Lexer_Unexpected_Character(t *testing.T) {
	l := NewLexer("x = 1\ny = @")
	_, err := l.Scan()
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if le.Line != 2 || le.Col != 4 {
		t.Fatalf("error position wrong: %d:%d", le.Line, le.Col)
	}
}

func Test_Lexer_Empty_Source(t *testing.T) {
	ts := toks(t, "")
	if len(ts) != 1 || ts[0].Type != EOF {
		t.Fatalf("empty source should produce only EOF, got %v", ts)
	}
}
