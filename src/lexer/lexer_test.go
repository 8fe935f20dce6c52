// Tests the lexer by verifying that small snippets of spl source are
// tokenized in the expected order, with the expected kinds and values.

package lexer

import (
	"testing"

	"splc/src/token"
)

// TestLexerKeywordsAndOperators scans a snippet exercising keywords,
// multi-rune operators and identifiers, and checks the resulting Kind
// sequence.
func TestLexerKeywordsAndOperators(t *testing.T) {
	src := "int main() { if (a <= b && !c) { return a + b; } }"
	exp := []token.Kind{
		token.TyInt, token.Identifier, token.LParen, token.RParen, token.LBrace,
		token.KwIf, token.LParen, token.Identifier, token.Le, token.Identifier,
		token.AndAnd, token.Bang, token.Identifier, token.RParen, token.LBrace,
		token.KwReturn, token.Identifier, token.Plus, token.Identifier, token.Semi,
		token.RBrace, token.RBrace, token.EOF,
	}

	l := New("test.spl", src)
	for i1, want := range exp {
		it, ok := l.Next()
		if !ok {
			t.Fatalf("token %d: lexer closed early, wanted %s", i1, want)
		}
		if it.Tok.Kind != want {
			t.Fatalf("token %d: got %s, want %s", i1, it.Tok.Kind, want)
		}
	}
}

// TestLexerLiterals checks that integer, float, string and char literals
// decode to the expected Go values.
func TestLexerLiterals(t *testing.T) {
	src := `1 2.5 "a\nb" 'x' 0x1F`
	l := New("test.spl", src)

	want := []struct {
		kind token.Kind
		val  interface{}
	}{
		{token.LitInt, uint32(1)},
		{token.LitFloat, float32(2.5)},
		{token.LitString, "a\nb"},
		{token.LitChar, byte('x')},
		{token.LitInt, uint32(0x1F)},
	}
	for i1, w := range want {
		it, ok := l.Next()
		if !ok {
			t.Fatalf("literal %d: lexer closed early", i1)
		}
		if it.Tok.Kind != w.kind || it.Tok.Val != w.val {
			t.Fatalf("literal %d: got %s(%v), want %s(%v)", i1, it.Tok.Kind, it.Tok.Val, w.kind, w.val)
		}
	}
}

// TestLexerInvalidLeadingZero checks that a leading-zero integer is
// emitted as token.Invalid rather than silently dropped (spec.md §4.1).
func TestLexerInvalidLeadingZero(t *testing.T) {
	l := New("test.spl", "0123")
	it, _ := l.Next()
	if it.Tok.Kind != token.Invalid {
		t.Fatalf("got %s, want Invalid", it.Tok.Kind)
	}
}

// TestLexerUnterminatedString checks that an unclosed string literal ends
// the stream with an UnexpectedEndOfProgram error.
func TestLexerUnterminatedString(t *testing.T) {
	l := New("test.spl", `"abc`)
	it, _ := l.Next()
	if it.Tok.Kind != token.Error || it.Err == nil || it.Err.Kind != UnexpectedEndOfProgram {
		t.Fatalf("got %v, want UnexpectedEndOfProgram error", it)
	}
	it, ok := l.Next()
	if !ok || it.Tok.Kind != token.EOF {
		t.Fatalf("expected stream to end with EOF after the error, got %v (ok=%v)", it, ok)
	}
}

// TestLexerUnknownLexeme checks that an unrecognised byte is reported as
// token.Error carrying an UnknownToken error, and scanning continues
// afterwards (lexer totality, spec.md §8).
func TestLexerUnknownLexeme(t *testing.T) {
	l := New("test.spl", "a @ b")
	kinds := make([]token.Kind, 0, 4)
	for {
		it, ok := l.Next()
		if !ok {
			break
		}
		kinds = append(kinds, it.Tok.Kind)
		if it.Tok.Kind == token.EOF {
			break
		}
	}
	want := []token.Kind{token.Identifier, token.Error, token.Identifier, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i1 := range want {
		if kinds[i1] != want[i1] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}
