package lexer

import (
	"testing"

	"l/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func scanAll(source string) []token.Token {
	l := New(source)
	var toks []token.Token
	for {
		tok := l.ScanToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestAutoSemicolonAfterIdentifier(t *testing.T) {
	toks := scanAll("foo\n")
	if got, want := kinds(toks), []token.Kind{token.IDENTIFIER, token.SEMICOLON, token.EOF}; !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks[1].Lexeme != "\n" {
		t.Errorf("synthetic semicolon lexeme = %q, want %q", toks[1].Lexeme, "\n")
	}
}

func TestNoAutoSemicolonAfterOperator(t *testing.T) {
	toks := scanAll("+\n")
	if got, want := kinds(toks), []token.Kind{token.PLUS, token.EOF}; !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestAutoSemicolonAfterRightBrace(t *testing.T) {
	toks := scanAll("}\n")
	if got, want := kinds(toks), []token.Kind{token.RIGHT_BRACE, token.SEMICOLON, token.EOF}; !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestAutoSemicolonLineIsTheEndingLine(t *testing.T) {
	toks := scanAll("\"x\"\r\n")
	if len(toks) < 2 || toks[0].Kind != token.STRING || toks[1].Kind != token.SEMICOLON {
		t.Fatalf("unexpected tokens: %v", toks)
	}
	if toks[1].Line != toks[0].Line {
		t.Errorf("semicolon line = %d, want %d (line of the string)", toks[1].Line, toks[0].Line)
	}
}

func TestStringLiteralInternsContent(t *testing.T) {
	toks := scanAll(`"hello";`)
	if toks[0].Kind != token.STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Kind)
	}
	if !toks[0].Literal.IsString() || toks[0].Literal.AsString().Value != "hello" {
		t.Fatalf("literal mismatch: %v", toks[0].Literal)
	}
	if toks[0].Lexeme != `"hello"` {
		t.Errorf("lexeme = %q, want %q", toks[0].Lexeme, `"hello"`)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	toks := scanAll(`"unterminated`)
	if toks[0].Kind != token.ERROR {
		t.Fatalf("expected ERROR, got %s", toks[0].Kind)
	}
}

func TestOversizedIntegerIsScanError(t *testing.T) {
	toks := scanAll("999999999999999999999999999999999")
	if toks[0].Kind != token.ERROR {
		t.Fatalf("expected ERROR for out-of-range integer, got %s", toks[0].Kind)
	}
}

func TestNumberLiterals(t *testing.T) {
	toks := scanAll("42 3.14")
	if toks[0].Kind != token.INTEGER || toks[0].Literal.AsInt() != 42 {
		t.Fatalf("integer literal mismatch: %v", toks[0])
	}
	if toks[1].Kind != token.DOUBLE || toks[1].Literal.AsDouble() != 3.14 {
		t.Fatalf("double literal mismatch: %v", toks[1])
	}
}

func TestKeywordsAndTypedLets(t *testing.T) {
	toks := scanAll("let mut int double string bool true false nil this return returnif")
	want := []token.Kind{
		token.LET, token.MUT, token.LET_INTEGER, token.LET_DOUBLE, token.LET_STRING,
		token.LET_BOOL, token.TRUE, token.FALSE, token.NIL, token.THIS, token.RETURN,
		token.RETURNIF, token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if !toks[6].Literal.AsBool() {
		t.Errorf("true literal = %v, want true", toks[6].Literal)
	}
	if toks[7].Literal.AsBool() {
		t.Errorf("false literal = %v, want false", toks[7].Literal)
	}
}

func TestTwoCharacterOperators(t *testing.T) {
	toks := scanAll("== != <= >= < > = !")
	want := []token.Kind{
		token.EQUAL_EQUAL, token.BANG_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.LESS, token.GREATER, token.EQUAL, token.BANG, token.EOF,
	}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks := scanAll("1 // a comment\n+ 2;")
	if toks[0].Kind != token.INTEGER {
		t.Fatalf("expected INTEGER first, got %v", toks[0])
	}
}

func TestBlockCommentsTrackNewlines(t *testing.T) {
	toks := scanAll("1 /* spans\na line */ + 2;")
	var plus *token.Token
	for i := range toks {
		if toks[i].Kind == token.PLUS {
			plus = &toks[i]
			break
		}
	}
	if plus == nil {
		t.Fatal("expected a PLUS token after the block comment")
	}
	if plus.Line != 2 {
		t.Errorf("PLUS line = %d, want 2 (after the embedded newline)", plus.Line)
	}
}

func TestEOFIsStableOnRepeatedCalls(t *testing.T) {
	l := New("")
	first := l.ScanToken()
	second := l.ScanToken()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Fatalf("expected EOF on every call past exhaustion, got %v, %v", first, second)
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
