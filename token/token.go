// Package token defines the finite token-kind enum and the Token value the
// lexer produces and the compiler consumes.
package token

import (
	"fmt"

	"l/value"
)

// Kind identifies the lexical category of a Token. It is a small integer
// rather than a string-valued type so it can index the compiler's rule
// table directly.
type Kind uint8

const (
	LEFT_PAREN Kind = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	COLON
	SLASH
	STAR

	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	IDENTIFIER
	STRING
	INTEGER
	DOUBLE

	LET
	LET_STRING
	LET_INTEGER
	LET_DOUBLE
	LET_BOOL
	INTERFACE
	STRUCT
	FN
	MUT
	FOR
	IN
	RETURN
	RETURNIF
	IF
	ELSE
	OR
	AND
	TRUE
	FALSE
	NIL
	THIS

	ERROR
	EOF

	// NumKinds is one past the last valid Kind, sized for use as an array
	// bound by the compiler's rule table.
	NumKinds
)

var kindNames = map[Kind]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	INTEGER:       "INTEGER",
	DOUBLE:        "DOUBLE",
	LET:           "LET",
	LET_STRING:    "LET_STRING",
	LET_INTEGER:   "LET_INTEGER",
	LET_DOUBLE:    "LET_DOUBLE",
	LET_BOOL:      "LET_BOOL",
	INTERFACE:     "INTERFACE",
	STRUCT:        "STRUCT",
	FN:            "FN",
	MUT:           "MUT",
	FOR:           "FOR",
	IN:            "IN",
	RETURN:        "RETURN",
	RETURNIF:      "RETURNIF",
	IF:            "IF",
	ELSE:          "ELSE",
	OR:            "OR",
	AND:           "AND",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NIL:           "NIL",
	THIS:          "THIS",
	ERROR:         "ERROR",
	EOF:           "EOF",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved identifier spellings to their Kind, including the
// four typed-declaration leads (bool/int/double/string) that the lexer
// folds into LET_BOOL/LET_INTEGER/LET_DOUBLE/LET_STRING rather than a
// generic type-name token.
var Keywords = map[string]Kind{
	"and":       AND,
	"or":        OR,
	"if":        IF,
	"else":      ELSE,
	"for":       FOR,
	"in":        IN,
	"return":    RETURN,
	"returnif":  RETURNIF,
	"let":       LET,
	"mut":       MUT,
	"fn":        FN,
	"struct":    STRUCT,
	"interface": INTERFACE,
	"this":      THIS,
	"true":      TRUE,
	"false":     FALSE,
	"nil":       NIL,
	"bool":      LET_BOOL,
	"int":       LET_INTEGER,
	"double":    LET_DOUBLE,
	"string":    LET_STRING,
}

// Token is a single lexical unit: a Kind, the exact source text that
// produced it, an optional literal Value (numbers, strings, true/false),
// and the 1-based source line the lexer was on when it finished the token
// (for a string literal spanning lines, the line of its closing quote).
// Tokens are ephemeral — the
// lexer produces them and the compiler consumes them on demand; none are
// retained past a single compile.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal value.Value
	Line    int
}

// New constructs a Token carrying no literal value, for punctuation and
// bare keywords.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// NewLiteral constructs a Token carrying literal, for numbers, strings,
// and the true/false keywords.
func NewLiteral(kind Kind, lexeme string, literal value.Value, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// String returns a human-readable representation of the Token, intended
// for debugging and trace output, not for the diagnostic messages in §7
// (those compose "Error at '<lexeme>'" directly from Lexeme).
func (t Token) String() string {
	return fmt.Sprintf("Token {Kind: %s, Lexeme: %q}", t.Kind, t.Lexeme)
}

// terminatorSet is the set of kinds after which a trailing LF yields a
// synthetic SEMICOLON, per the auto-semicolon rule.
var terminatorSet = map[Kind]bool{
	IDENTIFIER:  true,
	INTEGER:     true,
	DOUBLE:      true,
	STRING:      true,
	TRUE:        true,
	FALSE:       true,
	NIL:         true,
	THIS:        true,
	RETURN:      true,
	RIGHT_PAREN: true,
	RIGHT_BRACE: true,
}

// IsTerminator reports whether k is in the auto-semicolon terminator set.
func IsTerminator(k Kind) bool {
	return terminatorSet[k]
}

// declLeadSet is the set of kinds that begin a statement, used by the
// compiler's error-synchronization loop.
var declLeadSet = map[Kind]bool{
	STRUCT:      true,
	FN:          true,
	LET:         true,
	LET_BOOL:    true,
	LET_DOUBLE:  true,
	LET_INTEGER: true,
	LET_STRING:  true,
	FOR:         true,
	IF:          true,
	RETURN:      true,
	RETURNIF:    true,
}

// IsDeclLead reports whether k begins a new declaration/statement, used to
// decide where synchronization after a parse error may resume.
func IsDeclLead(k Kind) bool {
	return declLeadSet[k]
}
