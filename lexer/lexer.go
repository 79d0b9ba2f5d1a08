// Package lexer implements the pull-based tokenizer for L: ScanToken
// returns one token at a time, synthesizing SEMICOLON tokens from bare
// line feeds under the context-sensitive auto-semicolon rule.
package lexer

import (
	"fmt"
	"strconv"

	"l/token"
	"l/value"
)

func isAlpha(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// Lexer scans a source string into a Token stream on demand. It retains no
// token history; tokens are ephemeral, created by ScanToken and dropped
// once the compiler consumes them.
type Lexer struct {
	source []byte

	// start marks the beginning of the token currently being scanned;
	// current is the next byte to read. Both are byte offsets into
	// source, matching the zero-copy lexeme design in the data model.
	start   int
	current int

	// line is the 1-based source line of the byte at current.
	line int

	// insertSemicolon is the auto-semicolon state: set after producing
	// a token whose kind is in the terminator set, cleared once a
	// synthetic SEMICOLON (or any other token) has been produced.
	insertSemicolon bool
}

// New returns a Lexer ready to scan source from its first byte.
func New(source string) *Lexer {
	return &Lexer{source: []byte(source), line: 1}
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekAt(offset int) byte {
	idx := l.current + offset
	if idx >= len(l.source) {
		return 0
	}
	return l.source[idx]
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

// finish builds a Token with no literal from source[start:current],
// recording kind's terminator-set membership for the next ScanToken call.
func (l *Lexer) finish(kind token.Kind) token.Token {
	lexeme := string(l.source[l.start:l.current])
	l.insertSemicolon = token.IsTerminator(kind)
	return token.New(kind, lexeme, l.line)
}

// finishLiteral is finish, but for tokens carrying a literal Value.
func (l *Lexer) finishLiteral(kind token.Kind, literal value.Value) token.Token {
	lexeme := string(l.source[l.start:l.current])
	l.insertSemicolon = token.IsTerminator(kind)
	return token.NewLiteral(kind, lexeme, literal, l.line)
}

func (l *Lexer) errorToken(message string) token.Token {
	l.insertSemicolon = false
	return token.New(token.ERROR, message, l.line)
}

// skipWhitespace consumes spaces, tabs, carriage returns, comments, and
// plain newlines (those that don't trigger auto-semicolon insertion). If a
// bare '\n' arrives while insertSemicolon is set, it is consumed and a
// synthetic SEMICOLON token is returned immediately, carrying the line
// that just ended.
func (l *Lexer) skipWhitespace() (token.Token, bool) {
	for !l.isAtEnd() {
		switch c := l.source[l.current]; c {
		case ' ', '\t', '\r':
			l.current++
		case '\n':
			endingLine := l.line
			l.line++
			l.current++
			if l.insertSemicolon {
				l.insertSemicolon = false
				return token.New(token.SEMICOLON, "\n", endingLine), true
			}
		case '/':
			if l.peekAt(1) == '/' {
				for !l.isAtEnd() && l.source[l.current] != '\n' {
					l.current++
				}
			} else if l.peekAt(1) == '*' {
				l.current += 2
				for !l.isAtEnd() {
					if l.source[l.current] == '*' && l.peekAt(1) == '/' {
						l.current += 2
						break
					}
					if l.source[l.current] == '\n' {
						l.line++
					}
					l.current++
				}
			} else {
				return token.Token{}, false
			}
		default:
			return token.Token{}, false
		}
	}
	return token.Token{}, false
}

// ScanToken returns the next token in the stream. Once the source is
// exhausted it returns an EOF token on every subsequent call.
func (l *Lexer) ScanToken() token.Token {
	if synthetic, ok := l.skipWhitespace(); ok {
		return synthetic
	}

	l.start = l.current
	if l.isAtEnd() {
		return l.finish(token.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.identifier()
	}
	if isDigit(c) {
		return l.number()
	}

	switch c {
	case '(':
		return l.finish(token.LEFT_PAREN)
	case ')':
		return l.finish(token.RIGHT_PAREN)
	case '{':
		return l.finish(token.LEFT_BRACE)
	case '}':
		return l.finish(token.RIGHT_BRACE)
	case ',':
		return l.finish(token.COMMA)
	case '.':
		return l.finish(token.DOT)
	case '-':
		return l.finish(token.MINUS)
	case '+':
		return l.finish(token.PLUS)
	case ';':
		return l.finish(token.SEMICOLON)
	case ':':
		return l.finish(token.COLON)
	case '*':
		return l.finish(token.STAR)
	case '/':
		return l.finish(token.SLASH)
	case '!':
		if l.match('=') {
			return l.finish(token.BANG_EQUAL)
		}
		return l.finish(token.BANG)
	case '=':
		if l.match('=') {
			return l.finish(token.EQUAL_EQUAL)
		}
		return l.finish(token.EQUAL)
	case '<':
		if l.match('=') {
			return l.finish(token.LESS_EQUAL)
		}
		return l.finish(token.LESS)
	case '>':
		if l.match('=') {
			return l.finish(token.GREATER_EQUAL)
		}
		return l.finish(token.GREATER)
	case '"':
		return l.string()
	}

	return l.errorToken(fmt.Sprintf("Unexpected character '%c'.", c))
}

func (l *Lexer) identifier() token.Token {
	for isAlphaNumeric(l.peek()) {
		l.current++
	}
	lexeme := string(l.source[l.start:l.current])
	kind, isKeyword := token.Keywords[lexeme]
	if !isKeyword {
		return l.finish(token.IDENTIFIER)
	}
	switch kind {
	case token.TRUE:
		return l.finishLiteral(token.TRUE, value.Bool(true))
	case token.FALSE:
		return l.finishLiteral(token.FALSE, value.Bool(false))
	default:
		return l.finish(kind)
	}
}

func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.current++
	}

	isDouble := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isDouble = true
		l.current++
		for isDigit(l.peek()) {
			l.current++
		}
	}

	text := string(l.source[l.start:l.current])
	if isDouble {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorToken(fmt.Sprintf("Invalid number literal '%s'.", text))
		}
		return l.finishLiteral(token.DOUBLE, value.Double(f))
	}

	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return l.errorToken(fmt.Sprintf("Invalid number literal '%s'.", text))
	}
	return l.finishLiteral(token.INTEGER, value.Int(int32(n)))
}

func (l *Lexer) string() token.Token {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.current++
	}
	if l.isAtEnd() {
		return l.errorToken("Unterminated string.")
	}
	content := string(l.source[l.start+1 : l.current])
	l.current++ // consume the closing quote
	return l.finishLiteral(token.STRING, value.FromObj(value.Intern(content)))
}
