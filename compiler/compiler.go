// Package compiler implements the single-pass Pratt compiler: it pulls
// tokens from a lexer on demand and writes bytecode directly, with no
// intermediate AST.
package compiler

import (
	"fmt"

	"l/bytecode"
	"l/lexer"
	"l/token"
	"l/value"
)

// Compiler holds the parsing state for a single compile: the lexer it
// pulls tokens from, the bytecode it writes into, and the previous/
// current token pair parsePrecedence advances through.
type Compiler struct {
	lx *lexer.Lexer
	bc *bytecode.Bytecode

	previous token.Token
	current  token.Token

	errors []error
}

// New returns a Compiler ready to compile source into fresh bytecode.
func New(source string) *Compiler {
	return &Compiler{
		lx: lexer.New(source),
		bc: bytecode.New(),
	}
}

// Compile runs the compiler to completion, returning the bytecode it
// produced and every parse/scan error encountered. A non-empty error
// slice means the caller must treat this as a compile error and must not
// run the bytecode (it may be incomplete past the first failure point in
// a declaration, though the compiler keeps going to report more).
func (c *Compiler) Compile() (*bytecode.Bytecode, []error) {
	c.advance()
	for !c.check(token.EOF) {
		if err := c.declaration(); err != nil {
			c.errors = append(c.errors, err)
			if c.current.Kind != token.EOF {
				c.synchronize()
			}
		}
	}
	c.emitReturn()
	return c.bc, c.errors
}

func (c *Compiler) check(kind token.Kind) bool {
	return c.current.Kind == kind
}

// advance pulls the next token from the lexer into current, sliding the
// old current into previous. Scan errors (ERROR-kind tokens) are reported
// immediately and skipped over, matching the original's errorAtCurrent
// call inside its token-fetch loop: they never reach the grammar.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lx.ScanToken()
		if c.current.Kind != token.ERROR {
			return
		}
		c.errors = append(c.errors, c.newError(c.current, c.current.Lexeme))
	}
}

// advanceSwallowingErrors is advance, but used only while resynchronizing
// after a parse error: further scan errors in the discarded tokens are
// not worth reporting on top of the one that triggered the resync.
func (c *Compiler) advanceSwallowingErrors() {
	c.previous = c.current
	for {
		c.current = c.lx.ScanToken()
		if c.current.Kind != token.ERROR {
			return
		}
	}
}

// consume advances past current if it has the expected kind, otherwise
// reports message at current's position.
func (c *Compiler) consume(kind token.Kind, message string) error {
	if c.current.Kind == kind {
		c.advance()
		return nil
	}
	return c.errorAtCurrent(message)
}

// newError composes the bit-exact diagnostic the specification requires:
// "Error at '<lexeme>'" for an ordinary token, "Error at end" for EOF, or
// bare "Error" for a token that is itself an ERROR (it has no lexeme of
// its own to quote — its lexeme IS the message).
func (c *Compiler) newError(tok token.Token, message string) error {
	var prefix string
	switch tok.Kind {
	case token.ERROR:
		prefix = "Error"
	case token.EOF:
		prefix = "Error at end"
	default:
		prefix = fmt.Sprintf("Error at '%s'", tok.Lexeme)
	}
	return NewParseError(tok.Line, prefix+": "+message)
}

func (c *Compiler) errorAtCurrent(message string) error {
	return c.newError(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) error {
	return c.newError(c.previous, message)
}

// synchronize discards tokens after a parse error until it finds a
// plausible statement boundary: the token just consumed was a SEMICOLON,
// or the current token begins a new declaration.
func (c *Compiler) synchronize() {
	c.advanceSwallowingErrors()
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		if token.IsDeclLead(c.current.Kind) {
			return
		}
		c.advanceSwallowingErrors()
	}
}

// parsePrecedence is the core Pratt loop: advance, run the previous
// token's prefix rule, then keep folding in infix rules while the
// current token's precedence meets the floor p.
func (c *Compiler) parsePrecedence(p precedence) error {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		return c.errorAtPrevious("Expect expression.")
	}
	if err := rule.prefix(c); err != nil {
		return err
	}

	for p <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		if err := infix(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) expression() error {
	return c.parsePrecedence(PREC_ASSIGNMENT)
}

// declaration dispatches on whether current begins a variable
// declaration (untyped LET or one of the typed leads) or an ordinary
// statement.
func (c *Compiler) declaration() error {
	switch c.current.Kind {
	case token.LET, token.LET_BOOL, token.LET_INTEGER, token.LET_DOUBLE, token.LET_STRING:
		lead := c.current.Kind
		c.advance()
		return c.varDeclaration(lead)
	default:
		return c.statement()
	}
}

// varDeclaration parses `let name [= expr] ;` (or a typed lead in place
// of `let`). A typed lead with no initializer emits that type's default
// value; an untyped `let` with no initializer is a compile error.
func (c *Compiler) varDeclaration(lead token.Kind) error {
	if err := c.consume(token.IDENTIFIER, "Expect variable name."); err != nil {
		return err
	}
	name := c.previous
	idx := c.bc.AddConstant(value.FromObj(value.Intern(name.Lexeme)))

	switch {
	case c.current.Kind == token.EQUAL:
		c.advance()
		if err := c.expression(); err != nil {
			return err
		}
	case lead == token.LET_BOOL:
		c.bc.Write(byte(bytecode.OP_FALSE), name.Line)
	case lead == token.LET_INTEGER:
		c.bc.PutConstant(value.Int(0), name.Line)
	case lead == token.LET_DOUBLE:
		c.bc.PutConstant(value.Double(0), name.Line)
	case lead == token.LET_STRING:
		c.bc.PutConstant(value.FromObj(value.Intern("")), name.Line)
	default:
		return c.newError(name, fmt.Sprintf("Declaration of 'let %s' requires an initializer.", name.Lexeme))
	}

	if err := c.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return err
	}
	c.bc.EmitVariableByte(bytecode.OP_DEFINE_GLOBAL, bytecode.OP_DEFINE_GLOBAL_LONG, idx, name.Line)
	return nil
}

// statement is, in this core, always an expression statement: an
// expression followed by ';', with its value discarded via POP.
func (c *Compiler) statement() error {
	return c.expressionStatement()
}

func (c *Compiler) expressionStatement() error {
	if err := c.expression(); err != nil {
		return err
	}
	if err := c.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return err
	}
	c.bc.Write(byte(bytecode.OP_POP), c.previous.Line)
	return nil
}

func (c *Compiler) emitReturn() {
	c.bc.Write(byte(bytecode.OP_RETURN), c.previous.Line)
}

// grouping parses a parenthesized expression; the parens themselves emit
// nothing.
func grouping(c *Compiler) error {
	if err := c.expression(); err != nil {
		return err
	}
	return c.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
}

// unary parses a prefix `-` or `!`, recursing at PREC_UNARY so a chain
// like `--x` or `!!x` binds right-to-left onto itself.
func unary(c *Compiler) error {
	opKind := c.previous.Kind
	line := c.previous.Line
	if err := c.parsePrecedence(PREC_UNARY); err != nil {
		return err
	}
	switch opKind {
	case token.MINUS:
		c.bc.Write(byte(bytecode.OP_NEGATE), line)
	case token.BANG:
		c.bc.Write(byte(bytecode.OP_NOT), line)
	}
	return nil
}

// binary parses the right-hand operand at one precedence level above the
// operator's own, making every binary operator here left-associative,
// then emits the matching opcode.
func binary(c *Compiler) error {
	opKind := c.previous.Kind
	line := c.previous.Line
	rule := getRule(opKind)
	if err := c.parsePrecedence(rule.precedence + 1); err != nil {
		return err
	}
	switch opKind {
	case token.PLUS:
		c.bc.Write(byte(bytecode.OP_ADD), line)
	case token.MINUS:
		c.bc.Write(byte(bytecode.OP_SUBTRACT), line)
	case token.STAR:
		c.bc.Write(byte(bytecode.OP_MULTIPLY), line)
	case token.SLASH:
		c.bc.Write(byte(bytecode.OP_DIVIDE), line)
	case token.EQUAL_EQUAL:
		c.bc.Write(byte(bytecode.OP_EQUAL), line)
	case token.BANG_EQUAL:
		c.bc.Write(byte(bytecode.OP_NOT_EQUAL), line)
	case token.GREATER:
		c.bc.Write(byte(bytecode.OP_GREATER), line)
	case token.GREATER_EQUAL:
		c.bc.Write(byte(bytecode.OP_GREATER_EQUAL), line)
	case token.LESS:
		c.bc.Write(byte(bytecode.OP_LESS), line)
	case token.LESS_EQUAL:
		c.bc.Write(byte(bytecode.OP_LESS_EQUAL), line)
	}
	return nil
}

func number(c *Compiler) error {
	c.bc.PutConstant(c.previous.Literal, c.previous.Line)
	return nil
}

func stringLiteral(c *Compiler) error {
	c.bc.PutConstant(c.previous.Literal, c.previous.Line)
	return nil
}

func literal(c *Compiler) error {
	line := c.previous.Line
	switch c.previous.Kind {
	case token.TRUE:
		c.bc.Write(byte(bytecode.OP_TRUE), line)
	case token.FALSE:
		c.bc.Write(byte(bytecode.OP_FALSE), line)
	case token.NIL:
		c.bc.Write(byte(bytecode.OP_NUL), line)
	}
	return nil
}

// variable is the prefix rule for IDENTIFIER: it interns the name and
// emits either a SET_GLOBAL (if followed by '=') or a GET_GLOBAL.
func variable(c *Compiler) error {
	return c.namedVariable(c.previous)
}

func (c *Compiler) namedVariable(name token.Token) error {
	idx := c.bc.AddConstant(value.FromObj(value.Intern(name.Lexeme)))

	if c.current.Kind == token.EQUAL {
		c.advance()
		if err := c.expression(); err != nil {
			return err
		}
		c.bc.EmitVariableByte(bytecode.OP_SET_GLOBAL, bytecode.OP_SET_GLOBAL_LONG, idx, name.Line)
		return nil
	}

	c.bc.EmitVariableByte(bytecode.OP_GET_GLOBAL, bytecode.OP_GET_GLOBAL_LONG, idx, name.Line)
	return nil
}
