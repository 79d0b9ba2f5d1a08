package compiler

import "l/token"

// precedence orders the binding power of infix operators, lowest to
// highest, per the specification's declared ladder.
type precedence int

const (
	PREC_NONE precedence = iota
	PREC_ASSIGNMENT
	PREC_OR
	PREC_AND
	PREC_EQUALITY
	PREC_COMPARISON
	PREC_TERM
	PREC_FACTOR
	PREC_UNARY
	PREC_CALL
	PREC_PRIMARY
)

// parseFn is a prefix or infix parsing routine bound to a rule table
// entry. It consumes c.previous (already advanced past) and emits
// bytecode, reporting failure as an error instead of panicking.
type parseFn func(*Compiler) error

// parseRule is the (prefix, infix, precedence) triple the Pratt compiler
// looks up by token kind; nil prefix/infix means the kind has no such
// role in the grammar.
type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is the rule table indexed directly by token.Kind instead of a
// map lookup; entries left at their zero value have no prefix/infix
// rule and PREC_NONE.
var rules [token.NumKinds]parseRule

func init() {
	rules[token.LEFT_PAREN] = parseRule{prefix: grouping}
	rules[token.MINUS] = parseRule{prefix: unary, infix: binary, precedence: PREC_TERM}
	rules[token.PLUS] = parseRule{infix: binary, precedence: PREC_TERM}
	rules[token.SLASH] = parseRule{infix: binary, precedence: PREC_FACTOR}
	rules[token.STAR] = parseRule{infix: binary, precedence: PREC_FACTOR}
	rules[token.BANG] = parseRule{prefix: unary}
	rules[token.BANG_EQUAL] = parseRule{infix: binary, precedence: PREC_EQUALITY}
	rules[token.EQUAL_EQUAL] = parseRule{infix: binary, precedence: PREC_EQUALITY}
	rules[token.GREATER] = parseRule{infix: binary, precedence: PREC_COMPARISON}
	rules[token.GREATER_EQUAL] = parseRule{infix: binary, precedence: PREC_COMPARISON}
	rules[token.LESS] = parseRule{infix: binary, precedence: PREC_COMPARISON}
	rules[token.LESS_EQUAL] = parseRule{infix: binary, precedence: PREC_COMPARISON}
	rules[token.IDENTIFIER] = parseRule{prefix: variable}
	rules[token.STRING] = parseRule{prefix: stringLiteral}
	rules[token.INTEGER] = parseRule{prefix: number}
	rules[token.DOUBLE] = parseRule{prefix: number}
	rules[token.TRUE] = parseRule{prefix: literal}
	rules[token.FALSE] = parseRule{prefix: literal}
	rules[token.NIL] = parseRule{prefix: literal}
	// and/or are reserved their precedence slots; this core's grammar
	// does not yet wire short-circuiting infix bodies for them.
	rules[token.AND] = parseRule{precedence: PREC_AND}
	rules[token.OR] = parseRule{precedence: PREC_OR}
}

func getRule(kind token.Kind) parseRule {
	return rules[kind]
}
