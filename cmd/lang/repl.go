package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"l/lexer"
	"l/token"
	"l/vm"
)

// runREPL reads lines from stdin via readline, buffering across lines
// while an opened grouping paren hasn't been closed yet, and interprets
// each complete statement against a single shared VM so globals persist
// for the rest of the session.
func runREPL() int {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 70
	}
	defer rl.Close()

	v := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt("> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == io.EOF {
			fmt.Println()
			return 0
		}
		if err == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 70
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if parenBalance(source) > 0 {
			continue
		}

		result, errs := v.Interpret(source)
		if result == vm.InterpretCompileError && allErrorsAtEOF(errs) {
			continue
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		buffer.Reset()
	}
}

// parenBalance counts unclosed '(' groupings across the whole of
// source, so the REPL knows to keep reading more lines before handing
// an incomplete grouping expression to the compiler.
func parenBalance(source string) int {
	lx := lexer.New(source)
	balance := 0
	for {
		tok := lx.ScanToken()
		if tok.Kind == token.EOF {
			return balance
		}
		switch tok.Kind {
		case token.LEFT_PAREN:
			balance++
		case token.RIGHT_PAREN:
			balance--
		}
	}
}

// allErrorsAtEOF reports whether every compile error was reported at
// the end of input — the signal that the user simply hasn't finished
// typing the statement yet, not that it's actually malformed.
func allErrorsAtEOF(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if !strings.Contains(e.Error(), "Error at end") {
			return false
		}
	}
	return true
}
