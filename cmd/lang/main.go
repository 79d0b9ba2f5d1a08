// Command lang is the L interpreter's entry point: a REPL with no
// arguments, a file runner with one, and a usage error with more than
// one — plus a supplemental `emit` command that dumps bytecode for a
// source file instead of running it.
package main

import (
	"fmt"
	"os"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 && args[0] == "emit" {
		os.Exit(runEmit(args[1:]))
	}

	switch len(args) {
	case 0:
		os.Exit(runREPL())
	case 1:
		os.Exit(runFile(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [path]\n", os.Args[0])
		os.Exit(64)
	}
}
