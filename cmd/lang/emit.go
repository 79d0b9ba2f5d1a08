package main

import (
	"fmt"
	"os"

	"l/compiler"
	"l/debug"
)

// runEmit compiles a source file and writes its disassembly to stdout
// instead of running it — useful for inspecting the bytecode the
// compiler produced for a given program.
func runEmit(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: lang emit <path>")
		return 64
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open file %s.\n", path)
		return 74
	}

	bc, errs := compiler.New(string(data)).Compile()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 65
	}

	debug.Disassemble(os.Stdout, bc, path)
	return 0
}
