package main

import (
	"fmt"
	"os"

	"l/vm"
)

// runFile reads and interprets a single source file, translating the
// result into the exit codes the specification fixes: 65 for a compile
// error, 70 for a runtime error, 74 if the file can't be read.
func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open file %s.\n", path)
		return 74
	}

	v := vm.New()
	result, errs := v.Interpret(string(data))
	switch result {
	case vm.InterpretCompileError:
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 65
	case vm.InterpretRuntimeError:
		fmt.Fprintln(os.Stderr, errs[0].Error())
		return 70
	default:
		return 0
	}
}
