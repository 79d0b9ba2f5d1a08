// Package vm executes compiled bytecode: a stack machine with a global
// variable table, built directly on top of the bytecode and value
// packages.
package vm

import (
	"fmt"
	"io"
	"os"

	"l/bytecode"
	"l/compiler"
	"l/debug"
	"l/value"
)

// InterpretResult reports how a call to Interpret ended.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is the runtime environment where L bytecode executes. Globals
// persist across calls to Interpret on the same VM, which is what lets a
// REPL build up state one line at a time.
type VM struct {
	stack   Stack
	bc      *bytecode.Bytecode
	ip      int
	globals map[*value.ObjString]value.Value

	// Trace, when set, dumps the stack and the disassembled instruction
	// before each step executes.
	Trace bool
	Out   io.Writer
}

// New returns a VM with empty globals, ready to interpret source.
func New() *VM {
	return &VM{
		globals: make(map[*value.ObjString]value.Value),
		Out:     os.Stdout,
	}
}

// Interpret compiles source from scratch and, if compilation succeeds,
// runs the resulting bytecode against this VM's existing globals. It
// never writes to stderr itself — a compile error returns every
// collected diagnostic, a runtime error returns the single error that
// stopped execution, and it is the caller's job (REPL, file runner) to
// print them and choose an exit code.
func (vm *VM) Interpret(source string) (InterpretResult, []error) {
	bc, errs := compiler.New(source).Compile()
	if len(errs) > 0 {
		return InterpretCompileError, errs
	}

	vm.bc = bc
	vm.ip = 0
	vm.stack.Reset()

	if err := vm.run(); err != nil {
		return InterpretRuntimeError, []error{err}
	}
	return InterpretOK, nil
}

func (vm *VM) run() error {
	for {
		if vm.Trace {
			vm.traceStep()
		}

		op := bytecode.Op(vm.readByte())
		switch op {
		case bytecode.OP_RETURN:
			return nil

		case bytecode.OP_CONSTANT:
			if err := vm.pushConstant(int(vm.readByte())); err != nil {
				return err
			}
		case bytecode.OP_CONSTANT_LONG:
			if err := vm.pushConstant(vm.readIndex24()); err != nil {
				return err
			}

		case bytecode.OP_NUL:
			if err := vm.push(value.Null()); err != nil {
				return err
			}
		case bytecode.OP_TRUE:
			if err := vm.push(value.Bool(true)); err != nil {
				return err
			}
		case bytecode.OP_FALSE:
			if err := vm.push(value.Bool(false)); err != nil {
				return err
			}

		case bytecode.OP_DEFINE_GLOBAL, bytecode.OP_DEFINE_GLOBAL_LONG:
			name := vm.readGlobalName(op == bytecode.OP_DEFINE_GLOBAL_LONG)
			v, ok := vm.stack.Peek(0)
			if !ok {
				return vm.runtimeError("Stack underflow.")
			}
			vm.globals[name] = v
			vm.stack.Pop()

		case bytecode.OP_GET_GLOBAL, bytecode.OP_GET_GLOBAL_LONG:
			name := vm.readGlobalName(op == bytecode.OP_GET_GLOBAL_LONG)
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(fmt.Sprintf("Undefined variable '%s'.", name.Value))
			}
			if err := vm.push(v); err != nil {
				return err
			}

		case bytecode.OP_SET_GLOBAL, bytecode.OP_SET_GLOBAL_LONG:
			name := vm.readGlobalName(op == bytecode.OP_SET_GLOBAL_LONG)
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(fmt.Sprintf("Undefined variable '%s'.", name.Value))
			}
			v, ok := vm.stack.Peek(0)
			if !ok {
				return vm.runtimeError("Stack underflow.")
			}
			vm.globals[name] = v

		case bytecode.OP_ADD, bytecode.OP_SUBTRACT, bytecode.OP_MULTIPLY, bytecode.OP_DIVIDE:
			if err := vm.binaryOp(op); err != nil {
				return err
			}

		case bytecode.OP_NEGATE:
			if err := vm.negate(); err != nil {
				return err
			}
		case bytecode.OP_NOT:
			if err := vm.not(); err != nil {
				return err
			}

		case bytecode.OP_EQUAL, bytecode.OP_NOT_EQUAL:
			b, err := vm.pop()
			if err != nil {
				return err
			}
			a, err := vm.pop()
			if err != nil {
				return err
			}
			eq := value.Equal(a, b)
			if op == bytecode.OP_NOT_EQUAL {
				eq = !eq
			}
			if err := vm.push(value.Bool(eq)); err != nil {
				return err
			}

		case bytecode.OP_GREATER, bytecode.OP_GREATER_EQUAL, bytecode.OP_LESS, bytecode.OP_LESS_EQUAL:
			if err := vm.compare(op); err != nil {
				return err
			}

		case bytecode.OP_POP:
			if _, err := vm.pop(); err != nil {
				return err
			}

		default:
			return vm.runtimeError(fmt.Sprintf("Unknown opcode %d.", byte(op)))
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.bc.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readIndex24() int {
	b0 := vm.readByte()
	b1 := vm.readByte()
	b2 := vm.readByte()
	return bytecode.Decode24(b0, b1, b2)
}

func (vm *VM) readGlobalName(isLong bool) *value.ObjString {
	var idx int
	if isLong {
		idx = vm.readIndex24()
	} else {
		idx = int(vm.readByte())
	}
	return vm.bc.Constants[idx].AsString()
}

func (vm *VM) pushConstant(idx int) error {
	return vm.push(vm.bc.Constants[idx])
}

func (vm *VM) push(v value.Value) error {
	if !vm.stack.Push(v) {
		return vm.runtimeError("Stack overflow.")
	}
	return nil
}

func (vm *VM) pop() (value.Value, error) {
	v, ok := vm.stack.Pop()
	if !ok {
		return value.Value{}, vm.runtimeError("Stack underflow.")
	}
	return v, nil
}

// runtimeError composes a RuntimeError at the line of the instruction
// that just finished reading its opcode/operands (vm.ip has already
// advanced past it, so the line belongs to ip-1).
func (vm *VM) runtimeError(message string) error {
	line := vm.bc.LineOf(vm.ip - 1)
	return NewRuntimeError(line, message)
}

func (vm *VM) binaryOp(op bytecode.Op) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}

	result, err := vm.applyBinary(op, a, b)
	if err != nil {
		return err
	}
	return vm.push(result)
}

func (vm *VM) applyBinary(op bytecode.Op, a, b value.Value) (value.Value, error) {
	switch {
	case a.IsInt() && b.IsInt():
		v, err := intArith(op, a.AsInt(), b.AsInt())
		if err != nil {
			return value.Value{}, vm.runtimeError(err.Error())
		}
		return v, nil
	case a.IsDouble() && b.IsDouble():
		return doubleArith(op, a.AsDouble(), b.AsDouble()), nil
	case a.IsInt() && b.IsDouble():
		return doubleArith(op, float64(a.AsInt()), b.AsDouble()), nil
	case a.IsDouble() && b.IsInt():
		return doubleArith(op, a.AsDouble(), float64(b.AsInt())), nil
	case op == bytecode.OP_ADD && (a.IsString() || b.IsString()):
		concatenated := value.ToString(a) + value.ToString(b)
		return value.FromObj(value.Intern(concatenated)), nil
	default:
		return value.Value{}, vm.runtimeError(fmt.Sprintf("Operator %s is not supported for this type.", arithName(op)))
	}
}

func arithName(op bytecode.Op) string {
	switch op {
	case bytecode.OP_ADD:
		return "plus"
	case bytecode.OP_SUBTRACT:
		return "minus"
	case bytecode.OP_MULTIPLY:
		return "star"
	case bytecode.OP_DIVIDE:
		return "slash"
	default:
		return op.String()
	}
}

func intArith(op bytecode.Op, a, b int32) (value.Value, error) {
	switch op {
	case bytecode.OP_ADD:
		return value.Int(a + b), nil
	case bytecode.OP_SUBTRACT:
		return value.Int(a - b), nil
	case bytecode.OP_MULTIPLY:
		return value.Int(a * b), nil
	case bytecode.OP_DIVIDE:
		if b == 0 {
			return value.Value{}, fmt.Errorf("Division by zero.")
		}
		return value.Int(a / b), nil
	default:
		return value.Value{}, fmt.Errorf("unreachable arithmetic opcode %s", op)
	}
}

func doubleArith(op bytecode.Op, a, b float64) value.Value {
	switch op {
	case bytecode.OP_ADD:
		return value.Double(a + b)
	case bytecode.OP_SUBTRACT:
		return value.Double(a - b)
	case bytecode.OP_MULTIPLY:
		return value.Double(a * b)
	case bytecode.OP_DIVIDE:
		return value.Double(a / b)
	default:
		return value.Null()
	}
}

func (vm *VM) compare(op bytecode.Op) error {
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}

	var af, bf float64
	switch {
	case a.IsInt() && b.IsInt():
		af, bf = float64(a.AsInt()), float64(b.AsInt())
	case a.IsDouble() && b.IsDouble():
		af, bf = a.AsDouble(), b.AsDouble()
	case a.IsInt() && b.IsDouble():
		af, bf = float64(a.AsInt()), b.AsDouble()
	case a.IsDouble() && b.IsInt():
		af, bf = a.AsDouble(), float64(b.AsInt())
	default:
		return vm.runtimeError("Operands must be numbers.")
	}

	var result bool
	switch op {
	case bytecode.OP_GREATER:
		result = af > bf
	case bytecode.OP_GREATER_EQUAL:
		result = af >= bf
	case bytecode.OP_LESS:
		result = af < bf
	case bytecode.OP_LESS_EQUAL:
		result = af <= bf
	}
	return vm.push(value.Bool(result))
}

func (vm *VM) negate() error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	switch {
	case v.IsInt():
		return vm.push(value.Int(-v.AsInt()))
	case v.IsDouble():
		return vm.push(value.Double(-v.AsDouble()))
	default:
		return vm.runtimeError("Operand must be a number.")
	}
}

func (vm *VM) not() error {
	v, err := vm.pop()
	if err != nil {
		return err
	}
	if !v.IsBool() {
		return vm.runtimeError("Operand must be a boolean value.")
	}
	return vm.push(value.Bool(!v.AsBool()))
}

// Close tears down this VM's globals and the process-wide interned
// string pool. Call it only after every VM sharing the pool has
// finished — there is one pool per process, not one per VM.
func (vm *VM) Close() {
	clear(vm.globals)
	value.ClearInternedStrings()
}

// traceStep prints the current stack contents followed by the
// disassembly of the instruction about to execute.
func (vm *VM) traceStep() {
	fmt.Fprint(vm.Out, "          ")
	for i := 0; i < vm.stack.sp; i++ {
		fmt.Fprint(vm.Out, "[ ")
		value.Print(vm.Out, vm.stack.values[i])
		fmt.Fprint(vm.Out, " ]")
	}
	fmt.Fprintln(vm.Out)
	debug.DisassembleInstruction(vm.Out, vm.bc, vm.ip)
}
