// Package vm implements the stack-based bytecode interpreter (C6): it
// compiles source through the compiler package and executes the resulting
// chunk one instruction at a time.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"nilox/chunk"
	"nilox/compiler"
	"nilox/config"
	"nilox/value"
)

// StackMax is the fixed size of the VM's value stack. There is no growth:
// an overflow is a runtime error, exactly as in the reference design.
const StackMax = 256

// InterpretResult reports how an Interpret call finished.
type InterpretResult int

const (
	ResultOK InterpretResult = iota
	ResultCompileError
	ResultRuntimeError
)

// VM executes compiled chunks. It owns the string intern table and the
// linked list of every heap object it has ever allocated, both of which
// outlive any single Interpret call for the VM's whole lifetime.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack    [StackMax]value.Value
	stackTop int

	objects *value.Obj
	interns *value.InternTable

	stdout io.Writer
	stderr io.Writer
	debug  config.Debug
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout overrides where interpreted output is written. Defaults to
// os.Stdout. Trace and disassembly output go through logrus, not here.
func WithStdout(w io.Writer) Option { return func(v *VM) { v.stdout = w } }

// WithStderr overrides where runtime and compile errors are written.
// Defaults to os.Stderr.
func WithStderr(w io.Writer) Option { return func(v *VM) { v.stderr = w } }

// WithDebug sets the debug flags governing instruction tracing and
// post-compile disassembly dumps. Defaults to config.FromEnv().
func WithDebug(d config.Debug) Option { return func(v *VM) { v.debug = d } }

// New returns an initialized VM ready for repeated Interpret calls.
func New(opts ...Option) *VM {
	v := &VM{
		interns: value.NewInternTable(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		debug:   config.FromEnv(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Close releases every object the VM has ever allocated and frees its
// current chunk. The VM must not be used again afterward.
func (v *VM) Close() {
	v.objects = nil
	v.interns = nil
	if v.chunk != nil {
		v.chunk.Free()
		v.chunk = nil
	}
}

// internString interns chars against the VM's table, linking any newly
// allocated ObjString onto the VM's owned-object list. This is the hook
// handed to the compiler so literal strings and runtime-built strings
// (from concatenation) share one table and one ownership list.
func (v *VM) internString(chars string) *value.ObjString {
	candidate := value.NewObjString(chars, value.HashString(chars))
	s := v.interns.InternTake(candidate)
	if s == candidate {
		s.Next = v.objects
		v.objects = &s.Obj
	}
	return s
}

// Interpret compiles source and, if compilation succeeds, runs it to
// completion. The VM's stack, intern table, and object list persist across
// calls, so REPL sessions can build up interned strings over many lines —
// though with no variables, nothing from one call is observable in the
// next.
func (v *VM) Interpret(source string) InterpretResult {
	comp := compiler.New(v.internString, v.debug)
	ch, err := comp.Compile(source)
	if err != nil {
		fmt.Fprintln(v.stderr, err)
		return ResultCompileError
	}

	v.chunk = ch
	v.ip = 0
	v.resetStack()

	return v.run()
}

func (v *VM) resetStack() { v.stackTop = 0 }

func (v *VM) push(val value.Value) { v.stack[v.stackTop] = val; v.stackTop++ }

func (v *VM) pop() value.Value {
	v.stackTop--
	return v.stack[v.stackTop]
}

func (v *VM) peek(distance int) value.Value {
	return v.stack[v.stackTop-1-distance]
}

func (v *VM) readByte() byte {
	b := v.chunk.Code[v.ip]
	v.ip++
	return b
}

func (v *VM) readConstant() value.Value {
	return v.chunk.Constants[v.readByte()]
}

func (v *VM) readConstantLong() value.Value {
	idx := chunk.ReadConstantLong(v.chunk.Code, v.ip)
	v.ip += 3
	return v.chunk.Constants[idx]
}

func (v *VM) run() InterpretResult {
	for {
		if v.debug.TraceExecution {
			v.traceStack()
			line, _ := chunk.DisassembleInstruction(v.chunk, v.ip)
			logrus.Debug(line)
		}

		op := chunk.OpCode(v.readByte())
		switch op {
		case chunk.OpConstant, chunk.OpConstantLong, chunk.OpNil, chunk.OpTrue, chunk.OpFalse:
			if v.stackTop == StackMax {
				v.runtimeError("stack overflow")
				return ResultRuntimeError
			}
		}
		switch op {
		case chunk.OpConstant:
			v.push(v.readConstant())
		case chunk.OpConstantLong:
			v.push(v.readConstantLong())
		case chunk.OpNil:
			v.push(value.Nil)
		case chunk.OpTrue:
			v.push(value.Bool(true))
		case chunk.OpFalse:
			v.push(value.Bool(false))
		case chunk.OpEqual:
			b := v.pop()
			a := v.pop()
			v.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if res, ok := v.numericBinary(func(a, b float64) value.Value { return value.Bool(a > b) }); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpLess:
			if res, ok := v.numericBinary(func(a, b float64) value.Value { return value.Bool(a < b) }); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpAdd:
			if res, ok := v.add(); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpSubtract:
			if res, ok := v.numericBinary(func(a, b float64) value.Value { return value.Number(a - b) }); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpMultiply:
			if res, ok := v.numericBinary(func(a, b float64) value.Value { return value.Number(a * b) }); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpDivide:
			if res, ok := v.numericBinary(func(a, b float64) value.Value { return value.Number(a / b) }); ok {
				v.push(res)
			} else {
				return ResultRuntimeError
			}
		case chunk.OpNot:
			v.push(value.Bool(v.pop().IsFalsey()))
		case chunk.OpNegate:
			if !v.peek(0).IsNumber() {
				v.runtimeError("operand must be a number")
				return ResultRuntimeError
			}
			v.push(value.Number(-v.pop().AsNumber()))
		case chunk.OpReturn:
			if v.stackTop > 0 {
				fmt.Fprintln(v.stdout, v.pop().String())
			}
			return ResultOK
		default:
			v.runtimeError("unknown opcode %d", op)
			return ResultRuntimeError
		}
	}
}

func (v *VM) numericBinary(apply func(a, b float64) value.Value) (value.Value, bool) {
	if !v.peek(0).IsNumber() || !v.peek(1).IsNumber() {
		v.runtimeError("operands must be numbers")
		return value.Nil, false
	}
	b := v.pop().AsNumber()
	a := v.pop().AsNumber()
	return apply(a, b), true
}

func (v *VM) add() (value.Value, bool) {
	switch {
	case v.peek(0).IsNumber() && v.peek(1).IsNumber():
		b := v.pop().AsNumber()
		a := v.pop().AsNumber()
		return value.Number(a + b), true
	case v.peek(0).IsString() && v.peek(1).IsString():
		b := v.pop().AsString()
		a := v.pop().AsString()
		return value.ObjValue(v.internString(a.Chars + b.Chars)), true
	default:
		v.runtimeError("operands must be two numbers or two strings")
		return value.Nil, false
	}
}

func (v *VM) runtimeError(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	line := 0
	if v.ip-1 >= 0 && v.ip-1 < len(v.chunk.Lines) {
		line = v.chunk.Lines[v.ip-1]
	}
	fmt.Fprintln(v.stderr, (&RuntimeError{Line: line, Message: message}).Error())
	v.resetStack()
}

func (v *VM) traceStack() {
	var b []byte
	b = append(b, "          "...)
	for i := 0; i < v.stackTop; i++ {
		b = append(b, '[')
		b = append(b, v.stack[i].String()...)
		b = append(b, ']')
	}
	logrus.Debug(string(b))
}
