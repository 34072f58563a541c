package gostack

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gostack/internal/flushio"
	"github.com/jcorbin/gostack/internal/panicerr"
)

// Machine evaluates values against an operand stack and a chain of scopes.
//
// The operand stack is shared by everything the machine runs: a block
// invoked by name sees, and leaves its results on, its caller's stack. What
// a block invocation gets of its own is a fresh scope frame, so that any def
// inside it stays local once it returns.
//
// A Machine must not be shared between goroutines.
type Machine struct {
	logging

	stack   []Value
	scopes  scopeChain
	outputs []Value
	out     flushio.WriteFlusher
}

// NewMachine returns a machine whose base scope holds the builtin operations.
func NewMachine(opts ...MachineOption) *Machine {
	var m Machine
	m.scopes.push(builtinScope())
	MachineOptions(opts...).apply(&m)
	return &m
}

// Evaluate evaluates a single value:
//   - integers, numbers, symbols, and blocks are pushed onto the stack
//   - an operation is looked up, innermost scope first: a block binding is
//     run in a new scope frame, a native binding is called, and any other
//     binding is pushed
//   - a native operation may not be evaluated directly, and is an
//     InvalidElementError
//
// Any error aborts the evaluation in flight. The scope chain is always
// restored before Evaluate returns; see the package documentation for what
// happens to the stack.
func (m *Machine) Evaluate(v Value) error {
	err := panicerr.Catch("evaluate", func() error {
		m.eval(v)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	if err != nil {
		m.logf("!", "error: %v", err)
	}
	return err
}

// EvaluateAll evaluates values in order, stopping at the first error.
func (m *Machine) EvaluateAll(values []Value) error {
	for _, v := range values {
		if err := m.Evaluate(v); err != nil {
			return err
		}
	}
	return nil
}

// Outputs returns every value printed by puts so far, oldest first.
func (m *Machine) Outputs() []Value { return append([]Value(nil), m.outputs...) }

// StackSnapshot returns a copy of the operand stack, bottom first.
func (m *Machine) StackSnapshot() []Value { return append([]Value(nil), m.stack...) }

// Depth returns the number of scope frames, including the base scope.
func (m *Machine) Depth() int { return len(m.scopes) }

// Lookup resolves name the same way evaluating an operation would.
func (m *Machine) Lookup(name string) (Value, bool) { return m.scopes.lookup(name) }

func (m *Machine) eval(v Value) {
	if m.logfn != nil {
		m.logf(">", "eval %v -- s:%v", v, m.stack)
	}
	switch v := v.(type) {
	case Integer, Number, Symbol, Block:
		m.push(v)
	case Operation:
		m.call(string(v))
	default:
		m.halt(&InvalidElementError{v})
	}
}

func (m *Machine) call(name string) {
	def, defined := m.scopes.lookup(name)
	if !defined {
		m.halt(&UndefinedOperationError{name})
	}
	switch def := def.(type) {
	case Block:
		m.scopes.push(nil)
		defer m.scopes.pop()
		m.logf("#", "call %v depth:%v", name, len(m.scopes))
		m.run(def)
	case NativeOperation:
		def.fn(m)
	default:
		m.push(def)
	}
}

// run evaluates each element of a block in the current scope.
func (m *Machine) run(b Block) {
	defer m.nest()()
	for _, v := range b.elems {
		m.eval(v)
	}
}

// halt aborts the evaluation in flight; Evaluate recovers err.
func (m *Machine) halt(err error) {
	panic(haltError{err})
}

func (m *Machine) haltif(err error) {
	if err != nil {
		m.halt(err)
	}
}

//// Operand stack

func (m *Machine) push(v Value) { m.stack = append(m.stack, v) }

// need halts with an UnderflowError unless the stack holds at least n values.
func (m *Machine) need(op string, n int) {
	if have := len(m.stack); have < n {
		m.halt(&UnderflowError{Op: op, Need: n, Have: have})
	}
}

// arg returns the value i places below the top of the stack; the caller must
// have checked depth with need.
func (m *Machine) arg(i int) Value { return m.stack[len(m.stack)-1-i] }

func (m *Machine) drop(n int) {
	i := len(m.stack) - n
	for j := i; j < len(m.stack); j++ {
		m.stack[j] = nil
	}
	m.stack = m.stack[:i]
}

func (m *Machine) pop() Value {
	v := m.arg(0)
	m.drop(1)
	return v
}

func (m *Machine) typeError(op string, i int, expected Kind) {
	m.halt(&TypeError{Op: op, Position: i, Expected: expected, Actual: kindOf(m.arg(i))})
}

func (m *Machine) blockArg(op string, i int) Block {
	b, ok := m.arg(i).(Block)
	if !ok {
		m.typeError(op, i, KindBlock)
	}
	return b
}

func (m *Machine) integerArg(op string, i int) Integer {
	n, ok := m.arg(i).(Integer)
	if !ok {
		m.typeError(op, i, KindInteger)
	}
	return n
}

func (m *Machine) numericArg(op string, i int) Value {
	v := m.arg(i)
	if !isNumeric(v) {
		m.typeError(op, i, KindNumber)
	}
	return v
}

// test runs a condition block and pops its numeric result.
func (m *Machine) test(op string, cond Block) bool {
	m.run(cond)
	m.need(op, 1)
	m.numericArg(op, 0)
	b, _ := truthy(m.pop())
	return b
}

// FormatOutput renders a puts result the way WithOutput and Interpret do.
func FormatOutput(v Value) string { return fmt.Sprintf("puts: %v\n", v) }
