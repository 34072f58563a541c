package gostack

import (
	"io"
	"math"
)

// builtins is the fixed registry installed into every machine's base scope.
// Being ordinary bindings, any of them may be shadowed by def.
var builtins = [...]struct {
	name string
	fn   func(m *Machine)
}{
	{"+", (*Machine).add},
	{"-", (*Machine).sub},
	{"*", (*Machine).mul},
	{"/", (*Machine).div},
	{"<", (*Machine).less},
	{"if", (*Machine).ifElse},
	{"def", (*Machine).def},
	{"for", (*Machine).loop},
	{"while", (*Machine).while},
	{"puts", (*Machine).puts},
	{"pop", (*Machine).discard},
	{"dup", (*Machine).dup},
	{"exch", (*Machine).exch},
	{"index", (*Machine).index},
}

func builtinScope() scope {
	s := make(scope, len(builtins))
	for _, b := range builtins {
		s[b.name] = NativeOperation{Name: b.name, fn: b.fn}
	}
	return s
}

//// Arithmetic

// Each arithmetic operation pops rhs, then lhs, and pushes lhs op rhs. Two
// integers give an integer; a number on either side makes a number.

// operands checks for two numeric operands without popping them.
func (m *Machine) operands(op string) (lhs, rhs Value) {
	m.need(op, 2)
	rhs = m.numericArg(op, 0)
	lhs = m.numericArg(op, 1)
	return lhs, rhs
}

func (m *Machine) arith(
	op string,
	ints func(a, b Integer) Integer,
	nums func(a, b Number) Number,
) {
	lhs, rhs := m.operands(op)
	if op == "/" {
		if nonzero, _ := truthy(rhs); !nonzero {
			m.halt(&ArithmeticError{Op: op, Err: ErrDivideByZero})
		}
	}
	m.drop(2)
	a, aok := lhs.(Integer)
	b, bok := rhs.(Integer)
	if aok && bok {
		m.push(ints(a, b))
		return
	}
	x, _ := AsNumber(lhs)
	y, _ := AsNumber(rhs)
	m.push(nums(x, y))
}

func (m *Machine) add() {
	m.arith("+",
		func(a, b Integer) Integer { return a + b },
		func(a, b Number) Number { return a + b })
}

func (m *Machine) sub() {
	m.arith("-",
		func(a, b Integer) Integer { return a - b },
		func(a, b Number) Number { return a - b })
}

func (m *Machine) mul() {
	m.arith("*",
		func(a, b Integer) Integer { return a * b },
		func(a, b Number) Number { return a * b })
}

// Integer division truncates toward zero.
func (m *Machine) div() {
	m.arith("/",
		func(a, b Integer) Integer { return a / b },
		func(a, b Number) Number { return a / b })
}

// less pushes 1 if lhs < rhs, else 0.
func (m *Machine) less() {
	lhs, rhs := m.operands("<")
	m.drop(2)
	a, aok := lhs.(Integer)
	b, bok := rhs.(Integer)
	if aok && bok {
		m.push(boolInteger(a < b))
		return
	}
	x, _ := AsNumber(lhs)
	y, _ := AsNumber(rhs)
	m.push(boolInteger(x < y))
}

func boolInteger(b bool) Integer {
	if b {
		return 1
	}
	return 0
}

//// Control flow

// ifElse expects, top down: false branch, true branch, condition; all blocks.
// It runs the condition, pops its result, and runs the true branch if that
// was nonzero, the false branch otherwise.
func (m *Machine) ifElse() {
	const op = "if"
	m.need(op, 3)
	no := m.blockArg(op, 0)
	yes := m.blockArg(op, 1)
	cond := m.blockArg(op, 2)
	m.drop(3)
	if m.test(op, cond) {
		m.run(yes)
	} else {
		m.run(no)
	}
}

// def expects, top down: a value and a symbol. It binds the symbol's name to
// the value in the innermost scope frame.
func (m *Machine) def() {
	const op = "def"
	m.need(op, 2)
	if _, ok := m.arg(1).(Symbol); !ok {
		m.typeError(op, 1, KindSymbol)
	}
	m.eval(m.pop())
	v := m.pop()
	sym := m.pop().(Symbol)
	m.logf("#", "def %v = %v depth:%v", sym, v, len(m.scopes))
	m.scopes.define(string(sym), v)
}

// loop expects, top down: a body block, an end integer, and a start integer.
// It runs the body once for every integer from start to end inclusive; no
// counter is bound or pushed.
func (m *Machine) loop() {
	const op = "for"
	m.need(op, 3)
	body := m.blockArg(op, 0)
	end := m.integerArg(op, 1)
	start := m.integerArg(op, 2)
	m.drop(3)
	for i := start; i <= end; i++ {
		m.run(body)
		if i == math.MaxInt64 {
			break
		}
	}
}

// while expects, top down: a body block and a condition block. It runs the
// body for as long as the condition leaves a nonzero result.
func (m *Machine) while() {
	const op = "while"
	m.need(op, 2)
	body := m.blockArg(op, 0)
	cond := m.blockArg(op, 1)
	m.drop(2)
	for m.test(op, cond) {
		m.run(body)
	}
}

//// Output

// puts pops a numeric value and appends it to the outputs.
func (m *Machine) puts() {
	const op = "puts"
	m.need(op, 1)
	v := m.numericArg(op, 0)
	m.drop(1)
	m.outputs = append(m.outputs, v)
	if m.out != nil {
		_, err := io.WriteString(m.out, FormatOutput(v))
		m.haltif(err)
		m.haltif(m.out.Flush())
	}
}

//// Stack shuffling

// discard implements pop.
func (m *Machine) discard() {
	m.need("pop", 1)
	m.drop(1)
}

func (m *Machine) dup() {
	m.need("dup", 1)
	m.push(m.arg(0))
}

func (m *Machine) exch() {
	m.need("exch", 2)
	i, j := len(m.stack)-1, len(m.stack)-2
	m.stack[i], m.stack[j] = m.stack[j], m.stack[i]
}

// index pops n, then copies up the value n places below the new top, so that
// "0 index" is dup.
func (m *Machine) index() {
	const op = "index"
	m.need(op, 1)
	n := m.integerArg(op, 0)
	if have := len(m.stack); n < 0 || n > Integer(have-2) {
		// n+2 values are needed; anything unrepresentable needs more than
		// any stack holds
		need := math.MaxInt
		if n >= 0 && n < Integer(math.MaxInt-2) {
			need = int(n) + 2
		}
		m.halt(&UnderflowError{Op: op, Need: need, Have: have})
	}
	m.drop(1)
	m.push(m.arg(int(n)))
}
