package gostack

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind names which variant of Value a value is.
type Kind int

const (
	KindInteger Kind = iota
	KindNumber
	KindOperation
	KindSymbol
	KindBlock
	KindNativeOperation
)

var kindNames = [...]string{
	KindInteger:         "integer",
	KindNumber:          "number",
	KindOperation:       "operation",
	KindSymbol:          "symbol",
	KindBlock:           "block",
	KindNativeOperation: "native operation",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the datum that flows from the parser into the machine, and that
// the machine keeps on its operand stack and in its scopes.
type Value interface {
	Kind() Kind
	String() string
}

// Integer is an integral numeric literal.
type Integer int64

// Number is a floating point numeric literal.
type Number float64

// Operation is a name that gets resolved against the scope chain every time
// it is evaluated; it is never bound at parse time.
type Operation string

// Symbol is an inert name, written as /name in source, that evaluates to
// itself; it is what def binds to.
type Symbol string

// Block is an unevaluated sequence of values. Blocks are immutable once
// built: the parser is the only thing that appends to one.
type Block struct{ elems []Value }

// NativeOperation is a built-in behavior bound in the base scope.
type NativeOperation struct {
	Name string
	fn   func(m *Machine)
}

// NewBlock builds a block holding a copy of the given values.
func NewBlock(values ...Value) Block {
	return Block{append([]Value(nil), values...)}
}

func (Integer) Kind() Kind         { return KindInteger }
func (Number) Kind() Kind          { return KindNumber }
func (Operation) Kind() Kind       { return KindOperation }
func (Symbol) Kind() Kind          { return KindSymbol }
func (Block) Kind() Kind           { return KindBlock }
func (NativeOperation) Kind() Kind { return KindNativeOperation }

func (i Integer) String() string    { return strconv.FormatInt(int64(i), 10) }
func (op Operation) String() string { return string(op) }
func (sym Symbol) String() string   { return "/" + string(sym) }

func (n Number) String() string {
	s := strconv.FormatFloat(float64(n), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func (b Block) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for _, v := range b.elems {
		sb.WriteByte(' ')
		sb.WriteString(v.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

func (nat NativeOperation) String() string { return fmt.Sprintf("<native %v>", nat.Name) }

// Len returns how many values the block holds.
func (b Block) Len() int { return len(b.elems) }

// At returns the i-th value of the block.
func (b Block) At(i int) Value { return b.elems[i] }

// Values returns a copy of the block's values.
func (b Block) Values() []Value { return append([]Value(nil), b.elems...) }

// AsInteger returns v as an Integer, or a TypeError.
func AsInteger(v Value) (Integer, error) {
	if i, ok := v.(Integer); ok {
		return i, nil
	}
	return 0, typeErrorOf(KindInteger, v)
}

// AsNumber returns the numeric value of an Integer or Number, or a TypeError.
func AsNumber(v Value) (Number, error) {
	switch n := v.(type) {
	case Integer:
		return Number(n), nil
	case Number:
		return n, nil
	}
	return 0, typeErrorOf(KindNumber, v)
}

// AsSymbol returns v as a Symbol, or a TypeError.
func AsSymbol(v Value) (Symbol, error) {
	if sym, ok := v.(Symbol); ok {
		return sym, nil
	}
	return "", typeErrorOf(KindSymbol, v)
}

// AsBlock returns v as a Block, or a TypeError.
func AsBlock(v Value) (Block, error) {
	if b, ok := v.(Block); ok {
		return b, nil
	}
	return Block{}, typeErrorOf(KindBlock, v)
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case Integer, Number:
		return true
	}
	return false
}

// truthy reports whether a numeric value is nonzero.
func truthy(v Value) (bool, error) {
	switch n := v.(type) {
	case Integer:
		return n != 0, nil
	case Number:
		return n != 0, nil
	}
	return false, typeErrorOf(KindNumber, v)
}

func kindOf(v Value) Kind {
	if v == nil {
		return -1
	}
	return v.Kind()
}
