package gostack

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedCloseBrace = errors.New("unmatched close brace")
	ErrUnclosedBlock       = errors.New("unclosed block")
	ErrStackUnderflow      = errors.New("stack underflow")
	ErrDivideByZero        = errors.New("divide by zero")
	ErrInvalidElement      = errors.New("invalid element")
)

// ParseError reports malformed block structure; Index is the position of the
// offending word within its line, or -1 when input ended early.
type ParseError struct {
	Err   error
	Word  string
	Index int
}

func (err *ParseError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("parse error: %v", err.Err)
	}
	return fmt.Sprintf("parse error: %v %q at word %v", err.Err, err.Word, err.Index)
}

func (err *ParseError) Unwrap() error { return err.Err }

// UnderflowError reports an operation that needed more values than the
// operand stack held.
type UnderflowError struct {
	Op   string
	Need int
	Have int
}

func (err *UnderflowError) Error() string {
	return fmt.Sprintf("%v: stack underflow, need %v have %v", err.Op, err.Need, err.Have)
}

func (err *UnderflowError) Unwrap() error { return ErrStackUnderflow }

// TypeError reports a value of the wrong kind; Position counts down from the
// top of the operand stack where that is known, or is -1.
type TypeError struct {
	Op       string
	Position int
	Expected Kind
	Actual   Kind
}

func (err *TypeError) Error() string {
	var mess string
	if err.Actual < 0 {
		mess = fmt.Sprintf("expected %v, got nothing", err.Expected)
	} else {
		mess = fmt.Sprintf("expected %v, got %v", err.Expected, err.Actual)
	}
	if err.Position >= 0 {
		mess = fmt.Sprintf("%v at stack[%v]", mess, err.Position)
	}
	if err.Op != "" {
		mess = err.Op + ": " + mess
	}
	return "type error: " + mess
}

func typeErrorOf(expected Kind, v Value) *TypeError {
	return &TypeError{Position: -1, Expected: expected, Actual: kindOf(v)}
}

// UndefinedOperationError reports a name that no scope binds.
type UndefinedOperationError struct{ Name string }

func (err *UndefinedOperationError) Error() string {
	return fmt.Sprintf("undefined operation %q", err.Name)
}

// ArithmeticError reports a failed arithmetic native.
type ArithmeticError struct {
	Op  string
	Err error
}

func (err *ArithmeticError) Error() string { return fmt.Sprintf("%v: %v", err.Op, err.Err) }
func (err *ArithmeticError) Unwrap() error { return err.Err }

// InvalidElementError reports a value that may never be evaluated directly,
// which only happens if a native operation leaks out of its scope binding.
type InvalidElementError struct{ Value Value }

func (err *InvalidElementError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidElement, err.Value)
}

func (err *InvalidElementError) Unwrap() error { return ErrInvalidElement }

// haltError carries an evaluation error up through the panic that aborts the
// evaluation in flight.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
