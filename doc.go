/* Package gostack: a small stack language with blocks

A program is a sequence of words separated by white space, spread over any
number of lines. There are no comments, strings, or escapes. Each word is
one of:

	3 -7            an integer
	2.5 -0.125      a number
	/name           a symbol: inert data, mostly used as the target of def
	{ ... }         a block: an unevaluated, reusable sequence of words
	name            an operation: looked up by name when evaluated

Integers, numbers, symbols, and blocks evaluate to themselves: they are
pushed onto the operand stack. An operation is looked up in the scope chain,
innermost scope first, every time it is evaluated; nothing is bound ahead of
time, so redefining a name changes what every later lookup of it finds, even
from blocks that were written before the redefinition. What an operation
finds decides what happens:

	a block     the block's words are evaluated in a new scope, against
	            the same operand stack as the caller
	a builtin   the builtin runs
	anything    the bound value is pushed (this is how def-ined constants
	else        are recalled)

Section 1: builtins

The builtins live in the outermost scope as ordinary bindings, so a def of
the same name shadows them.

	+ - * /     pop rhs, pop lhs, push lhs op rhs; two integers make an
	            integer (division truncates), otherwise a number; dividing
	            by zero is an error
	<           pop rhs, pop lhs, push 1 if lhs < rhs, else 0
	puts        pop a number, append it to the machine's outputs
	pop         discard the top value
	dup         push a copy of the top value
	exch        swap the top two values
	index       pop n, push a copy of the value n places below the top;
	            0 index is dup

Section 2: control flow

	cond yes no if      run cond, pop its result; run yes if that was
	                    nonzero, else run no
	/sym value def      bind sym to value in the innermost scope
	start end body for  run body once per integer from start to end,
	                    inclusive; both bounds must be integers, and no
	                    counter is provided
	cond body while     run cond, pop its result; while that was nonzero,
	                    run body and then cond again

All of cond, yes, no, and body are blocks. Control flow runs them in the
current scope; only invoking a block by name opens a new one. For example:

	/x 0 def
	1 100 { /x x 1 + def } for
	x puts

prints 100, while

	/x 10 def /y 20 def
	{ x y < } { x } { y } if

leaves 10 on the stack.

Section 3: parsing

A Parser is fed one line at a time. Blocks may span lines: the parser keeps
a stack of open blocks between calls, and only returns a value once every
block it is part of has closed. A close brace with no open block is an
error, as is reaching the end of input with a block still open.

Section 4: errors

Every error aborts the evaluation of the top level value in flight, and is
returned from Machine.Evaluate: nothing is retried or recovered. A builtin
that fails leaves the operand stack as it found it. When the failure happens
deeper, inside a block, loop, or branch, whatever the steps before it did to
the stack stays done. Scope frames opened by the failed evaluation are
always closed.

Evaluation recurses into blocks, so deeply nested control flow or a block
that invokes itself is only bounded by the Go stack; there is no depth
limit, and an endless loop runs forever.

*/
package gostack
