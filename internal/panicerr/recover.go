package panicerr

import "runtime/debug"

// Catch runs f on the calling goroutine, converting any panic raised by it
// into a non-nil error return. Errors panicked by f stay reachable through
// errors.Is and errors.As on the result.
func Catch(name string, f func() error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = panicError{name: name, e: e, stack: debug.Stack()}
		}
	}()
	return f()
}
