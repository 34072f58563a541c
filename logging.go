package gostack

import (
	"fmt"
	"strings"
)

// logging traces evaluation through an optional printf-style logfn. Every
// line carries a one character mark for the kind of step ("> eval",
// "# call", "! error"), indented by two spaces per block being run.
type logging struct {
	logfn func(mess string, args ...interface{})

	nesting int
}

// nest indents further trace lines until the returned func is called.
func (log *logging) nest() func() {
	log.nesting++
	return func() { log.nesting-- }
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%s%v %v", strings.Repeat("  ", log.nesting), mark, mess)
}
