package gostack

import (
	"io"

	"github.com/jcorbin/gostack/internal/flushio"
)

// MachineOption customizes a Machine built by NewMachine.
type MachineOption interface{ apply(m *Machine) }

// MachineOptions combines any number of options into one, applied in order.
func MachineOptions(opts ...MachineOption) MachineOption {
	var res machineOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case machineOptions:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

// WithLogf enables step tracing through the given printf-style function.
func WithLogf(logfn func(mess string, args ...interface{})) MachineOption { return withLogfn(logfn) }

// WithOutput writes a "puts: N" line to w for every puts, in addition to
// recording it in Outputs.
func WithOutput(w io.Writer) MachineOption { return outputOption{w} }

// WithTee adds another writer to receive puts lines.
func WithTee(w io.Writer) MachineOption { return teeOption{w} }

type machineOptions []MachineOption

func (opts machineOptions) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

type withLogfn func(mess string, args ...interface{})
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }

func (logfn withLogfn) apply(m *Machine) { m.logfn = logfn }

func (o outputOption) apply(m *Machine) {
	if m.out != nil {
		m.out.Flush()
	}
	m.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(m *Machine) {
	m.out = flushio.WriteFlushers(m.out, flushio.NewWriteFlusher(o.Writer))
}
