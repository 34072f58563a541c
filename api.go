package gostack

import (
	"strings"
)

// Interpret runs code, one line at a time, on a new machine, returning its
// puts results rendered as "puts: N" lines. On error, the output produced
// up to that point is returned along with it.
func Interpret(code string, opts ...MachineOption) (string, error) {
	m := NewMachine(opts...)
	p := NewParser()
	output := func() string {
		var sb strings.Builder
		for _, v := range m.outputs {
			sb.WriteString(FormatOutput(v))
		}
		return sb.String()
	}
	for _, line := range strings.Split(code, "\n") {
		values, perr := p.ParseLine(line)
		if err := m.EvaluateAll(values); err != nil {
			return output(), err
		}
		if perr != nil {
			return output(), perr
		}
	}
	if err := p.Finish(); err != nil {
		return output(), err
	}
	return output(), nil
}
