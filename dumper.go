package gostack

import (
	"fmt"
	"io"

	"github.com/alecthomas/repr"
)

// Dump writes a human readable description of the machine's state to w: its
// operand stack, outputs, and every user binding by scope frame.
func (m *Machine) Dump(w io.Writer) error {
	dump := machineDumper{m: m, out: w}
	dump.dump()
	return dump.err
}

// DumpRaw is like Dump, but renders the state as a Go-syntax structure.
func (m *Machine) DumpRaw(w io.Writer) error {
	dump := machineDumper{m: m, out: w, raw: true}
	dump.dump()
	return dump.err
}

type machineDumper struct {
	m   *Machine
	out io.Writer
	raw bool
	err error
}

// frameDump is the raw form of one scope frame.
type frameDump struct {
	Depth    int
	Natives  []string
	Bindings map[string]string
}

type machineDump struct {
	Stack   []string
	Outputs []string
	Frames  []frameDump
}

func (dump *machineDumper) dump() {
	if dump.raw {
		dump.printf("%s\n", repr.String(dump.collect(), repr.Indent("  ")))
		return
	}
	dump.printf("# Machine Dump\n")
	dump.printf("  stack: %v\n", dump.m.stack)
	dump.printf("  outputs: %v\n", dump.m.outputs)
	for i, s := range dump.m.scopes {
		dump.printf("# Scope %v\n", i)
		for _, name := range s.names() {
			v := s[name]
			if _, native := v.(NativeOperation); native && i == 0 {
				continue
			}
			dump.printf("  %v = %v\n", name, v)
		}
	}
}

func (dump *machineDumper) collect() machineDump {
	var md machineDump
	md.Stack = valueStrings(dump.m.stack)
	md.Outputs = valueStrings(dump.m.outputs)
	for i, s := range dump.m.scopes {
		fd := frameDump{Depth: i}
		for _, name := range s.names() {
			v := s[name]
			if _, native := v.(NativeOperation); native {
				fd.Natives = append(fd.Natives, name)
				continue
			}
			if fd.Bindings == nil {
				fd.Bindings = make(map[string]string)
			}
			fd.Bindings[name] = v.String()
		}
		md.Frames = append(md.Frames, fd)
	}
	return md
}

func (dump *machineDumper) printf(mess string, args ...interface{}) {
	if dump.err == nil {
		_, dump.err = fmt.Fprintf(dump.out, mess, args...)
	}
}

func valueStrings(values []Value) []string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.String()
	}
	return strs
}
