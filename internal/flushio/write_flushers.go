package flushio

import "io"

// WriteFlushers tees output across every given sink, so that each puts line
// reaches all of them. Nil sinks are skipped, and tees passed in are
// flattened, so that a tee may be extended one sink at a time. Returns nil
// when no sink remains, and a lone sink as is.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all sinks
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case sinks:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type sinks []WriteFlusher

// Write gives p to each sink in order, stopping at the first one that fails
// or takes less than all of it.
func (all sinks) Write(p []byte) (int, error) {
	for _, wf := range all {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every sink, even past a failure, returning the first error.
func (all sinks) Flush() error {
	var first error
	for _, wf := range all {
		if err := wf.Flush(); first == nil {
			first = err
		}
	}
	return first
}
