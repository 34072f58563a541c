package logio

import (
	"bytes"
	"sync"
)

// Writer feeds text through Logf one line at a time, without line endings.
// Machine dumps are written through one to reach a leveled Logger, or a
// test's t.Logf. Safe for use from multiple goroutines.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Write logs every line completed by p, holding back any trailing partial
// line for the next Write or Sync. Never fails.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	rest := append(lw.partial, p...)
	for {
		line, after, found := bytes.Cut(rest, []byte("\n"))
		if !found {
			break
		}
		lw.Logf("%s", line)
		rest = after
	}
	lw.partial = append(lw.partial[:0], rest...)
	return len(p), nil
}

// Sync logs any held back partial line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.Logf("%s", lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}

// Close calls Sync.
func (lw *Writer) Close() error { return lw.Sync() }
