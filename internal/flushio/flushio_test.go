package flushio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/gostack/internal/flushio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileLike has none of the buffer methods, so it must be wrapped.
type fileLike struct{ buf bytes.Buffer }

func (f *fileLike) Write(p []byte) (int, error) { return f.buf.Write(p) }

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }
func (shortWriter) Flush() error                { return nil }

type failFlusher struct{ io.Writer }

var errFlush = errors.New("flush failed")

func (failFlusher) Flush() error { return errFlush }

func TestNewWriteFlusher(t *testing.T) {
	var sb strings.Builder
	wf := flushio.NewWriteFlusher(&sb)
	_, err := io.WriteString(wf, "puts: 1\n")
	require.NoError(t, err)
	assert.Equal(t, "puts: 1\n", sb.String(), "expected buffers to be written through")

	var under fileLike
	wf = flushio.NewWriteFlusher(&under)
	_, err = io.WriteString(wf, "puts: 2\n")
	require.NoError(t, err)
	assert.Equal(t, "", under.buf.String(), "expected output to be buffered")
	require.NoError(t, wf.Flush())
	assert.Equal(t, "puts: 2\n", under.buf.String(), "expected flush to write out")

	assert.NoError(t, flushio.NewWriteFlusher(io.Discard).Flush())
}

func TestWriteFlushers(t *testing.T) {
	var a, b bytes.Buffer
	wf := flushio.WriteFlushers(nil, flushio.NewWriteFlusher(&a), flushio.NewWriteFlusher(&b))
	_, err := io.WriteString(wf, "puts: 3\n")
	require.NoError(t, err)
	require.NoError(t, wf.Flush())
	assert.Equal(t, "puts: 3\n", a.String())
	assert.Equal(t, "puts: 3\n", b.String())

	one := flushio.NewWriteFlusher(&a)
	assert.Equal(t, one, flushio.WriteFlushers(nil, one), "expected a single writer to be returned as is")
	assert.Nil(t, flushio.WriteFlushers(nil, nil))

	_, err = flushio.WriteFlushers(one, shortWriter{}).Write([]byte("abcd"))
	assert.Equal(t, io.ErrShortWrite, err)

	err = flushio.WriteFlushers(failFlusher{&b}, one).Flush()
	assert.Equal(t, errFlush, err, "expected first flush error")
}
