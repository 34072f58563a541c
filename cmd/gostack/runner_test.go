package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gostack/internal/config"
	"github.com/jcorbin/gostack/internal/logio"
)

type runnerTest struct {
	cfg   config.Config
	stdin io.Reader

	out strings.Builder
	log strings.Builder
	lg  *logio.Logger
}

func newRunnerTest(stdin string) *runnerTest {
	return &runnerTest{cfg: config.Default(), stdin: strings.NewReader(stdin)}
}

func (rt *runnerTest) run(t *testing.T, ctx context.Context) error {
	rt.lg = logio.NewLogger(&rt.log)
	r, err := newRunner(rt.cfg, rt.lg, rt.stdin, &rt.out)
	require.NoError(t, err)
	err = r.run(ctx)
	if t.Failed() || err != nil {
		t.Logf("output:\n%s", rt.out.String())
		t.Logf("log:\n%s", rt.log.String())
	}
	return err
}

func boolp(b bool) *bool { return &b }

func TestRunner_batch(t *testing.T) {
	rt := newRunnerTest("/x 0 def\n1 100 {\n  /x x 1 + def\n} for\nx puts\n")
	require.NoError(t, rt.run(t, context.Background()))
	assert.Equal(t, "puts: 100\n", rt.out.String())
	assert.Equal(t, "", rt.log.String())
	assert.Equal(t, 0, rt.lg.ExitCode())
}

func TestRunner_abort(t *testing.T) {
	rt := newRunnerTest("1 puts\nfoo\n2 puts\n")
	err := rt.run(t, context.Background())
	assert.EqualError(t, err, `<stdin>:2: undefined operation "foo"`)
	assert.Equal(t, "puts: 1\n", rt.out.String(), "expected no output after the error")
}

func TestRunner_keepGoing(t *testing.T) {
	rt := newRunnerTest("1 puts\nfoo\n2 puts\n")
	rt.cfg.KeepGoing = true
	require.NoError(t, rt.run(t, context.Background()))
	assert.Equal(t, "puts: 1\nputs: 2\n", rt.out.String())
	assert.Equal(t, "ERROR: <stdin>:2: undefined operation \"foo\"\n", rt.log.String())
	assert.Equal(t, 1, rt.lg.ExitCode())
}

func TestRunner_unclosed(t *testing.T) {
	rt := newRunnerTest("1 puts\n{ 2\n")
	err := rt.run(t, context.Background())
	assert.EqualError(t, err, "<stdin>:2: parse error: unclosed block")
	assert.Equal(t, "puts: 1\n", rt.out.String())
}

func TestRunner_interactive(t *testing.T) {
	rt := newRunnerTest("1 {\n2 } pop\nfoo\n3 puts\n")
	rt.cfg.Interactive = boolp(true)
	require.NoError(t, rt.run(t, context.Background()))
	assert.Equal(t, "> .. > > puts: 3\n> ", rt.out.String())
	assert.Equal(t, "ERROR: <stdin>:3: undefined operation \"foo\"\n", rt.log.String())
}

func TestRunner_interactiveReset(t *testing.T) {
	rt := newRunnerTest("{ 1 nope\n} }\n4 puts\n")
	rt.cfg.Interactive = boolp(true)
	rt.cfg.Prompt = "$ "
	rt.cfg.ContinuePrompt = "+ "
	require.NoError(t, rt.run(t, context.Background()))
	assert.Equal(t, "$ + $ puts: 4\n$ ", rt.out.String())
	assert.Contains(t, rt.log.String(), "<stdin>:2: parse error: unmatched close brace")
}

func TestRunner_files(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.gs")
	b := filepath.Join(dir, "b.gs")
	require.NoError(t, os.WriteFile(a, []byte("/sq { dup * } def\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("4 sq puts\nnope\n"), 0o644))

	rt := newRunnerTest("")
	rt.cfg.Files = []string{a, b}
	err := rt.run(t, context.Background())
	assert.EqualError(t, err, fmt.Sprintf(`%v:2: undefined operation "nope"`, b))
	assert.Equal(t, "puts: 16\n", rt.out.String())

	_, err = newRunner(config.Config{Files: []string{filepath.Join(dir, "missing.gs")}}, logio.NewLogger(io.Discard), nil, io.Discard)
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected not exist error, got %v", err)
}

func TestRunner_trace(t *testing.T) {
	rt := newRunnerTest("1 puts\n")
	rt.cfg.Trace = true
	require.NoError(t, rt.run(t, context.Background()))
	assert.Contains(t, rt.log.String(), "TRACE: > eval 1 -- s:[]\n")
	assert.Contains(t, rt.log.String(), "TRACE: > eval puts -- s:[1]\n")
}

func TestRunner_dump(t *testing.T) {
	rt := newRunnerTest("/x 1 def 2\n")
	rt.cfg.Dump = true
	require.NoError(t, rt.run(t, context.Background()))
	assert.Contains(t, rt.log.String(), "DUMP: ")
	assert.Contains(t, rt.log.String(), `"x": "1"`)
	assert.Contains(t, rt.log.String(), `"2"`)
}

func TestRunner_timeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	rt := newRunnerTest("")
	rt.stdin = pr
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rt.run(t, ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline exceeded, got %v", err)
}

func TestIsInteractive(t *testing.T) {
	cfg := config.Default()
	assert.False(t, isInteractive(cfg, strings.NewReader("")), "expected a plain reader not to prompt")

	cfg.Interactive = boolp(true)
	assert.True(t, isInteractive(cfg, strings.NewReader("")))

	cfg.Interactive = nil
	cfg.Files = []string{"prog.gs"}
	assert.False(t, isInteractive(cfg, os.Stdin), "expected files not to prompt")
}
