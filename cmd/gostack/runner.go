package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jcorbin/gostack"
	"github.com/jcorbin/gostack/internal/config"
	"github.com/jcorbin/gostack/internal/fileinput"
	"github.com/jcorbin/gostack/internal/logio"
	"github.com/jcorbin/gostack/internal/panicerr"
)

// runner feeds input lines through a parser into a machine.
//
// Reading and evaluation happen on separate goroutines that take turns: the
// evaluator hands the reader the prompt for the next line once it is done
// with the last one. Neither the parser nor the machine is ever touched by
// the reader, so the evaluator may be abandoned mid-line when time runs out.
type runner struct {
	cfg config.Config
	log *logio.Logger
	in  fileinput.Input
	out io.Writer

	prompt    io.Writer // nil unless interactive
	keepGoing bool
	dump      io.Writer // nil unless dumping
}

func newRunner(cfg config.Config, log *logio.Logger, stdin io.Reader, stdout io.Writer) (*runner, error) {
	r := &runner{
		cfg:       cfg,
		log:       log,
		out:       stdout,
		keepGoing: cfg.KeepGoing,
	}
	if len(cfg.Files) == 0 {
		r.in.Queue = append(r.in.Queue, fileinput.Named("<stdin>", stdin))
	}
	for _, name := range cfg.Files {
		if name == "-" {
			r.in.Queue = append(r.in.Queue, fileinput.Named("<stdin>", stdin))
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			r.in.Close()
			return nil, err
		}
		r.in.Queue = append(r.in.Queue, f)
	}
	if isInteractive(cfg, stdin) {
		r.prompt = stdout
		r.keepGoing = true
	}
	if cfg.Dump {
		r.dump = &logio.Writer{Logf: log.Leveledf("DUMP")}
	}
	return r, nil
}

// isInteractive decides whether to prompt: as configured, or else only when
// reading a terminal on standard input.
func isInteractive(cfg config.Config, stdin io.Reader) bool {
	if cfg.Interactive != nil {
		return *cfg.Interactive
	}
	if len(cfg.Files) > 0 {
		return false
	}
	f, ok := stdin.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *runner) machineOptions() gostack.MachineOption {
	var opts []gostack.MachineOption
	opts = append(opts, gostack.WithOutput(r.out))
	if r.cfg.Trace {
		opts = append(opts, gostack.WithLogf(r.log.Leveledf("TRACE")))
	}
	return gostack.MachineOptions(opts...)
}

// run reads and evaluates all input, returning the first error that stops
// it. When ctx is done first, run returns its error without waiting for
// either goroutine.
func (r *runner) run(ctx context.Context) error {
	m := gostack.NewMachine(r.machineOptions())
	p := gostack.NewParser()

	prompts := make(chan string)
	lines := make(chan fileinput.Line)
	evalDone := make(chan error, 1)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(lines)
		return r.read(gctx, prompts, lines)
	})
	eg.Go(func() error {
		err := panicerr.Catch("evaluate", func() error {
			return r.eval(gctx, m, p, prompts, lines)
		})
		evalDone <- err
		return err
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-evalDone:
		r.dumpMachine(m)
		if err != nil {
			// the reader may be stuck waiting on input that never comes
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return eg.Wait()
	}
}

// read waits for a prompt, then reads and sends the next line, until input
// runs out.
func (r *runner) read(ctx context.Context, prompts <-chan string, lines chan<- fileinput.Line) error {
	defer r.in.Close()
	for {
		var prompt string
		select {
		case <-ctx.Done():
			return nil
		case prompt = <-prompts:
		}

		if r.prompt != nil {
			if _, err := io.WriteString(r.prompt, prompt); err != nil {
				return err
			}
		}

		line, err := r.in.ReadLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case lines <- line:
		}
	}
}

// eval evaluates lines until the reader runs out, or until ctx is done. An
// error stops it unless running in keep going mode, where it is logged and
// the parser is reset instead.
func (r *runner) eval(
	ctx context.Context,
	m *gostack.Machine, p *gostack.Parser,
	prompts chan<- string, lines <-chan fileinput.Line,
) error {
	var last fileinput.Location
	for {
		prompt := r.cfg.Prompt
		if p.Depth() > 0 {
			prompt = r.cfg.ContinuePrompt
		}
		select {
		case <-ctx.Done():
			return nil
		case prompts <- prompt:
		}

		var line fileinput.Line
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				if err := p.Finish(); err != nil {
					return r.lineError(last, err)
				}
				return nil
			}
			line = l
		}
		last = line.Location

		if err := evalLine(m, p, line.Text); err != nil {
			if err := r.lineError(line.Location, err); err != nil {
				return err
			}
			p.Reset()
		}
	}
}

// lineError either returns err located at loc, or logs it and returns nil
// when keeping going.
func (r *runner) lineError(loc fileinput.Location, err error) error {
	err = fmt.Errorf("%v: %w", loc, err)
	if !r.keepGoing {
		return err
	}
	r.log.ErrorIf(err)
	return nil
}

func evalLine(m *gostack.Machine, p *gostack.Parser, text string) error {
	values, perr := p.ParseLine(text)
	if err := m.EvaluateAll(values); err != nil {
		return err
	}
	return perr
}

func (r *runner) dumpMachine(m *gostack.Machine) {
	if r.dump == nil {
		return
	}
	r.log.ErrorIf(m.DumpRaw(r.dump))
	if sy, ok := r.dump.(interface{ Sync() error }); ok {
		r.log.ErrorIf(sy.Sync())
	}
}
