package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcorbin/gostack/internal/config"
	"github.com/jcorbin/gostack/internal/logio"
)

func main() {
	ctx := context.Background()
	name := filepath.Base(os.Args[0])

	cfg, err := config.Parse(name, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(name, os.Stdout)
		return
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		config.Usage(name, os.Stderr)
		os.Exit(2)
	}

	log := logio.NewLogger(os.Stderr)
	r, err := newRunner(cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		log.ErrorIf(err)
		os.Exit(log.ExitCode())
	}

	if cfg.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	log.ErrorIf(r.run(ctx))
	os.Exit(log.ExitCode())
}
