package filewrite

import (
	"context"

	"github.com/andrebq/learn-scoped-resources/guard"
	"github.com/andrebq/learn-scoped-resources/internal/cmdutil"
	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/monitoring"
	"github.com/andrebq/learn-scoped-resources/internal/provider"
	"github.com/urfave/cli/v2"
)

// Payload is the greeting the demo writes before waiting for the
// signal to clean up.
const Payload = "Hello, from Go."

func Cmd() *cli.Command {
	var out string = "out.txt"
	var scopeClose bool
	return &cli.Command{
		Name:  "filewrite",
		Usage: "Acquire a write guard, write a greeting, wait for stdin, then release",
		Flags: []cli.Flag{
			cmdutil.StringFlag(&out, "out", "Destination path for the greeting"),
			cmdutil.BoolFlag(&scopeClose, "scope-close", "Leave the release to the scope-exit path instead of closing explicitly"),
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, out, scopeClose)
		},
	}
}

func run(ctx context.Context, out string, scopeClose bool) error {
	log := logutil.Acquire(ctx)
	tracer := monitoring.Tracer("lsr.filewrite")
	p := provider.NewPosix()

	var f *guard.File
	err := monitoring.MeasureErr(ctx, tracer, "filewrite.acquire", func(ctx context.Context) error {
		var err error
		f, err = guard.Open(ctx, p, out)
		return err
	})
	if err != nil {
		return err
	}
	if scopeClose {
		// release failure on this path is reported, not returned
		defer f.ScopeClose(ctx)
	}

	err = monitoring.MeasureErr(ctx, tracer, "filewrite.write", func(ctx context.Context) error {
		return f.Write(ctx, []byte(Payload))
	})
	if err != nil {
		return err
	}
	log.Info().Str("out", f.Path()).Msg("Payload written, waiting for one line on stdin before cleanup")
	if err := cmdutil.WaitLine(ctx, nil); err != nil {
		return err
	}

	if !scopeClose {
		err = monitoring.MeasureErr(ctx, tracer, "filewrite.release", func(ctx context.Context) error {
			return f.Close(ctx)
		})
		if err != nil {
			// a failed close still left the guard released, report
			// and keep the exit clean, nothing is retryable here
			log.Error().Err(err).Msg("error closing file")
		}
	}
	return nil
}
