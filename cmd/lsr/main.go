package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/learn-scoped-resources/cmd/lsr/filewrite"
	"github.com/andrebq/learn-scoped-resources/cmd/lsr/mutexdemo"
	"github.com/andrebq/learn-scoped-resources/cmd/lsr/unwind"
	"github.com/andrebq/learn-scoped-resources/internal/cmdutil"
	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/monitoring"
	"github.com/rs/zerolog"
	logpkg "github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	log := logutil.Acquire(logutil.WithLogger(ctx, logpkg.Logger))
	var logLevel string = zerolog.InfoLevel.String()
	app := &cli.App{
		Name:  "lsr - learn scoped resources",
		Usage: "Isolated demos about resource-lifetime management when cleanup can fail",
		Commands: []*cli.Command{
			filewrite.Cmd(),
			mutexdemo.Cmd(),
			unwind.Cmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Controls how verbose the log will be",
				Destination: &logLevel,
				Value:       logLevel,
			},
			cmdutil.TraceEnabledFlag(),
			cmdutil.ExporterTypeFlag(),
			cmdutil.ServiceNameFlag(),
			cmdutil.ServiceVersionFlag(),
			cmdutil.ServiceEnvFlag(),
			cmdutil.InstanceNameFlag(),
		},
		Before: func(ctx *cli.Context) error {
			log = log.Level(cmdutil.LogLevel(logLevel))
			ctx.Context = logutil.WithLogger(ctx.Context, log)
			logpkg.Logger = log
			if cmdutil.TraceEnabled() {
				exp, err := cmdutil.Exporter(ctx.Context)
				if err != nil {
					return err
				}
				monitoring.InitTraceProvider(exp, cmdutil.Resource())
			}
			return nil
		},
		After: func(ctx *cli.Context) error {
			if cmdutil.TraceEnabled() {
				return monitoring.ShutdownProvider(ctx.Context)
			}
			return nil
		},
	}

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}
