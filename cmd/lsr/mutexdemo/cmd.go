package mutexdemo

import (
	"context"

	"github.com/andrebq/learn-scoped-resources/guard"
	"github.com/andrebq/learn-scoped-resources/internal/cmdutil"
	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/internal/monitoring"
	"github.com/andrebq/learn-scoped-resources/internal/provider"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var hold bool
	return &cli.Command{
		Name:  "mutexdemo",
		Usage: "Acquire a mutex guard, lock, unlock, destroy, all on one thread",
		Flags: []cli.Flag{
			cmdutil.BoolFlag(&hold, "hold", "Skip the unlock so destroy demonstrates the resource-busy caller error"),
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, hold)
		},
	}
}

func run(ctx context.Context, hold bool) error {
	log := logutil.Acquire(ctx)
	tracer := monitoring.Tracer("lsr.mutexdemo")
	p := provider.NewPosix()

	var m *guard.Mutex
	err := monitoring.MeasureErr(ctx, tracer, "mutexdemo.acquire", func(ctx context.Context) error {
		var err error
		m, err = guard.InitMutex(ctx, p)
		return err
	})
	if err != nil {
		return err
	}

	if err := m.Lock(ctx); err != nil {
		return err
	}
	log.Info().Msg("Mutex locked")
	if !hold {
		if err := m.Unlock(ctx); err != nil {
			return err
		}
		log.Info().Msg("Mutex unlocked")
	}

	err = monitoring.MeasureErr(ctx, tracer, "mutexdemo.release", func(ctx context.Context) error {
		return m.Destroy(ctx)
	})
	if err != nil {
		// with --hold this is the point of the demo: the provider
		// refused teardown of a locked primitive, the guard is gone
		// either way
		log.Error().Err(err).Msg("error destroying mutex")
	}
	return nil
}
