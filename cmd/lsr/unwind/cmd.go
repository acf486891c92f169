package unwind

import (
	"github.com/andrebq/learn-scoped-resources/internal/logutil"
	"github.com/andrebq/learn-scoped-resources/unwind"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "unwind",
		Usage: "Run the cascading-cleanup-failure chain, terminates abnormally by design",
		Action: func(c *cli.Context) error {
			err := unwind.Run(c.Context)
			if err != nil {
				// a well-formed run terminates inside the chain,
				// only a recoverable single failure lands here
				log := logutil.Acquire(c.Context)
				log.Error().Err(err).Msg("caught failure")
			}
			return nil
		},
	}
}
