package cmdutil

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// every flag gets one LSR_ env var derived from its name
func envVar(name string) []string {
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return []string{"LSR_" + strings.ToUpper(name)}
}

func StringFlag(dest *string, name string, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        name,
		Usage:       usage,
		EnvVars:     envVar(name),
		Value:       *dest,
		Destination: dest,
	}
}

func BoolFlag(dest *bool, name string, usage string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        name,
		Usage:       usage,
		EnvVars:     envVar(name),
		Value:       *dest,
		Destination: dest,
	}
}

func IntFlag(dest *int, name string, usage string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:        name,
		Usage:       usage,
		EnvVars:     envVar(name),
		Value:       *dest,
		Destination: dest,
	}
}
