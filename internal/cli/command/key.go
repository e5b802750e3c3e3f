// Package command provides CLI command definitions for memkv-cli.
package command

import (
	"strconv"

	"github.com/urfave/cli/v2"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value of a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError("get KEY")
			}
			return run(c, "GET", c.Args().First())
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set a key to a value, optionally with an expiry",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:  "px",
				Usage: "Expire the key after `MILLISECONDS`",
			},
			&cli.Int64Flag{
				Name:  "ex",
				Usage: "Expire the key after `SECONDS`",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError("set KEY VALUE [--px ms | --ex s]")
			}
			args := []string{"SET", c.Args().Get(0), c.Args().Get(1)}
			switch {
			case c.IsSet("px"):
				args = append(args, "PX", strconv.FormatInt(c.Int64("px"), 10))
			case c.IsSet("ex"):
				args = append(args, "EX", strconv.FormatInt(c.Int64("ex"), 10))
			}
			return run(c, args...)
		},
	}
}

// DelCommand returns the del command.
func DelCommand() *cli.Command {
	return &cli.Command{
		Name:      "del",
		Usage:     "Delete one or more keys",
		ArgsUsage: "KEY [KEY...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return usageError("del KEY [KEY...]")
			}
			return run(c, append([]string{"DEL"}, c.Args().Slice()...)...)
		},
	}
}

// ExistsCommand returns the exists command.
func ExistsCommand() *cli.Command {
	return &cli.Command{
		Name:      "exists",
		Usage:     "Count how many of the given keys exist",
		ArgsUsage: "KEY [KEY...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return usageError("exists KEY [KEY...]")
			}
			return run(c, append([]string{"EXISTS"}, c.Args().Slice()...)...)
		},
	}
}
