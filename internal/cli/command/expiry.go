// Package command provides CLI command definitions for memkv-cli.
package command

import "github.com/urfave/cli/v2"

// ExpireCommand returns the expire command.
func ExpireCommand() *cli.Command {
	return &cli.Command{
		Name:      "expire",
		Usage:     "Set a key's time to live in seconds",
		ArgsUsage: "KEY SECONDS",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError("expire KEY SECONDS")
			}
			return run(c, "EXPIRE", c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// PexpireCommand returns the pexpire command.
func PexpireCommand() *cli.Command {
	return &cli.Command{
		Name:      "pexpire",
		Usage:     "Set a key's time to live in milliseconds",
		ArgsUsage: "KEY MILLISECONDS",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError("pexpire KEY MILLISECONDS")
			}
			return run(c, "PEXPIRE", c.Args().Get(0), c.Args().Get(1))
		},
	}
}

// TTLCommand returns the ttl command.
func TTLCommand() *cli.Command {
	return &cli.Command{
		Name:      "ttl",
		Usage:     "Get a key's remaining time to live in seconds",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError("ttl KEY")
			}
			return run(c, "TTL", c.Args().First())
		},
	}
}

// PTTLCommand returns the pttl command.
func PTTLCommand() *cli.Command {
	return &cli.Command{
		Name:      "pttl",
		Usage:     "Get a key's remaining time to live in milliseconds",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError("pttl KEY")
			}
			return run(c, "PTTL", c.Args().First())
		},
	}
}
