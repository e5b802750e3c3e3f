// Package command provides CLI command definitions for memkv-cli.
package command

import "github.com/urfave/cli/v2"

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:      "ping",
		Usage:     "Check server liveness",
		ArgsUsage: "[MESSAGE]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return usageError("ping [MESSAGE]")
			}
			if c.NArg() == 1 {
				return run(c, "PING", c.Args().First())
			}
			return run(c, "PING")
		},
	}
}

// EchoCommand returns the echo command.
func EchoCommand() *cli.Command {
	return &cli.Command{
		Name:      "echo",
		Usage:     "Echo a message back from the server",
		ArgsUsage: "MESSAGE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError("echo MESSAGE")
			}
			return run(c, "ECHO", c.Args().First())
		},
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:      "keys",
		Usage:     "List keys matching a glob pattern",
		ArgsUsage: "PATTERN",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError("keys PATTERN")
			}
			return run(c, "KEYS", c.Args().First())
		},
	}
}

// DBSizeCommand returns the dbsize command.
func DBSizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "dbsize",
		Usage: "Count live keys",
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return usageError("dbsize")
			}
			return run(c, "DBSIZE")
		},
	}
}

// FlushAllCommand returns the flushall command.
func FlushAllCommand() *cli.Command {
	return &cli.Command{
		Name:  "flushall",
		Usage: "Remove all keys",
		Action: func(c *cli.Context) error {
			if c.NArg() != 0 {
				return usageError("flushall")
			}
			return run(c, "FLUSHALL")
		},
	}
}
