// Package command provides CLI command definitions for memkv-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/memkv-go/internal/cli/repl"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"i"},
		Usage:   "Start an interactive session",
		Action: func(c *cli.Context) error {
			cl, err := dial(c)
			if err != nil {
				return err
			}
			defer cl.Close()

			fmt.Fprintf(c.App.Writer, "Connected to %s\n", cl.Addr())
			return repl.New(cl).Run()
		},
	}
}
