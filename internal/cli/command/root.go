// Package command provides CLI command definitions for memkv-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/memkv-go/internal/cli/client"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "memkv-cli",
		Usage:   "memkv command-line client",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			EchoCommand(),
			GetCommand(),
			SetCommand(),
			DelCommand(),
			ExistsCommand(),
			ExpireCommand(),
			PexpireCommand(),
			TTLCommand(),
			PTTLCommand(),
			KeysCommand(),
			DBSizeCommand(),
			FlushAllCommand(),
			ReplCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "memkv server address (host:port)",
			EnvVars: []string{"MEMKV_CLI_SERVER"},
			Value:   "127.0.0.1:6379",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Per-request timeout",
			Value:   client.DefaultTimeout,
		},
	}
}

// dial connects to the server named by the global flags.
func dial(c *cli.Context) (*client.Client, error) {
	return client.Dial(c.String("server"), c.Duration("timeout"))
}

// run executes one command against the server and prints the rendered
// reply to the app writer.
func run(c *cli.Context, args ...string) error {
	cl, err := dial(c)
	if err != nil {
		return err
	}
	defer cl.Close()

	reply, err := cl.Do(args...)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, client.Render(reply))
	return nil
}

// usageError reports a malformed invocation without dialing the server.
func usageError(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
