// Package repl provides the interactive REPL mode for memkv-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/memkv-go/internal/cli/client"
	"github.com/yndnr/memkv-go/internal/protocol/resp"
)

// Doer issues commands against a server. *client.Client satisfies it.
type Doer interface {
	Do(args ...string) (resp.Value, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	client    Doer
	completer *Completer
	history   *History
}

// New creates a REPL bound to stdin/stdout.
func New(c Doer) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		client:    c,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
}

// Run starts the REPL loop. It returns when the input ends or the user
// types exit or quit.
func (r *REPL) Run() error {
	_ = r.history.Load()
	defer func() { _ = r.history.Save() }()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "memkv> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	reply, err := r.client.Do(args...)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.output, client.Render(reply))
	return nil
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
	fmt.Fprintln(r.output, "  help")
	fmt.Fprintln(r.output, "  exit | quit")
}

// splitArgs tokenizes an input line. Double-quoted tokens may contain
// spaces and the escapes \" \\ \n \r \t; single-quoted tokens are
// literal.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inToken := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		case ch == '"':
			inToken = true
			i++
			for ; i < len(line) && line[i] != '"'; i++ {
				if line[i] == '\\' && i+1 < len(line) {
					i++
					switch line[i] {
					case 'n':
						cur.WriteByte('\n')
					case 'r':
						cur.WriteByte('\r')
					case 't':
						cur.WriteByte('\t')
					default:
						cur.WriteByte(line[i])
					}
					continue
				}
				cur.WriteByte(line[i])
			}
			if i >= len(line) {
				return nil, fmt.Errorf("unterminated double quote")
			}
		case ch == '\'':
			inToken = true
			i++
			for ; i < len(line) && line[i] != '\''; i++ {
				cur.WriteByte(line[i])
			}
			if i >= len(line) {
				return nil, fmt.Errorf("unterminated single quote")
			}
		default:
			inToken = true
			cur.WriteByte(ch)
		}
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
