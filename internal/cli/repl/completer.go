// Package repl provides the interactive REPL mode for memkv-cli.
package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"PING", "ECHO",
			"GET", "SET", "DEL", "EXISTS",
			"EXPIRE", "PEXPIRE", "TTL", "PTTL",
			"KEYS", "DBSIZE", "FLUSHALL",
			"QUIT",
		},
	}
}

// Commands returns the known command names.
func (c *Completer) Commands() []string {
	out := make([]string, len(c.commands))
	copy(out, c.commands)
	return out
}

// Complete returns completion suggestions for the given prefix,
// case-insensitively.
func (c *Completer) Complete(prefix string) []string {
	upper := strings.ToUpper(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, upper) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
