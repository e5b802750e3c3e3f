// Package repl provides interactive mode for memkv-cli.
//
// This package implements the Read-Eval-Print Loop for interactive sessions:
//
//   - repl.go: Main REPL loop, line tokenizer, and command dispatch
//   - completer.go: Completion for command names
//   - history.go: Command history persistence
//
// Each input line is tokenized shell-style (double quotes with escapes,
// literal single quotes), sent to the server as one command, and the
// reply rendered the way memkv-cli renders single-shot commands.
package repl
