// Package cmd implements the octm subcommands: fmt, check, and repl.
//
// Each command is a kong-compatible struct with a Run method receiving
// the invocation context. Shared plumbing lives here: opening and
// deduplicating source files, and carrying the kong.Context through
// context.Context.
package cmd
