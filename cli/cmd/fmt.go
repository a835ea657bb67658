package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/octm/lang"
	"github.com/ardnew/octm/log"
)

// Fmt parses a script and reprints it in the chosen representation.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Reprint in canonical source syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Print the syntax tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Print the syntax tree as YAML."`
	AST    AST    `cmd:""                    help:"Print the syntax tree as an indented node dump."`
}

// parseSource opens and parses one source path ("-" for stdin).
func parseSource(ctx context.Context, path string) (*lang.Program, error) {
	var file *os.File
	if path == stdinSource {
		file = os.Stdin
	} else {
		var err error

		file, err = os.Open(path)
		if err != nil {
			return nil, ErrOpenSource.Wrap(err)
		}
		defer file.Close()
	}

	return lang.ParseReader(
		ctx,
		bufio.NewReader(file),
		lang.WithLogger(log.Default()),
	)
}

// Native reprints input in canonical source syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Native) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, f.Source)
	if err != nil {
		return lang.WrapError(err, "").
			With(slog.String("format", "native"))
	}

	return prog.Format(ctx, stdout(ctx))
}

// JSON prints the syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, j.Source)
	if err != nil {
		return lang.WrapError(err, "").
			With(slog.String("format", "json"))
	}

	return prog.FormatJSON(ctx, stdout(ctx), j.Indent)
}

// YAML prints the syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, y.Source)
	if err != nil {
		return lang.WrapError(err, "").
			With(slog.String("format", "yaml"))
	}

	return prog.FormatYAML(ctx, stdout(ctx), y.Indent)
}

// AST prints the syntax tree as an indented node dump.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	prog, err := parseSource(ctx, a.Source)
	if err != nil {
		return lang.WrapError(err, "").
			With(slog.String("format", "ast"))
	}

	prog.Print(stdout(ctx))

	return nil
}
