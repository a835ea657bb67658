package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/octm/lang"
	"github.com/ardnew/octm/log"
)

// Check parses each source and reports syntax errors without producing
// output for valid scripts. The command fails when any source fails.
type Check struct {
	MaxDepth int  `default:"100" help:"Maximum expression nesting depth"`
	Bindings bool `               help:"List assigned names of valid scripts" short:"b"`

	Source []string `arg:"" default:"-" help:"Source input file(s) or '-' for stdin." name:"source" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	srcs, err := openSources(c.Source)
	if err != nil {
		return err
	}

	defer func() {
		for _, src := range srcs {
			_ = src.Close()
		}
	}()

	out := stdout(ctx)
	failed := 0

	for _, src := range srcs {
		if err := c.checkOne(ctx, out, src); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("checked", len(srcs)),
		)
	}

	return nil
}

func (c *Check) checkOne(
	ctx context.Context,
	out io.Writer,
	src Source,
) error {
	prog, err := lang.ParseReader(
		ctx,
		src,
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(c.MaxDepth),
	)
	if err != nil {
		serr := &lang.SyntaxError{}
		if errors.As(err, &serr) {
			fmt.Fprintf(out, "%s: %s\n", src.Name, serr.Error())
		} else {
			fmt.Fprintf(out, "%s: %s\n", src.Name, err.Error())
		}

		return err
	}

	log.DebugContext(ctx, "source valid",
		slog.String("source", src.Name),
		slog.Int("statements", len(prog.Stmts)),
	)

	if c.Bindings {
		if names := prog.Bindings(); len(names) > 0 {
			fmt.Fprintf(out, "%s: %s\n", src.Name, strings.Join(names, " "))
		}
	}

	return nil
}
