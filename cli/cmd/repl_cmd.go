package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ardnew/octm/cli/cmd/repl"
	"github.com/ardnew/octm/lang"
	"github.com/ardnew/octm/log"
	"github.com/ardnew/octm/pkg"
)

// Repl starts the interactive parse-and-inspect session.
type Repl struct {
	History string `help:"History file path (default per-user cache)" type:"path"`
	Source  string `help:"Script to preload session bindings from"    short:"f" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	history := r.History
	if history == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = "."
		}

		history = filepath.Join(dir, pkg.Name, "history")
	}

	var preload *lang.Program

	if r.Source != "" {
		prog, err := parseSource(ctx, r.Source)
		if err != nil {
			return err
		}

		preload = prog
	}

	return repl.Run(ctx, preload, history, log.Default())
}
