package main

import (
	"context"

	"github.com/desertthunder/readlist/internal/shell"
	"github.com/urfave/cli/v3"
)

// Shell runs the numbered-menu interactive mode on the runner's input and output.
//
// Prompts are only echoed when the input is a terminal, so piped scripts produce a clean transcript.
func (r *Runner) Shell(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	shell.New(lib, shell.NewConsoleIO(r.input, r.output), r.logger).Run()
	return nil
}
