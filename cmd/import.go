package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/readlist/internal/formatter"
	"github.com/desertthunder/readlist/internal/shared"
	"github.com/desertthunder/readlist/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import adds the entries of a CSV or JSON export to the list.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	if path == "" {
		return fmt.Errorf("%w: --file", shared.ErrMissingArgument)
	}

	opts := tasks.ImportOpts{
		SkipExisting: cmd.Bool("skip-existing"),
		DryRun:       cmd.Bool("dry-run"),
	}
	if cmd.IsSet("format") {
		f, err := formatter.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		opts.Format = f
	}

	lib, err := r.Library()
	if err != nil {
		return err
	}

	r.logger.Info("import requested", "file", path, "dry_run", opts.DryRun)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ReadSource:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ImportEntries:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := tasks.NewImportEngine(lib, r.logger).ImportFile(ctx, path, opts, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	verb := "Imported"
	if opts.DryRun {
		verb = "Checked"
	}
	r.writePlainHeader(fmt.Sprintf("%s %d of %d entries", verb, result.Created, result.Total))
	if result.Skipped > 0 {
		r.writePlain("Skipped %d already listed\n", result.Skipped)
	}

	if failures := result.Failures(); len(failures) > 0 {
		r.writePlain("Rejected %d:\n", len(failures))
		for _, f := range failures {
			r.writePlain("  - %s '%s': %v\n", f.Entry.Kind(), f.Entry.Label(), f.Error)
		}
	}
	return nil
}
