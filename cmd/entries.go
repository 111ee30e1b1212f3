package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/readlist/internal/formatter"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
	"github.com/urfave/cli/v3"
)

// BookAdd validates and stores a new book.
func (r *Runner) BookAdd(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if err := lib.CreateBook(title, cmd.String("comment"), cmd.String("author"), cmd.String("isbn")); err != nil {
		return err
	}

	r.logger.Info("book added", "title", title)
	return r.writePlain("Added book '%s'\n", title)
}

// BookList prints all books.
func (r *Runner) BookList(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	books, err := lib.Books()
	if err != nil {
		return err
	}

	entries := make([]models.Entry, len(books))
	for i, b := range books {
		entries[i] = b
	}
	return r.export(entries, cmd.String("format"), "")
}

// BookEdit replaces the fields of a book given by flags.
func (r *Runner) BookEdit(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	books, err := lib.Books()
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	current, ok := findByID(books, id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: models.KindBook, ID: id})
	}

	err = lib.EditBook(id,
		pick(cmd, "title", current.Title),
		pick(cmd, "comment", current.Comment),
		pick(cmd, "author", current.Author),
		pick(cmd, "isbn", current.ISBN),
	)
	if err != nil {
		return err
	}

	r.logger.Info("book edited", "id", id)
	return r.writePlain("Updated %s\n", current.Ref())
}

// BookDelete removes a book by id.
func (r *Runner) BookDelete(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := lib.DeleteBook(id); err != nil {
		return err
	}

	r.logger.Info("book deleted", "id", id)
	return r.writePlain("Deleted %s\n", models.Ref{Kind: models.KindBook, ID: id})
}

// VideoAdd validates and stores a new video.
func (r *Runner) VideoAdd(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	title := cmd.String("title")
	if err := lib.CreateVideo(title, cmd.String("comment"), cmd.String("url"), cmd.String("duration")); err != nil {
		return err
	}

	r.logger.Info("video added", "title", title)
	return r.writePlain("Added video '%s'\n", title)
}

// VideoList prints all videos.
func (r *Runner) VideoList(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	videos, err := lib.Videos()
	if err != nil {
		return err
	}

	entries := make([]models.Entry, len(videos))
	for i, v := range videos {
		entries[i] = v
	}
	return r.export(entries, cmd.String("format"), "")
}

// VideoEdit replaces the fields of a video given by flags.
func (r *Runner) VideoEdit(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	videos, err := lib.Videos()
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	current, ok := findByID(videos, id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, models.Ref{Kind: models.KindVideo, ID: id})
	}

	err = lib.EditVideo(id,
		pick(cmd, "title", current.Title),
		pick(cmd, "comment", current.Comment),
		pick(cmd, "url", current.URL),
		pick(cmd, "duration", current.Duration),
	)
	if err != nil {
		return err
	}

	r.logger.Info("video edited", "id", id)
	return r.writePlain("Updated %s\n", current.Ref())
}

// VideoDelete removes a video by id.
func (r *Runner) VideoDelete(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	id := cmd.Int64("id")
	if err := lib.DeleteVideo(id); err != nil {
		return err
	}

	r.logger.Info("video deleted", "id", id)
	return r.writePlain("Deleted %s\n", models.Ref{Kind: models.KindVideo, ID: id})
}

// List renders every entry in the requested format, to stdout or to --output.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	entries, err := lib.Entries()
	if err != nil {
		return err
	}
	return r.export(entries, cmd.String("format"), cmd.String("output"))
}

// CourseAdd validates a course code and name. Courses are not stored.
func (r *Runner) CourseAdd(ctx context.Context, cmd *cli.Command) error {
	lib, err := r.Library()
	if err != nil {
		return err
	}

	code, name := cmd.String("code"), cmd.String("name")
	if err := lib.CreateCourse(code, name); err != nil {
		return err
	}
	return r.writePlain("Course %s (%s) is valid\n", code, name)
}

func (r *Runner) export(entries []models.Entry, format, output string) error {
	f, err := formatter.ParseFormat(format)
	if err != nil {
		return err
	}

	data, err := formatter.Export(entries, f)
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteFile(output, data); err != nil {
		return err
	}
	r.logger.Info("export written", "path", output, "format", f, "entries", len(entries))
	return r.writePlain("Wrote %d entries to %s\n", len(entries), output)
}

// findByID returns the entry with the given id.
func findByID[E models.Entry](entries []E, id int64) (E, bool) {
	for _, e := range entries {
		if e.Ref().ID == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// pick returns the flag value when the flag was given and current otherwise.
func pick(cmd *cli.Command, name, current string) string {
	if cmd.IsSet(name) {
		return cmd.String(name)
	}
	return current
}
