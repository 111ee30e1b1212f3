package tasks

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/formatter"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/services"
	"github.com/desertthunder/readlist/internal/shared"
)

// Library is the subset of [services.LibraryService] an import needs.
type Library interface {
	Policy() services.Policy
	CreateBook(title, comment, author, isbn string) error
	CreateVideo(title, comment, url, duration string) error
	Entries() ([]models.Entry, error)
}

// Status is the outcome of importing one entry.
type Status int

const (
	Created Status = iota
	Skipped
	Failed
	Checked
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Checked:
		return "checked"
	default:
		return ""
	}
}

// EntryResult records what happened to a single imported entry.
type EntryResult struct {
	Entry  models.Entry // Entry as read from the source
	Status Status
	Error  error // Set when Status is Failed
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Source  string        // File the entries were read from, if any
	Total   int           // Entries read
	Created int           // Entries added (or that passed validation in a dry run)
	Skipped int           // Entries whose kind and title were already listed
	Failed  int           // Entries rejected by the policy or the store
	Results []EntryResult // Per-entry outcomes in source order
}

// Failures returns only the rejected entries.
func (r *ImportResult) Failures() []EntryResult {
	failed := make([]EntryResult, 0, r.Failed)
	for _, res := range r.Results {
		if res.Status == Failed {
			failed = append(failed, res)
		}
	}
	return failed
}

// ImportOpts configures an import.
type ImportOpts struct {
	Format       formatter.Format // Source format; inferred from the file extension when empty
	SkipExisting bool             // Skip entries whose kind and title are already listed
	DryRun       bool             // Check entries against the policy without storing them
}

// ImportEngine adds batches of entries to a library.
type ImportEngine struct {
	lib    Library
	logger *log.Logger
}

// NewImportEngine creates an engine writing to lib.
func NewImportEngine(lib Library, logger *log.Logger) *ImportEngine {
	return &ImportEngine{lib: lib, logger: logger.With("task", "import")}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ImportFile reads an export from path and imports its entries.
func (e *ImportEngine) ImportFile(ctx context.Context, path string, opts ImportOpts, progress chan<- ProgressUpdate) (*ImportResult, error) {
	format := opts.Format
	if format == "" {
		f, err := formatter.FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	e.sendProgress(progress, readSourceUpdate(path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	entries, err := formatter.ParseEntries(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	res, err := e.Import(ctx, entries, opts, progress)
	if res != nil {
		res.Source = path
	}
	return res, err
}

// Import adds entries in order. Rejected entries are recorded and skipped over.
//
// When ctx is cancelled the partial result is returned together with the context error.
func (e *ImportEngine) Import(ctx context.Context, entries []models.Entry, opts ImportOpts, progress chan<- ProgressUpdate) (*ImportResult, error) {
	res := &ImportResult{
		Total:   len(entries),
		Results: make([]EntryResult, 0, len(entries)),
	}

	var seen map[string]bool
	if opts.SkipExisting {
		existing, err := e.lib.Entries()
		if err != nil {
			return nil, fmt.Errorf("failed to list existing entries: %w", err)
		}
		seen = make(map[string]bool, len(existing))
		for _, entry := range existing {
			seen[titleKey(entry)] = true
		}
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("import cancelled", "done", i, "total", len(entries))
			return res, err
		}

		step := i + 1
		if seen != nil && seen[titleKey(entry)] {
			res.Skipped++
			res.Results = append(res.Results, EntryResult{Entry: entry, Status: Skipped})
			e.sendProgress(progress, entrySkippedUpdate(step, len(entries), entry))
			continue
		}

		status, err := e.importOne(entry, opts.DryRun)
		if err != nil {
			res.Failed++
			res.Results = append(res.Results, EntryResult{Entry: entry, Status: Failed, Error: err})
			e.logger.Warn("entry rejected", "entry", entry.Label(), "kind", entry.Kind(), "error", err)
			e.sendProgress(progress, entryFailedUpdate(step, len(entries), entry, err))
			continue
		}

		res.Created++
		res.Results = append(res.Results, EntryResult{Entry: entry, Status: status})
		if seen != nil {
			seen[titleKey(entry)] = true
		}
		e.sendProgress(progress, entryImportedUpdate(step, len(entries), entry))
	}

	e.logger.Info("import finished", "total", res.Total, "created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
	e.sendProgress(progress, summaryUpdate(res))
	return res, nil
}

func (e *ImportEngine) importOne(entry models.Entry, dryRun bool) (Status, error) {
	policy := e.lib.Policy()

	switch v := entry.(type) {
	case models.Book:
		if dryRun {
			return Checked, policy.CheckBook(v)
		}
		return Created, e.lib.CreateBook(v.Title, v.Comment, v.Author, v.ISBN)
	case models.Video:
		if dryRun {
			return Checked, policy.CheckVideo(v)
		}
		return Created, e.lib.CreateVideo(v.Title, v.Comment, v.URL, v.Duration)
	default:
		return Failed, fmt.Errorf("%w: unsupported entry %T", shared.ErrInvalidInput, entry)
	}
}

func titleKey(entry models.Entry) string {
	return entry.Kind().String() + "\x00" + strings.TrimSpace(entry.Label())
}
