package tasks

import (
	"fmt"

	"github.com/desertthunder/readlist/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadSource Phase = iota
	ImportEntries
	Summarize
)

func (p Phase) String() string {
	switch p {
	case ReadSource:
		return "read_source"
	case ImportEntries:
		return "import_entries"
	case Summarize:
		return "summarize"
	default:
		return ""
	}
}

func readSourceUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading %s...", path),
	}
}

func entryImportedUpdate(step, total int, entry models.Entry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s '%s'", step, total, entry.Kind(), entry.Label()),
		Data:    entry,
	}
}

func entrySkippedUpdate(step, total int, entry models.Entry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s '%s' already listed", step, total, entry.Kind(), entry.Label()),
		Data:    entry,
	}
}

func entryFailedUpdate(step, total int, entry models.Entry, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportEntries,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s '%s': %v", step, total, entry.Kind(), entry.Label(), err),
		Data:    entry,
	}
}

func summaryUpdate(res *ImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summarize,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Imported %d of %d entries (%d skipped, %d failed)", res.Created, res.Total, res.Skipped, res.Failed),
		Data:    res,
	}
}
