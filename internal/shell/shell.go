// package shell implements the numbered-menu interactive mode of the reading list
package shell

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/services"
	"github.com/desertthunder/readlist/internal/shared"
)

// Library is the part of [services.LibraryService] the shell uses.
type Library interface {
	Policy() services.Policy
	CreateBook(title, comment, author, isbn string) error
	CreateVideo(title, comment, url, duration string) error
	Entries() ([]models.Entry, error)
	DeleteEntry(entry models.Entry) error
	EditBook(id int64, title, comment, author, isbn string) error
	EditVideo(id int64, title, comment, url, duration string) error
}

// ClearValue entered while editing empties an optional field.
const ClearValue = "-"

const (
	ActionMenu   = "0"
	ActionAdd    = "1"
	ActionList   = "2"
	ActionDelete = "3"
	ActionEdit   = "4"
	ActionQuit   = "X"
)

const (
	MsgInvalidAction = "invalid action"
	MsgInvalidNumber = "invalid entry number"
	MsgNoEntries     = "No entries added"
	MsgAdded         = "Entry added successfully"
	MsgDeleted       = "Entry deleted successfully"
	MsgEdited        = "Entry edited successfully"
	MsgQuit          = "closing"
	MsgEditHint      = "Leave a field empty to keep it, enter - to clear it"
)

var banner = []string{
	"***********************************",
	"*   Welcome to the reading list!  *",
	"*                                 *",
	"*  Actions:                       *",
	"*  - 0: print menu                *",
	"*  - 1: add entry                 *",
	"*  - 2: list entries              *",
	"*  - 3: delete entry              *",
	"*  - 4: edit entry                *",
	"*  - X: quit                      *",
	"***********************************",
	"",
}

var menu = []string{
	"- 0: print menu",
	"- 1: add entry",
	"- 2: list entries",
	"- 3: delete entry",
	"- 4: edit entry",
	"- X: quit",
}

// Shell runs the interactive menu against a [Library].
type Shell struct {
	lib    Library
	io     IO
	logger *log.Logger
}

// New creates a [Shell]. A nil logger writes to stderr.
func New(lib Library, io IO, logger *log.Logger) *Shell {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Shell{lib: lib, io: io, logger: shared.WithLogger(logger, "ui", "shell")}
}

// Run prints the welcome banner and dispatches actions until X is entered or the input ends.
func (s *Shell) Run() {
	s.printAll(banner)

	for s.io.HasNextLine() {
		action := strings.TrimSpace(s.io.ReadLine("Action: "))
		if action == "" && !s.io.HasNextLine() {
			return
		}

		s.logger.Debug("shell action", "action", action)

		switch action {
		case ActionQuit:
			s.io.Print(MsgQuit)
			return
		case ActionMenu:
			s.printAll(menu)
		case ActionAdd:
			s.addEntry()
		case ActionList:
			s.listEntries()
		case ActionDelete:
			s.deleteEntry()
		case ActionEdit:
			s.editEntry()
		default:
			s.io.Print(MsgInvalidAction)
		}
	}
}

func (s *Shell) printAll(lines []string) {
	for _, line := range lines {
		s.io.Print(line)
	}
}

func (s *Shell) addEntry() {
	switch strings.TrimSpace(s.io.ReadLine("[1]: add book\n[2]: add video\n")) {
	case "1":
		s.addBook()
	case "2":
		s.addVideo()
	default:
		s.io.Print(MsgInvalidAction)
	}
}

func (s *Shell) addBook() {
	required := s.lib.Policy().Book
	title := s.io.ReadLine(label("Book title", services.FieldTitle, required))
	author := s.io.ReadLine(label("Author", services.FieldAuthor, required))
	isbn := s.io.ReadLine(label("ISBN", services.FieldISBN, required))
	comment := s.io.ReadLine(label("Comment", services.FieldComment, required))

	s.report(s.lib.CreateBook(title, comment, author, isbn), MsgAdded, "Adding the entry failed")
}

func (s *Shell) addVideo() {
	required := s.lib.Policy().Video
	title := s.io.ReadLine(label("Video title", services.FieldTitle, required))
	url := s.io.ReadLine(label("URL", services.FieldURL, required))
	duration := s.io.ReadLine(label("Duration", services.FieldDuration, required))
	comment := s.io.ReadLine(label("Comment", services.FieldComment, required))

	s.report(s.lib.CreateVideo(title, comment, url, duration), MsgAdded, "Adding the entry failed")
}

func (s *Shell) listEntries() {
	s.printEntries()
}

// printEntries prints the numbered entry list and returns it. ok is false when listing failed or nothing is stored.
func (s *Shell) printEntries() ([]models.Entry, bool) {
	entries, err := s.lib.Entries()
	if err != nil {
		s.io.Print(fmt.Sprintf("Listing entries failed: %v", err))
		return nil, false
	}

	if len(entries) == 0 {
		s.io.Print(MsgNoEntries)
		return nil, false
	}

	s.io.Print("Entries:")
	for i, entry := range entries {
		s.io.Print(fmt.Sprintf("%d. %s: %s", i+1, entry.Kind(), entry.Label()))
	}
	return entries, true
}

// selectEntry lists the entries and asks for one by its listed number.
func (s *Shell) selectEntry(prompt string) (models.Entry, bool) {
	entries, ok := s.printEntries()
	if !ok {
		return nil, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(s.io.ReadLine(prompt)))
	if err != nil || n < 1 || n > len(entries) {
		s.io.Print(MsgInvalidNumber)
		return nil, false
	}
	return entries[n-1], true
}

func (s *Shell) deleteEntry() {
	entry, ok := s.selectEntry("Number of the entry to delete: ")
	if !ok {
		return
	}
	s.report(s.lib.DeleteEntry(entry), MsgDeleted, "Deleting the entry failed")
}

// editEntry asks for every field of the chosen entry.
// An empty answer keeps the current value and [ClearValue] empties it.
func (s *Shell) editEntry() {
	entry, ok := s.selectEntry("Number of the entry to edit: ")
	if !ok {
		return
	}
	s.io.Print(MsgEditHint)

	switch e := entry.(type) {
	case models.Book:
		title := s.keep("Book title", e.Title)
		author := s.keep("Author", e.Author)
		isbn := s.keep("ISBN", e.ISBN)
		comment := s.keep("Comment", e.Comment)
		s.report(s.lib.EditBook(e.ID, title, comment, author, isbn), MsgEdited, "Editing the entry failed")
	case models.Video:
		title := s.keep("Video title", e.Title)
		url := s.keep("URL", e.URL)
		duration := s.keep("Duration", e.Duration)
		comment := s.keep("Comment", e.Comment)
		s.report(s.lib.EditVideo(e.ID, title, comment, url, duration), MsgEdited, "Editing the entry failed")
	default:
		s.io.Print(MsgInvalidNumber)
	}
}

func (s *Shell) keep(name, current string) string {
	answer := s.io.ReadLine(fmt.Sprintf("%s [%s]:", name, current))
	switch strings.TrimSpace(answer) {
	case "":
		return current
	case ClearValue:
		return ""
	default:
		return answer
	}
}

func (s *Shell) report(err error, success, failure string) {
	if err != nil {
		s.logger.Debug("shell action failed", "error", err)
		s.io.Print(fmt.Sprintf("%s: %v", failure, err))
		return
	}
	s.io.Print(success)
}

func label(name string, field services.Field, required []services.Field) string {
	if field == services.FieldTitle || slices.Contains(required, field) {
		return name + ":"
	}
	return name + " (optional):"
}
