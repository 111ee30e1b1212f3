package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/readlist/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEntriesLoaded MsgKind = iota
	MsgEntryDeleted
)

type entriesLoaded struct {
	entries []models.Entry
	err     error
}

type entryDeleted struct {
	entry models.Entry
	err   error
}

// entriesLoadedMsg is the constructor for [MsgEntriesLoaded]
func entriesLoadedMsg(entries []models.Entry, err error) Msg {
	return Msg{kind: MsgEntriesLoaded, data: entriesLoaded{entries, err}}
}

// entryDeletedMsg is the constructor for [MsgEntryDeleted]
func entryDeletedMsg(entry models.Entry, err error) Msg {
	return Msg{kind: MsgEntryDeleted, data: entryDeleted{entry, err}}
}
