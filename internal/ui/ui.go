package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/readlist/internal/models"
	"github.com/desertthunder/readlist/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	ConfirmView
)

// Library is the part of the library service the browser needs.
type Library interface {
	Entries() ([]models.Entry, error)
	DeleteEntry(entry models.Entry) error
}

// Model represents the TUI application state.
type Model struct {
	lib       Library
	logger    *log.Logger
	view      ViewState
	width     int
	height    int
	list      list.Model
	pending   models.Entry
	status    string
	statusErr bool
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model reading from lib.
func NewModel(lib Library, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Reading list"
	l.SetShowHelp(false)

	return &Model{
		lib:    lib,
		logger: shared.WithLogger(logger, "ui", "tui"),
		view:   ListView,
		list:   l,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init loads the entries.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgEntriesLoaded:
		data := msg.data.(entriesLoaded)
		if data.err != nil {
			m.logger.Error("failed to load entries", "error", data.err)
			m.err = data.err
			return m, nil
		}
		m.err = nil
		return m, m.list.SetItems(toItems(data.entries))

	case MsgEntryDeleted:
		data := msg.data.(entryDeleted)
		if data.err != nil {
			m.logger.Warn("delete failed", "ref", data.entry.Ref(), "error", data.err)
			m.setStatus(fmt.Sprintf("Failed to delete '%s': %v", data.entry.Label(), data.err), true)
			return m, nil
		}
		m.logger.Info("entry deleted", "ref", data.entry.Ref())
		m.setStatus(fmt.Sprintf("Deleted %s '%s'", data.entry.Kind(), data.entry.Label()), false)
		return m, m.loadEntries()
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	default:
		return m.renderList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		m.status = ""
		return m, m.loadEntries()
	case key.Matches(msg, m.keys.delete):
		if m.err != nil {
			return m, nil
		}
		if item, ok := m.list.SelectedItem().(entryItem); ok {
			m.pending = item.entry
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		entry := m.pending
		m.pending = nil
		m.view = ListView
		return m, m.deleteEntry(entry)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.pending = nil
		m.view = ListView
		m.setStatus("Deletion cancelled", false)
		return m, nil
	}
	return m, nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.lib.Entries()
		return entriesLoadedMsg(entries, err)
	}
}

func (m *Model) deleteEntry(entry models.Entry) tea.Cmd {
	return func() tea.Msg {
		return entryDeletedMsg(entry, m.lib.DeleteEntry(entry))
	}
}

func (m *Model) renderList() string {
	status := ""
	if m.status != "" {
		style := styles.ok
		if m.statusErr {
			style = styles.err
		}
		status = "\n" + style.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.delete, m.keys.reload, m.keys.quit}
	helpView := styles.help.Render(m.help.ShortHelpView(helpKeys))
	return fmt.Sprintf("%s%s\n\n%s", m.list.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return styles.warn.Render("Nothing selected")
	}

	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", m.pending.Label()))
	info := fmt.Sprintf("%s %s", styles.badge.Render(m.pending.Kind().String()), m.pending.String())

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	helpView := styles.help.Render(m.help.ShortHelpView(helpKeys))

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
