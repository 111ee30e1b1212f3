package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/readlist/internal/models"
)

var _ list.Item = entryItem{}

// entryItem wraps [models.Entry] to implement [list.Item].
type entryItem struct {
	entry models.Entry
}

func (i entryItem) FilterValue() string { return i.entry.Label() }
func (i entryItem) Title() string       { return i.entry.Label() }

// Description joins the kind with whichever of the entry's details are set.
func (i entryItem) Description() string {
	parts := []string{i.entry.Kind().String()}
	switch e := i.entry.(type) {
	case models.Book:
		parts = append(parts, e.Author, e.ISBN, e.Comment)
	case models.Video:
		parts = append(parts, e.URL, e.Duration, e.Comment)
	}

	desc := make([]string, 0, len(parts))
	desc = append(desc, parts[0])
	for _, p := range parts[1:] {
		if p != "" {
			desc = append(desc, p)
		}
	}
	return strings.Join(desc, " • ")
}

func toItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}
