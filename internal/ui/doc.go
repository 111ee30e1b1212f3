// Package ui implements an interactive list browser for the reading list using bubbletea's Elm architecture.
//
// The browser has two views:
//  1. [ListView] : Browse and filter every entry, books first
//  2. [ConfirmView] : Confirm deleting the selected entry
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. Storage calls run as [tea.Cmd] functions and
// report back through the [Msg] union type, so a slow backend never blocks rendering.
//
// Keyboard navigation uses vim-style bindings (j/k, d, y/n, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
