// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow around a user's pending scrobbles:
//  1. [QueueView] : Browse the queued plays, discard individual entries
//  2. [ConfirmView] : Confirm submission of the whole queue
//  3. [SubmitView] : Submission in flight
//  4. [ResultView] : Display what was submitted and what remains
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
