// Package tui provides the interactive checklist screen.
//
// The Bubble Tea model renders the store's display order (unchecked items
// first) with a cursor, and routes every edit through checklist.Store so the
// CLI and the TUI share the same validation and persistence rules.
package tui
