package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"packlist/internal/checklist"
)

const inputWidth = 40

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeConfirmDelete
	modeConfirmReset
	modeConfirmDefaults
)

// Model is the Bubble Tea model for the checklist screen.
type Model struct {
	ctx   context.Context
	store *checklist.Store

	mode   mode
	cursor int
	input  textinput.Model

	// pending is the canonical index awaiting delete confirmation.
	pending     int
	pendingText string

	status    string
	statusErr bool
	width     int
}

// New builds a model over a loaded store.
func New(ctx context.Context, store *checklist.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "Item name"
	ti.Prompt = ""
	ti.CharLimit = 0
	ti.Width = inputWidth
	return &Model{
		ctx:     ctx,
		store:   store,
		mode:    modeNormal,
		input:   ti,
		pending: -1,
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, store *checklist.Store) error {
	program := tea.NewProgram(New(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m, m.updateAddMode(msg)
		case modeConfirmDelete, modeConfirmReset, modeConfirmDefaults:
			m.updateConfirmMode(msg)
		default:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case " ", "x", "enter":
		m.toggleSelected()
	case "a":
		m.startAdd()
	case "d":
		m.startDeleteConfirm()
	case "r":
		m.startResetConfirm()
	case "R":
		m.mode = modeConfirmDefaults
		m.setStatus("", false)
	}
	return false
}

func (m *Model) updateAddMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.stopAdd()
		m.setStatus("Add cancelled", false)
		return nil
	case "enter":
		m.submitAdd()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.mode {
		case modeConfirmDelete:
			m.removePending()
		case modeConfirmReset:
			m.resetChecks()
		case modeConfirmDefaults:
			m.resetDefaults()
		}
		m.mode = modeNormal
	case "n", "N", "esc", "q":
		m.mode = modeNormal
		m.pending = -1
		m.setStatus("Cancelled", false)
	}
}

func (m *Model) moveCursor(delta int) {
	total := m.store.Len()
	if total == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= total {
		m.cursor = total - 1
	}
}

func (m *Model) clampCursor() {
	m.moveCursor(0)
}

// selected returns the canonical index under the cursor.
func (m *Model) selected() (checklist.DisplayEntry, bool) {
	entries := m.store.DisplayOrder()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return checklist.DisplayEntry{}, false
	}
	return entries[m.cursor], true
}

func (m *Model) toggleSelected() {
	entry, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to toggle", true)
		return
	}
	item, err := m.store.Toggle(m.ctx, entry.Index)
	if m.reportError(err) {
		return
	}
	if item.Checked {
		m.setStatus(fmt.Sprintf("Packed %s", item.Text), false)
	} else {
		m.setStatus(fmt.Sprintf("Unpacked %s", item.Text), false)
	}
}

func (m *Model) startAdd() {
	m.mode = modeAdd
	m.input.SetValue("")
	m.input.Focus()
	m.setStatus("", false)
}

func (m *Model) stopAdd() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) submitAdd() {
	text := m.input.Value()
	_, err := m.store.Add(m.ctx, text)
	var validation *checklist.ValidationError
	if errors.As(err, &validation) {
		// Keep the input open so the name can be corrected.
		m.setStatus(validation.Error(), true)
		return
	}
	m.stopAdd()
	if m.reportError(err) {
		return
	}
	m.setStatus(fmt.Sprintf("Added %s", strings.TrimSpace(text)), false)
}

func (m *Model) startDeleteConfirm() {
	entry, ok := m.selected()
	if !ok {
		m.setStatus("Nothing to delete", true)
		return
	}
	m.pending = entry.Index
	m.pendingText = entry.Item.Text
	m.mode = modeConfirmDelete
	m.setStatus("", false)
}

func (m *Model) removePending() {
	index := m.pending
	m.pending = -1
	if index < 0 {
		return
	}
	removed, err := m.store.Remove(m.ctx, index)
	m.clampCursor()
	if m.reportError(err) {
		return
	}
	m.setStatus(fmt.Sprintf("Removed %s", removed.Text), false)
}

func (m *Model) startResetConfirm() {
	total, checked := m.store.Counts()
	switch {
	case total == 0:
		m.setStatus("The list is empty", false)
		return
	case checked == 0:
		m.setStatus("Nothing is checked", false)
		return
	}
	m.mode = modeConfirmReset
	m.setStatus("", false)
}

func (m *Model) resetChecks() {
	cleared, err := m.store.ResetChecks(m.ctx)
	if m.reportError(err) {
		return
	}
	m.cursor = 0
	m.setStatus(fmt.Sprintf("Cleared %d %s", cleared, plural(cleared, "item", "items")), false)
}

func (m *Model) resetDefaults() {
	err := m.store.ResetToDefaults(m.ctx)
	m.cursor = 0
	if m.reportError(err) {
		return
	}
	m.setStatus("Restored the default items", false)
}

// reportError sets the status line for err and reports whether there was one.
// A StorageError means the change is on screen but was not saved.
func (m *Model) reportError(err error) bool {
	if err == nil {
		return false
	}
	var storageErr *checklist.StorageError
	if errors.As(err, &storageErr) {
		m.setStatus("Not saved: "+storageErr.Error(), true)
		return true
	}
	m.setStatus(err.Error(), true)
	return true
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
