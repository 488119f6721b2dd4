package tui

import (
	"fmt"
	"strings"

	"packlist/internal/checklist"
)

func (m *Model) View() string {
	var b strings.Builder

	total, checked := m.store.Counts()
	b.WriteString(titleStyle.Render("Gym pack list"))
	b.WriteString(fmt.Sprintf("  %d/%d packed\n\n", checked, total))

	entries := m.store.DisplayOrder()
	if len(entries) == 0 {
		b.WriteString(helpStyle.Render("  No items. Press a to add one."))
		b.WriteString("\n")
	}
	for position, entry := range entries {
		b.WriteString(m.renderLine(position, entry))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderLine(position int, entry checklist.DisplayEntry) string {
	pointer := "  "
	if position == m.cursor {
		pointer = cursorStyle.Render("> ")
	}
	box := "[ ]"
	text := entry.Item.Text
	if entry.Item.Checked {
		box = "[x]"
		text = checkedStyle.Render(text)
	}
	return fmt.Sprintf("%s%s %s", pointer, box, text)
}

func (m *Model) renderPrompt() string {
	switch m.mode {
	case modeAdd:
		return promptStyle.Render("Add: ") + m.input.View() + "\n"
	case modeConfirmDelete:
		return promptStyle.Render(fmt.Sprintf("Remove %s? (y/N)", m.pendingText)) + "\n"
	case modeConfirmReset:
		return promptStyle.Render("Uncheck every item? (y/N)") + "\n"
	case modeConfirmDefaults:
		return promptStyle.Render("Replace the list with the default items? (y/N)") + "\n"
	}
	return ""
}

func (m *Model) helpLine() string {
	switch m.mode {
	case modeAdd:
		return "enter save · esc cancel"
	case modeConfirmDelete, modeConfirmReset, modeConfirmDefaults:
		return "y confirm · n cancel"
	}
	return "j/k move · space toggle · a add · d delete · r reset · R defaults · q quit"
}
