package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"packlist/internal/checklist"
	"packlist/internal/storage"
)

func newTestModel(t *testing.T, items ...checklist.Item) (*Model, *checklist.Store, *storage.MemoryMedium) {
	t.Helper()
	data, err := checklist.EncodeItems(items)
	if err != nil {
		t.Fatalf("EncodeItems: %v", err)
	}
	medium := storage.NewMemoryWith(string(data))
	store, err := checklist.New(medium)
	if err != nil {
		t.Fatalf("checklist.New: %v", err)
	}
	store.Load(context.Background())
	return New(context.Background(), store), store, medium
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestToggleUsesDisplayOrder(t *testing.T) {
	m, store, _ := newTestModel(t,
		checklist.Item{Text: "A", Checked: true},
		checklist.Item{Text: "B"},
	)

	// Display order is [B, A]; the cursor starts on B.
	press(m, keys("x"))
	items := store.Items()
	if !items[1].Checked {
		t.Fatalf("expected B to be checked, got %+v", items)
	}
	if !strings.Contains(m.status, "Packed B") {
		t.Fatalf("unexpected status %q", m.status)
	}

	// Everything is checked, so display order falls back to [A, B].
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace})
	items = store.Items()
	if !items[0].Checked || items[1].Checked {
		t.Fatalf("expected only A checked, got %+v", items)
	}
	if !strings.Contains(m.status, "Unpacked B") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAddThroughInput(t *testing.T) {
	m, store, _ := newTestModel(t, checklist.Item{Text: "Towel"})

	press(m, keys("a"), keys("  Socks "), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after add, got %v", m.mode)
	}
	items := store.Items()
	if len(items) != 2 || items[1].Text != "Socks" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestAddDuplicateKeepsInputOpen(t *testing.T) {
	m, store, _ := newTestModel(t, checklist.Item{Text: "Towel"})

	press(m, keys("a"), keys("TOWEL"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeAdd {
		t.Fatal("expected add mode to stay open after a rejected name")
	}
	if !m.statusErr || !strings.Contains(m.status, "already on the list") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if store.Len() != 1 {
		t.Fatalf("duplicate was added: %+v", store.Items())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeNormal || m.input.Value() != "" {
		t.Fatal("esc should leave add mode and clear the input")
	}
}

func TestTypingQInAddModeDoesNotQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, keys("a"))
	if cmd := press(m, keys("q")); cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q in add mode must not quit")
		}
	}
	if m.input.Value() != "q" {
		t.Fatalf("expected q in input, got %q", m.input.Value())
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, store, _ := newTestModel(t, checklist.Item{Text: "Towel"}, checklist.Item{Text: "Lock"})

	press(m, keys("j"), keys("d"))
	if m.mode != modeConfirmDelete {
		t.Fatal("expected confirm mode")
	}
	if !strings.Contains(m.View(), "Remove Lock?") {
		t.Fatalf("expected confirm prompt in view:\n%s", m.View())
	}
	press(m, keys("n"))
	if store.Len() != 2 {
		t.Fatal("cancelled delete removed an item")
	}

	press(m, keys("d"), keys("y"))
	items := store.Items()
	if len(items) != 1 || items[0].Text != "Towel" {
		t.Fatalf("unexpected items %+v", items)
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to the last item, got %d", m.cursor)
	}
}

func TestResetGuards(t *testing.T) {
	m, _, _ := newTestModel(t)
	press(m, keys("r"))
	if m.mode != modeNormal || m.status != "The list is empty" {
		t.Fatalf("empty guard: mode=%v status=%q", m.mode, m.status)
	}

	m, _, _ = newTestModel(t, checklist.Item{Text: "Towel"})
	press(m, keys("r"))
	if m.mode != modeNormal || m.status != "Nothing is checked" {
		t.Fatalf("unchecked guard: mode=%v status=%q", m.mode, m.status)
	}
}

func TestResetChecksAfterConfirm(t *testing.T) {
	m, store, _ := newTestModel(t,
		checklist.Item{Text: "Towel", Checked: true},
		checklist.Item{Text: "Lock", Checked: true},
	)
	press(m, keys("r"), keys("y"))
	if _, checked := store.Counts(); checked != 0 {
		t.Fatalf("expected no checked items, got %d", checked)
	}
	if m.status != "Cleared 2 items" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestResetDefaultsAfterConfirm(t *testing.T) {
	m, store, _ := newTestModel(t, checklist.Item{Text: "Chalk"})
	press(m, keys("R"), tea.KeyMsg{Type: tea.KeyEnter})
	if store.Len() != len(checklist.DefaultItems()) {
		t.Fatalf("expected defaults, got %+v", store.Items())
	}
}

func TestStorageErrorShownButChangeKept(t *testing.T) {
	m, store, medium := newTestModel(t, checklist.Item{Text: "Towel"})
	medium.FailWrites(storage.ErrQuotaExceeded)

	press(m, keys("x"))
	if !store.Items()[0].Checked {
		t.Fatal("toggle should stick in memory")
	}
	if !m.statusErr || !strings.HasPrefix(m.status, "Not saved:") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	cmd := press(m, keys("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestViewListsUncheckedFirst(t *testing.T) {
	m, _, _ := newTestModel(t,
		checklist.Item{Text: "Alpha", Checked: true},
		checklist.Item{Text: "Bravo"},
	)
	view := m.View()
	if strings.Index(view, "Bravo") > strings.Index(view, "Alpha") {
		t.Fatalf("unchecked item should render first:\n%s", view)
	}
	if !strings.Contains(view, "1/2 packed") {
		t.Fatalf("expected progress in view:\n%s", view)
	}
}
