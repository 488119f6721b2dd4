package checklist_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"packlist/internal/checklist"
	"packlist/internal/storage"
)

func newStore(t *testing.T, medium checklist.Medium, opts ...checklist.Option) *checklist.Store {
	t.Helper()
	store, err := checklist.New(medium, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

// seeded returns a loaded store whose medium holds items.
func seeded(t *testing.T, items ...checklist.Item) (*checklist.Store, *storage.MemoryMedium) {
	t.Helper()
	data, err := checklist.EncodeItems(items)
	if err != nil {
		t.Fatalf("EncodeItems: %v", err)
	}
	medium := storage.NewMemoryWith(string(data))
	store := newStore(t, medium)
	if outcome := store.Load(context.Background()); outcome != checklist.LoadedPersisted {
		t.Fatalf("expected persisted load, got %s", outcome)
	}
	return store, medium
}

func storedItems(t *testing.T, medium *storage.MemoryMedium) []checklist.Item {
	t.Helper()
	value, ok := medium.Value()
	if !ok {
		t.Fatal("expected a stored value")
	}
	var items []checklist.Item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		t.Fatalf("decode stored value: %v", err)
	}
	return items
}

func TestNewRequiresMedium(t *testing.T) {
	if _, err := checklist.New(nil); err == nil {
		t.Fatal("expected error for nil medium")
	}
}

func TestLoadEmptyMediumSeedsDefaults(t *testing.T) {
	medium := storage.NewMemory()
	store := newStore(t, medium)

	if outcome := store.Load(context.Background()); outcome != checklist.LoadedDefaults {
		t.Fatalf("expected defaulted load, got %s", outcome)
	}

	want := []checklist.Item{
		{Text: "Towel"},
		{Text: "Water bottle"},
		{Text: "Headphones"},
		{Text: "Gym shoes"},
		{Text: "Workout clothes"},
		{Text: "Lock"},
	}
	if got := store.Items(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if medium.Writes() != 1 {
		t.Fatalf("expected defaults to be saved once, got %d writes", medium.Writes())
	}
	if got := storedItems(t, medium); !reflect.DeepEqual(got, want) {
		t.Fatalf("stored defaults differ: %+v", got)
	}
}

func TestLoadRecoversFromCorruptData(t *testing.T) {
	for name, raw := range map[string]string{
		"invalid json":   "{not json",
		"empty string":   "",
		"not an array":   `{"text":"Towel","checked":false}`,
		"missing field":  `[{"text":"Towel"}]`,
		"wrong type":     `[{"text":"Towel","checked":"yes"}]`,
		"non-object row": `["Towel"]`,
	} {
		t.Run(name, func(t *testing.T) {
			medium := storage.NewMemoryWith(raw)
			store := newStore(t, medium)
			if outcome := store.Load(context.Background()); outcome != checklist.RecoveredDefaults {
				t.Fatalf("expected recovered load, got %s", outcome)
			}
			if !reflect.DeepEqual(store.Items(), checklist.DefaultItems()) {
				t.Fatalf("expected defaults after recovery, got %+v", store.Items())
			}
			if !reflect.DeepEqual(storedItems(t, medium), checklist.DefaultItems()) {
				t.Fatal("expected defaults persisted after recovery")
			}
		})
	}
}

func TestLoadRecoversFromReadFailure(t *testing.T) {
	medium := storage.NewMemory()
	medium.FailReads(errors.New("disk on fire"))
	store := newStore(t, medium)
	if outcome := store.Load(context.Background()); outcome != checklist.RecoveredDefaults {
		t.Fatalf("expected recovered load, got %s", outcome)
	}
	if store.Len() != 6 {
		t.Fatalf("expected 6 defaults, got %d", store.Len())
	}
	if medium.Writes() != 0 {
		t.Fatalf("read failure must not overwrite stored data, got %d writes", medium.Writes())
	}
}

func TestLoadNeverFailsWhenDefaultSaveFails(t *testing.T) {
	medium := storage.NewMemory()
	medium.FailWrites(storage.ErrQuotaExceeded)
	store := newStore(t, medium)
	if outcome := store.Load(context.Background()); outcome != checklist.LoadedDefaults {
		t.Fatalf("expected defaulted load, got %s", outcome)
	}
	if store.Len() != 6 {
		t.Fatalf("expected defaults in memory, got %d items", store.Len())
	}
}

func TestLoadAdoptsPersistedStateIgnoringExtraFields(t *testing.T) {
	medium := storage.NewMemoryWith(`[{"text":"Chalk","checked":true,"id":7},{"text":"Rope","checked":false}]`)
	store := newStore(t, medium)
	if outcome := store.Load(context.Background()); outcome != checklist.LoadedPersisted {
		t.Fatalf("expected persisted load, got %s", outcome)
	}
	want := []checklist.Item{{Text: "Chalk", Checked: true}, {Text: "Rope"}}
	if !reflect.DeepEqual(store.Items(), want) {
		t.Fatalf("unexpected items: %+v", store.Items())
	}
	if medium.Writes() != 0 {
		t.Fatalf("persisted load should not write, got %d writes", medium.Writes())
	}
}

func TestAddTrimsAndAppends(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"})

	items, err := store.Add(context.Background(), "  Socks  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []checklist.Item{{Text: "Towel"}, {Text: "Socks"}}
	if !reflect.DeepEqual(items, want) {
		t.Fatalf("unexpected items: %+v", items)
	}
	if !reflect.DeepEqual(storedItems(t, medium), want) {
		t.Fatal("expected add to be persisted")
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"})
	for _, text := range []string{"", "  ", "\t\n"} {
		_, err := store.Add(context.Background(), text)
		var ve *checklist.ValidationError
		if !errors.As(err, &ve) || ve.Kind != checklist.EmptyText {
			t.Fatalf("Add(%q): expected EmptyText, got %v", text, err)
		}
		if !errors.Is(err, checklist.ErrEmptyText) {
			t.Fatalf("Add(%q): expected ErrEmptyText in chain", text)
		}
	}
	if store.Len() != 1 || medium.Writes() != 0 {
		t.Fatalf("rejected adds must not change or persist state (len=%d writes=%d)", store.Len(), medium.Writes())
	}
}

func TestAddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	store, _ := seeded(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "Towel"); err != nil {
		t.Fatalf("Add Towel: %v", err)
	}
	for _, dup := range []string{"towel", "TOWEL", "  ToWeL "} {
		_, err := store.Add(ctx, dup)
		if !errors.Is(err, checklist.ErrDuplicateText) {
			t.Fatalf("Add(%q): expected DuplicateText, got %v", dup, err)
		}
		if checklist.Kind(err) != "validation" {
			t.Fatalf("expected validation kind, got %q", checklist.Kind(err))
		}
	}
	if store.Len() != 1 {
		t.Fatalf("expected one item, got %d", store.Len())
	}
}

func TestAddKeepsMemoryStateWhenSaveFails(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"})
	medium.FailWrites(storage.ErrQuotaExceeded)

	items, err := store.Add(context.Background(), "Socks")
	var se *checklist.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !errors.Is(err, checklist.ErrStorage) || !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected storage sentinels in chain, got %v", err)
	}
	if len(items) != 2 || store.Len() != 2 {
		t.Fatalf("expected in-memory add to stick, got %d items", store.Len())
	}
	if got := storedItems(t, medium); len(got) != 1 {
		t.Fatalf("medium should still hold the old list, got %+v", got)
	}

	medium.FailWrites(nil)
	if err := store.Save(context.Background()); err != nil {
		t.Fatalf("Save retry: %v", err)
	}
	if got := storedItems(t, medium); len(got) != 2 {
		t.Fatalf("expected retry to persist, got %+v", got)
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	original := []checklist.Item{{Text: "Towel"}, {Text: "Lock", Checked: true}}
	store, medium := seeded(t, original...)
	ctx := context.Background()

	item, err := store.Toggle(ctx, 0)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !item.Checked {
		t.Fatal("expected item to become checked")
	}
	if !storedItems(t, medium)[0].Checked {
		t.Fatal("expected toggle to persist")
	}
	if _, err := store.Toggle(ctx, 0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !reflect.DeepEqual(store.Items(), original) {
		t.Fatalf("double toggle changed state: %+v", store.Items())
	}
}

func TestToggleAndRemoveRejectOutOfRange(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"}, checklist.Item{Text: "Lock"})
	ctx := context.Background()

	for _, index := range []int{-1, 2, 99} {
		_, err := store.Toggle(ctx, index)
		var ie *checklist.IndexError
		if !errors.As(err, &ie) || ie.Index != index || ie.Length != 2 {
			t.Fatalf("Toggle(%d): expected IndexError, got %v", index, err)
		}
		if _, err := store.Remove(ctx, index); !errors.Is(err, checklist.ErrIndexOutOfRange) {
			t.Fatalf("Remove(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
	if medium.Writes() != 0 {
		t.Fatalf("rejected operations must not persist, got %d writes", medium.Writes())
	}
}

func TestRemoveShiftsLaterItemsAndAllowsReAdd(t *testing.T) {
	store, medium := seeded(t,
		checklist.Item{Text: "Towel"},
		checklist.Item{Text: "Lock", Checked: true},
		checklist.Item{Text: "Socks"},
	)
	ctx := context.Background()

	removed, err := store.Remove(ctx, 1)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed.Text != "Lock" {
		t.Fatalf("removed wrong item: %+v", removed)
	}
	want := []checklist.Item{{Text: "Towel"}, {Text: "Socks"}}
	if !reflect.DeepEqual(store.Items(), want) {
		t.Fatalf("unexpected items: %+v", store.Items())
	}
	if !reflect.DeepEqual(storedItems(t, medium), want) {
		t.Fatal("expected remove to persist")
	}

	if _, err := store.Add(ctx, "lock"); err != nil {
		t.Fatalf("re-add after remove: %v", err)
	}
}

func TestResetChecksClearsAndAlwaysPersists(t *testing.T) {
	store, medium := seeded(t,
		checklist.Item{Text: "Towel", Checked: true},
		checklist.Item{Text: "Lock"},
		checklist.Item{Text: "Socks", Checked: true},
	)
	ctx := context.Background()

	cleared, err := store.ResetChecks(ctx)
	if err != nil {
		t.Fatalf("ResetChecks: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 cleared, got %d", cleared)
	}
	want := []checklist.Item{{Text: "Towel"}, {Text: "Lock"}, {Text: "Socks"}}
	if !reflect.DeepEqual(store.Items(), want) {
		t.Fatalf("unexpected items: %+v", store.Items())
	}

	writes := medium.Writes()
	cleared, err = store.ResetChecks(ctx)
	if err != nil {
		t.Fatalf("ResetChecks (idempotent): %v", err)
	}
	if cleared != 0 {
		t.Fatalf("expected nothing cleared, got %d", cleared)
	}
	if medium.Writes() != writes+1 {
		t.Fatal("expected no-op reset to persist anyway")
	}
	if !reflect.DeepEqual(store.Items(), want) {
		t.Fatal("idempotent reset changed state")
	}
}

func TestResetToDefaults(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Chalk", Checked: true})
	if err := store.ResetToDefaults(context.Background()); err != nil {
		t.Fatalf("ResetToDefaults: %v", err)
	}
	if !reflect.DeepEqual(store.Items(), checklist.DefaultItems()) {
		t.Fatalf("unexpected items: %+v", store.Items())
	}
	if !reflect.DeepEqual(storedItems(t, medium), checklist.DefaultItems()) {
		t.Fatal("expected defaults persisted")
	}
}

func TestReplaceAllKeepsDuplicatesAndTrims(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"})
	incoming := []checklist.Item{{Text: " Chalk ", Checked: true}, {Text: "chalk"}, {Text: "  "}}

	if err := store.ReplaceAll(context.Background(), incoming); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	want := []checklist.Item{{Text: "Chalk", Checked: true}, {Text: "chalk"}, {Text: ""}}
	if !reflect.DeepEqual(store.Items(), want) {
		t.Fatalf("unexpected items: %+v", store.Items())
	}
	if !reflect.DeepEqual(storedItems(t, medium), want) {
		t.Fatal("expected replacement persisted")
	}
}

func TestReplaceAllRejectsInvalidUTF8(t *testing.T) {
	store, _ := seeded(t, checklist.Item{Text: "Towel"})
	err := store.ReplaceAll(context.Background(), []checklist.Item{{Text: "ok"}, {Text: "\xff"}})
	if !errors.Is(err, checklist.ErrMalformedImport) {
		t.Fatalf("expected MalformedImport, got %v", err)
	}
	if !reflect.DeepEqual(store.Items(), []checklist.Item{{Text: "Towel"}}) {
		t.Fatal("failed replace changed state")
	}
}

func TestImportMissingCheckedLeavesStateUntouched(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel", Checked: true}, checklist.Item{Text: "Lock"})
	before := store.Items()
	writes := medium.Writes()

	_, err := store.ImportItems(context.Background(), []byte(`[{"text":"Chalk","checked":false},{"text":"Rope"}]`))
	var ve *checklist.ValidationError
	if !errors.As(err, &ve) || ve.Kind != checklist.MalformedImport {
		t.Fatalf("expected MalformedImport, got %v", err)
	}
	if !reflect.DeepEqual(store.Items(), before) {
		t.Fatalf("state changed after failed import: %+v", store.Items())
	}
	if medium.Writes() != writes {
		t.Fatal("failed import must not persist")
	}
}

func TestImportRejectsMalformedBlobs(t *testing.T) {
	cases := map[string]string{
		"not json":        "nope",
		"object":          `{"items":[]}`,
		"string":          `"Towel"`,
		"null":            "null",
		"text not string": `[{"text":5,"checked":false}]`,
		"checked truthy":  `[{"text":"Towel","checked":1}]`,
		"null checked":    `[{"text":"Towel","checked":null}]`,
		"array element":   `[["Towel", false]]`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			store, _ := seeded(t, checklist.Item{Text: "Towel"})
			if _, err := store.ImportItems(context.Background(), []byte(blob)); !errors.Is(err, checklist.ErrMalformedImport) {
				t.Fatalf("expected MalformedImport, got %v", err)
			}
			if store.Len() != 1 {
				t.Fatal("state changed after failed import")
			}
		})
	}
}

func TestImportEmptyArrayClearsList(t *testing.T) {
	store, medium := seeded(t, checklist.Item{Text: "Towel"})
	count, err := store.ImportItems(context.Background(), []byte("[]"))
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if count != 0 || store.Len() != 0 {
		t.Fatalf("expected empty list, got %d", store.Len())
	}
	value, _ := medium.Value()
	if value != "[]" {
		t.Fatalf("expected [] persisted, got %q", value)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	original := []checklist.Item{
		{Text: "Towel", Checked: true},
		{Text: "Water bottle"},
		{Text: "Lock", Checked: true},
	}
	store, _ := seeded(t, original...)
	snapshot, err := store.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	other, _ := seeded(t, checklist.Item{Text: "Something else"})
	count, err := other.ImportItems(context.Background(), snapshot.Data)
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if count != len(original) {
		t.Fatalf("expected %d imported, got %d", len(original), count)
	}
	if !reflect.DeepEqual(other.Items(), original) {
		t.Fatalf("round trip mismatch: %+v", other.Items())
	}
}

func TestExportImportRoundTripTrimsStoredText(t *testing.T) {
	medium := storage.NewMemoryWith(`[{"text":"  Towel ","checked":true},{"text":"\tLock","checked":false}]`)
	store := newStore(t, medium)
	if outcome := store.Load(context.Background()); outcome != checklist.LoadedPersisted {
		t.Fatalf("expected persisted load, got %s", outcome)
	}
	before := store.Items()
	want := []checklist.Item{{Text: "Towel", Checked: true}, {Text: "Lock"}}
	if !reflect.DeepEqual(before, want) {
		t.Fatalf("expected loaded text trimmed, got %+v", before)
	}

	snapshot, err := store.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	if _, err := store.ImportItems(context.Background(), snapshot.Data); err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if !reflect.DeepEqual(store.Items(), before) {
		t.Fatalf("round trip changed state: before %+v after %+v", before, store.Items())
	}
}

func TestExportSnapshotFormatAndFilename(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 3, 9, 7, 5, 3, 999, time.FixedZone("X", 3600)) }
	data, _ := checklist.EncodeItems([]checklist.Item{{Text: "Towel", Checked: true}, {Text: "Lock"}})
	store := newStore(t, storage.NewMemoryWith(string(data)), checklist.WithClock(clock))
	store.Load(context.Background())

	snapshot, err := store.ExportSnapshot()
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	if snapshot.Filename != "gym-packlist-backup-2024-03-09T06-05-03.json" {
		t.Fatalf("unexpected filename %q", snapshot.Filename)
	}
	want := "[\n  {\n    \"text\": \"Towel\",\n    \"checked\": true\n  },\n  {\n    \"text\": \"Lock\",\n    \"checked\": false\n  }\n]"
	if string(snapshot.Data) != want {
		t.Fatalf("unexpected snapshot body:\n%s", snapshot.Data)
	}
	if snapshot.Items != 2 {
		t.Fatalf("unexpected item count %d", snapshot.Items)
	}
}

func TestCounts(t *testing.T) {
	store, _ := seeded(t, checklist.Item{Text: "A", Checked: true}, checklist.Item{Text: "B"}, checklist.Item{Text: "C", Checked: true})
	total, checked := store.Counts()
	if total != 3 || checked != 2 {
		t.Fatalf("unexpected counts total=%d checked=%d", total, checked)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	store, _ := seeded(t, checklist.Item{Text: "Towel"})
	items := store.Items()
	items[0].Text = "mutated"
	if store.Items()[0].Text != "Towel" {
		t.Fatal("Items must return a copy")
	}
}
