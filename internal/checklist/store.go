package checklist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"packlist/internal/logging"
)

// Medium is the persistence collaborator. Read reports ok=false when nothing
// has been stored under the store's key.
type Medium interface {
	Read(ctx context.Context) (string, bool, error)
	Write(ctx context.Context, value string) error
}

// Store owns the canonical item sequence.
type Store struct {
	mu     sync.Mutex
	medium Medium
	logger *slog.Logger
	now    func() time.Time
	items  []Item
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger routes store diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for backup filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds an empty store over medium. Call Load before use.
func New(medium Medium, opts ...Option) (*Store, error) {
	if medium == nil {
		return nil, errors.New("checklist store requires a medium")
	}
	s := &Store{
		medium: medium,
		logger: logging.NewNop(),
		now:    time.Now,
		items:  []Item{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "checklist")
	return s, nil
}

// Load adopts persisted state, or seeds and persists the defaults when
// nothing usable is stored. A read failure loads the defaults without
// persisting them. It never fails; problems are logged.
func (s *Store) Load(ctx context.Context) LoadOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.medium.Read(ctx)
	outcome := LoadedDefaults
	switch {
	case err != nil:
		// The stored list may still be intact, so the defaults stay in memory.
		logging.WarnWithContext(s.logger, "failed to read stored checklist", "checklist_load_recovered",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the data directory permissions"),
			logging.String(logging.FieldImpact, "default items shown; stored list left untouched"))
		s.items = DefaultItems()
		return RecoveredDefaults
	case ok:
		items, perr := DecodeItems([]byte(raw))
		if perr == nil {
			s.items = items
			s.logger.Debug("loaded stored checklist", logging.Int(logging.FieldItemCount, len(items)))
			return LoadedPersisted
		}
		outcome = RecoveredDefaults
		logging.WarnWithContext(s.logger, "stored checklist is unreadable", "checklist_load_recovered",
			logging.Error(perr),
			logging.String(logging.FieldErrorHint, "restore a backup with 'packlist import'"),
			logging.String(logging.FieldImpact, "default items replace the stored list"))
	}

	s.items = DefaultItems()
	if err := s.persist(ctx, "load"); err != nil {
		logging.WarnWithContext(s.logger, "failed to persist default checklist", "checklist_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "defaults are in memory only"))
	}
	return outcome
}

// Save writes the current state to the medium.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, "save")
}

// Add appends an unchecked item named by the trimmed text. A StorageError
// means the item was added in memory but not persisted.
func (s *Store) Add(ctx context.Context, text string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return cloneItems(s.items), &ValidationError{Kind: EmptyText}
	}
	for _, item := range s.items {
		if SameText(item.Text, text) {
			return cloneItems(s.items), &ValidationError{Kind: DuplicateText, Text: item.Text}
		}
	}

	s.items = append(s.items, Item{Text: text})
	s.logger.Debug("item added", logging.String(logging.FieldItemText, text), logging.Int(logging.FieldItemCount, len(s.items)))
	return cloneItems(s.items), s.persist(ctx, "add")
}

// Toggle flips the checked flag of the item at canonical index and returns
// the updated item.
func (s *Store) Toggle(ctx context.Context, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Item{}, err
	}
	s.items[index].Checked = !s.items[index].Checked
	item := s.items[index]
	s.logger.Debug("item toggled",
		logging.String(logging.FieldItemText, item.Text),
		logging.Int(logging.FieldIndex, index),
		logging.Bool("checked", item.Checked))
	return item, s.persist(ctx, "toggle")
}

// Remove deletes the item at canonical index; later items shift down.
func (s *Store) Remove(ctx context.Context, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return Item{}, err
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.logger.Debug("item removed",
		logging.String(logging.FieldItemText, removed.Text),
		logging.Int(logging.FieldIndex, index))
	return removed, s.persist(ctx, "remove")
}

// ResetChecks unchecks every item and persists, even when nothing was
// checked. It returns how many items were cleared.
func (s *Store) ResetChecks(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := 0
	for i := range s.items {
		if s.items[i].Checked {
			s.items[i].Checked = false
			cleared++
		}
	}
	s.logger.Debug("checks reset", logging.Int("cleared", cleared))
	return cleared, s.persist(ctx, "reset")
}

// ResetToDefaults replaces the list with the starter items.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = DefaultItems()
	s.logger.Info("checklist reset to defaults", logging.Int(logging.FieldItemCount, len(s.items)))
	return s.persist(ctx, "reset_defaults")
}

// ReplaceAll swaps in items wholesale. Text is trimmed; duplicate and empty
// names are accepted as given. Invalid input leaves the state untouched.
func (s *Store) ReplaceAll(ctx context.Context, items []Item) error {
	replacement := make([]Item, 0, len(items))
	for i, item := range items {
		if !utf8.ValidString(item.Text) {
			return &ValidationError{Kind: MalformedImport, Detail: fmt.Sprintf("at /%d: text is not valid UTF-8", i)}
		}
		replacement = append(replacement, Item{Text: strings.TrimSpace(item.Text), Checked: item.Checked})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = replacement
	s.logger.Info("checklist replaced", logging.Int(logging.FieldItemCount, len(replacement)))
	return s.persist(ctx, "import")
}

// ImportItems decodes a backup blob and replaces the list with it. Nothing
// changes unless the whole blob is valid. It returns the imported count.
func (s *Store) ImportItems(ctx context.Context, data []byte) (int, error) {
	items, err := DecodeItems(data)
	if err != nil {
		logging.WarnWithContext(s.logger, "import rejected", "checklist_import_rejected",
			logging.Error(err),
			logging.String(logging.FieldImpact, "current list unchanged"))
		return 0, err
	}
	if err := s.ReplaceAll(ctx, items); err != nil {
		return len(items), err
	}
	return len(items), nil
}

// ExportSnapshot renders the canonical sequence as a backup file body with a
// suggested filename. It has no side effects.
func (s *Store) ExportSnapshot() (Snapshot, error) {
	s.mu.Lock()
	items := cloneItems(s.items)
	now := s.now()
	s.mu.Unlock()

	data, err := EncodeItems(items)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Filename: BackupFilename(now), Data: data, Items: len(items)}, nil
}

// DisplayOrder returns the rendering order for the current state.
func (s *Store) DisplayOrder() []DisplayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DisplayOrder(s.items)
}

// Items returns a copy of the canonical sequence.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Counts returns the total and checked item counts.
func (s *Store) Counts() (total, checked int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.Checked {
			checked++
		}
	}
	return len(s.items), checked
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.items) {
		return &IndexError{Index: index, Length: len(s.items)}
	}
	return nil
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context, op string) error {
	data, err := EncodeItems(s.items)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if err := s.medium.Write(ctx, string(data)); err != nil {
		logging.ErrorWithContext(s.logger, "failed to persist checklist", "checklist_save_failed",
			logging.String(logging.FieldOperation, op),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "free disk space or check permissions, then retry"))
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
