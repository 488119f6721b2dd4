package main

import (
	"fmt"
	"strconv"
	"strings"

	"packlist/internal/checklist"
)

// resolvePosition maps a 1-based item number as printed by `list` to the
// entry it names.
func resolvePosition(store *checklist.Store, arg string) (checklist.DisplayEntry, error) {
	number, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || number < 1 {
		return checklist.DisplayEntry{}, fmt.Errorf("item number must be a positive integer, got %q", arg)
	}
	entries := store.DisplayOrder()
	if _, err := checklist.CanonicalIndex(entries, number-1); err != nil {
		if len(entries) == 0 {
			return checklist.DisplayEntry{}, fmt.Errorf("no item #%d: the list is empty", number)
		}
		return checklist.DisplayEntry{}, fmt.Errorf("no item #%d: the list has %d items", number, len(entries))
	}
	return entries[number-1], nil
}
