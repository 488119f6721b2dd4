package checklist

// DisplayOrder partitions items into unchecked then checked, keeping
// canonical order inside each group.
func DisplayOrder(items []Item) []DisplayEntry {
	entries := make([]DisplayEntry, 0, len(items))
	for i, item := range items {
		if !item.Checked {
			entries = append(entries, DisplayEntry{Item: item, Index: i})
		}
	}
	for i, item := range items {
		if item.Checked {
			entries = append(entries, DisplayEntry{Item: item, Index: i})
		}
	}
	return entries
}

// CanonicalIndex maps a zero-based display position back to the canonical
// index of the same item.
func CanonicalIndex(entries []DisplayEntry, position int) (int, error) {
	if position < 0 || position >= len(entries) {
		return -1, &IndexError{Index: position, Length: len(entries)}
	}
	return entries[position].Index, nil
}
