// Package checklist owns the pack list: an ordered sequence of named,
// checkable items and every rule for changing it.
//
// The Store is the only writer of the item sequence. Each operation runs under
// the store mutex, mutates the canonical (insertion-order) sequence, and
// persists the result through a Medium before returning, so a second
// operation never starts while the previous write is still in flight.
//
// Indices accepted by Toggle and Remove are canonical indices. Presentation
// code renders DisplayOrder (unchecked first, then checked) and maps the
// selected row back through DisplayEntry.Index.
//
// Backups are plain JSON arrays of {text, checked}. ExportSnapshot produces
// the file body and a timestamped filename; ImportItems validates a blob
// structurally and swaps it in atomically.
package checklist
