// Package storage provides the persistence media behind the checklist store.
//
// Every medium stores one string value under one fixed key. FileMedium keeps
// it in a JSON file guarded by an advisory lock so concurrent packlist
// processes never overlap writes. SQLiteMedium keeps it in a small key/value
// table. MemoryMedium backs tests and can be told to reject writes.
//
// Open picks the medium named by storage.backend in the configuration.
package storage
