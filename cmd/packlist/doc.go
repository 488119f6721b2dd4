// Package main hosts the packlist CLI entrypoint and command graph.
//
// Every command resolves configuration once, opens the configured storage
// backend, loads the checklist store and hands it to a single operation.
// Item numbers on the command line are the positions printed by `packlist
// list` (unchecked items first), and are mapped back to stored order before
// the store is touched.
package main
