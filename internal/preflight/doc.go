// Package preflight provides read-only health checks for the filesystem
// paths and stored checklist that packlist depends on.
//
// The CLI "packlist status" command runs RunAll and renders each Result as a
// status line. Checks never create directories or rewrite stored data, so a
// broken setup can be diagnosed without making it worse.
package preflight
