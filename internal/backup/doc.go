// Package backup moves checklist snapshots between the store and the
// filesystem.
//
// Write places an exported snapshot in a backup directory without ever
// replacing an existing file, ReadFile loads a complete import blob with a
// size cap, and List enumerates backups newest first for the CLI.
package backup
