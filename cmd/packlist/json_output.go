package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

type listItemJSON struct {
	Number  int    `json:"number"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type listJSON struct {
	Items   []listItemJSON `json:"items"`
	Total   int            `json:"total"`
	Checked int            `json:"checked"`
}

type backupJSON struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	Taken   time.Time `json:"taken"`
	ModTime time.Time `json:"modified"`
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
