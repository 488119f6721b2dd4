package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// BackupPrefix starts every backup filename.
	BackupPrefix = "gym-packlist-backup-"
	// BackupExt ends every backup filename.
	BackupExt = ".json"

	backupTimeLayout = "2006-01-02T15-04-05"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Snapshot is an exported copy of the canonical sequence.
type Snapshot struct {
	Filename string
	Data     []byte
	Items    int
}

// BackupFilename names a backup taken at t. The timestamp is UTC with second
// granularity and '-' in place of ':'.
func BackupFilename(t time.Time) string {
	return BackupPrefix + t.UTC().Format(backupTimeLayout) + BackupExt
}

// ParseBackupTime extracts the timestamp from a backup filename.
func ParseBackupTime(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, BackupPrefix) || !strings.HasSuffix(name, BackupExt) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupPrefix), BackupExt)
	t, err := time.ParseInLocation(backupTimeLayout, stamp, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EncodeItems renders items in the persisted/backup format: a JSON array with
// two-space indentation and fields in text, checked order.
func EncodeItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return data, nil
}

// DecodeItems parses a complete backup or persisted blob. The document must be
// a JSON array whose elements carry a string "text" and a boolean "checked";
// extra fields are ignored and item text is trimmed. Any violation rejects the
// whole blob with a MalformedImport ValidationError.
func DecodeItems(data []byte) ([]Item, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Kind: MalformedImport, Detail: "not valid JSON: " + err.Error()}
	}
	if _, ok := doc.([]any); !ok {
		return nil, &ValidationError{Kind: MalformedImport, Detail: "expected a JSON array of items"}
	}
	if err := validateStructure(doc); err != nil {
		return nil, &ValidationError{Kind: MalformedImport, Detail: err.Error()}
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ValidationError{Kind: MalformedImport, Detail: err.Error()}
	}
	if items == nil {
		items = []Item{}
	}
	for i := range items {
		items[i].Text = strings.TrimSpace(items[i].Text)
	}
	return items, nil
}
