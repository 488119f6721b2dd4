package checklist

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyText       = errors.New("item text is empty")
	ErrDuplicateText   = errors.New("item already exists")
	ErrMalformedImport = errors.New("malformed import")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrStorage         = errors.New("storage failure")
)

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	EmptyText ValidationKind = iota
	DuplicateText
	MalformedImport
)

func (k ValidationKind) String() string {
	switch k {
	case EmptyText:
		return "empty_text"
	case DuplicateText:
		return "duplicate_text"
	case MalformedImport:
		return "malformed_import"
	default:
		return "unknown"
	}
}

func (k ValidationKind) sentinel() error {
	switch k {
	case EmptyText:
		return ErrEmptyText
	case DuplicateText:
		return ErrDuplicateText
	default:
		return ErrMalformedImport
	}
}

// ValidationError rejects input before any state changes.
type ValidationError struct {
	Kind   ValidationKind
	Text   string
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyText:
		return "item name cannot be empty"
	case DuplicateText:
		return fmt.Sprintf("%q is already on the list", e.Text)
	default:
		if e.Detail != "" {
			return "invalid backup: " + e.Detail
		}
		return "invalid backup"
	}
}

func (e *ValidationError) Unwrap() error { return e.Kind.sentinel() }

// ErrorKind implements the classifier used by the presentation layer.
func (e *ValidationError) ErrorKind() string { return "validation" }

// IndexError reports a canonical index outside [0, Length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("index %d out of range: list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

func (e *IndexError) ErrorKind() string { return "index" }

// StorageError wraps a medium failure. The in-memory state that triggered the
// write is kept; only persistence failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: could not save checklist", e.Op)
	}
	return fmt.Sprintf("%s: could not save checklist: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) ErrorKind() string { return "storage" }

// ErrorClassifier is implemented by every error this package returns.
type ErrorClassifier interface {
	ErrorKind() string
}

// Kind returns the classification of err, or "" for foreign errors.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}
