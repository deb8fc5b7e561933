package lyrics

import "errors"

// Kind classifies a non-fatal core failure so surfaces can pick a message
// or status code without string matching.
type Kind string

const (
	KindEmptyInput        Kind = "empty_input"
	KindNoActiveEdit      Kind = "no_active_edit"
	KindNothingToUndo     Kind = "nothing_to_undo"
	KindEmptyExportSet    Kind = "empty_export_set"
	KindInvalidImport     Kind = "invalid_import"
	KindMalformedJSON     Kind = "malformed_json"
	KindIndexOutOfRange   Kind = "index_out_of_range"
	KindNotConfirmed      Kind = "not_confirmed"
	KindUnsupportedFormat Kind = "unsupported_format"
)

// Error is the error type returned by every core operation. Two errors are
// considered equal by errors.Is when their kinds match.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// ErrorKind implements the classifier interface used by the HTTP layer.
func (e *Error) ErrorKind() string {
	return string(e.Kind)
}

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

var (
	// ErrEmptyInput indicates a capture or edit commit with blank text.
	ErrEmptyInput = &Error{Kind: KindEmptyInput, Message: "lyric text is empty"}
	// ErrNoActiveEdit indicates a nudge with no entry open for editing.
	ErrNoActiveEdit = &Error{Kind: KindNoActiveEdit, Message: "no entry is being edited"}
	// ErrNothingToUndo indicates undo on an empty store.
	ErrNothingToUndo = &Error{Kind: KindNothingToUndo, Message: "nothing to undo"}
	// ErrEmptyExportSet indicates an export with zero entries.
	ErrEmptyExportSet = &Error{Kind: KindEmptyExportSet, Message: "no lyrics to export"}
	// ErrInvalidImport indicates imported JSON that is not a non-empty array.
	ErrInvalidImport = &Error{Kind: KindInvalidImport, Message: "lyrics file must be a non-empty array"}
	// ErrMalformedJSON indicates imported data that failed to parse.
	ErrMalformedJSON = &Error{Kind: KindMalformedJSON, Message: "lyrics file is not valid JSON"}
	// ErrIndexOutOfRange indicates an index that does not address a row.
	ErrIndexOutOfRange = &Error{Kind: KindIndexOutOfRange, Message: "index out of range"}
	// ErrNotConfirmed indicates a destructive operation without confirmation.
	ErrNotConfirmed = &Error{Kind: KindNotConfirmed, Message: "operation requires confirmation"}
	// ErrUnsupportedFormat indicates an export format name that is not known.
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat, Message: "unsupported export format"}
)

// KindOf returns the classification of err, or "" when err is not a core error.
func KindOf(err error) Kind {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Kind
	}
	return ""
}
