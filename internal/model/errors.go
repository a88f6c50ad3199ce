package model

import "fmt"

// Error codes shared by the decoder, the translator and the public API
const (
	CodeTruncated      = "truncated"
	CodeFormatMismatch = "format_mismatch"
	CodeInvalidMap     = "invalid_map"
)

// Common errors
var (
	ErrTruncated      = &Error{Code: CodeTruncated, Message: "unexpected end of map data"}
	ErrFormatMismatch = &Error{Code: CodeFormatMismatch, Message: "map format mismatch"}
	ErrInvalidMap     = &Error{Code: CodeInvalidMap, Message: "invalid map"}
)

// Error represents a decoding error of a given kind
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so errors.Is
// matches on Code regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Truncated returns a truncation error for a read of want bytes where only
// got were available.
func Truncated(what string, want, got int) error {
	return &Error{
		Code:    CodeTruncated,
		Message: fmt.Sprintf("%s: need %d bytes, got %d", what, want, got),
	}
}

// FormatMismatch returns a format mismatch error with a formatted message.
func FormatMismatch(format string, args ...interface{}) error {
	return &Error{Code: CodeFormatMismatch, Message: fmt.Sprintf(format, args...)}
}

// InvalidMap returns an invalid map error with a formatted message.
func InvalidMap(format string, args ...interface{}) error {
	return &Error{Code: CodeInvalidMap, Message: fmt.Sprintf(format, args...)}
}

// BlockMismatchError is returned when a block header differs from the
// canonical header taken from the height block.
type BlockMismatchError struct {
	Block string
	Want  [16]byte
	Got   [16]byte
}

func (e *BlockMismatchError) Error() string {
	return fmt.Sprintf("%s block header mismatch: want % x, got % x", e.Block, e.Want[:], e.Got[:])
}

func (e *BlockMismatchError) Unwrap() error {
	return ErrFormatMismatch
}

// StartingPositionError is returned when a player's starting position does
// not address any decoded cell.
type StartingPositionError struct {
	Player   int
	Position FilePoint
}

func (e *StartingPositionError) Error() string {
	return fmt.Sprintf("starting position of player %d at %v is outside the decoded grid", e.Player, e.Position)
}

func (e *StartingPositionError) Unwrap() error {
	return ErrInvalidMap
}
