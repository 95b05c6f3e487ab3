package api

import "fmt"

// Op names one of the four client operations.
type Op string

const (
	OpList   Op = "list"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

var opMessages = map[Op]string{
	OpList:   "Failed to fetch items",
	OpCreate: "Failed to create item",
	OpUpdate: "Failed to update item",
	OpDelete: "Failed to delete item",
}

// Error is returned by every failed call. Its message is the fixed text for
// the operation whatever the cause; the cause is kept for logs.
type Error struct {
	Op         Op
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *Error) Error() string { return opMessages[e.Op] }

func (e *Error) Unwrap() error { return e.Err }

// Detail describes the underlying cause for diagnostics.
func (e *Error) Detail() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}
