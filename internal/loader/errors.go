// Package loader fetches the four data documents concurrently and joins them
// all-or-nothing.
package loader

import "fmt"

// Reason classifies a data load failure.
type Reason string

const (
	ReasonOK      Reason = "ok"
	ReasonNetwork Reason = "network"
	ReasonStatus  Reason = "status"
	ReasonParse   Reason = "parse"
)

// Error is a data load failure for one document.
type Error struct {
	Document string
	Reason   Reason
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Document, e.Message, e.Cause)
	}
	return fmt.Sprintf("load %s: %s", e.Document, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
