package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when an operation was skipped because no
	// connection to the server could be established
	ErrNotConnected = errors.New(`not connected`)
	// ErrClosed is returned when operating on a closed resource
	ErrClosed = errors.New(`closed`)
	// ErrTimeout is returned when an operation times out
	ErrTimeout = errors.New(`timeout`)
	// ErrNotFound is returned when a lookup yields no result
	ErrNotFound = errors.New(`not found`)
	// ErrNoActiveColor is returned when the server reports no active color
	ErrNoActiveColor = errors.New(`no active color`)
)

// ConnectionError describes a failure to connect to, write to, or close the
// connection to the server.
type ConnectionError struct {
	Op      string
	Address string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Address, e.Err)
}

// Unwrap returns the underlying network error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a serverinfo response does not contain the
// expected info object, or the object is not valid JSON.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse serverinfo: %s: %v", e.Reason, e.Err)
	}
	return `parse serverinfo: ` + e.Reason
}

// Unwrap returns the underlying decoding error, if any
func (e *ParseError) Unwrap() error {
	return e.Err
}

// LookupError is returned when one or more active effects can not be matched
// to an effect declared by the server.  Unmatched holds the offending entries
// rendered as indented JSON.
type LookupError struct {
	Unmatched string
}

func (e *LookupError) Error() string {
	return "cannot find a name for some of the active effects, they may be using custom args:\n" + e.Unmatched
}
