// Package protocol implements the wire format of the Hyperion JSON interface.
//
// Requests are JSON objects carrying a mandatory "command" field, written one
// per line.  The only response the client interprets is the reply to the
// serverinfo command, which embeds a top-level "info" object.
//
// This package is not designed to be used directly by end users, all
// interaction should occur via the Client in the gohyperion package.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// Delimiter terminates every command on the wire
const Delimiter = '\n'

// Command names understood by the server
const (
	CommandColor       = `color`
	CommandEffect      = `effect`
	CommandClear       = `clear`
	CommandClearAll    = `clearall`
	CommandServerInfo  = `serverinfo`
	CommandImage       = `image`
	CommandTransform   = `transform`
	CommandCorrection  = `correction`
	CommandTemperature = `temperature`
	CommandAdjustment  = `adjustment`
)

// Command is a request understood by the server
type Command interface {
	// Name returns the value of the command field
	Name() string
}

// Encode marshals cmd and appends the line delimiter
func Encode(cmd Command) ([]byte, error) {
	b, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s command: %w", cmd.Name(), err)
	}
	return append(b, Delimiter), nil
}

// milliseconds converts d to the integer milliseconds used by the duration
// field, rounding up so any positive duration stays positive.  Non-positive
// durations yield 0, which omits the field.
func milliseconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Millisecond - 1) / time.Millisecond)
}
