package common

import "time"

const (
	// DefaultHost is the address the server listens on when none is given
	DefaultHost = `127.0.0.1`
	// DefaultPort is the server's JSON interface port
	DefaultPort = 19444
	// DefaultPriority is used by commands when no priority is given, lower
	// values win on the server
	DefaultPriority = 100
	// DefaultConnectTimeout bounds implicit connection attempts
	DefaultConnectTimeout = 10 * time.Second
	// DefaultReceiveTimeout is the quiescence timeout used when waiting for
	// serverinfo responses
	DefaultReceiveTimeout = 2 * time.Second
	// DefaultTimeout bounds the delivery of events to subscribers
	DefaultTimeout = 2 * time.Second
	// PollInterval is the pause between reads after a transient read error
	PollInterval = 100 * time.Millisecond
	// ReadChunkSize is the maximum number of bytes requested per read
	ReadChunkSize = 8192
)
