// Package gohyperion provides a simple Go interface to the JSON interface of
// the Hyperion LED controller server.
//
// A Client owns a single connection to one server.  Commands are written as
// newline-delimited JSON objects and are fire-and-forget, while state is read
// back by requesting serverinfo and waiting until the server goes quiet.
//
// Also included in cmd/hyperion is a small CLI utility that allows interacting
// with a server, including a terminal color picker.
package gohyperion

import (
	"github.com/pdf/gohyperion/common"
)

const (
	// VERSION of this library
	VERSION = `0.1.0`
)

// NewClient returns a pointer to a new, unconnected Client for the server at
// host:port.  The connection is opened by Open, or implicitly by the first
// operation that needs it.
func NewClient(host string, port int) *Client {
	if host == `` {
		host = common.DefaultHost
	}
	if port == 0 {
		port = common.DefaultPort
	}
	return &Client{
		host:           host,
		port:           port,
		connectTimeout: common.DefaultConnectTimeout,
		receiveTimeout: common.DefaultReceiveTimeout,
		subscriptions:  make(map[string]*common.Subscription),
	}
}

// SetLogger allows assigning a custom levelled logger that conforms to the
// common.Logger interface.  Defaults to common.StubLogger, which does no
// logging at all.
func SetLogger(logger common.Logger) {
	common.SetLogger(logger)
}
