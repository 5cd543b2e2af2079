package gohyperion

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pdf/gohyperion/common"
	"github.com/pdf/gohyperion/protocol"
)

// Client provides a simple interface for interacting with a Hyperion server.
// Always use NewClient() to obtain a Client instance.
//
// A Client is not safe for concurrent use: the connection and its state are
// owned by the caller, and concurrent operations must be serialized
// externally.  Only subscription management may be used from other
// goroutines.
type Client struct {
	host           string
	port           int
	conn           net.Conn
	connected      bool
	connectTimeout time.Duration
	receiveTimeout time.Duration
	subscriptions  map[string]*common.Subscription
	sync.RWMutex
}

// Host returns the server host
func (c *Client) Host() string {
	return c.host
}

// SetHost changes the server host, taking effect on the next connection
func (c *Client) SetHost(host string) {
	c.host = host
}

// Port returns the server port
func (c *Client) Port() int {
	return c.port
}

// SetPort changes the server port, taking effect on the next connection
func (c *Client) SetPort(port int) {
	c.port = port
}

// Address returns the host:port the client connects to
func (c *Client) Address() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// Connected reports whether the client holds an open connection
func (c *Client) Connected() bool {
	return c.connected
}

// SetConnectTimeout sets the timeout used for implicit connection attempts
func (c *Client) SetConnectTimeout(timeout time.Duration) {
	c.connectTimeout = timeout
}

// GetConnectTimeout returns the timeout used for implicit connection attempts
func (c *Client) GetConnectTimeout() time.Duration {
	return c.connectTimeout
}

// SetReceiveTimeout sets the quiescence timeout used when waiting for
// serverinfo responses
func (c *Client) SetReceiveTimeout(timeout time.Duration) {
	c.receiveTimeout = timeout
}

// GetReceiveTimeout returns the quiescence timeout used when waiting for
// serverinfo responses
func (c *Client) GetReceiveTimeout() time.Duration {
	return c.receiveTimeout
}

// Open connects to the server, failing if no connection is established within
// timeout.  Open is a noop if the client is already connected.  Failures are
// returned as a *common.ConnectionError wrapping the network error.
func (c *Client) Open(timeout time.Duration) error {
	if c.connected {
		return nil
	}
	addr := c.Address()
	conn, err := net.DialTimeout(`tcp`, addr, timeout)
	if err != nil {
		c.log().Errorf("Error during connection: %v", err)
		return &common.ConnectionError{Op: `dial`, Address: addr, Err: err}
	}
	c.conn = conn
	c.connected = true
	c.log().Infof(`Connected`)
	c.publish(common.EventConnected{Address: addr})
	return nil
}

// Close closes the connection to the server.  If clean is true, all colors and
// effects are cleared first; a failure to do so is only logged.  Close is a
// noop on a disconnected client, and always leaves the client disconnected.
func (c *Client) Close(clean bool) error {
	if !c.connected {
		return nil
	}
	addr := c.Address()
	if clean {
		msg, err := protocol.Encode(protocol.NewClearAll())
		if err == nil {
			err = c.write(msg)
		}
		if err != nil {
			c.log().Warnf("Could not clear server before closing: %v", err)
		}
	}
	err := c.conn.Close()
	c.reset()
	if err != nil {
		c.log().Errorf("Could not close connection: %v", err)
		return &common.ConnectionError{Op: `close`, Address: addr, Err: err}
	}
	c.log().Infof(`Disconnected`)
	return nil
}

// EnsureConnected returns true if the client is connected, attempting a single
// connection with the configured connect timeout first if it is not.  A false
// result means the calling operation must be skipped.
func (c *Client) EnsureConnected() bool {
	if !c.connected {
		c.log().Warnf(`Not connected to server: autoconnecting...`)
		// Open logs its own failure
		_ = c.Open(c.connectTimeout)
	}
	return c.connected
}

// Send writes message to the server in full.  Write failures are logged and
// returned as a *common.ConnectionError; if the failure shows the connection
// is gone, the client is marked disconnected so the next operation
// reconnects.
func (c *Client) Send(message []byte) error {
	if !c.connected {
		return common.ErrNotConnected
	}
	addr := c.Address()
	if err := c.write(message); err != nil {
		c.log().Errorf("Error while sending data: %v", err)
		if isBroken(err) {
			c.demote()
		}
		return &common.ConnectionError{Op: `write`, Address: addr, Err: err}
	}
	c.log().Debugf("Sent: %s", bytes.TrimSpace(message))
	c.publishNow(common.EventCommandSent{Command: strings.TrimSpace(string(message))})
	return nil
}

// SendCommand encodes cmd and sends it, connecting first if required.  If no
// connection can be established the command is skipped and
// common.ErrNotConnected is returned.
func (c *Client) SendCommand(cmd protocol.Command) error {
	if !c.EnsureConnected() {
		return common.ErrNotConnected
	}
	msg, err := protocol.Encode(cmd)
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// Receive reads from the server until it goes quiet.  Once any data has
// arrived, Receive returns after no further data arrives for timeout.  If no
// data arrives at all, Receive gives up after twice the timeout and returns an
// empty string.  The result is not guaranteed to be complete JSON.
func (c *Client) Receive(timeout time.Duration) string {
	if !c.connected {
		return ``
	}
	conn := c.conn
	defer func() {
		_ = conn.SetReadDeadline(time.Time{})
	}()

	var buf bytes.Buffer
	chunk := make([]byte, common.ReadChunkSize)
	start := time.Now()
	last := start
	for {
		deadline := start.Add(2 * timeout)
		if buf.Len() > 0 {
			deadline = last.Add(timeout)
		}
		if !time.Now().Before(deadline) {
			break
		}
		if err := conn.SetReadDeadline(deadline); err != nil {
			c.log().Debugf("Could not set read deadline: %v", err)
			time.Sleep(common.PollInterval)
			continue
		}
		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			last = time.Now()
		}
		if err == nil {
			continue
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			continue
		}
		if isBroken(err) {
			c.log().Errorf("Connection lost while receiving: %v", err)
			c.demote()
			break
		}
		c.log().Debugf("Transient error while receiving: %v", err)
		time.Sleep(common.PollInterval)
	}
	return buf.String()
}

// NewSubscription returns a new *common.Subscription for receiving events from
// this client.  Connection events wait up to common.DefaultTimeout for room in
// a full subscription; EventCommandSent is dropped instead, so a subscriber
// that stops reading never slows down commands.
func (c *Client) NewSubscription() (*common.Subscription, error) {
	sub := common.NewSubscription(c)
	c.Lock()
	c.subscriptions[sub.ID()] = sub
	c.Unlock()
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of subscriptions.
func (c *Client) CloseSubscription(sub *common.Subscription) error {
	c.Lock()
	defer c.Unlock()
	if _, ok := c.subscriptions[sub.ID()]; !ok {
		return common.ErrNotFound
	}
	delete(c.subscriptions, sub.ID())
	return nil
}

func (c *Client) publish(event interface{}) {
	for _, sub := range c.subscribers() {
		if err := sub.Write(event); err != nil {
			common.Log.Debugf("Failed publishing %T to subscription %s: %v", event, sub.ID(), err)
		}
	}
}

// publishNow delivers event only to subscriptions with room for it
func (c *Client) publishNow(event interface{}) {
	for _, sub := range c.subscribers() {
		if err := sub.TryWrite(event); err != nil {
			common.Log.Debugf("Dropped %T for subscription %s: %v", event, sub.ID(), err)
		}
	}
}

func (c *Client) subscribers() []*common.Subscription {
	c.RLock()
	defer c.RUnlock()
	subs := make([]*common.Subscription, 0, len(c.subscriptions))
	for _, sub := range c.subscriptions {
		subs = append(subs, sub)
	}
	return subs
}

// log returns a logger tagged with the current server address
func (c *Client) log() common.Logger {
	return common.ServerLogger(c.Address())
}

func (c *Client) write(message []byte) error {
	for len(message) > 0 {
		n, err := c.conn.Write(message)
		if err != nil {
			return err
		}
		message = message[n:]
	}
	return nil
}

// demote drops a connection that is known to be broken
func (c *Client) demote() {
	if !c.connected {
		return
	}
	_ = c.conn.Close()
	c.reset()
}

func (c *Client) reset() {
	c.conn = nil
	c.connected = false
	c.publish(common.EventDisconnected{Address: c.Address()})
}

func isBroken(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED)
}
