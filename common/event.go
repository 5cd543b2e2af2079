package common

// EventConnected is emitted by a Client when it connects to the server
type EventConnected struct {
	Address string
}

// EventDisconnected is emitted by a Client when its connection is closed,
// either explicitly or because the connection broke
type EventDisconnected struct {
	Address string
}

// EventCommandSent is emitted by a Client after a command has been written to
// the server
type EventCommandSent struct {
	Command string
}
