// Package wire holds the collaborator surface between the object dispatch
// core and the transport: the [Value] tagged union, the [Message] routing
// facade and the [Conn] interface. A channel-backed in-process [LocalConn]
// is provided for tests and examples; real socket transports implement
// [Conn] elsewhere.
package wire

import (
	"errors"
	"time"
)

var (
	ErrConnClosed = errors.New("wire: connection closed")
)

// Conn is the transport surface the dispatch core consumes. Implementations
// own socket setup, authentication and the byte-level codec; the core only
// sends replies and fetches the next inbound item.
type Conn interface {
	// Send transmits an outbound message. A zero serial is assigned by the
	// connection before transmission.
	Send(*Message) error

	// Next returns the next inbound message, or (nil, nil) when none
	// arrived within the timeout.
	Next(timeout time.Duration) (*Message, error)

	Close() error
}
