package chatrelay

import (
    "io"
)

// Conn is a generic interface for sending and receiving named events.
//
// Implementations are expected to keep the remote endpoint's events in
// order and to report a closed connection as `ConnEOF`. A `Conn` that
// receives a frame it cannot decode into an `Event` should drop the
// frame and keep reading, as malformed input must never take the
// connection down with it.
type Conn interface {
    io.Closer

    // Recv blocks until a new event was received.
    Recv() (Event, error)

    // Send the event to the remote endpoint.
    Send(ev Event) error
}
