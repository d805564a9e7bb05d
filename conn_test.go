package chatrelay

import (
    "sync/atomic"
    "time"
)

// A simple mock connection, used to test the relay without an actual
// network connection.
//
// Although the room and its sessions use the `Conn` API to drive this
// connection, tests must access this structure directly to simulate
// interactions.
//
// To simulate an event arriving from the client's remote endpoint,
// use `TestSend`:
//
//     c := newMockConn()
//     /* Attach the connection to the room. */
//     c.TestSend(Event { Name: EventJoin, Nickname: "andris" })
//
// On the other hand, to simulate a client receiving an event, use
// `TestRecv` with a timeout, so a missing event fails the test instead
// of hanging it.
type mockConn struct {
    // fromClient simulates incoming events (from the server's
    // perspective) from the client's remote endpoint.
    fromClient chan Event

    // fromServer simulates outgoing events (from the server's
    // perspective) to the client's remote endpoint.
    fromServer chan Event

    // stop signals, by getting closed, that the connection should get
    // closed.
    stop chan struct{}

    // Whether the connection is currently running.
    running uint32
}

// isClosed check if the connection is closed.
func (mc *mockConn) isClosed() bool {
    return atomic.LoadUint32(&mc.running) == 0
}

// Close the connection.
//
// This can safely be called multiple times without any issue.
func (mc *mockConn) Close() error {
    if atomic.CompareAndSwapUint32(&mc.running, 1, 0) {
        close(mc.stop)
    }
    return nil
}

// Recv blocks until a new event was received.
func (mc *mockConn) Recv() (Event, error) {
    select {
    case ev := <-mc.fromClient:
        return ev, nil
    case <-mc.stop:
        return Event{}, ConnEOF
    }
}

// Send the event to the remote endpoint.
func (mc *mockConn) Send(ev Event) error {
    if mc.isClosed() {
        return ConnEOF
    }

    mc.fromServer <- ev

    return nil
}

// TestSend send an event from the client to the server.
func (mc *mockConn) TestSend(ev Event) error {
    if mc.isClosed() {
        return ConnEOF
    }

    mc.fromClient <- ev
    return nil
}

// TestRecv wait for `timeout` to receive an event from the server.
//
// Events sent before the connection got closed are still delivered, so
// a test may check everything a forcibly disconnected client was sent.
func (mc *mockConn) TestRecv(timeout time.Duration) (Event, error) {
    select {
    case ev := <-mc.fromServer:
        return ev, nil
    default:
    }

    select {
    case ev := <-mc.fromServer:
        return ev, nil
    case <-time.After(timeout):
        return Event{}, TestTimeout
    case <-mc.stop:
        return Event{}, ConnEOF
    }
}

// newMockConn create a dummy, mock connection that may be used in
// tests.
func newMockConn() *mockConn {
    return &mockConn {
        fromClient: make(chan Event),
        fromServer: make(chan Event, 100),
        stop: make(chan struct{}),
        running: 1,
    }
}
