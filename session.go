package chatrelay

import (
    "sync/atomic"
    "time"
)

// sessionState track where in its lifecycle a connection currently is.
type sessionState uint

const (
    // Connected, but no nickname was registered yet.
    stateUnjoined sessionState = iota
    // Nickname registered; chat messages are accepted and relayed.
    stateJoined
    // The idle timer fired; the connection is about to be torn down.
    stateTimedOut
)

func (st sessionState) String() string {
    switch st {
    case stateUnjoined:
        return "unjoined"
    case stateJoined:
        return "joined"
    case stateTimedOut:
        return "timed-out"
    default:
        return "invalid"
    }
}

// session represent one live connection on a room.
//
// Everything but `conn` and `running` belongs to the room's goroutine:
// the nickname, the state and the idle timer are only ever touched
// while handling an event on the room's queue, so none of it needs
// locking.
type session struct {
    // Identifier assigned by the room when the connection is attached.
    // Unique for the lifetime of the connection.
    id uint64

    // The nickname registered on join. Empty until then, and set at
    // most once.
    nickname string

    // Current lifecycle state.
    state sessionState

    // The outstanding idle timer, if armed. Owned by the idle
    // supervisor.
    timer *time.Timer

    // gen fences stale timer expiries: it is bumped on every re-arm
    // and on cancellation, and an expiry only acts if it still carries
    // the current value.
    gen uint64

    // The connection to the user's remote endpoint.
    conn Conn

    // The room this connection is attached to.
    room *room

    // Whether the session's reader is still running.
    running uint32
}

// isRunning check if the session is still running.
func (s *session) isRunning() bool {
    return atomic.LoadUint32(&s.running) == 1
}

// run wait for events from the remote endpoint and forward them to the
// room's queue.
//
// When the connection reports an error, or after `s.Close()` was
// called, the session posts a single teardown notice to the room and
// stops.
func (s *session) run() {
    for s.isRunning() {
        ev, err := s.conn.Recv()
        if err != nil {
            break
        }

        s.room.post(inbound {
            kind: kindClientEvent,
            sess: s,
            ev: ev,
        })
    }

    s.Close()
    s.room.post(inbound {
        kind: kindConnClosed,
        sess: s,
    })
}

// Send a event to the session's remote endpoint.
func (s *session) Send(ev Event) error {
    return s.conn.Send(ev)
}

// Close the session's connection, causing its reader to stop.
//
// This can safely be called multiple times (and from multiple
// goroutines), as it will only run on the first call.
func (s *session) Close() error {
    if atomic.CompareAndSwapUint32(&s.running, 1, 0) {
        s.conn.Close()
    }

    return nil
}

// newSession create a new session identified by `id` on `room`,
// receiving and sending events on `conn`.
//
// The caller is responsible for starting the session's reader, either
// on a new goroutine (`go s.run()`) or on its own (`s.run()`).
func newSession(id uint64, conn Conn, r *room) *session {
    return &session {
        id: id,
        state: stateUnjoined,
        conn: conn,
        room: r,
        running: 1,
    }
}
