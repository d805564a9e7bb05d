/*
Package chatrelay implements a single-room, in-memory, connection-agnostic
chat relay.

Clients connect, register a nickname and broadcast text messages to
every other connected client. A connection without any activity for a
configurable idle timeout is forcibly disconnected by the server.

The relay is divided into three components:

 - `Room`: the interface for the chat room itself
 - `Conn`: a connection to the remote client
 - `Event`: a named wire event, exchanged through a `Conn`

Internally there's also a fourth component, the `session`, but that's
never exported by the API. The session associates a `Conn` to a
connection id, a nickname and a lifecycle state, and owns the
connection's idle timer.

The first step is to instantiate a room through `NewRoom` or
`NewRoomConf`. The latter should be the preferred variant, as it's the
one that allows the most customization:

    conf := chatrelay.GetDefaultRoomConf()
    // Modify 'conf' as desired
    room := chatrelay.NewRoomConf(conf)

Instantiating a room starts its event goroutine, which handles every
inbound event one at a time. The room's state only ever changes on
that goroutine, so there's no lock anywhere in the relay; timers and
connections alike report through the room's queue.

Connections are attached to the room with something that implements
the `Conn` interface. `conn_test.go` implements `mockConn`, which uses
channels to send and receive events. Another option is the
`gorilla-ws-conn` sub-package, which implements `Conn` over a
WebSocket connection. A connection is attached by calling either
`Attach`, which spawns a goroutine to wait for events from the remote
endpoint, or `AttachAndWait`, which blocks until the `Conn` gets
closed. This second option may be useful if the server already spawns
a goroutine to handle requests.

    var conn Conn
    err := room.Attach(conn)
    if err != nil {
        // Handle the error
    }

An attached connection starts unjoined and must send a "join" event to
register its nickname. Nicknames are unique among the currently
connected users; a colliding or invalid join is rejected with an event
sent only to the requester, who may retry. Once joined, every
"send-message" event is broadcast to all users, the sender included.

Joins and messages count as activity. A connection that stays quiet
for the room's idle timeout is notified with a "timed-out" event,
announced to everyone with "user-timed-out", and disconnected by the
server. A user who instead closes the connection on their own is
announced with "user-disconnected"; a timed-out user is not announced
a second time.
*/
package chatrelay
