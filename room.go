package chatrelay

import (
    "io"
    "log"
    "sync/atomic"
)

// eventKind identify what an entry on the room's queue describes.
type eventKind uint

const (
    // A new connection was attached to the room.
    kindConnAttach eventKind = iota
    // The remote endpoint sent an event.
    kindClientEvent
    // A session's idle timer fired.
    kindIdleExpired
    // A session's connection was closed, for whatever reason.
    kindConnClosed
    // Request for the list of joined users.
    kindListUsers
)

// inbound is one entry on the room's queue. Which fields are set
// depends on `kind`.
type inbound struct {
    kind eventKind

    // The session this entry refers to.
    sess *session

    // The event sent by the remote endpoint, for `kindClientEvent`.
    ev Event

    // The generation the expired timer was armed with, for
    // `kindIdleExpired`.
    gen uint64

    // Where to deliver the user list, for `kindListUsers`.
    reply chan []string
}

// The public interface for a chat room.
type Room interface {
    io.Closer

    // Name retrieve the room's name.
    Name() string

    // GetConf retrieve a copy of the room's configuration.
    GetConf() RoomConf

    // Users retrieve the nickname of every joined user. If `list` is
    // supplied, the nicknames are appended to that list, so be sure to
    // empty it before calling this function.
    Users(list []string) []string

    // IsClosed check if the room is closed.
    IsClosed() bool

    // Attach a new connection to the room.
    //
    // The connection starts unjoined: the remote endpoint must send a
    // "join" event to register a nickname before it may chat. Its idle
    // timer starts counting immediately, so a connection that never
    // joins still gets expired.
    //
    // `Attach` spawns a goroutine to wait for events from the
    // connection. If `conn` is nil, then this function will panic!
    Attach(conn Conn) error

    // AttachAndWait attach a new connection to the room and block
    // until the connection gets closed.
    //
    // Differently from `Attach`, this function handles events from the
    // remote endpoint in the calling goroutine. This may be
    // advantageous if the external server already spawns a new
    // goroutine to handle each new connection.
    //
    // If `conn` is nil, then this function will panic!
    AttachAndWait(conn Conn) error
}

// A chat room, relaying events between every attached connection.
type room struct {
    // name of this room.
    name string

    // The configuration this room was created with.
    conf RoomConf

    // Every live session on this room. Only the room's goroutine may
    // touch it.
    reg *registry

    // sup own the per-session idle timers.
    sup *idleSupervisor

    // queue of inbound events, consumed by the room's goroutine. This
    // serializes every state transition: no two entries are ever
    // handled concurrently.
    queue chan inbound

    // nextId generate connection identifiers, atomically incremented
    // on each attach.
    nextId uint64

    // Whether the room is currently running.
    running uint32

    // stop signals, by getting closed, that the room should get
    // closed.
    stop chan struct{}

    // logger used by the room to report events. If this is nil, no
    // message shall be logged!
    logger *log.Logger

    // Whether debug messages should be logged.
    debugLog bool
}

// post an entry onto the room's queue, unless the room was stopped.
// Return whether the entry was accepted.
func (r *room) post(in inbound) bool {
    select {
    case r.queue <- in:
        return true
    case <-r.stop:
        return false
    }
}

// Name retrieve the room's name.
func (r *room) Name() string {
    return r.name
}

// GetConf retrieve a copy of the room's configuration.
func (r *room) GetConf() RoomConf {
    return r.conf
}

// Users retrieve the nickname of every joined user.
//
// The request is answered by the room's goroutine, like any other
// event, so the returned list is a consistent snapshot. A closed room
// reports no users.
func (r *room) Users(list []string) []string {
    reply := make(chan []string, 1)

    if !r.post(inbound { kind: kindListUsers, reply: reply }) {
        return list
    }

    select {
    case users := <-reply:
        return append(list, users...)
    case <-r.stop:
        return list
    }
}

// IsClosed check if the room is closed.
//
// The room reports itself as being closed as soon as `r.Close()` was
// first called, regardless of whether or not it's finished running.
func (r *room) IsClosed() bool {
    return atomic.LoadUint32(&r.running) == 0
}

// attach assign a connection id, create the session and queue its
// registration. The caller decides on which goroutine the session's
// reader runs.
func (r *room) attach(conn Conn) (*session, error) {
    if conn == nil {
        panic("chatrelay/room attach: nil conn")
    } else if r.IsClosed() {
        return nil, RoomClosed
    }

    id := atomic.AddUint64(&r.nextId, 1)
    s := newSession(id, conn, r)

    if !r.post(inbound { kind: kindConnAttach, sess: s }) {
        return nil, RoomClosed
    }

    return s, nil
}

// Attach a new connection to the room.
//
// See `Room.Attach` for a more complete description.
func (r *room) Attach(conn Conn) error {
    s, err := r.attach(conn)
    if err != nil {
        return err
    }

    go s.run()
    return nil
}

// AttachAndWait attach a new connection to the room and block until
// the connection gets closed.
//
// See `Room.AttachAndWait` for a more complete description.
func (r *room) AttachAndWait(conn Conn) error {
    s, err := r.attach(conn)
    if err != nil {
        return err
    }

    s.run()
    return nil
}

// Close the room, disconnect every user and stop the goroutine.
func (r *room) Close() error {
    // Atomically check if `r.running` is 1 and set it to 0. If this
    // returns true, the swap happened and thus this is the first time
    // that `r.Close()` was called.
    if atomic.CompareAndSwapUint32(&r.running, 1, 0) {
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Closing room...\n\troom: \"%s\"",
                    r.name)
        }
        close(r.stop)
    }

    return nil
}

// run the room, handling one queued event at a time.
//
// When `NewRoomConf()` is called, `r.run()` is executed in a new
// goroutine. `r.Close()` should be called to stop the goroutine and
// clean up its resources.
func (r *room) run() {
    for {
        select {
        case <-r.stop:
            r.teardown()
            return
        case in := <-r.queue:
            r.dispatch(in)
        }
    }
}

// teardown cancel every timer and close every connection, as the room
// is going away.
func (r *room) teardown() {
    for _, s := range r.reg.sessions {
        r.sup.cancel(s)
        s.Close()
        r.reg.unregister(s.id)
    }
}

// dispatch a single queued event to its handler.
func (r *room) dispatch(in inbound) {
    switch in.kind {
    case kindConnAttach:
        r.onConnect(in.sess)
    case kindClientEvent:
        r.onClientEvent(in.sess, in.ev)
    case kindIdleExpired:
        r.onIdleExpired(in.sess, in.gen)
    case kindConnClosed:
        r.onConnClosed(in.sess)
    case kindListUsers:
        in.reply <- r.reg.users(nil)
    }
}

// onConnect register the newly attached session and start its idle
// timer.
func (r *room) onConnect(s *session) {
    err := r.reg.register(s)
    if err != nil {
        // The room hands out unique ids, so this shouldn't be
        // reachable. Drop the new connection and leave the registered
        // session alone.
        if r.logger != nil {
            r.logger.Printf("[ERROR] chatrelay/room: Duplicated connection id.\n\troom: \"%s\"\n\tid: %d",
                    r.name, s.id)
        }
        s.Close()
        return
    }

    r.sup.arm(s)

    if r.debugLog && r.logger != nil {
        r.logger.Printf("[DEBUG] chatrelay/room: Connection attached.\n\troom: \"%s\"\n\tid: %d",
                r.name, s.id)
    }
}

// onClientEvent validate that the session is still live and dispatch
// on the event's name.
func (r *room) onClientEvent(s *session, ev Event) {
    if r.reg.lookup(s.id) != s {
        // Late event for a connection that was already torn down.
        return
    }

    switch ev.Name {
    case EventJoin:
        r.onJoin(s, ev.Nickname)
    case EventSendMessage:
        r.onMessage(s, ev.Content)
    default:
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Ignoring unknown event.\n\troom: \"%s\"\n\tid: %d\n\tevent: \"%s\"",
                    r.name, s.id, ev.Name)
        }
    }
}

// onJoin try to register a nickname for the session.
//
// Rejections are sent only to the requester and don't reset its idle
// timer; the other users never see a failed join. A successful join
// counts as activity and is announced to everyone, the new user
// included.
func (r *room) onJoin(s *session, nickname string) {
    if s.state != stateUnjoined {
        // Nicknames are set exactly once. A repeated join gets the
        // same rejection as a collision, since the session's own
        // nickname is registered.
        r.unicast(s, Event { Name: EventNicknameTaken })
        return
    } else if !IsNicknameValid(nickname) {
        r.unicast(s, Event { Name: EventInvalidNickname })
        return
    } else if r.reg.isNicknameTaken(nickname) {
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Nickname collision.\n\troom: \"%s\"\n\tid: %d\n\tnickname: \"%s\"",
                    r.name, s.id, nickname)
        }
        r.unicast(s, Event { Name: EventNicknameTaken })
        return
    }

    s.nickname = nickname
    s.state = stateJoined
    r.sup.reset(s)

    if r.logger != nil {
        r.logger.Printf("[INFO] chatrelay/room: User joined.\n\troom: \"%s\"\n\tid: %d\n\tnickname: \"%s\"",
                r.name, s.id, nickname)
    }

    r.broadcast(Event { Name: EventUserJoined, Nickname: nickname })
}

// onMessage relay a chat message from a joined session.
//
// Any message from a joined user counts as activity, even one with
// invalid content, but only valid content gets broadcast.
func (r *room) onMessage(s *session, content string) {
    if s.state != stateJoined {
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Dropping message from a %s connection.\n\troom: \"%s\"\n\tid: %d",
                    s.state, r.name, s.id)
        }
        return
    }

    r.sup.reset(s)

    if !IsMessageValid(content) {
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Dropping invalid message.\n\troom: \"%s\"\n\tid: %d\n\tnickname: \"%s\"",
                    r.name, s.id, s.nickname)
        }
        return
    }

    r.broadcast(Event {
        Name: EventUserSentMessage,
        Nickname: s.nickname,
        Content: content,
    })
}

// onIdleExpired handle a fired idle timer.
//
// This is the only path that classifies a disconnect as timed out.
// The expiry is dropped if the session was already torn down, or if
// its timer was re-armed or cancelled after this expiry fired.
func (r *room) onIdleExpired(s *session, gen uint64) {
    if r.reg.lookup(s.id) != s || s.gen != gen {
        // Stale expiry.
        return
    }

    if r.logger != nil {
        r.logger.Printf("[INFO] chatrelay/room: User timed out.\n\troom: \"%s\"\n\tid: %d\n\tnickname: \"%s\"",
                r.name, s.id, s.nickname)
    }

    s.state = stateTimedOut
    r.unicast(s, Event { Name: EventTimedOut })
    r.broadcast(Event { Name: EventUserTimedOut, Nickname: s.nickname })

    // Force the disconnect; the session's reader will report the
    // closed connection, which then unregisters it.
    s.Close()
}

// onConnClosed tear the session down, exactly once.
//
// A voluntary disconnect of a joined user is announced to everyone.
// A timed-out session is not announced again, as the timeout already
// was, and a connection that never joined has nothing to announce.
func (r *room) onConnClosed(s *session) {
    if r.reg.lookup(s.id) != s {
        // Already torn down.
        return
    }

    r.sup.cancel(s)
    r.reg.unregister(s.id)

    if r.logger != nil {
        r.logger.Printf("[INFO] chatrelay/room: User disconnected.\n\troom: \"%s\"\n\tid: %d\n\tnickname: \"%s\"\n\ttimed out: %v",
                r.name, s.id, s.nickname, s.state == stateTimedOut)
    }

    if s.state != stateTimedOut && len(s.nickname) > 0 {
        r.broadcast(Event { Name: EventUserDisconnected, Nickname: s.nickname })
    }
}

// broadcast deliver an event to every registered connection, the
// originator included.
func (r *room) broadcast(ev Event) {
    for _, s := range r.reg.sessions {
        r.sendTo(s, ev)
    }
}

// unicast deliver an event only to `s`.
func (r *room) unicast(s *session, ev Event) {
    r.sendTo(s, ev)
}

// sendTo deliver an event to a single session.
//
// If the connection fails, it gets closed; its reader then reports the
// closed connection and the usual teardown runs. The session is
// deliberately not removed inline, so teardown only ever happens on
// the one path that guards against running twice.
func (r *room) sendTo(s *session, ev Event) {
    err := s.Send(ev)
    if err == ConnEOF {
        if r.debugLog && r.logger != nil {
            r.logger.Printf("[DEBUG] chatrelay/room: Connection to user was closed.\n\troom: \"%s\"\n\tid: %d",
                    r.name, s.id)
        }
        s.Close()
    } else if err != nil {
        if r.logger != nil {
            r.logger.Printf("[ERROR] chatrelay/room: Couldn't send an event to the user.\n\troom: \"%s\"\n\tid: %d\n\terror: %+v",
                    r.name, s.id, err)
        }
        s.Close()
    }
}

// NewRoomConf create a new chat room from `conf`. Zeroed fields fall
// back to their defaults.
//
// `NewRoomConf()` executes a new goroutine to handle events received
// by the room. To stop this goroutine and clean up its resources, call
// `r.Close()`.
func NewRoomConf(conf RoomConf) Room {
    if len(conf.Name) == 0 {
        conf.Name = defRoomName
    }
    if conf.IdleTimeout <= 0 {
        conf.IdleTimeout = defIdleTimeout
    }
    if conf.QueueSize <= 0 {
        conf.QueueSize = defQueueSize
    }

    r := &room {
        name: conf.Name,
        conf: conf,
        reg: newRegistry(),
        queue: make(chan inbound, conf.QueueSize),
        running: 1,
        stop: make(chan struct{}),
        logger: conf.Logger,
        debugLog: conf.DebugLog,
    }

    r.sup = newIdleSupervisor(conf.IdleTimeout, func(s *session, gen uint64) {
        r.post(inbound { kind: kindIdleExpired, sess: s, gen: gen })
    })

    go r.run()

    return r
}

// NewRoom create a new chat room with the default configurations.
func NewRoom() Room {
    return NewRoomConf(GetDefaultRoomConf())
}
