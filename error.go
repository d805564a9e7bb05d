package chatrelay

// Error type for this package.
type ChatError uint

const (
    // The requested nickname is already registered by a connected user.
    NicknameTaken ChatError = iota
    // The supplied nickname is empty or otherwise not a valid nickname.
    InvalidNickname
    // The message content is empty or otherwise not a valid message.
    InvalidMessage
    // The frame doesn't decode into a named event.
    InvalidEvent
    // A connection with the same identifier is already registered. The
    // room assigns identifiers itself, so this indicates a broken
    // invariant rather than a recoverable condition.
    DuplicateConn
    // The room has already been closed and won't accept new connections.
    RoomClosed
    // The remote endpoint closed the connection.
    ConnEOF
    // A test waited too long for an event from the server.
    TestTimeout
)

func (c ChatError) Error() string {
    switch c {
    case NicknameTaken:
        return "Nickname already registered"
    case InvalidNickname:
        return "Invalid nickname"
    case InvalidMessage:
        return "Invalid message"
    case InvalidEvent:
        return "Malformed event frame"
    case DuplicateConn:
        return "Connection already registered"
    case RoomClosed:
        return "Room already closed"
    case ConnEOF:
        return "Connection closed by the remote endpoint"
    case TestTimeout:
        return "Timed out waiting for an event"
    default:
        return "Unknown error"
    }
}
