package chatrelay

import (
    "log"
    "time"
)

// For how long a connection may stay idle before being disconnected.
const defIdleTimeout = time.Minute

// How many inbound events may be queued before posting blocks.
const defQueueSize = 8

// Name used by a room when none was configured.
const defRoomName = "lobby"

// RoomConf configure a chat room.
type RoomConf struct {
    // Name of the room, used only for logging.
    Name string

    // IdleTimeout after which a connection without any join or message
    // activity is forcibly disconnected. This is fixed for the
    // lifetime of the room.
    IdleTimeout time.Duration

    // QueueSize of the room's inbound event queue.
    QueueSize int

    // Logger used by the room to report events. If this is nil, no
    // message shall be logged!
    Logger *log.Logger

    // Whether debug messages should be logged.
    DebugLog bool
}

// GetDefaultRoomConf retrieve the default configurations for a room.
func GetDefaultRoomConf() RoomConf {
    return RoomConf {
        Name: defRoomName,
        IdleTimeout: defIdleTimeout,
        QueueSize: defQueueSize,
        Logger: nil,
        DebugLog: false,
    }
}
