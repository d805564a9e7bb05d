package chatrelay

import (
    "encoding/json"
)

// Event names exchanged over a `Conn`.
const (
    // Client emitted events.
    EventJoin        = "join"
    EventSendMessage = "send-message"

    // Server emitted events.
    EventUserJoined        = "user-joined"
    EventUserSentMessage   = "user-sent-message"
    EventUserTimedOut      = "user-timed-out"
    EventUserDisconnected  = "user-disconnected"
    EventNicknameTaken     = "nickname-already-registered"
    EventInvalidNickname   = "invalid-nickname"
    EventTimedOut          = "timed-out"
)

// Event is a single named event, alongside its payload. Fields that do
// not apply to a given event are left empty and omitted on the wire.
type Event struct {
    // Name of the event, e.g. "join" or "user-sent-message".
    Name string `json:"event"`

    // Nickname of the user this event refers to, if any.
    Nickname string `json:"nickname,omitempty"`

    // Content of the chat message, if any.
    Content string `json:"content,omitempty"`
}

// Encode the event into its wire representation.
func (ev Event) Encode() ([]byte, error) {
    return json.Marshal(ev)
}

// DecodeEvent parse `data` as a wire event.
//
// Decoding is deliberately lenient about the payload: a "nickname" or
// "content" whose JSON value isn't a string decodes as the empty
// string, so it gets rejected by the usual validation instead of
// tearing the connection down. Only a frame that isn't a JSON object,
// or that carries no event name at all, fails to decode.
func DecodeEvent(data []byte) (Event, error) {
    var raw struct {
        Name     string          `json:"event"`
        Nickname json.RawMessage `json:"nickname"`
        Content  json.RawMessage `json:"content"`
    }

    err := json.Unmarshal(data, &raw)
    if err != nil {
        return Event{}, err
    } else if len(raw.Name) == 0 {
        return Event{}, InvalidEvent
    }

    return Event {
        Name: raw.Name,
        Nickname: asText(raw.Nickname),
        Content: asText(raw.Content),
    }, nil
}

// asText convert a raw JSON value into a string, or into the empty
// string if the value is anything but a JSON string.
func asText(raw json.RawMessage) string {
    var s string

    if len(raw) == 0 {
        return ""
    }

    err := json.Unmarshal(raw, &s)
    if err != nil {
        return ""
    }
    return s
}

// IsNicknameValid check whether `nickname` may be registered on a room.
func IsNicknameValid(nickname string) bool {
    return len(nickname) > 0
}

// IsMessageValid check whether `content` may be broadcast as a chat
// message.
func IsMessageValid(content string) bool {
    return len(content) > 0
}
