package chatrelay

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
    tests := []struct {
        name string
        data string
        want Event
        ok   bool
    }{
        {
            name: "join",
            data: `{"event":"join","nickname":"andris"}`,
            want: Event { Name: EventJoin, Nickname: "andris" },
            ok: true,
        },
        {
            name: "message",
            data: `{"event":"send-message","content":"hello"}`,
            want: Event { Name: EventSendMessage, Content: "hello" },
            ok: true,
        },
        {
            name: "numeric nickname decodes as empty",
            data: `{"event":"join","nickname":1}`,
            want: Event { Name: EventJoin },
            ok: true,
        },
        {
            name: "boolean content decodes as empty",
            data: `{"event":"send-message","content":true}`,
            want: Event { Name: EventSendMessage },
            ok: true,
        },
        {
            name: "null payload decodes as empty",
            data: `{"event":"join","nickname":null}`,
            want: Event { Name: EventJoin },
            ok: true,
        },
        {
            name: "unknown extra fields are ignored",
            data: `{"event":"join","nickname":"andris","room":"lobby"}`,
            want: Event { Name: EventJoin, Nickname: "andris" },
            ok: true,
        },
        {
            name: "missing event name",
            data: `{"nickname":"andris"}`,
            ok: false,
        },
        {
            name: "not a JSON object",
            data: `hello there`,
            ok: false,
        },
    }

    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            got, err := DecodeEvent([]byte(tc.data))
            if !tc.ok {
                require.Error(t, err)
                return
            }

            require.NoError(t, err)
            require.Equal(t, tc.want, got)
        })
    }
}

func TestEncodeEvent(t *testing.T) {
    data, err := Event { Name: EventUserJoined, Nickname: "andris" }.Encode()
    require.NoError(t, err)
    require.JSONEq(t, `{"event":"user-joined","nickname":"andris"}`, string(data))

    // Empty payload fields stay off the wire.
    data, err = Event { Name: EventTimedOut }.Encode()
    require.NoError(t, err)
    require.JSONEq(t, `{"event":"timed-out"}`, string(data))

    // Encoded events decode back to themselves.
    ev := Event {
        Name: EventUserSentMessage,
        Nickname: "andris",
        Content: "hello",
    }
    data, err = ev.Encode()
    require.NoError(t, err)

    got, err := DecodeEvent(data)
    require.NoError(t, err)
    require.Equal(t, ev, got)
}

func TestIsNicknameValid(t *testing.T) {
    require.False(t, IsNicknameValid(""),
        "should return false when called with an empty nickname")
    require.True(t, IsNicknameValid("test nickname"),
        "should return true when called with a valid nickname")
}

func TestIsMessageValid(t *testing.T) {
    require.False(t, IsMessageValid(""),
        "should return false when called with an empty message")
    require.True(t, IsMessageValid("test message"),
        "should return true when called with a valid message")
}
