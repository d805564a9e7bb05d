package chatrelay

import (
    "testing"
)

// newTestSession create a bare session for registry tests, without a
// room or a running reader.
func newTestSession(id uint64, nickname string, state sessionState) *session {
    return &session {
        id: id,
        nickname: nickname,
        state: state,
    }
}

// TestRegistryRegister check the registration invariants: ids are
// unique and a duplicate never overwrites a live session.
func TestRegistryRegister(t *testing.T) {
    reg := newRegistry()

    first := newTestSession(1, "", stateUnjoined)
    err := reg.register(first)
    if err != nil {
        t.Fatalf("Couldn't register a fresh session: %+v", err)
    }

    dup := newTestSession(1, "", stateUnjoined)
    err = reg.register(dup)
    if err == nil {
        t.Error("Successfully registered a duplicated connection id")
    } else if got, ok := err.(ChatError); !ok {
        t.Errorf("Invalid error! Expected a 'ChatError' but got '%+v'", err)
    } else if want := DuplicateConn; want != got {
        t.Errorf("Invalid error! Expected '%+v' but got '%+v'", want, got)
    }

    if got := reg.lookup(1); got != first {
        t.Error("The duplicate registration corrupted the registry")
    }
}

// TestRegistryLookup check that looking up an unknown connection is a
// well-defined no-op for the caller.
func TestRegistryLookup(t *testing.T) {
    reg := newRegistry()

    if got := reg.lookup(42); got != nil {
        t.Errorf("Found a session that was never registered: %+v", got)
    }

    s := newTestSession(42, "", stateUnjoined)
    reg.register(s)
    if got := reg.lookup(42); got != s {
        t.Errorf("Couldn't find the registered session: got %+v", got)
    }

    reg.unregister(42)
    if got := reg.lookup(42); got != nil {
        t.Errorf("Found a session after it was unregistered: %+v", got)
    }

    // Unregistering again is harmless.
    reg.unregister(42)
}

// TestRegistryNicknameTaken check which sessions hold their nickname:
// joined ones do, timed out ones still do until unregistered, and
// unjoined ones never do.
func TestRegistryNicknameTaken(t *testing.T) {
    reg := newRegistry()

    reg.register(newTestSession(1, "andris", stateJoined))
    reg.register(newTestSession(2, "bea", stateTimedOut))
    reg.register(newTestSession(3, "", stateUnjoined))

    if !reg.isNicknameTaken("andris") {
        t.Error("A joined user's nickname wasn't reported as taken")
    }
    if !reg.isNicknameTaken("bea") {
        t.Error("A timed out user's nickname wasn't reported as taken")
    }
    if reg.isNicknameTaken("") {
        t.Error("An unjoined session reported its empty nickname as taken")
    }
    if reg.isNicknameTaken("carol") {
        t.Error("An unregistered nickname was reported as taken")
    }

    // The comparison is exact and case sensitive.
    if reg.isNicknameTaken("Andris") {
        t.Error("The nickname comparison isn't case sensitive")
    }

    reg.unregister(2)
    if reg.isNicknameTaken("bea") {
        t.Error("An unregistered user's nickname was still reported as taken")
    }
}

// TestRegistryUsers check that only joined sessions are listed.
func TestRegistryUsers(t *testing.T) {
    reg := newRegistry()

    reg.register(newTestSession(1, "andris", stateJoined))
    reg.register(newTestSession(2, "", stateUnjoined))

    users := reg.users(nil)
    if want, got := 1, len(users); want != got {
        t.Fatalf("Invalid number of users: expected '%d' but got '%d'", want, got)
    } else if want, got := "andris", users[0]; want != got {
        t.Errorf("Invalid user listed: expected '%s' but got '%s'", want, got)
    }
}
