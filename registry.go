package chatrelay

// registry own every live session on a room, keyed by connection id.
//
// The registry is only ever accessed from the room's goroutine, which
// serializes every state transition, so it needs no locking. It holds
// the only two uniqueness invariants of the relay: at most one session
// per connection id, and at most one session per registered nickname.
type registry struct {
    // Every live session, keyed by its connection id.
    sessions map[uint64]*session
}

// register insert a fresh, unjoined session.
//
// This only fails if the session's id is already present, which the
// room's id assignment rules out. The check stays regardless, as a
// duplicate must not overwrite a live session.
func (reg *registry) register(s *session) error {
    if _, ok := reg.sessions[s.id]; ok {
        return DuplicateConn
    }

    reg.sessions[s.id] = s
    return nil
}

// lookup the session for a connection id. Return nil if there's no
// such session, e.g. for an event that arrived after teardown; callers
// must treat that as a no-op.
func (reg *registry) lookup(id uint64) *session {
    return reg.sessions[id]
}

// isNicknameTaken check whether any current session already registered
// `nickname`. The comparison is exact and case sensitive.
//
// A timed-out session still pending its disconnect counts as holding
// its nickname.
func (reg *registry) isNicknameTaken(nickname string) bool {
    for _, s := range reg.sessions {
        if s.state != stateUnjoined && s.nickname == nickname {
            return true
        }
    }

    return false
}

// unregister remove the session for a connection id, if any.
func (reg *registry) unregister(id uint64) {
    delete(reg.sessions, id)
}

// users append the nickname of every joined session to `list` and
// return it. Unjoined connections are skipped.
func (reg *registry) users(list []string) []string {
    for _, s := range reg.sessions {
        if s.state == stateJoined {
            list = append(list, s.nickname)
        }
    }

    return list
}

// newRegistry create an empty registry.
func newRegistry() *registry {
    return &registry {
        sessions: make(map[uint64]*session),
    }
}
