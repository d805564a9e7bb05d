package chatrelay

import (
    "time"
)

// idleSupervisor arm, reset and cancel the per-session idle timers.
//
// Each session owns at most one outstanding timer. The timer doesn't
// act on the session directly when it fires: it reports the expiry
// through `expired`, which the room turns into an event on its queue,
// so the expiry is handled on the same goroutine as everything else.
//
// Because a `time.Timer` that already fired cannot be un-fired, a
// reset or cancellation may race a callback that is just about to
// report. The session's generation counter fences that: every arm and
// cancel bumps it, the callback captures the value it was armed with,
// and the room drops any expiry whose generation is no longer current.
type idleSupervisor struct {
    // For how long a session may stay idle before being expired.
    timeout time.Duration

    // expired report that a session's timer fired, with the generation
    // the timer was armed with.
    expired func(s *session, gen uint64)
}

// arm schedule a one-shot expiry for the session, `timeout` from now.
//
// The session must not have an outstanding timer; use `reset` on any
// activity after the first arm.
func (sup *idleSupervisor) arm(s *session) {
    s.gen++

    gen := s.gen
    s.timer = time.AfterFunc(sup.timeout, func() {
        sup.expired(s, gen)
    })
}

// reset cancel the session's outstanding timer, if any, and re-arm it
// with a fresh deadline. Called on every inbound join and message.
func (sup *idleSupervisor) reset(s *session) {
    if s.timer != nil {
        s.timer.Stop()
    }

    sup.arm(s)
}

// cancel the session's outstanding timer on teardown, so no expiry can
// fire against a session that is no longer registered.
func (sup *idleSupervisor) cancel(s *session) {
    if s.timer != nil {
        s.timer.Stop()
        s.timer = nil
    }

    // Invalidate a callback that may have fired concurrently with the
    // Stop() above.
    s.gen++
}

// newIdleSupervisor create a supervisor expiring sessions after
// `timeout`, reporting expiries to `expired`.
func newIdleSupervisor(timeout time.Duration,
        expired func(s *session, gen uint64)) *idleSupervisor {

    return &idleSupervisor {
        timeout: timeout,
        expired: expired,
    }
}
