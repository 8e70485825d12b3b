package session

import "time"

// DefaultIdleTimeout is how long a session may sit without input before the
// controller forces a logout.
const DefaultIdleTimeout = 10 * time.Minute

// IdleTimer tracks the inactivity deadline. It holds no goroutine or
// channel; the caller supplies the current time, which keeps expiry
// deterministic under test. The UI arms a tick loop only while a token is
// present and stops rescheduling it on logout, so nothing fires afterwards.
type IdleTimer struct {
	timeout  time.Duration
	deadline time.Time
}

// NewIdleTimer starts the countdown from now.
func NewIdleTimer(now time.Time, timeout time.Duration) *IdleTimer {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}
	return &IdleTimer{timeout: timeout, deadline: now.Add(timeout)}
}

// Touch restarts the countdown; called for every user input event.
func (t *IdleTimer) Touch(now time.Time) {
	t.deadline = now.Add(t.timeout)
}

// Expired reports whether the timeout elapsed with no Touch.
func (t *IdleTimer) Expired(now time.Time) bool {
	return !now.Before(t.deadline)
}

// Remaining returns the time left before expiry, never negative.
func (t *IdleTimer) Remaining(now time.Time) time.Duration {
	if r := t.deadline.Sub(now); r > 0 {
		return r
	}
	return 0
}
