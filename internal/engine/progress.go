package engine

import (
	"time"

	"k8s.io/utils/clock"
)

// throttle lets an event through at most once per interval of wall time.
type throttle struct {
	clock    clock.PassiveClock
	interval time.Duration
	last     time.Time
	fired    bool
}

func (t *throttle) ready() bool {
	now := t.clock.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	t.fired = true
	return true
}

func (t *throttle) reset() {
	t.fired = false
}
