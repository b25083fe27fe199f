package buttons

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// RepeatPolicy decides what happens while a button is held down.
type RepeatPolicy int

const (
	// RepeatWhileHeld wakes every tick and fires the last button again for as long as its pin
	// reads high.
	RepeatWhileHeld RepeatPolicy = iota
	// FireOnce blocks until the next edge and only ever fires on a fresh edge.
	FireOnce
)

func (p RepeatPolicy) String() string {
	switch p {
	case RepeatWhileHeld:
		return "hold"
	case FireOnce:
		return "once"
	}
	return "N/A"
}

// ParseRepeatPolicy is the inverse of String.
func ParseRepeatPolicy(s string) (RepeatPolicy, error) {
	switch s {
	case "hold", "":
		return RepeatWhileHeld, nil
	case "once":
		return FireOnce, nil
	}
	return RepeatWhileHeld, fmt.Errorf("unknown repeat policy %q", s)
}

const (
	defaultDebounce = 500 * time.Millisecond
	defaultTick     = 500 * time.Millisecond
	errorBackoff    = 100 * time.Millisecond
)

// engine is the poll loop for one session. It borrows the pin table and the waiter from the
// facade and owns the debounce state.
type engine struct {
	pins     *pinTable
	waiter   waiter
	handler  Handler
	debounce time.Duration
	tick     time.Duration
	policy   RepeatPolicy
	now      func() time.Time
	log      logrus.FieldLogger

	lastAt       time.Time
	lastIdx      int
	lastFunction string
}

func (e *engine) timeout() time.Duration {
	if e.policy == FireOnce {
		return 0
	}
	return e.tick
}

// run polls until the control channel is signalled.
func (e *engine) run() {
	e.lastIdx = -1
	fired := make([]bool, e.pins.len())

	e.log.Debugf("Polling %d pins (%v)", e.pins.len(), e.policy)
	for {
		stop, err := e.waiter.wait(e.timeout(), fired)
		if err != nil {
			e.log.Warnf("Waiting for buttons failed: %v", err)
			time.Sleep(errorBackoff)
			continue
		}
		if stop {
			e.log.Debug("Button polling stopped")
			return
		}

		idx := firstFired(fired)
		if idx >= 0 {
			e.press(idx)
			continue
		}

		if e.policy == RepeatWhileHeld && e.lastIdx >= 0 {
			e.repeat()
		}
	}
}

func (e *engine) press(idx int) {
	now := e.now()

	// the value has to be read back or the pin never raises another edge
	if _, err := readValue(e.pins.handles[idx]); err != nil {
		e.log.Debugf("Reading pin %s: %v", e.pins.ids[idx], err)
	}

	if now.Sub(e.lastAt) <= e.debounce && idx == e.lastIdx {
		return
	}

	function := e.pins.functions[idx]
	e.log.Debugf("Button %s pressed", function)
	e.lastAt = now
	e.lastIdx = idx
	e.lastFunction = function
	e.handler(function)
}

func (e *engine) repeat() {
	v, err := readValue(e.pins.handles[e.lastIdx])
	if err != nil {
		e.log.Debugf("Reading pin %s: %v", e.pins.ids[e.lastIdx], err)
		return
	}
	if v == '1' {
		e.handler(e.lastFunction)
	}
}

func firstFired(fired []bool) int {
	for i, f := range fired {
		if f {
			return i
		}
	}
	return -1
}

// readValue rewinds a value file and reads its first byte.
func readValue(h Handle) (byte, error) {
	if _, err := h.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	buf := make([]byte, 1)
	if _, err := io.ReadFull(h, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}
