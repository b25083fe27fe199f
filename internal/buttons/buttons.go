// Package buttons turns GPIO push-buttons exposed through the sysfs interface into named
// button presses.
package buttons

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Handler receives the function name of a pressed button. It runs on the polling goroutine, so
// it should hand the event off quickly.
type Handler func(function string)

// ChannelFailurePolicy decides what happens to exported pins when polling cannot start.
type ChannelFailurePolicy int

const (
	// KeepExported leaves the pins exported until the next Stop. Buttons are dead but the rest of
	// the application keeps running.
	KeepExported ChannelFailurePolicy = iota
	// ReleasePins unexports the pins straight away.
	ReleasePins
)

func (p ChannelFailurePolicy) String() string {
	switch p {
	case KeepExported:
		return "keep"
	case ReleasePins:
		return "release"
	}
	return "N/A"
}

// ParseChannelFailurePolicy is the inverse of String.
func ParseChannelFailurePolicy(s string) (ChannelFailurePolicy, error) {
	switch s {
	case "keep", "":
		return KeepExported, nil
	case "release":
		return ReleasePins, nil
	}
	return KeepExported, fmt.Errorf("unknown channel failure policy %q", s)
}

// Option configures Buttons.
type Option func(*Buttons)

// WithDebounce sets the minimum time between two presses of the same button.
func WithDebounce(d time.Duration) Option {
	return func(b *Buttons) { b.debounce = d }
}

// WithTick sets how often a held button repeats under RepeatWhileHeld.
func WithTick(d time.Duration) Option {
	return func(b *Buttons) { b.tick = d }
}

func WithRepeatPolicy(p RepeatPolicy) Option {
	return func(b *Buttons) { b.policy = p }
}

func WithChannelFailurePolicy(p ChannelFailurePolicy) Option {
	return func(b *Buttons) { b.onChannelFailure = p }
}

// WithDirectionLevel sets the line written to the direction file after "in".
func WithDirectionLevel(level string) Option {
	return func(b *Buttons) { b.level = level }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Buttons) { b.log = l }
}

// Buttons watches the configured pins and calls the handler on every accepted press.
type Buttons struct {
	handler          Handler
	debounce         time.Duration
	tick             time.Duration
	policy           RepeatPolicy
	onChannelFailure ChannelFailurePolicy
	level            string
	log              logrus.FieldLogger
	now              func() time.Time
	newControl       func() (*controlChannel, error)
	newWaiter        func(control *controlChannel, pins *pinTable) waiter

	mu      sync.Mutex
	config  Config
	ctrl    *controller
	pins    *pinTable
	control *controlChannel
	done    chan struct{}
}

// New creates Buttons that report presses to handler. Nothing is touched until a config is
// loaded.
func New(handler Handler, opts ...Option) *Buttons {
	b := &Buttons{
		handler:    handler,
		debounce:   defaultDebounce,
		tick:       defaultTick,
		policy:     RepeatWhileHeld,
		level:      "low",
		log:        logrus.StandardLogger(),
		now:        time.Now,
		newControl: newControlChannel,
		newWaiter: func(control *controlChannel, pins *pinTable) waiter {
			return newPollSet(control.read, pins)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// LoadConfig replaces the button configuration and starts polling it. A running session is
// stopped first.
func (b *Buttons) LoadConfig(r io.Reader) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stop()
	b.config = ParseConfig(r)
	b.log.Infof("Loaded %d buttons from %s", len(b.config.Pins), b.config.BaseDir)
	b.start()
}

// Start activates the configured pins and starts polling them.
func (b *Buttons) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.start()
}

// Stop stops polling and releases the pins. No handler call happens after Stop returns.
func (b *Buttons) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stop()
}

// Close stops polling.
func (b *Buttons) Close() error {
	b.Stop()
	return nil
}

// Config returns the loaded button configuration.
func (b *Buttons) Config() Config {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.config
}

// Running reports whether the pins are being polled.
func (b *Buttons) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.control != nil
}

func (b *Buttons) start() {
	if b.control != nil || b.pins != nil {
		b.log.Debug("Buttons already started")
		return
	}
	if len(b.config.Pins) == 0 {
		b.log.Debug("No buttons configured")
		return
	}

	b.ctrl = &controller{baseDir: b.config.BaseDir, level: b.level, log: b.log}
	b.pins = b.ctrl.activate(b.config.Pins)

	control, err := b.newControl()
	if err != nil {
		b.log.Errorf("Unable to start button polling: %v", err)
		if b.onChannelFailure == ReleasePins {
			b.release()
		}
		return
	}
	b.control = control

	e := &engine{
		pins:     b.pins,
		waiter:   b.newWaiter(control, b.pins),
		handler:  b.handler,
		debounce: b.debounce,
		tick:     b.tick,
		policy:   b.policy,
		now:      b.now,
		log:      b.log,
	}
	done := make(chan struct{})
	b.done = done
	go func() {
		defer close(done)
		e.run()
	}()
}

func (b *Buttons) stop() {
	if b.control == nil {
		// a degraded start can leave pins behind without a poller
		b.release()
		return
	}

	if err := b.control.signalStop(); err != nil {
		b.log.Warnf("Unable to signal button polling: %v", err)
	}
	<-b.done

	if err := b.control.Close(); err != nil {
		b.log.Debugf("Closing control channel: %v", err)
	}
	b.control = nil
	b.done = nil
	b.release()
}

func (b *Buttons) release() {
	if b.pins == nil {
		return
	}
	b.ctrl.deactivate(b.pins)
	b.pins = nil
}
