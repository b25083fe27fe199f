package kiosk

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var keys = map[string]Action{
	"u": Up,
	"k": Up,
	"d": Down,
	"j": Down,
	"":  Select,
	"s": Shutdown,
	"q": Quit,
}

// pollInterval bounds how long a stopped keyboard can keep waiting on its input.
const pollInterval = 100 * time.Millisecond

// Terminal is the input a Keyboard reads from, normally os.Stdin.
type Terminal interface {
	io.Reader
	Fd() uintptr
}

// Keyboard reads one command per line. While stopped it does not read at all, so whatever is
// typed stays in the terminal for the program that owns it.
type Keyboard struct {
	in   Terminal
	push func(Action)

	mu      sync.Mutex
	running chan struct{} // closed while started
}

func NewKeyboard(in Terminal, push func(Action)) *Keyboard {
	running := make(chan struct{})
	close(running)
	return &Keyboard{in: in, push: push, running: running}
}

// Listen reads until the input is exhausted.
func (k *Keyboard) Listen() {
	fds := []unix.PollFd{{Fd: int32(k.in.Fd()), Events: unix.POLLIN}}
	buf := make([]byte, 256)
	var pending []byte

	for {
		<-k.started()

		n, err := unix.Poll(fds, int(pollInterval/time.Millisecond))
		if err == unix.EINTR || (err == nil && n == 0) {
			continue
		}
		if err != nil {
			log.Warnf("Keyboard input stopped: %v", err)
			return
		}
		if k.stopped() {
			continue
		}

		n, err = k.in.Read(buf)
		pending = k.dispatch(append(pending, buf[:n]...))
		if err != nil {
			if len(pending) > 0 {
				k.handle(string(pending))
			}
			if !errors.Is(err, io.EOF) {
				log.Warnf("Keyboard input stopped: %v", err)
			}
			return
		}
	}
}

// dispatch handles every complete line in b and returns the unfinished rest.
func (k *Keyboard) dispatch(b []byte) []byte {
	for {
		line, rest, found := bytes.Cut(b, []byte("\n"))
		if !found {
			return b
		}
		k.handle(string(line))
		b = rest
	}
}

func (k *Keyboard) handle(line string) {
	a, ok := keys[strings.ToLower(strings.TrimSpace(line))]
	if !ok {
		log.Debugf("Unknown key %q", line)
		return
	}
	k.push(a)
}

func (k *Keyboard) started() chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.running
}

func (k *Keyboard) stopped() bool {
	select {
	case <-k.started():
		return false
	default:
		return true
	}
}

func (k *Keyboard) Start() {
	k.mu.Lock()
	defer k.mu.Unlock()

	select {
	case <-k.running:
	default:
		close(k.running)
	}
}

func (k *Keyboard) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()

	select {
	case <-k.running:
		k.running = make(chan struct{})
	default:
	}
}
