//go:build !pi

package lcd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Rows is the number of menu entries the console shows.
const Rows = 8

// Screen prints the menu to a terminal.
type Screen struct {
	mu  sync.Mutex
	out io.Writer
	on  bool
}

// NewScreen ignores the pins, the console has none.
func NewScreen(Pins) (*Screen, error) {
	return &Screen{out: os.Stdout}, nil
}

func (s *Screen) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.on = true
	fmt.Fprintln(s.out, "Starting the display")
	return nil
}

func (s *Screen) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.on = false
	fmt.Fprintln(s.out, "Stopping the display")
}

// Render prints the lines between two rules. Nothing is printed while the display is stopped.
func (s *Screen) Render(text []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.on {
		return
	}
	rule := strings.Repeat("-", lineWidth)
	fmt.Fprintln(s.out, rule)
	for _, l := range text {
		fmt.Fprintln(s.out, l)
	}
	fmt.Fprintln(s.out, rule)
}
