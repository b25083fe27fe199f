package buttons

import (
	"bufio"
	"io"
	"strings"
)

// PinConfig maps one hardware pin to the logical function it triggers.
type PinConfig struct {
	ID       string
	Function string
}

// Config is a parsed button file.
type Config struct {
	BaseDir string
	Pins    []PinConfig
}

// ParseConfig reads a button file. The first line is the GPIO base directory, every following
// line is "function=pin". Malformed lines and lines without a pin are dropped. A pin that shows
// up twice keeps its first position but takes the function from its last line.
func ParseConfig(r io.Reader) Config {
	c := Config{}
	index := make(map[string]int)

	s := bufio.NewScanner(r)
	first := true
	for s.Scan() {
		line := strings.TrimRight(s.Text(), "\r")
		if first {
			c.BaseDir = strings.TrimSpace(line)
			first = false
			continue
		}

		function, pin, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		pin = strings.TrimSpace(pin)
		if pin == "" {
			continue
		}

		if i, seen := index[pin]; seen {
			c.Pins[i].Function = function
			continue
		}
		index[pin] = len(c.Pins)
		c.Pins = append(c.Pins, PinConfig{ID: pin, Function: function})
	}

	return c
}
