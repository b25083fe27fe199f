package lcd

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
)

type Line byte

func (l Line) String() string {
	switch l {
	case Line1:
		return "L1"
	case Line2:
		return "L2"
	}
	return "N/A"
}

// Pins names the GPIO lines the display is wired to, using periph pin names.
type Pins struct {
	RegisterSelection string
	ClockEdge         string
	// Data is D4 to D7.
	Data [4]string
}

// DefaultPins leaves GPIO17, GPIO22 and GPIO27 free for buttons.
var DefaultPins = Pins{
	RegisterSelection: "GPIO7",
	ClockEdge:         "GPIO8",
	Data:              [4]string{"GPIO25", "GPIO24", "GPIO23", "GPIO18"},
}

// Numbers returns the pin numbers in the form the sysfs interface uses.
func (p Pins) Numbers() []string {
	names := append([]string{p.RegisterSelection, p.ClockEdge}, p.Data[:]...)
	numbers := make([]string, 0, len(names))
	for _, n := range names {
		numbers = append(numbers, strings.TrimPrefix(n, "GPIO"))
	}
	return numbers
}

const (
	Line1 Line = 0x80
	Line2 Line = 0xC0

	lineWidth   = 16
	character   = gpio.High
	command     = gpio.Low
	signalPulse = 500000 * time.Nanosecond
	signalDelay = 500000 * time.Nanosecond

	displayOff = 0x08
)

var lines = []Line{Line1, Line2}

// fit pads or cuts msg to exactly one display line of runes.
func fit(msg string) string {
	r := []rune(msg)
	if len(r) > lineWidth {
		r = r[:lineWidth]
	}
	return fmt.Sprintf("%-*s", lineWidth, string(r))
}
