//go:build pi

package lcd

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Rows is the number of menu entries the display can show.
const Rows = 2

func init() {
	if _, err := host.Init(); err != nil {
		logrus.Fatalln("Unable to initialize periph:", err)
	}
}

// Screen drives a 16x2 HD44780 character display in 4-bit mode.
type Screen struct {
	mu                sync.Mutex
	registerSelection gpio.PinIO
	clockEdge         gpio.PinIO
	dataPins          [4]gpio.PinIO
}

func NewScreen(p Pins) (*Screen, error) {
	s := &Screen{}
	var err error
	if s.registerSelection, err = pinByName(p.RegisterSelection); err != nil {
		return nil, err
	}
	if s.clockEdge, err = pinByName(p.ClockEdge); err != nil {
		return nil, err
	}
	for i, name := range p.Data {
		if s.dataPins[i], err = pinByName(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func pinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no such pin %q", name)
	}
	return p, nil
}

// Start initializes the display and switches it on.
func (s *Screen) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Infoln("Initializing LCD")
	s.sendByte(0x33, command)
	s.sendByte(0x32, command)
	s.sendByte(0x28, command)
	s.sendByte(0x0C, command)
	s.sendByte(0x06, command)
	s.sendByte(0x01, command)
	return nil
}

// Stop switches the display off.
func (s *Screen) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	logrus.Debug("Switching LCD off")
	s.sendByte(displayOff, command)
}

// Render shows the first two lines and clears the rest of the display.
func (s *Screen) Render(text []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range lines {
		msg := ""
		if i < len(text) {
			msg = text[i]
		}
		s.println(l, msg)
	}
}

func (s *Screen) println(l Line, msg string) {
	s.sendByte(byte(l), command)
	for _, r := range fit(msg) {
		// the character ROM only matches ASCII
		if r > 0x7E {
			r = '?'
		}
		s.sendByte(byte(r), character)
	}
}

func (s *Screen) sendByte(bits byte, mode gpio.Level) {
	s.registerSelection.Out(mode)
	s.pulseByte(bits, 0x10)
	s.pulseByte(bits, 0x01)
}

func (s *Screen) pulseByte(bits, mask byte) {
	for i, pin := range s.dataPins {
		pin.Out(gpio.Low)
		if bits&(mask<<uint(i)) != 0 {
			pin.Out(gpio.High)
		}
	}
	time.Sleep(signalDelay)
	s.clockEdge.Out(gpio.High)
	time.Sleep(signalPulse)
	s.clockEdge.Out(gpio.Low)
	time.Sleep(signalDelay)
}
