// Package kiosk ties the menu, the display and the input sources together.
package kiosk

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/callebjorkell/rpi-menu/internal/menu"
)

// Display shows the menu and can be powered down while a program runs.
type Display interface {
	Start() error
	Stop()
	Render(lines []string)
}

// Input is a source of actions that must be paused while a program owns the terminal.
type Input interface {
	Start()
	Stop()
}

type Kiosk struct {
	menu     *menu.Menu
	display  Display
	runner   menu.Runner
	shutdown []string
	inputs   []Input
	actions  chan Action
	tasks    chan func()
}

func New(m *menu.Menu, display Display, runner menu.Runner, shutdown []string) *Kiosk {
	return &Kiosk{
		menu:     m,
		display:  display,
		runner:   runner,
		shutdown: shutdown,
		actions:  make(chan Action, 10),
		tasks:    make(chan func(), 10),
	}
}

// AddInput registers an input to be paused around launched programs.
func (k *Kiosk) AddInput(i Input) {
	k.inputs = append(k.inputs, i)
}

// Push queues an action. It never blocks; if the queue is full the action is dropped.
func (k *Kiosk) Push(a Action) {
	select {
	case k.actions <- a:
	default:
		log.Debugf("Action queue full, dropping %v", a)
	}
}

// Do queues f to run on the kiosk loop between two actions. While a program is running f waits
// until the inputs have been resumed. It never blocks; if the queue is full f is dropped.
func (k *Kiosk) Do(f func()) {
	select {
	case k.tasks <- f:
	default:
		log.Warn("Task queue full, dropping task")
	}
}

// HandleButton queues the action for a button function. Unknown functions are ignored.
func (k *Kiosk) HandleButton(function string) {
	a, ok := ActionFor(function)
	if !ok {
		log.Debugf("No action for button %q", function)
		return
	}
	k.Push(a)
}

// Run processes actions until quit, shutdown or ctx is done.
func (k *Kiosk) Run(ctx context.Context) error {
	k.display.Render(k.menu.Lines())

	for {
		select {
		case <-ctx.Done():
			return nil
		case f := <-k.tasks:
			f()
		case a := <-k.actions:
			log.Debugf("Action: %v", a)
			switch a {
			case Up:
				k.menu.Up()
			case Down:
				k.menu.Down()
			case Select:
				k.launch(ctx)
			case Shutdown:
				k.powerOff(ctx)
				return nil
			case Quit:
				log.Info("Quitting")
				return nil
			}
			k.display.Render(k.menu.Lines())
		}
	}
}

func (k *Kiosk) launch(ctx context.Context) {
	e, ok := k.menu.Focused()
	if !ok {
		return
	}

	k.suspend()
	defer k.resume()

	if err := k.runner.Run(ctx, e.Command); err != nil {
		log.Warnf("Unable to run %s: %v", e.Title, err)
	}
}

func (k *Kiosk) powerOff(ctx context.Context) {
	k.suspend()
	log.Info("Shutting down")
	if err := k.runner.Run(ctx, k.shutdown); err != nil {
		log.Errorf("Shutdown failed: %v", err)
	}
}

func (k *Kiosk) suspend() {
	for _, i := range k.inputs {
		i.Stop()
	}
	k.display.Stop()
}

func (k *Kiosk) resume() {
	if err := k.display.Start(); err != nil {
		log.Warnf("Unable to restart display: %v", err)
	}
	for i := len(k.inputs) - 1; i >= 0; i-- {
		k.inputs[i].Start()
	}
}
