package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/callebjorkell/rpi-menu/internal/buttons"
	"github.com/callebjorkell/rpi-menu/internal/kiosk"
	"github.com/callebjorkell/rpi-menu/internal/lcd"
	"github.com/callebjorkell/rpi-menu/internal/menu"
)

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s\x1b[0m\n", levelColor, entry.Message)), nil
}

func main() {
	log.SetFormatter(&colorFormatter{})

	if err := RootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadMenu(path string, rows int) *menu.Menu {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("Unable to read menu: %v", err)
		return menu.Load(strings.NewReader(""), rows)
	}
	defer f.Close()

	m := menu.Load(f, rows)
	log.Infof("Loaded %d menu entries from %s", m.Len(), path)
	return m
}

func loadButtons(b *buttons.Buttons, path string, display lcd.Pins) {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("Buttons disabled: %v", err)
		return
	}
	defer f.Close()

	b.LoadConfig(f)
	for _, p := range sharedPins(display, b.Config().Pins) {
		log.Warnf("Button %s uses GPIO%s, which is wired to the display", p.Function, p.ID)
	}
}

func startMenu(ctx context.Context, conf *Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	screen, err := lcd.NewScreen(conf.displayPins())
	if err != nil {
		return fmt.Errorf("set up display: %w", err)
	}
	if err := screen.Start(); err != nil {
		return fmt.Errorf("start display: %w", err)
	}
	defer screen.Stop()

	k := kiosk.New(loadMenu(conf.MenuFile, conf.Rows), screen, menu.ExecRunner{}, conf.ShutdownCommand)

	b := buttons.New(k.HandleButton, conf.buttonOptions()...)
	defer b.Close()
	loadButtons(b, conf.ButtonFile, conf.displayPins())

	go reloadOnHangup(ctx, k, func() {
		log.Infof("Reloading buttons from %s", conf.ButtonFile)
		loadButtons(b, conf.ButtonFile, conf.displayPins())
	})

	keyboard := kiosk.NewKeyboard(os.Stdin, k.Push)
	go keyboard.Listen()

	k.AddInput(b)
	k.AddInput(keyboard)

	err = k.Run(ctx)
	screen.Render([]string{"  Good bye..."})
	log.Info("Done...")
	return err
}

// reloadOnHangup queues reload on the kiosk loop every time the process receives SIGHUP.
func reloadOnHangup(ctx context.Context, k *kiosk.Kiosk, reload func()) {
	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)
	defer signal.Stop(hupChan)

	for {
		select {
		case <-hupChan:
			k.Do(reload)
		case <-ctx.Done():
			return
		}
	}
}
