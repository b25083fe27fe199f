package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/callebjorkell/rpi-menu/internal/buttons"
	"github.com/callebjorkell/rpi-menu/internal/lcd"
)

const (
	defaultConfigFile = "/etc/rpi-menu/config.yaml"
	defaultMenuFile   = "/etc/rpi-menu/menu.txt"
	defaultButtonFile = "/etc/rpi-menu/buttons.txt"
	defaultDebounce   = 500 * time.Millisecond
	defaultTick       = 500 * time.Millisecond
	defaultLevel      = "low"
)

type Config struct {
	MenuFile        string   `yaml:"menuFile"`
	ButtonFile      string   `yaml:"buttonFile"`
	ShutdownCommand []string `yaml:"shutdownCommand"`
	Rows            int      `yaml:"rows"`
	Buttons         struct {
		Debounce         time.Duration `yaml:"debounce"`
		Tick             time.Duration `yaml:"tick"`
		Repeat           string        `yaml:"repeat"`
		OnChannelFailure string        `yaml:"onChannelFailure"`
		DirectionLevel   *string       `yaml:"directionLevel"`
	} `yaml:"buttons"`
	Display struct {
		RegisterSelection string   `yaml:"registerSelection"`
		ClockEdge         string   `yaml:"clockEdge"`
		Data              []string `yaml:"data"`
	} `yaml:"display"`
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.MenuFile == "" {
		c.MenuFile = defaultMenuFile
	}
	if c.ButtonFile == "" {
		c.ButtonFile = defaultButtonFile
	}
	if len(c.ShutdownCommand) == 0 {
		c.ShutdownCommand = []string{"shutdown", "-h", "now"}
	}
	if c.Rows < 0 {
		return nil, fmt.Errorf("rows must not be negative, got %d", c.Rows)
	}
	if c.Rows == 0 {
		c.Rows = lcd.Rows
	}
	if c.Buttons.Debounce < 0 {
		return nil, fmt.Errorf("button debounce must not be negative, got %v", c.Buttons.Debounce)
	}
	if c.Buttons.Debounce == 0 {
		c.Buttons.Debounce = defaultDebounce
	}
	if c.Buttons.Tick < 0 {
		return nil, fmt.Errorf("button tick must not be negative, got %v", c.Buttons.Tick)
	}
	if c.Buttons.Tick == 0 {
		c.Buttons.Tick = defaultTick
	}
	if c.Buttons.DirectionLevel == nil {
		level := defaultLevel
		c.Buttons.DirectionLevel = &level
	}
	if c.Display.RegisterSelection == "" {
		c.Display.RegisterSelection = lcd.DefaultPins.RegisterSelection
	}
	if c.Display.ClockEdge == "" {
		c.Display.ClockEdge = lcd.DefaultPins.ClockEdge
	}
	if len(c.Display.Data) == 0 {
		c.Display.Data = append([]string(nil), lcd.DefaultPins.Data[:]...)
	}
	if len(c.Display.Data) != 4 {
		return nil, fmt.Errorf("display needs 4 data pins, got %d", len(c.Display.Data))
	}
	if _, err := buttons.ParseRepeatPolicy(c.Buttons.Repeat); err != nil {
		return nil, err
	}
	if _, err := buttons.ParseChannelFailurePolicy(c.Buttons.OnChannelFailure); err != nil {
		return nil, err
	}

	return c, nil
}

// readConfig reads the config file at path. A missing file gives the defaults.
func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return parseConfig(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func (c Config) buttonOptions() []buttons.Option {
	// both were validated by parseConfig
	repeat, _ := buttons.ParseRepeatPolicy(c.Buttons.Repeat)
	onFailure, _ := buttons.ParseChannelFailurePolicy(c.Buttons.OnChannelFailure)

	return []buttons.Option{
		buttons.WithDebounce(c.Buttons.Debounce),
		buttons.WithTick(c.Buttons.Tick),
		buttons.WithRepeatPolicy(repeat),
		buttons.WithChannelFailurePolicy(onFailure),
		buttons.WithDirectionLevel(*c.Buttons.DirectionLevel),
	}
}

func (c Config) displayPins() lcd.Pins {
	p := lcd.Pins{
		RegisterSelection: c.Display.RegisterSelection,
		ClockEdge:         c.Display.ClockEdge,
	}
	copy(p.Data[:], c.Display.Data)
	return p
}

// sharedPins returns the buttons wired to a line the display also drives.
func sharedPins(display lcd.Pins, pins []buttons.PinConfig) []buttons.PinConfig {
	used := map[string]bool{}
	for _, n := range display.Numbers() {
		used[n] = true
	}

	var shared []buttons.PinConfig
	for _, p := range pins {
		if used[p.ID] {
			shared = append(shared, p)
		}
	}
	return shared
}
