package main

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpi-menu",
		Short: "Kiosk menu launcher driven by keyboard or GPIO buttons",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Lookup("debug").Changed {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newPinsCmd())
	rootCmd.PersistentFlags().Bool("debug", false, "Turn on debug logging.")

	return rootCmd
}

func newStartCmd() *cobra.Command {
	var configFile, menuFile, buttonFile string

	cmd := cobra.Command{
		Use:   "start",
		Short: "Shows the menu and waits for input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(configFile)
			if err != nil {
				return err
			}
			if menuFile != "" {
				conf.MenuFile = menuFile
			}
			if buttonFile != "" {
				conf.ButtonFile = buttonFile
			}
			return startMenu(cmd.Context(), conf)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Configuration file.")
	cmd.Flags().StringVar(&menuFile, "menu-file", "", "File with the menu entries, overrides the configuration.")
	cmd.Flags().StringVar(&buttonFile, "button-file", "", "File with the button pins, overrides the configuration.")

	return &cmd
}

func newPinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pins",
		Short: "Lists the GPIO pins of this board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPins(cmd.OutOrStdout())
		},
	}
}

func listPins(out io.Writer) error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("initialize periph: %w", err)
	}
	for _, failure := range state.Failed {
		log.Debugf("Driver %s failed: %v", failure.D, failure.Err)
	}

	pins := gpioreg.All()
	if len(pins) == 0 {
		fmt.Fprintln(out, "No GPIO pins found")
		return nil
	}
	for _, p := range pins {
		fmt.Fprintf(out, "%-10s %4d  %s\n", p.Name(), p.Number(), p.Function())
	}
	return nil
}
