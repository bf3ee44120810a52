package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/upsbatt/pkg/i2cbus"
	"github.com/charlie0129/upsbatt/pkg/powerinfo"
)

// Logs share stderr with the fallback line, so only errors are shown by default.
var logLevel = "error"

var (
	gBasic        = "Basic:"
	commandGroups = []string{
		gBasic,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(w io.Writer, err error) {
	var re *readError
	if errors.As(err, &re) {
		logrus.WithError(err).Debug("Failed to read UPS battery")
		fmt.Fprintln(w, powerinfo.FallbackLine)
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, i2cbus.ErrCapabilityUnavailable) {
		fmt.Fprintln(w, "\nIs I2C enabled on this host?")
		fmt.Fprintln(w, "  - On a Raspberry Pi, enable it with 'sudo raspi-config'")
		fmt.Fprintf(w, "  - Check that /dev/i2c-%s exists and that you can access it (try 'sudo')\n", i2cbus.BusName)
	}
}

func run(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		handleCmdError(stderr, err)
		return 1
	}
	return 0
}

func main() {
	cmd := NewCommand()
	cmd.SetOut(os.Stdout)
	os.Exit(run(cmd, os.Stderr))
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsbatt",
		Short: "upsbatt reads the battery of an INA219-based UPS HAT",
		Long: `upsbatt reads the battery of an INA219-based UPS HAT.

Without a subcommand, it reads the bus voltage once and prints "<voltage>,<charging>",
e.g. "7.85,1". If the battery cannot be read, "0.0,0" is printed to stderr and
the exit code is 1.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := readBattery()
			if err != nil {
				return &readError{err: err}
			}

			fmt.Fprintln(cmd.OutOrStdout(), r.String())
			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", logLevel, "log level (trace, debug, info, warn, error, fatal, panic)")
	_ = globalFlags.MarkHidden("log-level")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStatusCommand(),
		NewVersionCommand(),
	)

	return cmd
}
