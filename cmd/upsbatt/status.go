package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/upsbatt/pkg/i2cbus"
	"github.com/charlie0129/upsbatt/pkg/ina219"
	"github.com/charlie0129/upsbatt/pkg/powerinfo"
)

type statusData struct {
	reading       powerinfo.Reading
	hostBatteries []powerinfo.HostBattery
}

type statusJSON struct {
	UPS statusUPSJSON `json:"ups"`
	// Host is omitted when the operating system reports no batteries.
	Host []statusHostJSON `json:"host,omitempty"`
}

type statusUPSJSON struct {
	Bus              string  `json:"bus"`
	Address          string  `json:"address"`
	VoltageVolts     float64 `json:"voltageVolts"`
	EstimatedPercent float64 `json:"estimatedPercent"`
	AssumedCharging  bool    `json:"assumedCharging"`
}

type statusHostJSON struct {
	State           string  `json:"state"`
	ChargePercent   float64 `json:"chargePercent"`
	ChargeRateWatts float64 `json:"chargeRateWatts"`
	VoltageVolts    float64 `json:"voltageVolts"`
}

// fetchStatusData takes one UPS reading and lists the host batteries.
func fetchStatusData() (*statusData, error) {
	r, err := readBattery()
	if err != nil {
		return nil, fmt.Errorf("failed to read UPS battery: %w", err)
	}

	hb, err := powerinfo.HostBatteries()
	if err != nil {
		// Most boards with a UPS HAT have no battery of their own.
		logrus.WithError(err).Debug("Host batteries unavailable")
	}

	return &statusData{
		reading:       r,
		hostBatteries: hb,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gBasic,
		Short:   "Get a detailed report of the UPS battery",
		Long: `Get a detailed report of the UPS battery, including an estimated charge
percentage and any batteries the operating system reports.

The charging state is a guess: the pack is assumed to be charging whenever its
voltage is below 8.2 V.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if asJSON {
				return printStatusJSON(cmd, data)
			}

			r := data.reading

			cmd.Println(bold("UPS battery:"))
			cmd.Printf("  Sensor: %s\n", bold("INA219 at 0x%02x on I2C bus %s", ina219.Address, i2cbus.BusName))
			cmd.Printf("  Voltage: %s\n", bold("%.2f V", r.Voltage))
			cmd.Printf("  Estimated charge: %s\n", bold("%.0f%%", r.Percentage()))

			state := color.RedString("not charging")
			if r.Charging {
				state = color.GreenString("charging")
			}
			cmd.Printf("  State: %s (assumed, below %.1f V)\n", bold("%s", state), powerinfo.ChargingThreshold)

			if len(data.hostBatteries) == 0 {
				return nil
			}

			cmd.Println()
			cmd.Println(bold("Host batteries:"))
			for i, b := range data.hostBatteries {
				cmd.Printf("  #%d: %s, %s, %s\n", i,
					bold("%s", b.State),
					bold("%.0f%%", b.Percentage()),
					bold("%.2f V", b.Voltage),
				)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}

func printStatusJSON(cmd *cobra.Command, data *statusData) error {
	r := data.reading

	out := statusJSON{
		UPS: statusUPSJSON{
			Bus:              i2cbus.BusName,
			Address:          fmt.Sprintf("0x%02x", ina219.Address),
			VoltageVolts:     math.Round(r.Voltage*100) / 100,
			EstimatedPercent: math.Round(r.Percentage()),
			AssumedCharging:  r.Charging,
		},
	}

	for _, b := range data.hostBatteries {
		out.Host = append(out.Host, statusHostJSON{
			State:           b.State,
			ChargePercent:   math.Round(b.Percentage()),
			ChargeRateWatts: math.Round(b.ChargeRate/1e3*10) / 10,
			VoltageVolts:    math.Round(b.Voltage*100) / 100,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
