package powerinfo

import (
	"github.com/distatus/battery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HostBattery is a battery reported by the operating system's own power
// supply facility (sysfs on Linux), as opposed to the UPS HAT.
// Units:
// - Current, Full: mWh
// - ChargeRate: mW
// - Voltage: Volts
type HostBattery struct {
	State      string  `json:"state"`
	Current    float64 `json:"current"`
	Full       float64 `json:"full"`
	ChargeRate float64 `json:"chargeRate"`
	Voltage    float64 `json:"voltage"`
}

// Percentage returns the charge level in percent, or 0 if unknown.
func (b HostBattery) Percentage() float64 {
	if b.Full <= 0 {
		return 0
	}
	return b.Current / b.Full * 100
}

// HostBatteries lists the batteries known to the operating system. Batteries
// that could only be read partially are still returned.
func HostBatteries() ([]HostBattery, error) {
	logrus.Tracef("HostBatteries called")

	batteries, err := battery.GetAll()
	if err != nil && len(batteries) == 0 {
		return nil, errors.Wrap(err, "failed to list host batteries")
	}
	if err != nil {
		logrus.WithError(err).Debug("Some host batteries could not be read")
	}

	ret := make([]HostBattery, 0, len(batteries))
	for _, b := range batteries {
		if b == nil {
			continue
		}
		ret = append(ret, HostBattery{
			State:      b.State.String(),
			Current:    b.Current,
			Full:       b.Full,
			ChargeRate: b.ChargeRate,
			Voltage:    b.Voltage,
		})
	}

	logrus.Tracef("HostBatteries returned %d batteries", len(ret))

	return ret, nil
}
