package main

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/upsbatt/pkg/i2cbus"
	"github.com/charlie0129/upsbatt/pkg/ina219"
	"github.com/charlie0129/upsbatt/pkg/powerinfo"
)

// openBus acquires the I2C bus the UPS HAT sits on.
var openBus = i2cbus.Open

// readError marks a failure of the default read path. All causes are
// reported the same way: powerinfo.FallbackLine on stderr.
type readError struct {
	err error
}

func (e *readError) Error() string {
	return e.err.Error()
}

func (e *readError) Unwrap() error {
	return e.err
}

// readBattery takes exactly one reading from the UPS HAT.
func readBattery() (powerinfo.Reading, error) {
	bus, err := openBus()
	if err != nil {
		return powerinfo.Reading{}, err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			logrus.WithError(err).Debug("Failed to close I2C bus")
		}
	}()

	sensor := ina219.New(bus)
	volts, err := sensor.BusVoltage()
	if err != nil {
		return powerinfo.Reading{}, err
	}

	r := powerinfo.NewReading(volts)
	logrus.WithFields(logrus.Fields{
		"sensor":   sensor.String(),
		"voltage":  r.Voltage,
		"charging": r.Charging,
	}).Debug("UPS battery read")

	return r, nil
}
