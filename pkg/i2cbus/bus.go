package i2cbus

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// BusName is the I2C bus the UPS HAT is wired to (/dev/i2c-1 on a Pi).
const BusName = "1"

// Open loads the host drivers and opens BusName.
//
// Any failure is reported as ErrCapabilityUnavailable. The caller must close
// the returned bus.
func Open() (i2c.BusCloser, error) {
	logrus.Tracef("Open called")

	state, err := host.Init()
	if err != nil {
		return nil, errors.Wrapf(ErrCapabilityUnavailable, "failed to initialize host drivers: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"loaded": len(state.Loaded),
		"failed": len(state.Failed),
	}).Trace("Host drivers initialized")

	bus, err := i2creg.Open(BusName)
	if err != nil {
		return nil, errors.Wrapf(ErrCapabilityUnavailable, "failed to open I2C bus %s: %v", BusName, err)
	}

	logrus.WithField("bus", bus.String()).Trace("Open I2C bus succeed")

	return bus, nil
}
