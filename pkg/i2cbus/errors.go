package i2cbus

import "errors"

var (
	// ErrCapabilityUnavailable is returned when this host cannot speak I2C,
	// e.g. no host driver is loaded or the bus device node is not accessible.
	ErrCapabilityUnavailable = errors.New("i2c capability unavailable")
)
