package ina219

import "errors"

var (
	// ErrTransaction is returned when a bus transaction with the sensor fails
	ErrTransaction = errors.New("i2c transaction failed")
)
