package ina219

import "math/bits"

// SwapBytes exchanges the high and low bytes of w. The INA219 sends its
// registers MSB first while a word-data read assembles them LSB first.
func SwapBytes(w uint16) uint16 {
	return bits.ReverseBytes16(w)
}

// DecodeBusVoltage converts a raw word-data read of the bus voltage register
// into volts.
func DecodeBusVoltage(raw uint16) float64 {
	return float64(SwapBytes(raw)>>BusVoltageShift) * BusVoltageLSB
}
