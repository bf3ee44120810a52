package ina219

// Bus voltage register layout of the INA219 on the UPS HAT.
const (
	Address            = 0x42
	BusVoltageRegister = 0x02
	// BusVoltageShift drops the CNVR and OVF status bits.
	BusVoltageShift = 3
	// BusVoltageLSB is 4 mV per unit after the shift.
	BusVoltageLSB = 0.004
)
