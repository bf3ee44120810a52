package ina219

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

// Sensor is the INA219 power monitor found on the UPS HAT.
type Sensor struct {
	dev *i2c.Dev
}

// New returns a Sensor at Address on bus. The bus is owned by the caller.
func New(bus i2c.Bus) *Sensor {
	return &Sensor{
		dev: &i2c.Dev{Bus: bus, Addr: Address},
	}
}

// NewMock returns a Sensor whose bus voltage register yields words in order,
// as delivered by a word-data read. Reads past the last word fail.
func NewMock(words ...uint16) *Sensor {
	bus := &i2ctest.Playback{DontPanic: true}

	for _, w := range words {
		bus.Ops = append(bus.Ops, i2ctest.IO{
			Addr: Address,
			W:    []byte{BusVoltageRegister},
			R:    []byte{byte(w), byte(w >> 8)},
		})
	}

	return New(bus)
}

// ReadWord performs an SMBus word-data read of reg. The first byte on the
// wire is the low byte of the result.
func (s *Sensor) ReadWord(reg byte) (uint16, error) {
	logrus.WithFields(logrus.Fields{
		"addr": s.dev.Addr,
		"reg":  reg,
	}).Trace("Trying to read word from sensor")

	var r [2]byte
	if err := s.dev.Tx([]byte{reg}, r[:]); err != nil {
		return 0, errors.Wrapf(ErrTransaction, "failed to read register 0x%02x: %v", reg, err)
	}

	v := uint16(r[0]) | uint16(r[1])<<8

	logrus.WithFields(logrus.Fields{
		"reg": reg,
		"val": v,
	}).Trace("Read word from sensor succeed")

	return v, nil
}

// ReadBusVoltageRaw returns the undecoded bus voltage register.
func (s *Sensor) ReadBusVoltageRaw() (uint16, error) {
	logrus.Tracef("ReadBusVoltageRaw called")

	return s.ReadWord(BusVoltageRegister)
}

// BusVoltage returns the bus voltage in volts.
func (s *Sensor) BusVoltage() (float64, error) {
	logrus.Tracef("BusVoltage called")

	raw, err := s.ReadBusVoltageRaw()
	if err != nil {
		return 0, err
	}

	ret := DecodeBusVoltage(raw)
	logrus.Tracef("BusVoltage returned %.3f", ret)

	return ret, nil
}

func (s *Sensor) String() string {
	return s.dev.String()
}
