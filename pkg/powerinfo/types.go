package powerinfo

import "fmt"

const (
	// ChargingThreshold is the pack voltage below which the UPS is assumed to
	// be charging. It is a placeholder: the HAT exposes no charge-state signal,
	// so "not yet full" and "charging" cannot be told apart.
	ChargingThreshold = 8.2

	// FallbackLine is printed instead of a Reading when no reading could be
	// taken, whatever the cause.
	FallbackLine = "0.0,0"
)

// Voltage range of a 2S Li-ion pack, used for the percentage estimate.
const (
	EmptyVoltage = 6.4
	FullVoltage  = 8.4
)

// Reading is a single sample of the UPS battery.
type Reading struct {
	Voltage  float64 `json:"voltage"`
	Charging bool    `json:"charging"`
}

// NewReading classifies volts against ChargingThreshold.
func NewReading(volts float64) Reading {
	return Reading{
		Voltage:  volts,
		Charging: IsCharging(volts),
	}
}

// IsCharging reports whether volts is strictly below ChargingThreshold.
func IsCharging(volts float64) bool {
	return volts < ChargingThreshold
}

// String renders r as "<volts>,<flag>", e.g. "7.85,1". Downstream consumers
// parse this line, so the format must not change.
func (r Reading) String() string {
	flag := 0
	if r.Charging {
		flag = 1
	}
	return fmt.Sprintf("%.2f,%d", r.Voltage, flag)
}

// Percentage is a rough state of charge derived from the pack voltage,
// clamped to [0, 100].
func (r Reading) Percentage() float64 {
	return Percentage(r.Voltage)
}

// Percentage maps volts linearly from EmptyVoltage (0%) to FullVoltage (100%).
func Percentage(volts float64) float64 {
	p := (volts - EmptyVoltage) / (FullVoltage - EmptyVoltage) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
