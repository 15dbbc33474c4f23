package config

import "fmt"

// Speed is a named tick period preset. The period is constant for a whole
// game; presets only pick the constant.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Speeds lists presets in menu order.
var Speeds = []Speed{SpeedSlow, SpeedNormal, SpeedFast}

// SpeedTickMS returns the tick period in milliseconds for a preset.
func SpeedTickMS(s Speed) (int, error) {
	switch s {
	case SpeedSlow:
		return 150, nil
	case SpeedNormal:
		return 100, nil
	case SpeedFast:
		return 70, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidSpeed, string(s))
	}
}

// Next cycles to the following preset, wrapping around.
func (s Speed) Next() Speed {
	for i, sp := range Speeds {
		if sp == s {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return SpeedNormal
}

// SpeedForTickMS returns the preset whose period is ms, if there is one.
func SpeedForTickMS(ms int) (Speed, bool) {
	for _, sp := range Speeds {
		if v, _ := SpeedTickMS(sp); v == ms {
			return sp, true
		}
	}
	return "", false
}
