package animation

import "time"

// DefaultConfig flashes for about half a minute.
func DefaultConfig() Config {
	return Config{
		OnDuration: Range{
			Min: 600 * time.Millisecond,
			Max: 600 * time.Millisecond,
		},
		OffDuration: Range{
			Min: 400 * time.Millisecond,
			Max: 400 * time.Millisecond,
		},
		Pulses: 30,
	}
}
