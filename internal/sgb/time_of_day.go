package sgb

import "fmt"

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a UTC wall clock time with one second resolution.
type TimeOfDay struct {
	seconds int
}

// timeAfterMidnight returns midnight UTC plus the given seconds, wrapping at
// 24 hours.
func timeAfterMidnight(seconds int) TimeOfDay {
	s := seconds % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return TimeOfDay{seconds: s}
}

func (t TimeOfDay) Hour() int   { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return t.seconds / 60 % 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

// SecondsSinceMidnight returns the time as an offset from 00:00:00Z.
func (t TimeOfDay) SecondsSinceMidnight() int { return t.seconds }

// String renders HH:MM:SSZ.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02dZ", t.Hour(), t.Minute(), t.Second())
}

// MarshalText renders HH:MM:SSZ.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
