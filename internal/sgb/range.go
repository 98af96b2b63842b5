package sgb

import (
	"fmt"
	"strings"
)

// RangeEnd is one bound of a Range.
type RangeEnd struct {
	Value     int  `json:"value"`
	Exclusive bool `json:"exclusive"`
}

// Range is a quantisation bucket. A nil Min or Max leaves that side
// unbounded.
type Range struct {
	Min *RangeEnd `json:"min,omitempty"`
	Max *RangeEnd `json:"max,omitempty"`
}

// inclusive returns [min, max].
func inclusive(min, max int) *Range {
	return &Range{Min: &RangeEnd{Value: min}, Max: &RangeEnd{Value: max}}
}

// aboveTo returns (min, max].
func aboveTo(min, max int) *Range {
	return &Range{Min: &RangeEnd{Value: min, Exclusive: true}, Max: &RangeEnd{Value: max}}
}

// above returns (min, +inf).
func above(min int) *Range {
	return &Range{Min: &RangeEnd{Value: min, Exclusive: true}}
}

// Contains reports whether v falls inside the bucket.
func (r Range) Contains(v float64) bool {
	if r.Min != nil {
		m := float64(r.Min.Value)
		if v < m || (r.Min.Exclusive && v == m) {
			return false
		}
	}
	if r.Max != nil {
		m := float64(r.Max.Value)
		if v > m || (r.Max.Exclusive && v == m) {
			return false
		}
	}
	return true
}

// Equal reports whether both ranges have identical bounds.
func (r Range) Equal(o Range) bool {
	return endEqual(r.Min, o.Min) && endEqual(r.Max, o.Max)
}

func endEqual(a, b *RangeEnd) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// String renders interval notation, e.g. "(1,2]" or "(50,+inf)".
func (r Range) String() string {
	var sb strings.Builder
	if r.Min == nil {
		sb.WriteString("(-inf")
	} else {
		if r.Min.Exclusive {
			sb.WriteByte('(')
		} else {
			sb.WriteByte('[')
		}
		fmt.Fprintf(&sb, "%d", r.Min.Value)
	}
	sb.WriteByte(',')
	if r.Max == nil {
		sb.WriteString("+inf)")
	} else {
		fmt.Fprintf(&sb, "%d", r.Max.Value)
		if r.Max.Exclusive {
			sb.WriteByte(')')
		} else {
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// dopRange maps a 4-bit dilution of precision code. Code 15 is reserved.
func dopRange(code int) *Range {
	switch {
	case code == 0:
		return inclusive(0, 1)
	case code >= 1 && code <= 7:
		return aboveTo(code, code+1)
	case code == 8:
		return aboveTo(8, 10)
	case code == 9:
		return aboveTo(10, 12)
	case code == 10:
		return aboveTo(12, 15)
	case code == 11:
		return aboveTo(15, 20)
	case code == 12:
		return aboveTo(20, 30)
	case code == 13:
		return aboveTo(30, 50)
	case code == 14:
		return above(50)
	default:
		return nil
	}
}

// batteryRange maps the 3-bit remaining battery capacity code. Codes 6 and
// 7 carry no bucket.
func batteryRange(code int) *Range {
	switch code {
	case 0:
		return inclusive(0, 5)
	case 1:
		return aboveTo(5, 10)
	case 2:
		return aboveTo(10, 25)
	case 3:
		return aboveTo(25, 50)
	case 4:
		return aboveTo(50, 75)
	case 5:
		return aboveTo(75, 100)
	default:
		return nil
	}
}

// inFlightBatteryRange maps the 2-bit battery code of an ELT(DT) in-flight
// emergency.
func inFlightBatteryRange(code int) *Range {
	switch code {
	case 0:
		return inclusive(0, 33)
	case 1:
		return aboveTo(33, 66)
	case 2:
		return aboveTo(66, 100)
	default:
		return nil
	}
}
