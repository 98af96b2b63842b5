// Package bits implements the bit level primitives used to decode
// second generation beacon messages: an immutable MSB-first bit sequence,
// a cursor that reads fixed width fields from it, the hex and modified
// Baudot codecs, and GF(2) polynomial division.
package bits

import (
	"fmt"
	"strings"
)

// Bits is an immutable sequence of bits. Index 0 is the first transmitted
// (most significant) bit. The zero value is the empty sequence.
type Bits struct {
	b []bool
}

// FromBools copies v into a new sequence.
func FromBools(v []bool) Bits {
	b := make([]bool, len(v))
	copy(b, v)
	return Bits{b: b}
}

// Zeros returns n cleared bits.
func Zeros(n int) Bits {
	if n < 0 {
		n = 0
	}
	return Bits{b: make([]bool, n)}
}

// Parse builds a sequence from a string of '0' and '1' characters.
func Parse(s string) (Bits, error) {
	b := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			b[i] = true
		default:
			return Bits{}, fmt.Errorf("bits: %q at index %d: %w", s[i], i, ErrInvalidCharacter)
		}
	}
	return Bits{b: b}, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// package level constants.
func MustParse(s string) Bits {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseHex expands a hexadecimal string into 4 bits per digit.
func ParseHex(s string) (Bits, error) {
	bin, err := HexToBinary(s)
	if err != nil {
		return Bits{}, err
	}
	return Parse(bin)
}

// Len returns the number of bits.
func (s Bits) Len() int {
	return len(s.b)
}

// At reports the bit at index i. It panics if i is out of range, like a
// slice index.
func (s Bits) At(i int) bool {
	return s.b[i]
}

// Reader returns a new cursor positioned at the first bit.
func (s Bits) Reader() *Reader {
	return NewReader(s)
}

// Equal reports whether both sequences hold the same bits.
func (s Bits) Equal(o Bits) bool {
	if len(s.b) != len(o.b) {
		return false
	}
	for i := range s.b {
		if s.b[i] != o.b[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether every bit is cleared. The empty sequence is zero.
func (s Bits) IsZero() bool {
	for _, v := range s.b {
		if v {
			return false
		}
	}
	return true
}

// Concat returns s followed by o.
func (s Bits) Concat(o Bits) Bits {
	b := make([]bool, 0, len(s.b)+len(o.b))
	b = append(b, s.b...)
	b = append(b, o.b...)
	return Bits{b: b}
}

// Slice returns the bits in [from, to).
func (s Bits) Slice(from, to int) (Bits, error) {
	if from < 0 || to < from || to > len(s.b) {
		return Bits{}, fmt.Errorf("bits: slice [%d:%d] of %d: %w", from, to, len(s.b), ErrOutOfBounds)
	}
	return FromBools(s.b[from:to]), nil
}

// Replace returns a copy of s with the bits starting at offset overwritten
// by o.
func (s Bits) Replace(offset int, o Bits) (Bits, error) {
	if offset < 0 || offset+len(o.b) > len(s.b) {
		return Bits{}, fmt.Errorf("bits: replace %d bits at %d of %d: %w", len(o.b), offset, len(s.b), ErrOutOfBounds)
	}
	out := FromBools(s.b)
	copy(out.b[offset:], o.b)
	return out, nil
}

// Last returns the trailing n bits.
func (s Bits) Last(n int) (Bits, error) {
	if n < 0 || n > len(s.b) {
		return Bits{}, fmt.Errorf("bits: last %d of %d: %w", n, len(s.b), ErrOutOfBounds)
	}
	return FromBools(s.b[len(s.b)-n:]), nil
}

// TrimLeadingZeros drops the leading cleared bits. A sequence with no set
// bit keeps its final bit, so the result is never empty unless s is.
func (s Bits) TrimLeadingZeros() Bits {
	for i, v := range s.b {
		if v {
			return FromBools(s.b[i:])
		}
	}
	if len(s.b) == 0 {
		return Bits{}
	}
	return FromBools(s.b[len(s.b)-1:])
}

// String renders the sequence as '0' and '1' characters.
func (s Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(s.b))
	for _, v := range s.b {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Hex renders the sequence as upper-case hex. The length must be a multiple
// of 4.
func (s Bits) Hex() (string, error) {
	return BinaryToHex(s.String())
}

// Remainder divides s by divisor over GF(2) and returns the remainder with
// its leading zeros trimmed. The divisor is trimmed first and must keep at
// least one set bit.
func (s Bits) Remainder(divisor Bits) (Bits, error) {
	d := divisor.TrimLeadingZeros()
	if d.IsZero() {
		return Bits{}, fmt.Errorf("bits: divisor %q: %w", divisor.String(), ErrUnknownLookup)
	}

	r := FromBools(s.b)
	for i := 0; i+len(d.b) <= len(r.b); i++ {
		if !r.b[i] {
			continue
		}
		for j, v := range d.b {
			r.b[i+j] = r.b[i+j] != v
		}
	}
	return r.TrimLeadingZeros(), nil
}
