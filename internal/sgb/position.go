package sgb

import (
	"fmt"

	"sgbdecode/internal/bits"
)

const (
	positionBits       = 47
	latitudeDegBits    = 7
	longitudeDegBits   = 8
	coordinateFracBits = 15
)

// noEncodedLocation is transmitted by beacons without a GNSS fix or
// without location capability.
var noEncodedLocation = bits.MustParse("11111111000001111100000111111111111110000011111")

// Position is the encoded GNSS location in decimal degrees. Negative
// latitude is south and negative longitude is west.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DecodePosition decodes the 47-bit encoded location. It returns nil when
// the bits carry the no-location pattern.
func DecodePosition(b bits.Bits) (*Position, error) {
	if b.Len() != positionBits {
		return nil, fmt.Errorf("position: %d bits, want %d: %w", b.Len(), positionBits, bits.ErrInvalidLength)
	}
	if b.Equal(noEncodedLocation) {
		return nil, nil
	}
	r := b.Reader()
	p := &Position{
		Lat: readCoordinate(r, latitudeDegBits),
		Lon: readCoordinate(r, longitudeDegBits),
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	return p, nil
}

// readCoordinate reads sign, whole degrees and a 15-bit binary fraction.
// The value is accumulated as an integer count of 2^-15 degrees and
// converted once, which is exact in a float64.
func readCoordinate(r *bits.Reader, degreeBits int) float64 {
	negative := r.Bool()
	deg := r.Int(degreeBits)
	frac := r.Int(coordinateFracBits)
	v := float64(deg<<coordinateFracBits|frac) / (1 << coordinateFracBits)
	if negative {
		return -v
	}
	return v
}
