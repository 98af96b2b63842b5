package sgb

import (
	"fmt"

	"sgbdecode/internal/bits"
)

const (
	// BCHBits is the length of the BCH(250,202) parity field.
	BCHBits = 48

	// TransmittedBits is a detection message followed by its parity.
	TransmittedBits = DetectionBits + BCHBits
)

// bchGenerator is the BCH(250,202) generator polynomial.
var bchGenerator = bits.MustParse("1110001111110101110000101110111110011110010010111")

// BCH computes the 48-bit parity of a message: the remainder of the message
// shifted left by 48 bits, divided by the generator polynomial over GF(2).
func BCH(message bits.Bits) (bits.Bits, error) {
	rem, err := message.Concat(bits.Zeros(BCHBits)).Remainder(bchGenerator)
	if err != nil {
		return bits.Bits{}, fmt.Errorf("bch: %w", err)
	}
	if rem.Len() < BCHBits {
		rem = bits.Zeros(BCHBits - rem.Len()).Concat(rem)
	}
	return rem.Last(BCHBits)
}

// BCH computes the parity of the detection message.
func (d *Detection) BCH() (bits.Bits, error) {
	return BCH(d.bits)
}

// VerifyBCH checks a 250-bit transmission: 202 message bits followed by the
// 48-bit parity.
func VerifyBCH(b bits.Bits) (bool, error) {
	if b.Len() != TransmittedBits {
		return false, fmt.Errorf("bch: %d bits, want %d: %w", b.Len(), TransmittedBits, bits.ErrInvalidLength)
	}
	r := b.Reader()
	message := r.Read(DetectionBits)
	parity := r.Read(BCHBits)
	if err := r.Err(); err != nil {
		return false, fmt.Errorf("bch: %w", err)
	}
	want, err := BCH(message)
	if err != nil {
		return false, err
	}
	return want.Equal(parity), nil
}
