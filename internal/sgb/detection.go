// Package sgb decodes COSPAS-SARSAT second generation beacon messages
// (C/T.018): the 202-bit detection message and the 23 hex character beacon
// identifier.
package sgb

import (
	"fmt"
	"strings"

	"sgbdecode/internal/bits"
)

const (
	// DetectionBits is the length of a detection message without BCH.
	DetectionBits = 202

	groundSegmentPadBits = 2
	beaconTypeBits       = 3
	spareBits            = 14

	testFlagOffset = 42
	vesselIDOffset = 90
)

// Detection is a decoded 202-bit detection message.
type Detection struct {
	TAC                              int           `json:"tac"`
	SerialNo                         int           `json:"serialNo"`
	CountryCode                      int           `json:"countryCode"`
	HasAtLeastOneEnabledHomingSignal bool          `json:"hasAtLeastOneEnabledHomingSignal"`
	HasEnabledRLS                    bool          `json:"hasEnabledRls"`
	TestProtocolMessage              bool          `json:"testProtocolMessage"`
	EncodedGnssPosition              *Position     `json:"encodedGnssPosition,omitempty"`
	VesselID                         VesselID      `json:"vesselId,omitempty"`
	BeaconType                       BeaconType    `json:"beaconType"`
	RotatingField                    RotatingField `json:"rotatingField"`
	Beacon23HexID                    string        `json:"beacon23HexId"`
	Beacon15HexID                    string        `json:"beacon15HexId"`

	bits bits.Bits
}

// DecodeDetection decodes a 202-bit detection message.
func DecodeDetection(b bits.Bits) (*Detection, error) {
	if b.Len() != DetectionBits {
		return nil, fmt.Errorf("detection: %d bits, want %d: %w", b.Len(), DetectionBits, bits.ErrInvalidLength)
	}

	r := b.Reader()
	d := &Detection{
		TAC:                              r.Int(16),
		SerialNo:                         r.Int(14),
		CountryCode:                      r.Int(10),
		HasAtLeastOneEnabledHomingSignal: r.Bool(),
		HasEnabledRLS:                    r.Bool(),
		TestProtocolMessage:              r.Bool(),
		bits:                             b,
	}
	position := r.Read(positionBits)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}

	var err error
	if d.EncodedGnssPosition, err = DecodePosition(position); err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	if d.VesselID, err = ReadVesselID(r); err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	d.BeaconType = beaconTypeFromCode(r.Int(beaconTypeBits))
	r.Skip(spareBits)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	if d.RotatingField, err = ReadRotatingField(r); err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}

	if d.Beacon23HexID, err = beacon23HexID(r); err != nil {
		return nil, fmt.Errorf("detection: beacon id: %w", err)
	}
	d.Beacon15HexID = d.Beacon23HexID[:15]
	return d, nil
}

// DecodeDetectionBits decodes a detection message given as 202 '0' and '1'
// characters.
func DecodeDetectionBits(s string) (*Detection, error) {
	b, err := bits.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	return DecodeDetection(b)
}

// DecodeDetectionHex decodes the ground segment hex representation of a
// detection message. The first 2 bits of the expansion are padding.
func DecodeDetectionHex(hex string) (*Detection, error) {
	b, err := bits.ParseHex(hex)
	if err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	if b.Len() < groundSegmentPadBits {
		return nil, fmt.Errorf("detection: %d hex digits: %w", len(hex), bits.ErrInvalidLength)
	}
	b, err = b.Slice(groundSegmentPadBits, b.Len())
	if err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}
	return DecodeDetection(b)
}

// ParseDetection decodes either form, treating input made only of '0' and
// '1' with the length of a detection message as a bit string.
func ParseDetection(s string) (*Detection, error) {
	if IsBitString(s) && len(s) == DetectionBits {
		return DecodeDetectionBits(s)
	}
	return DecodeDetectionHex(s)
}

// IsBitString reports whether s is non-empty and holds only '0' and '1'.
func IsBitString(s string) bool {
	return s != "" && strings.Trim(s, "01") == ""
}

// Bits returns the 202 message bits the detection was decoded from.
func (d *Detection) Bits() bits.Bits {
	return d.bits
}

// beacon23HexID rebuilds the beacon identifier from the detection fields:
// a 1 bit, country, 101, TAC, serial number, test flag and vessel id.
func beacon23HexID(r *bits.Reader) (string, error) {
	r.SetPos(0)
	tac := r.Read(16)
	serial := r.Read(14)
	country := r.Read(10)
	r.SetPos(testFlagOffset)
	test := r.Read(1)
	r.SetPos(vesselIDOffset)
	vessel := r.Read(vesselIDBits)
	if err := r.Err(); err != nil {
		return "", err
	}

	id := bits.MustParse("1").
		Concat(country).
		Concat(bits.MustParse("101")).
		Concat(tac).
		Concat(serial).
		Concat(test).
		Concat(vessel)
	return id.Hex()
}
