package sgb

import (
	"fmt"

	"sgbdecode/internal/bits"
	"sgbdecode/internal/tac"
)

// BeaconIDHexLen is the number of hex digits in a beacon identifier.
const BeaconIDHexLen = 23

// TACDescriber resolves a type approval code to a description.
type TACDescriber interface {
	Describe(code int) (string, bool)
}

// BeaconID is a decoded 23 hex character beacon identifier.
type BeaconID struct {
	CountryCode      int      `json:"countryCode"`
	TAC              int      `json:"tac"`
	TACDescription   *string  `json:"tacDescription,omitempty"`
	SerialNumber     int      `json:"serialNumber"`
	TestProtocolFlag bool     `json:"testProtocolFlag"`
	VesselID         VesselID `json:"vesselId,omitempty"`
}

// DecodeBeaconID decodes a 23 hex character beacon identifier, describing
// the TAC with the built-in table.
func DecodeBeaconID(hex string) (*BeaconID, error) {
	return DecodeBeaconIDWith(hex, tac.Default())
}

// DecodeBeaconIDWith decodes a beacon identifier using tacs to describe the
// TAC. A nil tacs leaves the description unset.
func DecodeBeaconIDWith(hex string, tacs TACDescriber) (*BeaconID, error) {
	if len(hex) != BeaconIDHexLen {
		return nil, fmt.Errorf("beacon id: %d hex digits, want %d: %w", len(hex), BeaconIDHexLen, bits.ErrInvalidLength)
	}
	b, err := bits.ParseHex(hex)
	if err != nil {
		return nil, fmt.Errorf("beacon id: %w", err)
	}

	r := b.Reader()
	r.Skip(1)
	id := &BeaconID{CountryCode: r.Int(10)}
	r.Skip(3)
	id.TAC = r.Int(16)
	id.SerialNumber = r.Int(14)
	id.TestProtocolFlag = r.Bool()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("beacon id: %w", err)
	}
	if id.VesselID, err = ReadVesselID(r); err != nil {
		return nil, fmt.Errorf("beacon id: %w", err)
	}

	if tacs != nil {
		if desc, ok := tacs.Describe(id.TAC); ok {
			id.TACDescription = &desc
		}
	}
	return id, nil
}
