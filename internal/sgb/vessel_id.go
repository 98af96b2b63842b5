package sgb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"sgbdecode/internal/bits"
)

const (
	vesselIDBits        = 47
	vesselIDTypeBits    = 3
	vesselIDPayloadBits = 44

	mmsiBits            = 30
	epirbLast4Bits      = 14
	mmsiNotSet          = 111111
	epirbLast4NotSet    = 10922
	epirbMMSIPrefix     = "974"
	callSignChars       = 7
	operatorChars       = 3
	operatorBits        = 20
	operatorSerialBits  = 12
	operatorSerialSpare = 17
	aviationAddressHex  = 6
)

// VesselID is the maritime or aviation identity carried in a message. It is
// one of *Mmsi, *RadioCallSign, *AircraftRegistrationMarking,
// *Aviation24BitAddress or *AircraftOperatorAndSerialNumber. A nil VesselID
// means no identity was transmitted.
type VesselID interface {
	VesselIDType() VesselIDType
	isVesselID()
}

// Mmsi is a vessel MMSI and the EPIRB MMSI derived from it.
type Mmsi struct {
	MMSI      *int `json:"mmsi,omitempty"`
	EpirbMMSI *int `json:"epirbMmsi,omitempty"`
}

// RadioCallSign is a vessel radio call sign.
type RadioCallSign struct {
	Value *string `json:"value,omitempty"`
}

// AircraftRegistrationMarking is an aircraft registration such as "VH-ABC".
type AircraftRegistrationMarking struct {
	Value *string `json:"value,omitempty"`
}

// Aviation24BitAddress is an ICAO 24-bit aircraft address with an optional
// three letter operator designator.
type Aviation24BitAddress struct {
	AddressHex                 string  `json:"addressHex"`
	AircraftOperatorDesignator *string `json:"aircraftOperatorDesignator,omitempty"`
}

// AircraftOperatorAndSerialNumber identifies an aircraft by operator
// designator and the operator assigned serial number.
type AircraftOperatorAndSerialNumber struct {
	AircraftOperatorDesignator string `json:"aircraftOperatorDesignator"`
	SerialNumber               int    `json:"serialNumber"`
}

func (*Mmsi) VesselIDType() VesselIDType          { return VesselIDTypeMMSI }
func (*RadioCallSign) VesselIDType() VesselIDType { return VesselIDTypeRadioCallSign }
func (*AircraftRegistrationMarking) VesselIDType() VesselIDType {
	return VesselIDTypeAircraftRegistrationMarking
}
func (*Aviation24BitAddress) VesselIDType() VesselIDType { return VesselIDTypeAviation24BitAddress }
func (*AircraftOperatorAndSerialNumber) VesselIDType() VesselIDType {
	return VesselIDTypeAircraftOperatorAndSerialNumber
}

func (*Mmsi) isVesselID()                            {}
func (*RadioCallSign) isVesselID()                   {}
func (*AircraftRegistrationMarking) isVesselID()     {}
func (*Aviation24BitAddress) isVesselID()            {}
func (*AircraftOperatorAndSerialNumber) isVesselID() {}

// ReadVesselID consumes the 47-bit vessel identity field from r. Every
// discriminator consumes the full field, including those that decode to
// no identity.
func ReadVesselID(r *bits.Reader) (VesselID, error) {
	kind := r.Int(vesselIDTypeBits)
	payload := r.Read(vesselIDPayloadBits)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("vessel id: %w", err)
	}

	p := payload.Reader()
	var id VesselID
	switch kind {
	case 1:
		id = readMmsi(p)
	case 2:
		id = &RadioCallSign{Value: readCallSign(p)}
	case 3:
		id = &AircraftRegistrationMarking{Value: readCallSign(p)}
	case 4:
		id = readAviation24BitAddress(p)
	case 5:
		id = readAircraftOperatorAndSerialNumber(p)
	default:
		return nil, nil
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("vessel id %s: %w", VesselIDType(kind-1), err)
	}
	return id, nil
}

func readMmsi(r *bits.Reader) *Mmsi {
	mmsi := r.Int(mmsiBits)
	last4 := r.Int(epirbLast4Bits)

	m := &Mmsi{}
	if mmsi != mmsiNotSet {
		m.MMSI = &mmsi
	}
	if last4 != epirbLast4NotSet {
		digits := fmt.Sprintf("%09d", mmsi)
		epirb, err := strconv.Atoi(fmt.Sprintf("%s%s%04d", epirbMMSIPrefix, digits[3:5], last4))
		if err == nil {
			m.EpirbMMSI = &epirb
		}
	}
	return m
}

// readCallSign reads 2 spare bits and 7 Baudot characters. Trailing spaces
// are padding; an all-space value is absent.
func readCallSign(r *bits.Reader) *string {
	r.Skip(2)
	s := strings.TrimRight(r.Baudot(callSignChars), " ")
	if s == "" {
		return nil
	}
	return &s
}

func readAviation24BitAddress(r *bits.Reader) *Aviation24BitAddress {
	a := &Aviation24BitAddress{AddressHex: r.Hex(aviationAddressHex)}
	operator := r.Read(operatorBits)
	if operator.IsZero() {
		return a
	}
	designator := operator.Reader().BaudotShort(operatorChars)
	a.AircraftOperatorDesignator = &designator
	return a
}

func readAircraftOperatorAndSerialNumber(r *bits.Reader) *AircraftOperatorAndSerialNumber {
	a := &AircraftOperatorAndSerialNumber{
		AircraftOperatorDesignator: r.BaudotShort(operatorChars),
		SerialNumber:               r.Int(operatorSerialBits),
	}
	r.Skip(operatorSerialSpare)
	return a
}

// MarshalJSON adds the vesselIdType discriminator.
func (m *Mmsi) MarshalJSON() ([]byte, error) {
	type plain Mmsi
	return json.Marshal(struct {
		Type VesselIDType `json:"vesselIdType"`
		plain
	}{m.VesselIDType(), plain(*m)})
}

// MarshalJSON adds the vesselIdType discriminator.
func (c *RadioCallSign) MarshalJSON() ([]byte, error) {
	type plain RadioCallSign
	return json.Marshal(struct {
		Type VesselIDType `json:"vesselIdType"`
		plain
	}{c.VesselIDType(), plain(*c)})
}

// MarshalJSON adds the vesselIdType discriminator.
func (a *AircraftRegistrationMarking) MarshalJSON() ([]byte, error) {
	type plain AircraftRegistrationMarking
	return json.Marshal(struct {
		Type VesselIDType `json:"vesselIdType"`
		plain
	}{a.VesselIDType(), plain(*a)})
}

// MarshalJSON adds the vesselIdType discriminator.
func (a *Aviation24BitAddress) MarshalJSON() ([]byte, error) {
	type plain Aviation24BitAddress
	return json.Marshal(struct {
		Type VesselIDType `json:"vesselIdType"`
		plain
	}{a.VesselIDType(), plain(*a)})
}

// MarshalJSON adds the vesselIdType discriminator.
func (a *AircraftOperatorAndSerialNumber) MarshalJSON() ([]byte, error) {
	type plain AircraftOperatorAndSerialNumber
	return json.Marshal(struct {
		Type VesselIDType `json:"vesselIdType"`
		plain
	}{a.VesselIDType(), plain(*a)})
}
