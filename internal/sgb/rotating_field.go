package sgb

import (
	"encoding/json"
	"fmt"

	"sgbdecode/internal/bits"
)

const (
	rotatingFieldBits        = 48
	rotatingFieldTypeBits    = 4
	rotatingFieldPayloadBits = 44

	altitudeBits      = 10
	altitudeStep      = 16
	altitudeOffset    = 400
	rlmParamsBits     = 15
	ackRlmParamsBits  = 13
	cancellationSpare = 42
)

// RotatingField is the multiplexed 48-bit field at the end of a detection
// message. It is one of *ObjectiveRequirements, *EltDtInFlightEmergency,
// *Rls, *NationalUse, *Cancellation or *UnknownRotatingField and is never
// nil on a decoded Detection.
type RotatingField interface {
	RotatingFieldType() RotatingFieldType
	isRotatingField()
}

// ObjectiveRequirements is the default rotating field content.
type ObjectiveRequirements struct {
	ElapsedTimeSinceActivationHours     int              `json:"elapsedTimeSinceActivationHours"`
	TimeSinceLastEncodedLocationMinutes int              `json:"timeSinceLastEncodedLocationMinutes"`
	AltitudeEncodedLocationMetres       int              `json:"altitudeEncodedLocationMetres"`
	DilutionPrecisionHDOP               *Range           `json:"dilutionPrecisionHdop,omitempty"`
	DilutionPrecisionVDOP               *Range           `json:"dilutionPrecisionVdop,omitempty"`
	ActivationMethod                    ActivationMethod `json:"activationMethod"`
	RemainingBatteryCapacityPercent     *Range           `json:"remainingBatteryCapacityPercent,omitempty"`
	GnssStatus                          GnssStatus       `json:"gnssStatus"`
}

// EltDtInFlightEmergency is sent by an ELT(DT) triggered in flight.
type EltDtInFlightEmergency struct {
	TimeOfLastEncodedLocation       TimeOfDay       `json:"timeOfLastEncodedLocation"`
	AltitudeEncodedLocationMetres   int             `json:"altitudeEncodedLocationMetres"`
	TriggeringEvent                 TriggeringEvent `json:"triggeringEvent"`
	GnssStatus                      GnssStatus      `json:"gnssStatus"`
	RemainingBatteryCapacityPercent *Range          `json:"remainingBatteryCapacityPercent,omitempty"`
}

// Rls describes the return link service capabilities of the beacon.
// BeaconFeedback is only present for the Galileo provider.
type Rls struct {
	CanProcessAutomaticallyGeneratedAckRlmType1 bool            `json:"canProcessAutomaticallyGeneratedAckRlmType1"`
	CanProcessManuallyGeneratedRlm              bool            `json:"canProcessManuallyGeneratedRlm"`
	RLSProvider                                 RLSProvider     `json:"rlsProvider"`
	BeaconFeedback                              *BeaconFeedback `json:"beaconFeedback,omitempty"`
}

// BeaconFeedback acknowledges return link messages received by the beacon.
type BeaconFeedback struct {
	RlmType1FeedbackReceived    bool    `json:"rlmType1FeedbackReceived"`
	RlmType2FeedbackReceived    bool    `json:"rlmType2FeedbackReceived"`
	RLSType                     RLSType `json:"rlsType"`
	ShortRlmParametersBitString *string `json:"shortRlmParametersBitString,omitempty"`
}

// NationalUse carries a nationally defined payload.
type NationalUse struct {
	BitString string `json:"bitString"`
}

// Cancellation is sent when the beacon is switched off.
type Cancellation struct {
	DeactivationMethod DeactivationMethod `json:"deactivationMethod"`
}

// UnknownRotatingField holds the payload of a reserved rotating field
// identifier.
type UnknownRotatingField struct {
	BitString string `json:"bitString"`
}

func (*ObjectiveRequirements) RotatingFieldType() RotatingFieldType {
	return RotatingFieldTypeObjectiveRequirements
}
func (*EltDtInFlightEmergency) RotatingFieldType() RotatingFieldType {
	return RotatingFieldTypeEltDtInFlightEmergency
}
func (*Rls) RotatingFieldType() RotatingFieldType                  { return RotatingFieldTypeRLS }
func (*NationalUse) RotatingFieldType() RotatingFieldType          { return RotatingFieldTypeNationalUse }
func (*Cancellation) RotatingFieldType() RotatingFieldType         { return RotatingFieldTypeCancellation }
func (*UnknownRotatingField) RotatingFieldType() RotatingFieldType { return RotatingFieldTypeUnknown }

func (*ObjectiveRequirements) isRotatingField()  {}
func (*EltDtInFlightEmergency) isRotatingField() {}
func (*Rls) isRotatingField()                    {}
func (*NationalUse) isRotatingField()            {}
func (*Cancellation) isRotatingField()           {}
func (*UnknownRotatingField) isRotatingField()   {}

// ReadRotatingField consumes the 48-bit rotating field from r. Reserved
// identifiers decode to *UnknownRotatingField.
func ReadRotatingField(r *bits.Reader) (RotatingField, error) {
	kind := r.Int(rotatingFieldTypeBits)
	payload := r.Read(rotatingFieldPayloadBits)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("rotating field: %w", err)
	}

	p := payload.Reader()
	var f RotatingField
	switch kind {
	case 0:
		f = readObjectiveRequirements(p)
	case 1:
		f = readEltDtInFlightEmergency(p)
	case 2:
		f = readRls(p)
	case 3:
		f = &NationalUse{BitString: payload.String()}
	case 15:
		p.Skip(cancellationSpare)
		f = &Cancellation{DeactivationMethod: deactivationMethodFromCode(p.Int(2))}
	default:
		f = &UnknownRotatingField{BitString: payload.String()}
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("rotating field %s: %w", f.RotatingFieldType(), err)
	}
	return f, nil
}

func readObjectiveRequirements(r *bits.Reader) *ObjectiveRequirements {
	o := &ObjectiveRequirements{
		ElapsedTimeSinceActivationHours:     r.Int(6),
		TimeSinceLastEncodedLocationMinutes: r.Int(11),
		AltitudeEncodedLocationMetres:       readAltitude(r),
		DilutionPrecisionHDOP:               dopRange(r.Int(4)),
		DilutionPrecisionVDOP:               dopRange(r.Int(4)),
		ActivationMethod:                    activationMethodFromCode(r.Int(2)),
		RemainingBatteryCapacityPercent:     batteryRange(r.Int(3)),
		GnssStatus:                          gnssStatusFromCode(r.Int(2)),
	}
	r.Skip(2)
	return o
}

func readEltDtInFlightEmergency(r *bits.Reader) *EltDtInFlightEmergency {
	e := &EltDtInFlightEmergency{
		TimeOfLastEncodedLocation:       timeAfterMidnight(r.Int(17)),
		AltitudeEncodedLocationMetres:   readAltitude(r),
		TriggeringEvent:                 triggeringEventFromCode(r.Int(4)),
		GnssStatus:                      gnssStatusFromCode(r.Int(2)),
		RemainingBatteryCapacityPercent: inFlightBatteryRange(r.Int(2)),
	}
	r.Skip(9)
	return e
}

func readAltitude(r *bits.Reader) int {
	return r.Int(altitudeBits)*altitudeStep - altitudeOffset
}

func readRls(r *bits.Reader) *Rls {
	r.Skip(2)
	rls := &Rls{
		CanProcessAutomaticallyGeneratedAckRlmType1: r.Bool(),
		CanProcessManuallyGeneratedRlm:              r.Bool(),
	}
	r.Skip(4)
	rls.RLSProvider = rlsProviderFromCode(r.Int(3))
	rls.BeaconFeedback = ReadBeaconFeedback(r, rls.RLSProvider)
	return rls
}

// ReadBeaconFeedback consumes the feedback flags and RLS type. The short RLM
// parameters that follow are only defined for Galileo; for other providers
// nothing further is read and nil is returned.
func ReadBeaconFeedback(r *bits.Reader, provider RLSProvider) *BeaconFeedback {
	f := &BeaconFeedback{
		RlmType1FeedbackReceived: r.Bool(),
		RlmType2FeedbackReceived: r.Bool(),
		RLSType:                  rlsTypeFromCode(r.Int(4)),
	}
	if provider != RLSProviderGalileo {
		return nil
	}

	var params string
	switch f.RLSType {
	case RLSTypeAcknowledgement:
		r.Skip(2)
		params = r.BitString(ackRlmParamsBits)
		r.Skip(1) // parity
	case RLSTypeTest:
		params = r.BitString(rlmParamsBits)
		r.Skip(1) // parity
	default:
		params = r.BitString(rlmParamsBits)
	}
	f.ShortRlmParametersBitString = &params
	return f
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (o *ObjectiveRequirements) MarshalJSON() ([]byte, error) {
	type plain ObjectiveRequirements
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{o.RotatingFieldType(), plain(*o)})
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (e *EltDtInFlightEmergency) MarshalJSON() ([]byte, error) {
	type plain EltDtInFlightEmergency
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{e.RotatingFieldType(), plain(*e)})
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (rls *Rls) MarshalJSON() ([]byte, error) {
	type plain Rls
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{rls.RotatingFieldType(), plain(*rls)})
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (n *NationalUse) MarshalJSON() ([]byte, error) {
	type plain NationalUse
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{n.RotatingFieldType(), plain(*n)})
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (c *Cancellation) MarshalJSON() ([]byte, error) {
	type plain Cancellation
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{c.RotatingFieldType(), plain(*c)})
}

// MarshalJSON adds the rotatingFieldType discriminator.
func (u *UnknownRotatingField) MarshalJSON() ([]byte, error) {
	type plain UnknownRotatingField
	return json.Marshal(struct {
		Type RotatingFieldType `json:"rotatingFieldType"`
		plain
	}{u.RotatingFieldType(), plain(*u)})
}
