package sgb

// BeaconType is the 3-bit beacon type field of a detection message.
type BeaconType int

const (
	BeaconTypeEltNotDt BeaconType = iota
	BeaconTypeEpirb
	BeaconTypePlb
	BeaconTypeEltDt
	BeaconTypeSystem
	BeaconTypeOther
)

var beaconTypeNames = [...]string{"ELT_NOT_DT", "EPIRB", "PLB", "ELT_DT", "SYSTEM", "OTHER"}

func (t BeaconType) String() string { return enumName(beaconTypeNames[:], int(t)) }

// MarshalText renders the symbolic name.
func (t BeaconType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func beaconTypeFromCode(code int) BeaconType {
	switch code {
	case 0:
		return BeaconTypeEltNotDt
	case 1:
		return BeaconTypeEpirb
	case 2:
		return BeaconTypePlb
	case 3:
		return BeaconTypeEltDt
	case 7:
		return BeaconTypeSystem
	default:
		return BeaconTypeOther
	}
}

// ActivationMethod records how the beacon was switched on.
type ActivationMethod int

const (
	ActivationManualByUser ActivationMethod = iota
	ActivationAutomaticByBeacon
	ActivationAutomaticByExternalMeans
	ActivationOther
)

var activationMethodNames = [...]string{
	"MANUAL_ACTIVATION_BY_USER",
	"AUTOMATIC_ACTIVATION_BY_BEACON",
	"AUTOMATIC_ACTIVATION_BY_EXTERNAL_MEANS",
	"OTHER",
}

func (m ActivationMethod) String() string { return enumName(activationMethodNames[:], int(m)) }

// MarshalText renders the symbolic name.
func (m ActivationMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func activationMethodFromCode(code int) ActivationMethod {
	switch code {
	case 0:
		return ActivationManualByUser
	case 1:
		return ActivationAutomaticByBeacon
	case 2:
		return ActivationAutomaticByExternalMeans
	default:
		return ActivationOther
	}
}

// GnssStatus is the receiver fix state at the last encoded location.
type GnssStatus int

const (
	GnssNoFix GnssStatus = iota
	GnssLocation2D
	GnssLocation3D
	GnssOther
)

var gnssStatusNames = [...]string{"NO_FIX", "LOCATION_2D", "LOCATION_3D", "OTHER"}

func (s GnssStatus) String() string { return enumName(gnssStatusNames[:], int(s)) }

// MarshalText renders the symbolic name.
func (s GnssStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func gnssStatusFromCode(code int) GnssStatus {
	switch code {
	case 0:
		return GnssNoFix
	case 1:
		return GnssLocation2D
	case 2:
		return GnssLocation3D
	default:
		return GnssOther
	}
}

// TriggeringEvent is the cause of an ELT(DT) in-flight activation.
type TriggeringEvent int

const (
	TriggerManualByCrew TriggeringEvent = iota
	TriggerGSwitchOrDeformation
	TriggerAutomaticFromAvionics
	TriggerOther
)

var triggeringEventNames = [...]string{
	"MANUAL_ACTIVATION_BY_CREW",
	"G_SWITCH_OR_DEFORMATION_ACTIVATION",
	"AUTOMATIC_ACTIVATION_FROM_AVIONICS_OR_TRIGGERING_SYSTEM",
	"OTHER",
}

func (e TriggeringEvent) String() string { return enumName(triggeringEventNames[:], int(e)) }

// MarshalText renders the symbolic name.
func (e TriggeringEvent) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func triggeringEventFromCode(code int) TriggeringEvent {
	switch code {
	case 1:
		return TriggerManualByCrew
	case 4:
		return TriggerGSwitchOrDeformation
	case 8:
		return TriggerAutomaticFromAvionics
	default:
		return TriggerOther
	}
}

// RLSProvider identifies the return link service operator.
type RLSProvider int

const (
	RLSProviderGalileo RLSProvider = iota
	RLSProviderGlonass
	RLSProviderOther
)

var rlsProviderNames = [...]string{"GALILEO", "GLONASS", "OTHER"}

func (p RLSProvider) String() string { return enumName(rlsProviderNames[:], int(p)) }

// MarshalText renders the symbolic name.
func (p RLSProvider) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func rlsProviderFromCode(code int) RLSProvider {
	switch code {
	case 1:
		return RLSProviderGalileo
	case 2:
		return RLSProviderGlonass
	default:
		return RLSProviderOther
	}
}

// RLSType is the kind of return link message acknowledged by the beacon.
type RLSType int

const (
	RLSTypeAcknowledgement RLSType = iota
	RLSTypeTest
	RLSTypeOther
)

var rlsTypeNames = [...]string{"ACKNOWLEDGEMENT_SERVICE", "TEST_SERVICE", "OTHER"}

func (t RLSType) String() string { return enumName(rlsTypeNames[:], int(t)) }

// MarshalText renders the symbolic name.
func (t RLSType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func rlsTypeFromCode(code int) RLSType {
	switch code {
	case 1:
		return RLSTypeAcknowledgement
	case 15:
		return RLSTypeTest
	default:
		return RLSTypeOther
	}
}

// DeactivationMethod records how a cancellation was triggered.
type DeactivationMethod int

const (
	DeactivationAutomaticByExternalMeans DeactivationMethod = iota
	DeactivationManualByUser
	DeactivationOther
)

var deactivationMethodNames = [...]string{
	"AUTOMATIC_DEACTIVATION_BY_EXTERNAL_MEANS",
	"MANUAL_DEACTIVATION_BY_USER",
	"OTHER",
}

func (m DeactivationMethod) String() string { return enumName(deactivationMethodNames[:], int(m)) }

// MarshalText renders the symbolic name.
func (m DeactivationMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func deactivationMethodFromCode(code int) DeactivationMethod {
	switch code {
	case 1:
		return DeactivationAutomaticByExternalMeans
	case 2:
		return DeactivationManualByUser
	default:
		return DeactivationOther
	}
}

// VesselIDType discriminates the VesselID variants.
type VesselIDType int

const (
	VesselIDTypeMMSI VesselIDType = iota
	VesselIDTypeRadioCallSign
	VesselIDTypeAircraftRegistrationMarking
	VesselIDTypeAviation24BitAddress
	VesselIDTypeAircraftOperatorAndSerialNumber
)

var vesselIDTypeNames = [...]string{
	"MMSI",
	"RADIO_CALL_SIGN",
	"AIRCRAFT_REGISTRATION_MARKING",
	"AVIATION_24_BIT_ADDRESS",
	"AIRCRAFT_OPERATOR_AND_SERIAL_NUMBER",
}

func (t VesselIDType) String() string { return enumName(vesselIDTypeNames[:], int(t)) }

// MarshalText renders the symbolic name.
func (t VesselIDType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// RotatingFieldType discriminates the RotatingField variants.
type RotatingFieldType int

const (
	RotatingFieldTypeObjectiveRequirements RotatingFieldType = iota
	RotatingFieldTypeEltDtInFlightEmergency
	RotatingFieldTypeRLS
	RotatingFieldTypeNationalUse
	RotatingFieldTypeCancellation
	RotatingFieldTypeUnknown
)

var rotatingFieldTypeNames = [...]string{
	"OBJECTIVE_REQUIREMENTS",
	"ELT_DT_IN_FLIGHT_EMERGENCY",
	"RLS",
	"NATIONAL_USE",
	"CANCELLATION",
	"UNKNOWN",
}

func (t RotatingFieldType) String() string { return enumName(rotatingFieldTypeNames[:], int(t)) }

// MarshalText renders the symbolic name.
func (t RotatingFieldType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "UNKNOWN"
	}
	return names[v]
}
