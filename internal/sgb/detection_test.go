package sgb

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sgbdecode/internal/bits"
)

// TestDecodeDetectionSample tests the worked example message
func TestDecodeDetectionSample(t *testing.T) {
	d, err := DecodeDetectionBits(sampleBits)
	require.NoError(t, err)

	assert.Equal(t, 230, d.TAC)
	assert.Equal(t, 573, d.SerialNo)
	assert.Equal(t, 201, d.CountryCode)
	assert.True(t, d.HasAtLeastOneEnabledHomingSignal)
	assert.False(t, d.HasEnabledRLS)
	assert.False(t, d.TestProtocolMessage)
	require.NotNil(t, d.EncodedGnssPosition)
	assert.InDelta(t, 48.793154, d.EncodedGnssPosition.Lat, 0.00001)
	assert.InDelta(t, 69.008759, d.EncodedGnssPosition.Lon, 0.00001)
	assert.Nil(t, d.VesselID)
	assert.Equal(t, BeaconTypeEltNotDt, d.BeaconType)
	assert.Equal(t, &ObjectiveRequirements{
		ElapsedTimeSinceActivationHours:     1,
		TimeSinceLastEncodedLocationMinutes: 6,
		AltitudeEncodedLocationMetres:       432,
		DilutionPrecisionHDOP:               inclusive(0, 1),
		DilutionPrecisionVDOP:               aboveTo(1, 2),
		ActivationMethod:                    ActivationManualByUser,
		RemainingBatteryCapacityPercent:     aboveTo(75, 100),
		GnssStatus:                          GnssLocation3D,
	}, d.RotatingField)
	assert.Equal(t, "9934039823D000000000000", d.Beacon23HexID)
	assert.Equal(t, "9934039823D0000", d.Beacon15HexID)
	assert.Equal(t, sampleBits, d.Bits().String())
}

// TestDecodeDetectionHex tests the ground segment representation
func TestDecodeDetectionHex(t *testing.T) {
	fromHex, err := DecodeDetectionHex(sampleHex)
	require.NoError(t, err)
	fromBits, err := DecodeDetectionBits(sampleBits)
	require.NoError(t, err)
	assert.Equal(t, fromBits, fromHex)

	lower, err := DecodeDetectionHex(strings.ToLower(sampleHex))
	require.NoError(t, err)
	assert.Equal(t, fromBits, lower)
}

// TestParseDetection tests input form detection
func TestParseDetection(t *testing.T) {
	for _, input := range []string{sampleBits, sampleHex} {
		d, err := ParseDetection(input)
		require.NoError(t, err)
		assert.Equal(t, "9934039823D000000000000", d.Beacon23HexID)
	}
}

// TestDecodeDetectionVariants tests sub-fields that the sample leaves empty
func TestDecodeDetectionVariants(t *testing.T) {
	t.Run("MMSI vessel id", func(t *testing.T) {
		input := withField(t, vesselIDOffset, "001"+field(123456789, 30)+field(4287, 14))
		d, err := DecodeDetectionBits(input)
		require.NoError(t, err)
		assert.Equal(t, &Mmsi{MMSI: intPtr(123456789), EpirbMMSI: intPtr(974454287)}, d.VesselID)
		assert.Equal(t, "9934039823D11D6F34550BF", d.Beacon23HexID)
		assert.Equal(t, "9934039823D11D6", d.Beacon15HexID)

		fromHex, err := DecodeDetectionHex("0039823D32618658622811F23ADE68AA17E3FFF004030680258")
		require.NoError(t, err)
		assert.Equal(t, d, fromHex)
	})

	t.Run("Test protocol", func(t *testing.T) {
		d, err := DecodeDetectionBits(withField(t, testFlagOffset, "1"))
		require.NoError(t, err)
		assert.True(t, d.TestProtocolMessage)
		assert.Equal(t, "9934039823D800000000000", d.Beacon23HexID)
	})

	t.Run("Position unavailable", func(t *testing.T) {
		d, err := DecodeDetectionBits(withField(t, 43, noEncodedLocation.String()))
		require.NoError(t, err)
		assert.Nil(t, d.EncodedGnssPosition)
	})

	t.Run("Beacon types", func(t *testing.T) {
		tests := []struct {
			code string
			want BeaconType
		}{
			{"000", BeaconTypeEltNotDt},
			{"001", BeaconTypeEpirb},
			{"010", BeaconTypePlb},
			{"011", BeaconTypeEltDt},
			{"100", BeaconTypeOther},
			{"101", BeaconTypeOther},
			{"110", BeaconTypeOther},
			{"111", BeaconTypeSystem},
		}
		for _, tt := range tests {
			d, err := DecodeDetectionBits(withField(t, 137, tt.code))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.BeaconType, tt.code)
		}
	})

	t.Run("Cancellation", func(t *testing.T) {
		d, err := DecodeDetectionBits(withField(t, 154, "1111"+strings.Repeat("0", 42)+"01"))
		require.NoError(t, err)
		assert.Equal(t, &Cancellation{DeactivationMethod: DeactivationAutomaticByExternalMeans}, d.RotatingField)
	})
}

// TestDecodeDetectionErrors tests malformed input
func TestDecodeDetectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		decode  func() (*Detection, error)
		wantErr error
	}{
		{
			name:    "Short bit string",
			decode:  func() (*Detection, error) { return DecodeDetectionBits(sampleBits[1:]) },
			wantErr: bits.ErrInvalidLength,
		},
		{
			name:    "Long bit string",
			decode:  func() (*Detection, error) { return DecodeDetectionBits(sampleBits + "0") },
			wantErr: bits.ErrInvalidLength,
		},
		{
			name:    "Bad bit character",
			decode:  func() (*Detection, error) { return DecodeDetectionBits("2" + sampleBits[1:]) },
			wantErr: bits.ErrInvalidCharacter,
		},
		{
			name:    "Short hex",
			decode:  func() (*Detection, error) { return DecodeDetectionHex(sampleHex[:50]) },
			wantErr: bits.ErrInvalidLength,
		},
		{
			name:    "Empty hex",
			decode:  func() (*Detection, error) { return DecodeDetectionHex("") },
			wantErr: bits.ErrInvalidLength,
		},
		{
			name:    "Bad hex digit",
			decode:  func() (*Detection, error) { return DecodeDetectionHex("Z" + sampleHex[1:]) },
			wantErr: bits.ErrInvalidCharacter,
		},
		{
			name: "Bad call sign character",
			decode: func() (*Detection, error) {
				return DecodeDetectionBits(withField(t, vesselIDOffset, "010"+"00"+strings.Repeat("0", 42)))
			},
			wantErr: bits.ErrUnknownLookup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.decode()
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, d)
		})
	}
}

// TestDetectionJSON tests the rendering of the worked example
func TestDetectionJSON(t *testing.T) {
	d, err := DecodeDetectionBits(sampleBits)
	require.NoError(t, err)

	got, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"tac": 230,
		"serialNo": 573,
		"countryCode": 201,
		"hasAtLeastOneEnabledHomingSignal": true,
		"hasEnabledRls": false,
		"testProtocolMessage": false,
		"encodedGnssPosition": {"lat": 48.79315185546875, "lon": 69.00875854492188},
		"beaconType": "ELT_NOT_DT",
		"rotatingField": {
			"rotatingFieldType": "OBJECTIVE_REQUIREMENTS",
			"elapsedTimeSinceActivationHours": 1,
			"timeSinceLastEncodedLocationMinutes": 6,
			"altitudeEncodedLocationMetres": 432,
			"dilutionPrecisionHdop": {"min": {"value": 0, "exclusive": false}, "max": {"value": 1, "exclusive": false}},
			"dilutionPrecisionVdop": {"min": {"value": 1, "exclusive": true}, "max": {"value": 2, "exclusive": false}},
			"activationMethod": "MANUAL_ACTIVATION_BY_USER",
			"remainingBatteryCapacityPercent": {"min": {"value": 75, "exclusive": true}, "max": {"value": 100, "exclusive": false}},
			"gnssStatus": "LOCATION_3D"
		},
		"beacon23HexId": "9934039823D000000000000",
		"beacon15HexId": "9934039823D0000"
	}`, string(got))
}

// isIdentityBit reports whether message bit i feeds the beacon identifier.
func isIdentityBit(i int) bool {
	return i < 40 || i == testFlagOffset || (i >= vesselIDOffset && i < vesselIDOffset+vesselIDBits)
}

// detectionGen draws 202-bit messages whose vessel identity always decodes.
func detectionGen() *rapid.Generator[bits.Bits] {
	return rapid.Custom(func(t *rapid.T) bits.Bits {
		raw := rapid.SliceOfN(rapid.Bool(), DetectionBits, DetectionBits).Draw(t, "bits")
		// MMSI or one of the types without payload
		kind := rapid.SampledFrom([]int{0, 1, 6, 7}).Draw(t, "vesselIdType")
		raw[vesselIDOffset] = kind&4 != 0
		raw[vesselIDOffset+1] = kind&2 != 0
		raw[vesselIDOffset+2] = kind&1 != 0
		return bits.FromBools(raw)
	})
}

// TestBeaconIDIndependence checks that the derived identifiers only depend
// on the identity fields
func TestBeaconIDIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := detectionGen().Draw(t, "a")
		noise := rapid.SliceOfN(rapid.Bool(), DetectionBits, DetectionBits).Draw(t, "noise")

		mixed := make([]bool, DetectionBits)
		for i := range mixed {
			if isIdentityBit(i) {
				mixed[i] = a.At(i)
			} else {
				mixed[i] = noise[i]
			}
		}
		b := bits.FromBools(mixed)

		da, err := DecodeDetection(a)
		if err != nil {
			t.Fatalf("decode a: %v", err)
		}
		db, err := DecodeDetection(b)
		if err != nil {
			t.Fatalf("decode b: %v", err)
		}
		if len(da.Beacon23HexID) != BeaconIDHexLen {
			t.Fatalf("23 hex id %q has length %d", da.Beacon23HexID, len(da.Beacon23HexID))
		}
		if da.Beacon23HexID != db.Beacon23HexID || da.Beacon15HexID != db.Beacon15HexID {
			t.Fatalf("ids differ: %s/%s vs %s/%s", da.Beacon23HexID, da.Beacon15HexID, db.Beacon23HexID, db.Beacon15HexID)
		}
	})
}

// TestDetectionRoundTrip checks that the derived identifier decodes back to
// the identity fields of the message and that decoding is repeatable
func TestDetectionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := detectionGen().Draw(t, "bits")

		d1, err := DecodeDetection(b)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		d2, err := DecodeDetection(b)
		if err != nil {
			t.Fatalf("decode again: %v", err)
		}
		if !reflect.DeepEqual(d1, d2) {
			t.Fatalf("decodes differ")
		}

		hex, err := bits.BinaryToHex("00" + b.String())
		if err != nil {
			t.Fatalf("hex: %v", err)
		}
		d3, err := DecodeDetectionHex(hex)
		if err != nil {
			t.Fatalf("decode hex: %v", err)
		}
		if !reflect.DeepEqual(d1, d3) {
			t.Fatalf("hex and bit decodes differ")
		}

		id, err := DecodeBeaconIDWith(d1.Beacon23HexID, nil)
		if err != nil {
			t.Fatalf("decode id %s: %v", d1.Beacon23HexID, err)
		}
		if id.CountryCode != d1.CountryCode || id.TAC != d1.TAC || id.SerialNumber != d1.SerialNo ||
			id.TestProtocolFlag != d1.TestProtocolMessage || !reflect.DeepEqual(id.VesselID, d1.VesselID) {
			t.Fatalf("id %+v does not match detection %+v", id, d1)
		}
	})
}
