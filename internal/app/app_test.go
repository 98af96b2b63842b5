package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgbdecode/internal/bits"
	"sgbdecode/internal/metrics"
)

const (
	sampleBits = "00000000111001100000100011110100" +
		"11001001100001100001100101100001" +
		"10001000101000000100011111000000" +
		"00000000000000000000000000000000" +
		"00000000000011111111111111000000" +
		"00010000000011000001101000000000" +
		"1001011000"
	sampleHex = "0039823D32618658622811F0000000000003FFF004030680258"
	sampleBCH = "010010010010101001001111110001010111101001001001"
	sampleID  = "9934039823D000000000000"
)

func newTestApp(t *testing.T, config Config) (*Application, *bytes.Buffer) {
	t.Helper()
	if config.Format == "" {
		config.Format = DefaultFormat
	}
	var out bytes.Buffer
	app, err := NewApplication(config, &out)
	require.NoError(t, err)
	app.Logger().SetOutput(io.Discard)
	t.Cleanup(func() { app.Close() })
	return app, &out
}

// TestConfigValidate tests configuration validation
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "JSON", config: Config{Format: FormatJSON}},
		{name: "Text", config: Config{Format: FormatText, LogMaxDays: 7}},
		{name: "Unknown format", config: Config{Format: "xml"}, wantErr: true},
		{name: "Empty format", config: Config{}, wantErr: true},
		{name: "Negative retention", config: Config{Format: FormatJSON, LogMaxDays: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestShowVersion tests the version display functionality
func TestShowVersion(t *testing.T) {
	var buf bytes.Buffer
	ShowVersion(&buf)
	assert.Contains(t, buf.String(), "Version: "+Version)
	assert.Contains(t, buf.String(), "Git Commit: "+GitCommit)
}

// TestNewApplication tests the application constructor
func TestNewApplication(t *testing.T) {
	t.Run("Logger level", func(t *testing.T) {
		app, _ := newTestApp(t, Config{Verbose: true})
		assert.Equal(t, logrus.DebugLevel, app.Logger().GetLevel())

		app, _ = newTestApp(t, Config{})
		assert.Equal(t, logrus.InfoLevel, app.Logger().GetLevel())
	})

	t.Run("Invalid config", func(t *testing.T) {
		_, err := NewApplication(Config{Format: "yaml"}, io.Discard)
		assert.Error(t, err)
	})

	t.Run("Missing TAC file", func(t *testing.T) {
		_, err := NewApplication(Config{Format: FormatJSON, TACFile: filepath.Join(t.TempDir(), "none.yaml")}, io.Discard)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// TestDecodeDetection tests one-shot detection decoding and its metrics
func TestDecodeDetection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "Hex", input: sampleHex},
		{name: "Lower case hex with whitespace", input: "  0039823d32618658622811f0000000000003fff004030680258\n"},
		{name: "Bits", input: sampleBits},
		{name: "Bad character", input: "zz", wantErr: bits.ErrInvalidCharacter},
		{name: "Short", input: "0039", wantErr: bits.ErrInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, Config{})
			d, err := app.DecodeDetection(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Failures.WithLabelValues(metrics.KindDetection, metrics.Reason(tt.wantErr))))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 230, d.TAC)
			assert.Equal(t, sampleID, d.Beacon23HexID)
			assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Decoded.WithLabelValues(metrics.KindDetection)))
		})
	}
}

// TestDecodeBeaconID tests TAC descriptions from the built-in and file tables
func TestDecodeBeaconID(t *testing.T) {
	t.Run("Built-in table", func(t *testing.T) {
		app, _ := newTestApp(t, Config{})
		id, err := app.DecodeBeaconID("99349C4023D000000000000")
		require.NoError(t, err)
		assert.Equal(t, 10000, id.TAC)
		require.NotNil(t, id.TACDescription)
		assert.Equal(t, "PLB", *id.TACDescription)
	})

	t.Run("Table file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tac.yaml")
		require.NoError(t, os.WriteFile(path, []byte("descriptions:\n  - from: 200\n    description: Bench Units\n"), 0644))

		app, _ := newTestApp(t, Config{TACFile: path})
		id, err := app.DecodeBeaconID(sampleID)
		require.NoError(t, err)
		assert.Equal(t, 230, id.TAC)
		require.NotNil(t, id.TACDescription)
		assert.Equal(t, "Bench Units", *id.TACDescription)
	})

	t.Run("Wrong length", func(t *testing.T) {
		app, _ := newTestApp(t, Config{})
		_, err := app.DecodeBeaconID(sampleID + "0")
		assert.ErrorIs(t, err, bits.ErrInvalidLength)
		assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics().Failures.WithLabelValues(metrics.KindBeaconID, "invalid_length")))
	})
}

// TestBCH tests parity computation and verification of transmissions
func TestBCH(t *testing.T) {
	transmittedHex, err := bits.BinaryToHex("00" + sampleBits + sampleBCH)
	require.NoError(t, err)

	flipped := []byte(sampleBCH)
	flipped[0] ^= 1

	tests := []struct {
		name        string
		input       string
		wantMatches *bool
		wantErr     error
	}{
		{name: "Detection hex", input: sampleHex},
		{name: "Detection bits", input: sampleBits},
		{name: "Transmission bits", input: sampleBits + sampleBCH, wantMatches: boolPtr(true)},
		{name: "Transmission hex", input: transmittedHex, wantMatches: boolPtr(true)},
		{name: "Corrupted parity", input: sampleBits + string(flipped), wantMatches: boolPtr(false)},
		{name: "Zero parity", input: sampleBits + strings.Repeat("0", 48), wantMatches: boolPtr(false)},
		{name: "Wrong length", input: "FFFF", wantErr: bits.ErrInvalidLength},
		{name: "Bad character", input: "XYZ", wantErr: bits.ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, Config{})
			got, err := app.BCH(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, sampleBCH, got.BCH)
			assert.Equal(t, tt.wantMatches, got.Matches)
		})
	}
}

// TestPrint tests rendering through the configured format
func TestPrint(t *testing.T) {
	app, out := newTestApp(t, Config{Format: FormatText})
	id, err := app.DecodeBeaconID(sampleID)
	require.NoError(t, err)
	require.NoError(t, app.Print(id))

	assert.Equal(t, "Country Code: 201\nTac: 230\nSerial Number: 573\nTest Protocol Flag: false\n", out.String())
}

func boolPtr(b bool) *bool { return &b }
