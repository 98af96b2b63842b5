package sgb

import (
	"fmt"
	"strings"
	"testing"

	"sgbdecode/internal/bits"
)

// sampleBits is the worked example detection message from C/T.018.
const sampleBits = "00000000111001100000100011110100" +
	"11001001100001100001100101100001" +
	"10001000101000000100011111000000" +
	"00000000000000000000000000000000" +
	"00000000000011111111111111000000" +
	"00010000000011000001101000000000" +
	"1001011000"

// sampleHex is sampleBits in ground segment form, with 2 leading pad bits.
const sampleHex = "0039823D32618658622811F0000000000003FFF004030680258"

// field renders v as a zero padded binary field of the given width.
func field(v, width int) string {
	return fmt.Sprintf("%0*b", width, v)
}

// baudot encodes s with the 6-bit table.
func baudot(t *testing.T, s string) string {
	return encodeBaudot(t, s, 6)
}

// baudotShort encodes s with the 5-bit table.
func baudotShort(t *testing.T, s string) string {
	return encodeBaudot(t, s, 5)
}

func encodeBaudot(t *testing.T, s string, width int) string {
	t.Helper()
	codes := map[rune]int{}
	for code := 0; code < 64; code++ {
		if c, err := bits.BaudotChar(code); err == nil {
			codes[c] = code
		}
	}
	var sb strings.Builder
	for _, c := range s {
		code, ok := codes[c]
		if !ok {
			t.Fatalf("no baudot code for %q", c)
		}
		sb.WriteString(field(code&(1<<width-1), width))
	}
	return sb.String()
}

// reader parses a bit string and returns a cursor over it.
func reader(t *testing.T, s string) *bits.Reader {
	t.Helper()
	b, err := bits.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b.Reader()
}

// withField overwrites part of sampleBits.
func withField(t *testing.T, offset int, value string) string {
	t.Helper()
	b, err := bits.MustParse(sampleBits).Replace(offset, bits.MustParse(value))
	if err != nil {
		t.Fatalf("replace at %d: %v", offset, err)
	}
	return b.String()
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
