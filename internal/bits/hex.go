package bits

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// HexToBinary expands every hex digit to its 4-bit binary form. Both upper
// and lower case digits are accepted.
func HexToBinary(s string) (string, error) {
	var sb strings.Builder
	sb.Grow(4 * len(s))
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(hexDigits, upper(s[i]))
		if v < 0 {
			return "", fmt.Errorf("bits: hex digit %q at index %d: %w", s[i], i, ErrInvalidCharacter)
		}
		for shift := 3; shift >= 0; shift-- {
			sb.WriteByte('0' + byte(v>>shift&1))
		}
	}
	return sb.String(), nil
}

// BinaryToHex packs a string of '0' and '1' characters into upper-case hex.
// The length must be a multiple of 4.
func BinaryToHex(s string) (string, error) {
	if len(s)%4 != 0 {
		return "", fmt.Errorf("bits: %d bits is not a whole number of hex digits: %w", len(s), ErrInvalidLength)
	}
	var sb strings.Builder
	sb.Grow(len(s) / 4)
	for i := 0; i < len(s); i += 4 {
		v := 0
		for j := i; j < i+4; j++ {
			v <<= 1
			switch s[j] {
			case '0':
			case '1':
				v |= 1
			default:
				return "", fmt.Errorf("bits: %q at index %d: %w", s[j], j, ErrInvalidCharacter)
			}
		}
		sb.WriteByte(hexDigits[v])
	}
	return sb.String(), nil
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
