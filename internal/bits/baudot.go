package bits

import "fmt"

const (
	baudotWidth      = 6
	baudotShortWidth = 5

	// baudotShortPrefix restores the leading bit dropped by the 5-bit form.
	baudotShortPrefix = 0x20
)

// baudot maps 6-bit modified Baudot codes to characters.
var baudot = map[int]rune{
	56: 'A', 51: 'B', 46: 'C', 50: 'D', 48: 'E', 54: 'F', 43: 'G', 37: 'H',
	44: 'I', 58: 'J', 62: 'K', 41: 'L', 39: 'M', 38: 'N', 35: 'O', 45: 'P',
	61: 'Q', 42: 'R', 52: 'S', 33: 'T', 60: 'U', 47: 'V', 57: 'W', 55: 'X',
	53: 'Y', 49: 'Z',
	36: ' ', 24: '-', 23: '/',
	13: '0', 29: '1', 25: '2', 16: '3', 10: '4', 1: '5', 21: '6', 28: '7',
	12: '8', 3: '9',
}

// BaudotChar returns the character for a 6-bit code.
func BaudotChar(code int) (rune, error) {
	c, ok := baudot[code]
	if !ok {
		return 0, fmt.Errorf("baudot code %d: %w", code, ErrUnknownLookup)
	}
	return c, nil
}

// BaudotShortChar returns the character for a 5-bit code.
func BaudotShortChar(code int) (rune, error) {
	if code < 0 || code >= baudotShortPrefix {
		return 0, fmt.Errorf("short baudot code %d: %w", code, ErrUnknownLookup)
	}
	return BaudotChar(code | baudotShortPrefix)
}
