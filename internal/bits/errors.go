package bits

import "errors"

// Error kinds shared by every decoder in the module. Callers match them with
// errors.Is; the wrapped message carries the position and field detail.
var (
	ErrInvalidLength    = errors.New("invalid length")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrOutOfBounds      = errors.New("out of bounds")
	ErrUnknownLookup    = errors.New("unknown lookup")
)
