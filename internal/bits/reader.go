package bits

import (
	"fmt"
	"strings"
)

// maxIntBits is the widest field Int can return without overflowing.
const maxIntBits = 63

// Reader is a cursor over a Bits sequence. Every read advances the cursor by
// the number of bits consumed.
//
// A Reader keeps the first error it hits. After that every read is a no-op
// returning a zero value, so a decoder can read a run of fields and check
// Err once at the end.
type Reader struct {
	bits Bits
	pos  int
	err  error
}

// NewReader returns a cursor at the start of b.
func NewReader(b Bits) *Reader {
	return &Reader{bits: b}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Pos returns the index of the next bit to be read.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the length of the underlying sequence.
func (r *Reader) Len() int {
	return r.bits.Len()
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.bits.Len() - r.pos
}

// SetPos moves the cursor to an absolute index. Len is a valid position.
func (r *Reader) SetPos(pos int) {
	if r.err != nil {
		return
	}
	if pos < 0 || pos > r.bits.Len() {
		r.fail(fmt.Errorf("bits: set position %d of %d: %w", pos, r.bits.Len(), ErrOutOfBounds))
		return
	}
	r.pos = pos
}

// Skip advances the cursor by n bits.
func (r *Reader) Skip(n int) {
	if r.take(n) {
		r.pos += n
	}
}

// Bool reads a single bit.
func (r *Reader) Bool() bool {
	if !r.take(1) {
		return false
	}
	v := r.bits.b[r.pos]
	r.pos++
	return v
}

// Int reads n bits as an unsigned big-endian integer. n must be in 1..63.
func (r *Reader) Int(n int) int {
	if r.err != nil {
		return 0
	}
	if n < 1 || n > maxIntBits {
		r.fail(fmt.Errorf("bits: integer width %d: %w", n, ErrInvalidLength))
		return 0
	}
	if !r.take(n) {
		return 0
	}
	v := 0
	for _, b := range r.bits.b[r.pos : r.pos+n] {
		v <<= 1
		if b {
			v |= 1
		}
	}
	r.pos += n
	return v
}

// Read returns the next n bits as an independent sequence.
func (r *Reader) Read(n int) Bits {
	if !r.take(n) {
		return Bits{}
	}
	b := FromBools(r.bits.b[r.pos : r.pos+n])
	r.pos += n
	return b
}

// BitString reads n bits and renders them as '0' and '1' characters.
func (r *Reader) BitString(n int) string {
	if r.err != nil {
		return ""
	}
	return r.Read(n).String()
}

// Hex reads n hex digits, 4 bits each.
func (r *Reader) Hex(n int) string {
	if r.err != nil {
		return ""
	}
	if n < 0 {
		r.fail(fmt.Errorf("bits: hex width %d: %w", n, ErrInvalidLength))
		return ""
	}
	s, err := r.Read(4 * n).Hex()
	if err != nil {
		r.fail(err)
		return ""
	}
	return s
}

// Baudot reads n characters of 6-bit modified Baudot.
func (r *Reader) Baudot(n int) string {
	return r.baudot(n, baudotWidth, BaudotChar)
}

// BaudotShort reads n characters of 5-bit modified Baudot, the letters and
// space subset of the 6-bit table.
func (r *Reader) BaudotShort(n int) string {
	return r.baudot(n, baudotShortWidth, BaudotShortChar)
}

func (r *Reader) baudot(n, width int, lookup func(int) (rune, error)) string {
	if r.err != nil {
		return ""
	}
	start := r.pos
	var sb strings.Builder
	for i := 0; i < n; i++ {
		code := r.Int(width)
		if r.err != nil {
			return ""
		}
		c, err := lookup(code)
		if err != nil {
			r.fail(fmt.Errorf("bits: character %d at position %d: %w", i, start+i*width, err))
			return ""
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// take reports whether n more bits can be consumed, recording the failure
// otherwise.
func (r *Reader) take(n int) bool {
	if r.err != nil {
		return false
	}
	if n < 0 {
		r.fail(fmt.Errorf("bits: read width %d: %w", n, ErrInvalidLength))
		return false
	}
	if r.pos+n > r.bits.Len() {
		r.fail(fmt.Errorf("bits: read %d bits at position %d of %d: %w", n, r.pos, r.bits.Len(), ErrOutOfBounds))
		return false
	}
	return true
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
