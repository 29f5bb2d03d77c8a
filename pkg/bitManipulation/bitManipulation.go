package bitManipulation

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var ErrShortRead = errors.New("not enough bits left in sequence")

// Sequence is an ordered run of bits with a read cursor. Bits are appended at the end and consumed from the cursor.
type Sequence struct {
	bits   []int
	cursor int
}

// NewSequence returns an empty sequence with room for capacity bits
func NewSequence(capacity int) *Sequence {
	if capacity < 0 {
		capacity = 0
	}
	return &Sequence{bits: make([]int, 0, capacity)}
}

// Function that converts string of 1/0s to a Sequence
func StringToSequence(s string) (*Sequence, error) {
	seq := NewSequence(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			seq.bits = append(seq.bits, 0)
		case '1':
			seq.bits = append(seq.bits, 1)
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", s[i], i)
		}
	}
	return seq, nil
}

// Append writes the lowest width bits of value, most significant bit first
func (s *Sequence) Append(value uint, width int) {
	for i := width - 1; i >= 0; i-- {
		s.bits = append(s.bits, int((value>>uint(i))&1))
	}
}

// AppendNatural writes value using at least minWidth bits. Values that need more bits keep their natural width.
func (s *Sequence) AppendNatural(value uint, minWidth int) {
	s.Append(value, Width(value, minWidth))
}

// Peek returns the next n bits as an unsigned value without moving the cursor
func (s *Sequence) Peek(n int) (uint, error) {
	if n < 0 || n > s.Remaining() {
		return 0, fmt.Errorf("%w: want %d, have %d", ErrShortRead, n, s.Remaining())
	}
	var v uint
	for _, b := range s.bits[s.cursor : s.cursor+n] {
		v = v<<1 | uint(b)
	}
	return v, nil
}

// Read is like Peek but advances the cursor past the returned bits
func (s *Sequence) Read(n int) (uint, error) {
	v, err := s.Peek(n)
	if err != nil {
		return 0, err
	}
	s.cursor += n
	return v, nil
}

// ReadPadded consumes up to n bits. When fewer than n bits are left, the value is zero padded on the right to n bits.
func (s *Sequence) ReadPadded(n int) uint {
	have := n
	if have > s.Remaining() {
		have = s.Remaining()
	}
	v, _ := s.Read(have)
	return v << uint(n-have)
}

// Skip advances the cursor by up to n bits and returns how many were skipped
func (s *Sequence) Skip(n int) int {
	if n > s.Remaining() {
		n = s.Remaining()
	}
	if n > 0 {
		s.cursor += n
	}
	return n
}

// Remaining is the number of unread bits
func (s *Sequence) Remaining() int {
	return len(s.bits) - s.cursor
}

// Len is the total number of bits ever appended
func (s *Sequence) Len() int {
	return len(s.bits)
}

// String renders the whole sequence, read or not, as 1/0s
func (s *Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s.bits))
	for _, bit := range s.bits {
		if bit == 0 {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}

// Width is the number of binary digits needed for value, but never less than minWidth
func Width(value uint, minWidth int) int {
	w := bits.Len(value)
	if w < minWidth {
		return minWidth
	}
	return w
}

// ToBinary renders value in base 2, left padded with zeros to minWidth. Longer values are never truncated.
func ToBinary(value uint, minWidth int) string {
	digits := strconv.FormatUint(uint64(value), 2)
	if len(digits) >= minWidth {
		return digits
	}
	return strings.Repeat("0", minWidth-len(digits)) + digits
}
