package ebml

import (
	"errors"
	"math/bits"
)

var (
	ErrVintTruncated = errors.New("ebml: vint extends past the end of data")
	ErrVintTooLarge  = errors.New("ebml: value does not fit in an 8 byte vint")
)

// ReadVint reads one unsigned variable-length integer from the start of
// data. The number of leading zero bits in the first byte gives the total
// field width in bytes (1-8); the length marker bit is masked off and the
// remaining bits are concatenated big-endian. Returns the value and the
// number of bytes consumed.
func ReadVint(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrVintTruncated
	}
	width := bits.LeadingZeros8(data[0]) + 1
	if width > 8 || width > len(data) {
		return 0, 0, ErrVintTruncated
	}
	value := uint64(data[0]) & (0xFF >> width)
	for i := 1; i < width; i++ {
		value = value<<8 | uint64(data[i])
	}
	return value, width, nil
}

// WriteVint encodes value as a minimal-width vint. The all-ones bit
// pattern is reserved for unknown element sizes, so a value that would
// produce it is bumped to the next width.
func WriteVint(value uint64) ([]byte, error) {
	width := 1
	for value >= uint64(1)<<(7*width)-1 {
		width++
		if width > 8 {
			return nil, ErrVintTooLarge
		}
	}
	return putVint(value, width), nil
}

// ReadSignedVint reads a signed vint as used by EBML lacing deltas. Width
// detection is identical to ReadVint; the raw value is then shifted down
// by 2^(7*width-1)-1 to center the range at zero.
func ReadSignedVint(data []byte) (int64, int, error) {
	raw, width, err := ReadVint(data)
	if err != nil {
		return 0, 0, err
	}
	bias := int64(1)<<(7*width-1) - 1
	return int64(raw) - bias, width, nil
}

// WriteSignedVint encodes value as a minimal-width signed vint.
func WriteSignedVint(value int64) ([]byte, error) {
	for width := 1; width <= 8; width++ {
		bias := int64(1)<<(7*width-1) - 1
		if value >= -bias && value <= bias {
			return putVint(uint64(value+bias), width), nil
		}
	}
	return nil, ErrVintTooLarge
}

func putVint(raw uint64, width int) []byte {
	b := make([]byte, width)
	for i := width - 1; i > 0; i-- {
		b[i] = byte(raw)
		raw >>= 8
	}
	b[0] = byte(raw) | 0x80>>(width-1)
	return b
}

// PackUint interprets b as a fixed-width big-endian unsigned integer.
func PackUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// UnpackUint returns the minimal big-endian representation of v,
// at least one byte long.
func UnpackUint(v uint64) []byte {
	n := 1
	for v>>(8*n) != 0 {
		n++
	}
	b := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// PackInt interprets b as a fixed-width big-endian two's complement
// signed integer.
func PackInt(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}
	v := int64(int8(b[0]))
	for _, c := range b[1:] {
		v = v<<8 | int64(c)
	}
	return v
}

// UnpackInt returns the minimal big-endian two's complement
// representation of v, at least one byte long.
func UnpackInt(v int64) []byte {
	n := 1
	for {
		top := v >> (8*n - 1)
		if top == 0 || top == -1 {
			break
		}
		n++
	}
	b := make([]byte, n)
	u := uint64(v)
	for i := n - 1; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
	return b
}
