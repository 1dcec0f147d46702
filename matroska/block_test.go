package matroska

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robmikh/webm-iterable/ebml"
)

func frame(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

func TestDecodeBlockNoLacing(t *testing.T) {
	data := append([]byte{0x81, 0x01, 0x2C, 0x00}, frame(0xAA, 12)...)

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, uint64(1), b.Track)
	require.Equal(t, int16(300), b.Timecode)
	require.False(t, b.Invisible)
	require.Equal(t, NoLacing, b.Lacing)
	require.Equal(t, [][]byte{frame(0xAA, 12)}, b.Frames)

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestDecodeBlockNegativeTimecode(t *testing.T) {
	data := []byte{0x81, 0xFF, 0xFE, 0x00, 0x01}

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, int16(-2), b.Timecode)

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestDecodeBlockInvisible(t *testing.T) {
	data := []byte{0x81, 0x00, 0x00, 0x08, 0x01}

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.True(t, b.Invisible)
	require.Equal(t, NoLacing, b.Lacing)
}

func TestDecodeBlockWideTrack(t *testing.T) {
	// Track 5000 does not fit a 1 byte vint.
	data := append([]byte{0x53, 0x88, 0x00, 0x00, 0x00}, 0xAB)

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), b.Track)

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestXiphLacing(t *testing.T) {
	// Three frames of 10, 300 and 5 bytes: the 300 byte frame needs the
	// continued 255+45 size run, the last frame's size stays implicit.
	data := []byte{0x81, 0x00, 0x00, 0x02, 0x02, 0x0A, 0xFF, 0x2D}
	data = append(data, frame(0xAA, 10)...)
	data = append(data, frame(0xBB, 300)...)
	data = append(data, frame(0xCC, 5)...)

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, XiphLacing, b.Lacing)
	require.Equal(t, [][]byte{frame(0xAA, 10), frame(0xBB, 300), frame(0xCC, 5)}, b.Frames)

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestXiphLacingExact255(t *testing.T) {
	// A 255 byte frame encodes as the two size bytes 255, 0.
	b := &Block{Track: 1, Lacing: XiphLacing, Frames: [][]byte{frame(0xAA, 255), frame(0xBB, 3)}}

	data, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0x00}, data[5:7])

	got, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, b.Frames, got.Frames)
}

func TestFixedSizeLacing(t *testing.T) {
	data := append([]byte{0x81, 0x00, 0x00, 0x04, 0x02}, frame(0xAA, 30)...)

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, FixedSizeLacing, b.Lacing)
	require.Len(t, b.Frames, 3)
	for _, f := range b.Frames {
		require.Equal(t, frame(0xAA, 10), f)
	}

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestFixedSizeLacingUneven(t *testing.T) {
	data := append([]byte{0x81, 0x00, 0x00, 0x04, 0x02}, frame(0xAA, 31)...)

	_, err := DecodeBlock(data)
	require.ErrorIs(t, err, ErrUnevenFixedLacing)
}

func TestEBMLLacing(t *testing.T) {
	// First frame size 100 as a vint, then a signed delta of -20 for the
	// second frame, last frame implicit.
	data := []byte{0x81, 0x00, 0x00, 0x06, 0x02, 0xE4, 0xAB}
	data = append(data, frame(0xAA, 100)...)
	data = append(data, frame(0xBB, 80)...)
	data = append(data, frame(0xCC, 7)...)

	b, err := DecodeBlock(data)
	require.NoError(t, err)
	require.Equal(t, EBMLLacing, b.Lacing)
	require.Equal(t, [][]byte{frame(0xAA, 100), frame(0xBB, 80), frame(0xCC, 7)}, b.Frames)

	out, err := b.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEBMLLacingNegativeSize(t *testing.T) {
	// First frame claims 10 bytes, the delta of -20 would leave the
	// second frame with a negative size.
	data := append([]byte{0x81, 0x00, 0x00, 0x06, 0x02, 0x8A, 0xAB}, frame(0xAA, 20)...)

	_, err := DecodeBlock(data)
	require.ErrorIs(t, err, ErrLacingSizeMismatch)
}

func TestLacingSizeMismatch(t *testing.T) {
	// Explicit Xiph size of 10 but only 5 payload bytes remain.
	data := append([]byte{0x81, 0x00, 0x00, 0x02, 0x01, 0x0A}, frame(0xAA, 5)...)

	_, err := DecodeBlock(data)
	require.ErrorIs(t, err, ErrLacingSizeMismatch)
}

func TestDecodeBlockTruncated(t *testing.T) {
	for _, tc := range []struct {
		data []byte
		err  error
	}{
		{nil, ErrTruncatedVint},
		{[]byte{}, ErrTruncatedVint},
		{[]byte{0x40}, ErrTruncatedVint},
		{[]byte{0x81}, ErrTruncatedHeader},
		{[]byte{0x81, 0x00}, ErrTruncatedHeader},
		{[]byte{0x81, 0x00, 0x00}, ErrTruncatedHeader},
		{[]byte{0x81, 0x00, 0x00, 0x02}, ErrTruncatedHeader}, // laced, no count byte
		{[]byte{0x81, 0x00, 0x00, 0x06, 0x01}, ErrTruncatedVint},
	} {
		_, err := DecodeBlock(tc.data)
		require.ErrorIs(t, err, tc.err, "% x", tc.data)
	}
}

func TestBlockFromTagWrongVariant(t *testing.T) {
	for _, data := range []ebml.TagData{
		ebml.Uint(5),
		ebml.Int(-5),
		ebml.Float(1.5),
		ebml.String("nope"),
		ebml.Master(nil),
	} {
		_, err := BlockFromTag(data)
		require.ErrorIs(t, err, ErrWrongVariant)
	}
}

func TestBlockTagRoundTrip(t *testing.T) {
	b := &Block{Track: 2, Timecode: -40, Invisible: true, Lacing: XiphLacing,
		Frames: [][]byte{frame(0x01, 4), frame(0x02, 9)}}

	tag, err := b.Tag()
	require.NoError(t, err)
	require.Equal(t, ebml.TypeBinary, tag.Type)

	got, err := BlockFromTag(tag)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestEncodeErrors(t *testing.T) {
	var encErr *EncodeError

	_, err := (&Block{Track: 1}).Encode()
	require.ErrorAs(t, err, &encErr)

	_, err = (&Block{Track: 1, Frames: [][]byte{{1}, {2}}}).Encode()
	require.ErrorAs(t, err, &encErr)

	_, err = (&Block{Track: 1, Lacing: FixedSizeLacing,
		Frames: [][]byte{frame(0xAA, 2), frame(0xBB, 3)}}).Encode()
	require.ErrorAs(t, err, &encErr)

	over := make([][]byte, 257)
	for i := range over {
		over[i] = []byte{0x00}
	}
	_, err = (&Block{Track: 1, Lacing: FixedSizeLacing, Frames: over}).Encode()
	require.ErrorAs(t, err, &encErr)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	blocks := []*Block{
		{Track: 1, Timecode: 0, Frames: [][]byte{frame(0xAA, 1)}},
		{Track: 300, Timecode: -1, Invisible: true, Frames: [][]byte{frame(0xAB, 64)}},
		{Track: 7, Timecode: 512, Lacing: XiphLacing,
			Frames: [][]byte{frame(0x01, 255), frame(0x02, 256), frame(0x03, 1)}},
		{Track: 7, Timecode: 512, Lacing: EBMLLacing,
			Frames: [][]byte{frame(0x01, 200), frame(0x02, 40), frame(0x03, 40)}},
		{Track: 9, Timecode: 33, Lacing: FixedSizeLacing,
			Frames: [][]byte{frame(0x01, 16), frame(0x02, 16), frame(0x03, 16), frame(0x04, 16)}},
	}
	for _, b := range blocks {
		data, err := b.Encode()
		require.NoError(t, err)

		got, err := DecodeBlock(data)
		require.NoError(t, err)
		require.Equal(t, b, got)

		again, err := got.Encode()
		require.NoError(t, err)
		require.Equal(t, data, again)
	}
}
