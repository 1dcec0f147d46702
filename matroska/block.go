package matroska

import (
	"encoding/binary"

	"github.com/robmikh/webm-iterable/ebml"
)

// maxLacedFrames is fixed by the wire format: the lace count byte holds
// frame_count-1.
const maxLacedFrames = 256

// Block is the parsed form of a Matroska Block element.
//
// Track is the track number the frames belong to and Timecode is relative
// to the enclosing cluster's base timecode. Frames holds exactly one
// entry when Lacing is NoLacing and one entry per laced frame otherwise,
// in wire order. Frame bytes are never interpreted; they alias the buffer
// handed to DecodeBlock.
type Block struct {
	Track     uint64
	Timecode  int16
	Invisible bool
	Lacing    Lacing
	Frames    [][]byte
}

// DecodeBlock parses the binary content of a Block element.
func DecodeBlock(data []byte) (*Block, error) {
	b, _, err := decodeBlock(data)
	return b, err
}

// BlockFromTag is DecodeBlock applied to generic tag data, which must be
// of the binary type.
func BlockFromTag(data ebml.TagData) (*Block, error) {
	if data.Type != ebml.TypeBinary {
		return nil, ErrWrongVariant
	}
	return DecodeBlock(data.Bytes)
}

// Tag encodes the block as generic binary tag data, ready to be written
// under the Block element id.
func (b *Block) Tag() (ebml.TagData, error) {
	raw, err := b.Encode()
	if err != nil {
		return ebml.TagData{}, err
	}
	return ebml.Binary(raw), nil
}

// Encode produces the binary content of a Block element. Vints are
// emitted at minimal width, so a block decoded from minimally-encoded
// input re-encodes byte for byte.
func (b *Block) Encode() ([]byte, error) {
	return b.encode(blockFlags(b))
}

// decodeBlock also returns the raw flags byte so the SimpleBlock codec
// can pick out the bits a plain Block treats as reserved.
func decodeBlock(data []byte) (*Block, byte, error) {
	track, n, err := ebml.ReadVint(data)
	if err != nil {
		return nil, 0, ErrTruncatedVint
	}
	rest := data[n:]
	if len(rest) < 3 {
		return nil, 0, ErrTruncatedHeader
	}
	flags := rest[2]
	b := &Block{
		Track:     track,
		Timecode:  int16(binary.BigEndian.Uint16(rest)),
		Invisible: flags&flagInvisible != 0,
		Lacing:    lacingFromFlags(flags),
	}
	rest = rest[3:]

	if b.Lacing == NoLacing {
		b.Frames = [][]byte{rest}
		return b, flags, nil
	}

	if len(rest) < 1 {
		return nil, 0, ErrTruncatedHeader
	}
	count := int(rest[0]) + 1
	rest = rest[1:]

	if b.Lacing == FixedSizeLacing {
		if len(rest)%count != 0 {
			return nil, 0, ErrUnevenFixedLacing
		}
		size := len(rest) / count
		b.Frames = make([][]byte, count)
		for i := range b.Frames {
			b.Frames[i] = rest[i*size : (i+1)*size]
		}
		return b, flags, nil
	}

	sizes, n, err := readLaceSizes(b.Lacing, count, rest)
	if err != nil {
		return nil, 0, err
	}
	rest = rest[n:]

	// The last frame's size is never on the wire; it is whatever is left
	// after the explicitly sized frames.
	explicit := 0
	for _, size := range sizes {
		explicit += size
	}
	if explicit > len(rest) {
		return nil, 0, ErrLacingSizeMismatch
	}
	sizes = append(sizes, len(rest)-explicit)

	b.Frames = make([][]byte, count)
	for i, size := range sizes {
		b.Frames[i] = rest[:size]
		rest = rest[size:]
	}
	return b, flags, nil
}

// readLaceSizes reads the count-1 explicit frame sizes for Xiph or EBML
// lacing, returning the sizes and the number of bytes consumed.
func readLaceSizes(lacing Lacing, count int, data []byte) ([]int, int, error) {
	sizes := make([]int, 0, count-1)
	pos := 0

	switch lacing {
	case XiphLacing:
		for len(sizes) < count-1 {
			size := 0
			for {
				if pos >= len(data) {
					return nil, 0, ErrLacingSizeMismatch
				}
				c := data[pos]
				pos++
				size += int(c)
				if c != 255 {
					break
				}
			}
			sizes = append(sizes, size)
		}

	case EBMLLacing:
		size := 0
		for i := 0; i < count-1; i++ {
			if i == 0 {
				first, n, err := ebml.ReadVint(data[pos:])
				if err != nil {
					return nil, 0, ErrTruncatedVint
				}
				size = int(first)
				pos += n
			} else {
				delta, n, err := ebml.ReadSignedVint(data[pos:])
				if err != nil {
					return nil, 0, ErrTruncatedVint
				}
				size += int(delta)
				pos += n
			}
			if size < 0 {
				return nil, 0, ErrLacingSizeMismatch
			}
			sizes = append(sizes, size)
		}
	}

	return sizes, pos, nil
}

func (b *Block) encode(flags byte) ([]byte, error) {
	if len(b.Frames) == 0 {
		return nil, encodeErr("no frames")
	}
	if b.Lacing == NoLacing && len(b.Frames) > 1 {
		return nil, encodeErr("multiple frames without lacing")
	}
	if len(b.Frames) > maxLacedFrames {
		return nil, encodeErr("more than 256 laced frames")
	}

	track, err := ebml.WriteVint(b.Track)
	if err != nil {
		return nil, encodeErr("track number does not fit in a vint")
	}

	total := len(track) + 3
	for _, frame := range b.Frames {
		total += len(frame)
	}
	out := make([]byte, 0, total)
	out = append(out, track...)
	out = append(out, byte(uint16(b.Timecode)>>8), byte(b.Timecode))
	out = append(out, flags)

	if b.Lacing != NoLacing {
		out = append(out, byte(len(b.Frames)-1))
		sizes, err := writeLaceSizes(b.Lacing, b.Frames)
		if err != nil {
			return nil, err
		}
		out = append(out, sizes...)
	}
	for _, frame := range b.Frames {
		out = append(out, frame...)
	}
	return out, nil
}

// writeLaceSizes emits the explicit size fields for every frame but the
// last, whose size decode derives from the remainder.
func writeLaceSizes(lacing Lacing, frames [][]byte) ([]byte, error) {
	var out []byte

	switch lacing {
	case XiphLacing:
		for _, frame := range frames[:len(frames)-1] {
			size := len(frame)
			for size >= 255 {
				out = append(out, 255)
				size -= 255
			}
			out = append(out, byte(size))
		}

	case FixedSizeLacing:
		for _, frame := range frames[1:] {
			if len(frame) != len(frames[0]) {
				return nil, encodeErr("fixed-size lacing with unequal frames")
			}
		}

	case EBMLLacing:
		prev := 0
		for i, frame := range frames[:len(frames)-1] {
			var field []byte
			var err error
			if i == 0 {
				field, err = ebml.WriteVint(uint64(len(frame)))
			} else {
				field, err = ebml.WriteSignedVint(int64(len(frame) - prev))
			}
			if err != nil {
				return nil, encodeErr("frame size does not fit in a vint")
			}
			out = append(out, field...)
			prev = len(frame)
		}
	}

	return out, nil
}
