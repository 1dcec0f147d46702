package matroska

import "github.com/robmikh/webm-iterable/ebml"

// SimpleBlock is the parsed form of a Matroska SimpleBlock element: a
// Block plus the keyframe and discardable flags, which occupy bits of the
// flag byte that a plain Block leaves reserved. The same buffer therefore
// decodes as either element; only the meaning of those two bits changes.
type SimpleBlock struct {
	Block
	Keyframe    bool
	Discardable bool
}

// DecodeSimpleBlock parses the binary content of a SimpleBlock element.
func DecodeSimpleBlock(data []byte) (*SimpleBlock, error) {
	b, flags, err := decodeBlock(data)
	if err != nil {
		return nil, err
	}
	return &SimpleBlock{
		Block:       *b,
		Keyframe:    flags&flagKeyframe != 0,
		Discardable: flags&flagDiscardable != 0,
	}, nil
}

// SimpleBlockFromTag is DecodeSimpleBlock applied to generic tag data,
// which must be of the binary type.
func SimpleBlockFromTag(data ebml.TagData) (*SimpleBlock, error) {
	if data.Type != ebml.TypeBinary {
		return nil, ErrWrongVariant
	}
	return DecodeSimpleBlock(data.Bytes)
}

// Encode produces the binary content of a SimpleBlock element.
func (sb *SimpleBlock) Encode() ([]byte, error) {
	return sb.Block.encode(simpleBlockFlags(sb))
}

// Tag encodes the simple block as generic binary tag data.
func (sb *SimpleBlock) Tag() (ebml.TagData, error) {
	raw, err := sb.Encode()
	if err != nil {
		return ebml.TagData{}, err
	}
	return ebml.Binary(raw), nil
}
