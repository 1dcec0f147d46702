package matroska

// Lacing selects how multiple frames are packed into one block payload.
type Lacing uint8

const (
	NoLacing Lacing = iota
	XiphLacing
	FixedSizeLacing
	EBMLLacing
)

func (l Lacing) String() string {
	switch l {
	case XiphLacing:
		return "xiph"
	case FixedSizeLacing:
		return "fixed-size"
	case EBMLLacing:
		return "ebml"
	}
	return "none"
}

// Block/SimpleBlock flag byte layout. Bits 1-2 carry the lacing mode and
// bit 3 the invisible flag for both elements; the keyframe and
// discardable bits are meaningful only in a SimpleBlock and reserved in a
// plain Block.
const (
	flagDiscardable = 0x01
	lacingMask      = 0x06
	lacingBitsXiph  = 0x02
	lacingBitsFixed = 0x04
	lacingBitsEBML  = 0x06
	flagInvisible   = 0x08
	flagKeyframe    = 0x80
)

func lacingFromFlags(flags byte) Lacing {
	switch flags & lacingMask {
	case lacingBitsXiph:
		return XiphLacing
	case lacingBitsFixed:
		return FixedSizeLacing
	case lacingBitsEBML:
		return EBMLLacing
	}
	return NoLacing
}

func lacingBits(l Lacing) byte {
	switch l {
	case XiphLacing:
		return lacingBitsXiph
	case FixedSizeLacing:
		return lacingBitsFixed
	case EBMLLacing:
		return lacingBitsEBML
	}
	return 0
}

func blockFlags(b *Block) byte {
	flags := lacingBits(b.Lacing)
	if b.Invisible {
		flags |= flagInvisible
	}
	return flags
}

func simpleBlockFlags(sb *SimpleBlock) byte {
	flags := blockFlags(&sb.Block)
	if sb.Keyframe {
		flags |= flagKeyframe
	}
	if sb.Discardable {
		flags |= flagDiscardable
	}
	return flags
}
