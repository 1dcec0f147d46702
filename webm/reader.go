package webm

import (
	"io"
	"math"
	"math/bits"
	"strings"

	"github.com/pkg/errors"

	"github.com/robmikh/webm-iterable/ebml"
)

// TagKind distinguishes the three shapes a Reader yields.
type TagKind uint8

const (
	// TagFull is a fully materialized element: a scalar, or a master the
	// reader was told to buffer.
	TagFull TagKind = iota
	// TagStart marks the opening of a master element whose children will
	// be yielded individually.
	TagStart
	// TagEnd marks the point where a sized master element's content ran
	// out.
	TagEnd
)

// Tag is one element yielded by a Reader.
type Tag struct {
	Register
	Kind        TagKind
	Size        uint64
	SizeUnknown bool
	Data        ebml.TagData
}

type openMaster struct {
	id  uint32
	end int64 // -1 when the master's size is unknown
}

// Reader walks the elements of an EBML stream in document order. Master
// elements are yielded as start/end markers so arbitrarily large
// clusters never have to be resident at once; ids passed to BufferMaster
// are instead read whole and yielded as a single master tag tree.
//
// Masters of unknown size are yielded as start markers but their end is
// not tracked; such elements run to the end of the stream in practice.
type Reader struct {
	r        io.Reader
	pos      int64
	open     []openMaster
	buffered map[uint32]struct{}
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, buffered: map[uint32]struct{}{}}
}

// BufferMaster makes the reader materialize every element with one of
// the given master ids into a full tag tree instead of streaming its
// children.
func (r *Reader) BufferMaster(ids ...uint32) {
	for _, id := range ids {
		r.buffered[id] = struct{}{}
	}
}

// Next returns the next tag in the stream. It returns io.EOF once the
// stream is exhausted at an element boundary.
func (r *Reader) Next() (Tag, error) {
	if n := len(r.open); n > 0 && r.open[n-1].end == r.pos {
		top := r.open[n-1]
		r.open = r.open[:n-1]
		return Tag{Register: GetRegister(top.id), Kind: TagEnd}, nil
	}

	start := r.pos
	id, err := r.readID()
	if err != nil {
		if err == io.EOF {
			return Tag{}, io.EOF
		}
		return Tag{}, errors.Wrapf(err, "webm: element id at offset %d", start)
	}
	size, unknown, err := r.readSize()
	if err != nil {
		return Tag{}, errors.Wrapf(err, "webm: element size at offset %d", start)
	}
	reg := GetRegister(id)

	if reg.Type == ebml.TypeMaster {
		if _, ok := r.buffered[id]; ok {
			if unknown {
				return Tag{}, errors.Errorf("webm: %s at offset %d: cannot buffer a master of unknown size", reg.Name, start)
			}
			content, err := r.readContent(size)
			if err != nil {
				return Tag{}, errors.Wrapf(err, "webm: %s at offset %d", reg.Name, start)
			}
			kids, err := parseChildren(content)
			if err != nil {
				return Tag{}, errors.Wrapf(err, "webm: inside %s at offset %d", reg.Name, start)
			}
			return Tag{Register: reg, Kind: TagFull, Size: size, Data: ebml.Master(kids)}, nil
		}
		end := int64(-1)
		if !unknown {
			end = r.pos + int64(size)
		}
		r.open = append(r.open, openMaster{id: id, end: end})
		return Tag{Register: reg, Kind: TagStart, Size: size, SizeUnknown: unknown}, nil
	}

	content, err := r.readContent(size)
	if err != nil {
		return Tag{}, errors.Wrapf(err, "webm: %s at offset %d", reg.Name, start)
	}
	data, err := decodeValue(reg.Type, content)
	if err != nil {
		return Tag{}, errors.Wrapf(err, "webm: %s at offset %d", reg.Name, start)
	}
	return Tag{Register: reg, Kind: TagFull, Size: size, Data: data}, nil
}

func (r *Reader) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, err
	}
	r.pos++
	return b[0], nil
}

func (r *Reader) readContent(size uint64) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, err
	}
	r.pos += int64(size)
	return buf, nil
}

// readID reads an element id, keeping the class marker bits: ids are
// compared and written with the marker included.
func (r *Reader) readID() (uint32, error) {
	first, err := r.readByte()
	if err != nil {
		return 0, err
	}
	width := bits.LeadingZeros8(first) + 1
	if width > 4 {
		return 0, errors.New("invalid id lead byte")
	}
	id := uint32(first)
	for i := 1; i < width; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, noEOF(err)
		}
		id = id<<8 | uint32(b)
	}
	return id, nil
}

// readSize reads an element size vint. The all-ones pattern means the
// element's size is unknown.
func (r *Reader) readSize() (uint64, bool, error) {
	first, err := r.readByte()
	if err != nil {
		return 0, false, noEOF(err)
	}
	width := bits.LeadingZeros8(first) + 1
	if width > 8 {
		return 0, false, errors.New("invalid size lead byte")
	}
	size := uint64(first) & (0xFF >> width)
	for i := 1; i < width; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, false, noEOF(err)
		}
		size = size<<8 | uint64(b)
	}
	unknown := size == uint64(1)<<(7*width)-1
	return size, unknown, nil
}

// noEOF turns a bare EOF in the middle of a field into ErrUnexpectedEOF,
// the way io.ReadFull does for multi-byte reads.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// parseChildren parses a buffered master's content into an ordered child
// list, descending into nested masters.
func parseChildren(data []byte) ([]ebml.Child, error) {
	var kids []ebml.Child
	pos := 0
	for pos < len(data) {
		id, n, err := parseID(data[pos:])
		if err != nil {
			return nil, errors.Wrapf(err, "child at offset %d", pos)
		}
		size, m, unknown, err := parseSize(data[pos+n:])
		if err != nil {
			return nil, errors.Wrapf(err, "child at offset %d", pos)
		}
		if unknown {
			return nil, errors.Errorf("child at offset %d has unknown size", pos)
		}
		body := pos + n + m
		if uint64(len(data)-body) < size {
			return nil, errors.Errorf("child at offset %d overruns its parent", pos)
		}
		content := data[body : body+int(size)]

		reg := GetRegister(id)
		var d ebml.TagData
		if reg.Type == ebml.TypeMaster {
			sub, err := parseChildren(content)
			if err != nil {
				return nil, errors.Wrapf(err, "inside %s at offset %d", reg.Name, pos)
			}
			d = ebml.Master(sub)
		} else {
			d, err = decodeValue(reg.Type, content)
			if err != nil {
				return nil, errors.Wrapf(err, "%s at offset %d", reg.Name, pos)
			}
		}
		kids = append(kids, ebml.Child{ID: id, Data: d})
		pos = body + int(size)
	}
	return kids, nil
}

func parseID(data []byte) (uint32, int, error) {
	if len(data) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	width := bits.LeadingZeros8(data[0]) + 1
	if width > 4 {
		return 0, 0, errors.New("invalid id lead byte")
	}
	if width > len(data) {
		return 0, 0, io.ErrUnexpectedEOF
	}
	var id uint32
	for _, b := range data[:width] {
		id = id<<8 | uint32(b)
	}
	return id, width, nil
}

func parseSize(data []byte) (uint64, int, bool, error) {
	size, width, err := ebml.ReadVint(data)
	if err != nil {
		return 0, 0, false, io.ErrUnexpectedEOF
	}
	unknown := size == uint64(1)<<(7*width)-1
	return size, width, unknown, nil
}

// decodeValue interprets raw content bytes per the element's EBML type.
func decodeValue(typ ebml.Type, content []byte) (ebml.TagData, error) {
	switch typ {
	case ebml.TypeUint:
		if len(content) > 8 {
			return ebml.TagData{}, errors.Errorf("uint content is %d bytes", len(content))
		}
		return ebml.Uint(ebml.PackUint(content)), nil
	case ebml.TypeInt:
		if len(content) > 8 {
			return ebml.TagData{}, errors.Errorf("int content is %d bytes", len(content))
		}
		return ebml.Int(ebml.PackInt(content)), nil
	case ebml.TypeFloat:
		switch len(content) {
		case 0:
			return ebml.Float(0), nil
		case 4:
			return ebml.Float(float64(math.Float32frombits(uint32(ebml.PackUint(content))))), nil
		case 8:
			return ebml.Float(math.Float64frombits(ebml.PackUint(content))), nil
		}
		return ebml.TagData{}, errors.Errorf("float content is %d bytes", len(content))
	case ebml.TypeString:
		// Matroska allows NUL padding at the end of strings.
		return ebml.String(strings.TrimRight(string(content), "\x00")), nil
	}
	return ebml.Binary(content), nil
}
