package webm

import (
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/robmikh/webm-iterable/ebml"
)

// Writer emits EBML elements to an underlying stream. Master tag data is
// written recursively with exact sizes; BeginMaster exists for the
// streaming case where a segment's size cannot be known up front.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteTag writes one complete element: id, content size, content.
func (w *Writer) WriteTag(id uint32, data ebml.TagData) error {
	raw, err := appendTag(nil, id, data)
	if err != nil {
		return err
	}
	_, err = w.w.Write(raw)
	return errors.Wrapf(err, "webm: writing %s", GetRegister(id).Name)
}

// BeginMaster opens a master element of unknown size. Everything written
// afterwards is inside it; an unknown-size master is closed only by the
// end of the stream.
func (w *Writer) BeginMaster(id uint32) error {
	raw := append(idBytes(id), 0xFF)
	_, err := w.w.Write(raw)
	return errors.Wrapf(err, "webm: writing %s", GetRegister(id).Name)
}

func appendTag(out []byte, id uint32, data ebml.TagData) ([]byte, error) {
	content, err := encodeValue(data)
	if err != nil {
		return nil, errors.Wrapf(err, "webm: encoding %s", GetRegister(id).Name)
	}
	size, err := ebml.WriteVint(uint64(len(content)))
	if err != nil {
		return nil, errors.Wrapf(err, "webm: encoding %s", GetRegister(id).Name)
	}
	out = append(out, idBytes(id)...)
	out = append(out, size...)
	out = append(out, content...)
	return out, nil
}

func encodeValue(data ebml.TagData) ([]byte, error) {
	switch data.Type {
	case ebml.TypeMaster:
		var out []byte
		for _, kid := range data.Children {
			var err error
			out, err = appendTag(out, kid.ID, kid.Data)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case ebml.TypeUint:
		return ebml.UnpackUint(data.Uint), nil
	case ebml.TypeInt:
		return ebml.UnpackInt(data.Int), nil
	case ebml.TypeFloat:
		return unpack8(math.Float64bits(data.Float)), nil
	case ebml.TypeString:
		return []byte(data.Str), nil
	}
	return data.Bytes, nil
}

// idBytes emits an element id verbatim: the class marker bits are part
// of the stored id, so no vint re-encoding happens here.
func idBytes(id uint32) []byte {
	return ebml.UnpackUint(uint64(id))
}

func unpack8(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}
