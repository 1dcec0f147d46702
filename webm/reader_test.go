package webm

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robmikh/webm-iterable/ebml"
)

func header() ebml.TagData {
	return ebml.Master([]ebml.Child{
		{ID: IDDocType, Data: ebml.String("webm")},
		{ID: IDDocTypeVersion, Data: ebml.Uint(4)},
	})
}

func TestReadStreamedMaster(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTag(IDEBML, header()))

	r := NewReader(&buf)

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDEBML), tag.ID)
	require.Equal(t, TagStart, tag.Kind)
	require.False(t, tag.SizeUnknown)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDDocType), tag.ID)
	require.Equal(t, TagFull, tag.Kind)
	require.Equal(t, ebml.String("webm"), tag.Data)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDDocTypeVersion), tag.ID)
	require.Equal(t, ebml.Uint(4), tag.Data)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDEBML), tag.ID)
	require.Equal(t, TagEnd, tag.Kind)

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestReadBufferedMaster(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTag(IDEBML, header()))

	r := NewReader(&buf)
	r.BufferMaster(IDEBML)

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDEBML), tag.ID)
	require.Equal(t, TagFull, tag.Kind)
	require.Equal(t, header(), tag.Data)

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestReadNestedBufferedMaster(t *testing.T) {
	tracks := ebml.Master([]ebml.Child{
		{ID: IDTrackEntry, Data: ebml.Master([]ebml.Child{
			{ID: IDTrackNumber, Data: ebml.Uint(1)},
			{ID: IDCodecID, Data: ebml.String("V_VP9")},
			{ID: IDVideo, Data: ebml.Master([]ebml.Child{
				{ID: IDPixelWidth, Data: ebml.Uint(1920)},
				{ID: IDPixelHeight, Data: ebml.Uint(1080)},
			})},
		})},
	})

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTag(IDTracks, tracks))

	r := NewReader(&buf)
	r.BufferMaster(IDTracks)

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, tracks, tag.Data)
}

func TestReadScalarTypes(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTag(IDDuration, ebml.Float(12.5)))
	require.NoError(t, w.WriteTag(IDDiscardPadding, ebml.Int(-100)))
	require.NoError(t, w.WriteTag(IDSegmentUID, ebml.Binary([]byte{1, 2, 3})))

	r := NewReader(&buf)

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, ebml.Float(12.5), tag.Data)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, ebml.Int(-100), tag.Data)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, ebml.Binary([]byte{1, 2, 3}), tag.Data)
}

func TestReadUnknownSizeMaster(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.BeginMaster(IDSegment))
	require.NoError(t, w.WriteTag(IDTimecode, ebml.Uint(1000)))

	r := NewReader(&buf)

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, uint32(IDSegment), tag.ID)
	require.Equal(t, TagStart, tag.Kind)
	require.True(t, tag.SizeUnknown)

	tag, err = r.Next()
	require.NoError(t, err)
	require.Equal(t, ebml.Uint(1000), tag.Data)

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestReadTruncatedElement(t *testing.T) {
	// DocType claims 4 content bytes but only 2 are present.
	r := NewReader(bytes.NewReader([]byte{0x42, 0x82, 0x84, 'w', 'e'}))

	_, err := r.Next()
	require.Error(t, err)
	require.NotEqual(t, io.EOF, err)
}

func TestReadStringPadding(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x42, 0x82, 0x86, 'w', 'e', 'b', 'm', 0x00, 0x00}))

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, ebml.String("webm"), tag.Data)
}

func TestReadUnknownID(t *testing.T) {
	// An id outside the register table passes through as binary.
	r := NewReader(bytes.NewReader([]byte{0xC3, 0x82, 0xAB, 0xCD}))

	tag, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "Unknown", tag.Name)
	require.Equal(t, ebml.Binary([]byte{0xAB, 0xCD}), tag.Data)
}
