package webm

import "github.com/robmikh/webm-iterable/ebml"

// Element ids for the WebM subset of Matroska, stored with their EBML
// class marker bits so they can be written to the wire verbatim.
const (
	IDEBML               = 0x1A45DFA3
	IDEBMLVersion        = 0x4286
	IDEBMLReadVersion    = 0x42F7
	IDEBMLMaxIDLength    = 0x42F2
	IDEBMLMaxSizeLength  = 0x42F3
	IDDocType            = 0x4282
	IDDocTypeVersion     = 0x4287
	IDDocTypeReadVersion = 0x4285
	IDVoid               = 0xEC
	IDCRC32              = 0xBF

	IDSegment      = 0x18538067
	IDSeekHead     = 0x114D9B74
	IDSeek         = 0x4DBB
	IDSeekID       = 0x53AB
	IDSeekPosition = 0x53AC

	IDInfo          = 0x1549A966
	IDSegmentUID    = 0x73A4
	IDTimecodeScale = 0x2AD7B1
	IDDuration      = 0x4489
	IDDateUTC       = 0x4461
	IDTitle         = 0x7BA9
	IDMuxingApp     = 0x4D80
	IDWritingApp    = 0x5741

	IDCluster           = 0x1F43B675
	IDTimecode          = 0xE7
	IDPosition          = 0xA7
	IDPrevSize          = 0xAB
	IDSimpleBlock       = 0xA3
	IDBlockGroup        = 0xA0
	IDBlock             = 0xA1
	IDBlockAdditions    = 0x75A1
	IDBlockMore         = 0xA6
	IDBlockAddID        = 0xEE
	IDBlockAdditional   = 0xA5
	IDBlockDuration     = 0x9B
	IDReferencePriority = 0xFA
	IDReferenceBlock    = 0xFB
	IDCodecState        = 0xA4
	IDDiscardPadding    = 0x75A2

	IDTracks          = 0x1654AE6B
	IDTrackEntry      = 0xAE
	IDTrackNumber     = 0xD7
	IDTrackUID        = 0x73C5
	IDTrackType       = 0x83
	IDFlagEnabled     = 0xB9
	IDFlagDefault     = 0x88
	IDFlagForced      = 0x55AA
	IDFlagLacing      = 0x9C
	IDDefaultDuration = 0x23E383
	IDName            = 0x536E
	IDLanguage        = 0x22B59C
	IDCodecID         = 0x86
	IDCodecPrivate    = 0x63A2
	IDCodecName       = 0x258688
	IDCodecDelay      = 0x56AA
	IDSeekPreRoll     = 0x56BB

	IDVideo           = 0xE0
	IDFlagInterlaced  = 0x9A
	IDStereoMode      = 0x53B8
	IDAlphaMode       = 0x53C0
	IDPixelWidth      = 0xB0
	IDPixelHeight     = 0xBA
	IDPixelCropBottom = 0x54AA
	IDPixelCropTop    = 0x54BB
	IDPixelCropLeft   = 0x54CC
	IDPixelCropRight  = 0x54DD
	IDDisplayWidth    = 0x54B0
	IDDisplayHeight   = 0x54BA
	IDDisplayUnit     = 0x54B2

	IDAudio           = 0xE1
	IDSamplingFreq    = 0xB5
	IDOutSamplingFreq = 0x78B5
	IDChannels        = 0x9F
	IDBitDepth        = 0x6264

	IDCues           = 0x1C53BB6B
	IDCuePoint       = 0xBB
	IDCueTime        = 0xB3
	IDCueTrackPos    = 0xB7
	IDCueTrack       = 0xF7
	IDCueClusterPos  = 0xF1
	IDCueRelativePos = 0xF0
	IDCueBlockNumber = 0x5378

	IDChapters = 0x1043A770
	IDTags     = 0x1254C367
)

// Register pairs an element id with the EBML type of its content and a
// display name. Unknown ids resolve to a binary register so their bytes
// still pass through a Reader untouched.
type Register struct {
	ID   uint32
	Type ebml.Type
	Name string
}

var registers = map[uint32]Register{}

func register(id uint32, typ ebml.Type, name string) {
	registers[id] = Register{ID: id, Type: typ, Name: name}
}

func init() {
	register(IDEBML, ebml.TypeMaster, "EBML")
	register(IDEBMLVersion, ebml.TypeUint, "EBMLVersion")
	register(IDEBMLReadVersion, ebml.TypeUint, "EBMLReadVersion")
	register(IDEBMLMaxIDLength, ebml.TypeUint, "EBMLMaxIDLength")
	register(IDEBMLMaxSizeLength, ebml.TypeUint, "EBMLMaxSizeLength")
	register(IDDocType, ebml.TypeString, "DocType")
	register(IDDocTypeVersion, ebml.TypeUint, "DocTypeVersion")
	register(IDDocTypeReadVersion, ebml.TypeUint, "DocTypeReadVersion")
	register(IDVoid, ebml.TypeBinary, "Void")
	register(IDCRC32, ebml.TypeBinary, "CRC-32")

	register(IDSegment, ebml.TypeMaster, "Segment")
	register(IDSeekHead, ebml.TypeMaster, "SeekHead")
	register(IDSeek, ebml.TypeMaster, "Seek")
	register(IDSeekID, ebml.TypeBinary, "SeekID")
	register(IDSeekPosition, ebml.TypeUint, "SeekPosition")

	register(IDInfo, ebml.TypeMaster, "Info")
	register(IDSegmentUID, ebml.TypeBinary, "SegmentUID")
	register(IDTimecodeScale, ebml.TypeUint, "TimecodeScale")
	register(IDDuration, ebml.TypeFloat, "Duration")
	register(IDDateUTC, ebml.TypeInt, "DateUTC")
	register(IDTitle, ebml.TypeString, "Title")
	register(IDMuxingApp, ebml.TypeString, "MuxingApp")
	register(IDWritingApp, ebml.TypeString, "WritingApp")

	register(IDCluster, ebml.TypeMaster, "Cluster")
	register(IDTimecode, ebml.TypeUint, "Timecode")
	register(IDPosition, ebml.TypeUint, "Position")
	register(IDPrevSize, ebml.TypeUint, "PrevSize")
	register(IDSimpleBlock, ebml.TypeBinary, "SimpleBlock")
	register(IDBlockGroup, ebml.TypeMaster, "BlockGroup")
	register(IDBlock, ebml.TypeBinary, "Block")
	register(IDBlockAdditions, ebml.TypeMaster, "BlockAdditions")
	register(IDBlockMore, ebml.TypeMaster, "BlockMore")
	register(IDBlockAddID, ebml.TypeUint, "BlockAddID")
	register(IDBlockAdditional, ebml.TypeBinary, "BlockAdditional")
	register(IDBlockDuration, ebml.TypeUint, "BlockDuration")
	register(IDReferencePriority, ebml.TypeUint, "ReferencePriority")
	register(IDReferenceBlock, ebml.TypeInt, "ReferenceBlock")
	register(IDCodecState, ebml.TypeBinary, "CodecState")
	register(IDDiscardPadding, ebml.TypeInt, "DiscardPadding")

	register(IDTracks, ebml.TypeMaster, "Tracks")
	register(IDTrackEntry, ebml.TypeMaster, "TrackEntry")
	register(IDTrackNumber, ebml.TypeUint, "TrackNumber")
	register(IDTrackUID, ebml.TypeUint, "TrackUID")
	register(IDTrackType, ebml.TypeUint, "TrackType")
	register(IDFlagEnabled, ebml.TypeUint, "FlagEnabled")
	register(IDFlagDefault, ebml.TypeUint, "FlagDefault")
	register(IDFlagForced, ebml.TypeUint, "FlagForced")
	register(IDFlagLacing, ebml.TypeUint, "FlagLacing")
	register(IDDefaultDuration, ebml.TypeUint, "DefaultDuration")
	register(IDName, ebml.TypeString, "Name")
	register(IDLanguage, ebml.TypeString, "Language")
	register(IDCodecID, ebml.TypeString, "CodecID")
	register(IDCodecPrivate, ebml.TypeBinary, "CodecPrivate")
	register(IDCodecName, ebml.TypeString, "CodecName")
	register(IDCodecDelay, ebml.TypeUint, "CodecDelay")
	register(IDSeekPreRoll, ebml.TypeUint, "SeekPreRoll")

	register(IDVideo, ebml.TypeMaster, "Video")
	register(IDFlagInterlaced, ebml.TypeUint, "FlagInterlaced")
	register(IDStereoMode, ebml.TypeUint, "StereoMode")
	register(IDAlphaMode, ebml.TypeUint, "AlphaMode")
	register(IDPixelWidth, ebml.TypeUint, "PixelWidth")
	register(IDPixelHeight, ebml.TypeUint, "PixelHeight")
	register(IDPixelCropBottom, ebml.TypeUint, "PixelCropBottom")
	register(IDPixelCropTop, ebml.TypeUint, "PixelCropTop")
	register(IDPixelCropLeft, ebml.TypeUint, "PixelCropLeft")
	register(IDPixelCropRight, ebml.TypeUint, "PixelCropRight")
	register(IDDisplayWidth, ebml.TypeUint, "DisplayWidth")
	register(IDDisplayHeight, ebml.TypeUint, "DisplayHeight")
	register(IDDisplayUnit, ebml.TypeUint, "DisplayUnit")

	register(IDAudio, ebml.TypeMaster, "Audio")
	register(IDSamplingFreq, ebml.TypeFloat, "SamplingFrequency")
	register(IDOutSamplingFreq, ebml.TypeFloat, "OutputSamplingFrequency")
	register(IDChannels, ebml.TypeUint, "Channels")
	register(IDBitDepth, ebml.TypeUint, "BitDepth")

	register(IDCues, ebml.TypeMaster, "Cues")
	register(IDCuePoint, ebml.TypeMaster, "CuePoint")
	register(IDCueTime, ebml.TypeUint, "CueTime")
	register(IDCueTrackPos, ebml.TypeMaster, "CueTrackPositions")
	register(IDCueTrack, ebml.TypeUint, "CueTrack")
	register(IDCueClusterPos, ebml.TypeUint, "CueClusterPosition")
	register(IDCueRelativePos, ebml.TypeUint, "CueRelativePosition")
	register(IDCueBlockNumber, ebml.TypeUint, "CueBlockNumber")

	register(IDChapters, ebml.TypeMaster, "Chapters")
	register(IDTags, ebml.TypeMaster, "Tags")
}

// GetRegister resolves an element id. Ids outside the table come back as
// unnamed binary elements.
func GetRegister(id uint32) Register {
	if reg, ok := registers[id]; ok {
		return reg
	}
	return Register{ID: id, Type: ebml.TypeBinary, Name: "Unknown"}
}
