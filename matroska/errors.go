package matroska

import "errors"

var (
	// ErrTruncatedVint is returned when a block ends inside the track
	// number vint or a lace-size vint.
	ErrTruncatedVint = errors.New("matroska: block truncated inside a vint")

	// ErrTruncatedHeader is returned when a block is shorter than its
	// fixed header (timecode, flags, or the lace count byte).
	ErrTruncatedHeader = errors.New("matroska: block shorter than its header")

	// ErrUnevenFixedLacing is returned when fixed-size lacing is flagged
	// but the laced payload does not divide evenly by the frame count.
	ErrUnevenFixedLacing = errors.New("matroska: fixed-size lacing over uneven payload")

	// ErrLacingSizeMismatch is returned when the explicit or derived lace
	// sizes disagree with the number of payload bytes available.
	ErrLacingSizeMismatch = errors.New("matroska: lace sizes disagree with payload length")

	// ErrWrongVariant is returned when tag data of some non-binary type
	// is handed to a block codec.
	ErrWrongVariant = errors.New("matroska: tag data is not binary")
)

// EncodeError reports a block whose fields cannot be represented on the
// wire, such as an empty frame list or a frame count that disagrees with
// the lacing mode.
type EncodeError struct {
	Reason string
}

func (e *EncodeError) Error() string {
	return "matroska: cannot encode block: " + e.Reason
}

func encodeErr(reason string) error {
	return &EncodeError{Reason: reason}
}
