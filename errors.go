package hevc

import (
	"errors"
	"fmt"
)

// Sentinel errors raised by the bit reader and NAL decoders. The decoders in
// this package return them unwrapped; callers that receive them through a
// wrapping layer (internal/mkv wraps codec-private decode failures) should
// match them with errors.Is.
var (
	// ErrBitstreamUnderrun is returned when a read would advance the bit
	// cursor past the end of the buffer.
	ErrBitstreamUnderrun = errors.New("hevc: bitstream underrun")

	// ErrForbiddenZeroBit is returned when a NAL header's top bit is set.
	ErrForbiddenZeroBit = errors.New("hevc: forbidden_zero_bit set")

	// ErrUnitTypeOutOfRange is returned for a nal_unit_type outside 0..63.
	ErrUnitTypeOutOfRange = errors.New("hevc: nal_unit_type out of range")

	// ErrInvalidPpsId is returned when a slice header names a pps_id with
	// no active entry in the parameter-set table.
	ErrInvalidPpsId = errors.New("hevc: slice header references inactive pps")

	// ErrInvalidSpsId is returned when a slice header's PPS names an
	// sps_id with no active entry in the parameter-set table.
	ErrInvalidSpsId = errors.New("hevc: slice header references inactive sps")

	// ErrReservedBitsMismatch is returned when one of the VPS's two fixed
	// reserved fields (vps_reserved_three_2bits, vps_reserved_ffff_16bits)
	// does not hold its required literal value. Per spec, a mismatch here
	// means the wrong bytes were being decoded, not a tolerable deviation.
	ErrReservedBitsMismatch = errors.New("hevc: vps reserved bits do not match required literal")
)

// UnsupportedConfigurationVersionError is returned when a Configuration
// Record's configuration_version field is not 1.
type UnsupportedConfigurationVersionError struct {
	Version uint8
}

func (e UnsupportedConfigurationVersionError) Error() string {
	return fmt.Sprintf("hevc: unsupported configuration record version %d", e.Version)
}

// NotEnoughDataError is returned when a Configuration Record is shorter than
// its fixed 23-byte prefix, or when an interior length field would overrun
// the buffer.
type NotEnoughDataError struct {
	Expected int
	Actual   int
}

func (e NotEnoughDataError) Error() string {
	return fmt.Sprintf("hevc: not enough data: expected %d bytes, got %d", e.Expected, e.Actual)
}

// IncorrectNalTypeError is returned when a Configuration Record array
// element's NAL type does not match the type its array header promised.
type IncorrectNalTypeError struct {
	Expected UnitType
	Actual   UnitType
}

func (e IncorrectNalTypeError) Error() string {
	return fmt.Sprintf("hevc: incorrect nal type: expected %s, got %s", e.Expected, e.Actual)
}

// PayloadExceedsNaluError is returned when an SEI message's payload_size
// claims more bytes than remain in the enclosing NAL unit.
type PayloadExceedsNaluError struct {
	PayloadSize int
	Available   int
}

func (e PayloadExceedsNaluError) Error() string {
	return fmt.Sprintf("hevc: sei payload size %d exceeds %d bytes available", e.PayloadSize, e.Available)
}
