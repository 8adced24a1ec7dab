package max6921

import "errors"

// Errors returned by the driver. Use errors.Is to test wrapped values.
var (
	// ErrInvalidParam reports a malformed caller input, such as a zero
	// configuration value or an out-of-range digit or command code.
	ErrInvalidParam = errors.New("max6921: invalid parameter")

	// ErrNotInitialized reports an operation attempted before Init or
	// after Close.
	ErrNotInitialized = errors.New("max6921: device not initialized")

	// ErrInvalidGrid reports a grid index outside 0..8.
	ErrInvalidGrid = errors.New("max6921: grid index out of range")

	// ErrInvalidSegment is reserved for segment-value validation; every
	// 8-bit pattern is currently accepted.
	ErrInvalidSegment = errors.New("max6921: segment value out of range")

	// ErrHardware reports that the SPI port could not be brought up at
	// the requested speed.
	ErrHardware = errors.New("max6921: hardware initialization failed")
)
