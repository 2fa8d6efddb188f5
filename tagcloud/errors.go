package tagcloud

import "errors"

var (
	// ErrInvalidSelectionSize is returned for a negative or non-numeric selection size.
	ErrInvalidSelectionSize = errors.New("invalid selection size")
	// ErrInvalidFontRange is returned when the font range is negative or inverted.
	ErrInvalidFontRange = errors.New("invalid font range")
)
