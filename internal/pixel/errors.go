package pixel

import "fmt"

// UnsupportedImageError is returned when no readable pixel buffer can be
// obtained from an image. It is fatal to the current build attempt.
type UnsupportedImageError struct {
	Reason string
	Err    error // Underlying decoder error, if any
}

func (e *UnsupportedImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pixel: unsupported image: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("pixel: unsupported image: %s", e.Reason)
}

func (e *UnsupportedImageError) Unwrap() error {
	return e.Err
}

// OutOfBoundsError is returned by ColorAt for a coordinate the buffer cannot
// address. It signals a caller bug, not a runtime condition.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pixel: (%d,%d) out of bounds for %dx%d buffer", e.X, e.Y, e.Width, e.Height)
}
