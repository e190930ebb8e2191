package pyramid

import "fmt"

// InvalidSizeRangeError is returned when the cell size bounds cannot produce
// a pyramid. It is reported before any cell is created.
type InvalidSizeRangeError struct {
	Min, Max int
	Reason   string
}

func (e *InvalidSizeRangeError) Error() string {
	return fmt.Sprintf("pyramid: invalid cell size range [%d, %d]: %s", e.Min, e.Max, e.Reason)
}
