package pixel

import "strings"

// ChannelOrder is the physical byte layout of one pixel in a buffer.
// The sampler always presents colors as (R, G, B, A) regardless of order.
type ChannelOrder uint8

const (
	OrderRGBA ChannelOrder = iota
	OrderBGRA
	OrderARGB
	OrderABGR
)

// Channels is the number of bytes per pixel for every supported order.
const Channels = 4

// offsets holds the byte offset of R, G, B, A within one pixel.
var offsets = [...][Channels]int{
	OrderRGBA: {0, 1, 2, 3},
	OrderBGRA: {2, 1, 0, 3},
	OrderARGB: {1, 2, 3, 0},
	OrderABGR: {3, 2, 1, 0},
}

// String returns the lowercase name of the order.
func (o ChannelOrder) String() string {
	switch o {
	case OrderRGBA:
		return "rgba"
	case OrderBGRA:
		return "bgra"
	case OrderARGB:
		return "argb"
	case OrderABGR:
		return "abgr"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the declared orders.
func (o ChannelOrder) Valid() bool {
	return int(o) < len(offsets)
}

// ParseChannelOrder converts a name such as "bgra" to a ChannelOrder.
// Returns OrderRGBA and false if the name is not recognized.
func ParseChannelOrder(s string) (ChannelOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgba", "":
		return OrderRGBA, true
	case "bgra":
		return OrderBGRA, true
	case "argb":
		return OrderARGB, true
	case "abgr":
		return OrderABGR, true
	default:
		return OrderRGBA, false
	}
}
