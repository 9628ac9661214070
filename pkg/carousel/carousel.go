// Package carousel holds the wraparound index arithmetic shared by the feed
// lightbox and the gallery.
package carousel

// Step moves index by delta within [0, length), wrapping at both ends.
// It returns -1 when length is zero.
func Step(index, delta, length int) int {
	if length <= 0 {
		return -1
	}
	i := (index + delta) % length
	if i < 0 {
		i += length
	}
	return i
}

func Next(index, length int) int { return Step(index, 1, length) }

func Prev(index, length int) int { return Step(index, -1, length) }

// Key is a keyboard key relevant to an open overlay.
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)
