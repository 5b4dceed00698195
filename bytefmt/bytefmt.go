// Package bytefmt renders byte counts and transfer rates for progress output.
package bytefmt

import (
	"strconv"
	"strings"
	"time"
)

// Binary byte sizes
const (
	_ = 1 << (iota * 10)
	KiB
	MiB
	GiB
)

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	return format(float64(n))
}

// FormatRate renders the average transfer rate of n bytes over d.
func FormatRate(n int64, d time.Duration) string {
	if d <= 0 {
		return format(0) + "/s"
	}
	return format(float64(n)/d.Seconds()) + "/s"
}

func format(n float64) string {
	suffix := "B"
	switch {
	case n >= GiB:
		n /= GiB
		suffix = "GiB"
	case n >= MiB:
		n /= MiB
		suffix = "MiB"
	case n >= KiB:
		n /= KiB
		suffix = "KiB"
	}
	s := strconv.FormatFloat(n, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + suffix
}
