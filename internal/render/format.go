package render

import (
	"fmt"
	"math"
	"time"
)

// formatDate renders an epoch-seconds timestamp as "DD-Mon-YYYY HH:MM" UTC.
func formatDate(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format("02-Jan-2006 15:04")
}

// formatSize renders a byte count with binary prefixes and one decimal
// place, e.g. 2048 -> "2.0KiB".
func formatSize(bytes int64) string {
	value := float64(bytes)
	for _, unit := range []string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi"} {
		if math.Abs(value) < 1024.0 {
			return fmt.Sprintf("%3.1f%sB", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%3.1fYiB", value)
}
