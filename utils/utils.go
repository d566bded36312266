package utils

import (
	"fmt"
	"time"
)

// FormatTime formats time.Duration output to a human readable value.
// Durations below one second are reported in milliseconds.
func FormatTime(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	total := int64(d / time.Second)
	days, hours := total/86400, total/3600%24
	minutes, seconds := total/60%60, total%60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd:%dh:%dm:%ds", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dh:%dm:%ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm:%ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
