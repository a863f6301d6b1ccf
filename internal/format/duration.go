package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d with a unit suited to its magnitude:
// whole microseconds below 1ms, whole milliseconds below 1s, and the
// millisecond-rounded Duration string above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
