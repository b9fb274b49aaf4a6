package term

import (
	"fmt"
	"time"
)

func DurationToStrSeconds(duration time.Duration) string {
	return fmt.Sprintf("%.3fs", duration.Seconds())
}
