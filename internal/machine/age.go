package machine

import (
	"fmt"
	"math"
	"time"
)

// AgeString renders how long a machine has been installed as "2Y 3M",
// counted in whole 365-day years and 30-day months. Empty or unparseable
// install dates render as "-".
func AgeString(installDate string, now time.Time) string {
	if installDate == "" {
		return "-"
	}
	install, err := time.Parse("2006-01-02", installDate)
	if err != nil {
		return "-"
	}

	days := int(math.Ceil(math.Abs(now.Sub(install).Hours()) / 24))
	years := days / 365
	months := (days % 365) / 30
	return fmt.Sprintf("%dY %dM", years, months)
}
