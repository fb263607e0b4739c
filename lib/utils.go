package lib

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

// -------------------------------------------------------------------------------------
// Color Logger
// -------------------------------------------------------------------------------------

var (
	Cyan    = color.New(color.FgCyan)
	Magenta = color.New(color.FgMagenta)
	Yellow  = color.New(color.FgHiYellow)
	Green   = color.New(color.FgHiGreen)
	Blue    = color.New(color.FgBlue)
	Red     = color.New(color.FgRed)
)

func CLog(c *color.Color, str string) string {
	return c.Sprint(str)
}

// FormatHashRate renders hashes per second with a metric suffix, e.g. 1.25 MH/s.
func FormatHashRate(numHashes uint64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return "0 H/s"
	}
	rate := float64(numHashes) / elapsed.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.2f GH/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.2f MH/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.2f kH/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f H/s", rate)
}
