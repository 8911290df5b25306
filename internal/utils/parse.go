package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// parse string, return time.Duration or default
func DurationOr(input string, defval time.Duration) time.Duration {
	dt, err := time.ParseDuration(input)
	if err != nil {
		return defval
	}
	return dt
}

// parse string, return int or default
func IntOr(input string, defval int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(input)); err == nil {
		return v
	}
	return defval
}

// parse human-readable image size as printed by crictl ("117MB", "28.5 MiB")
// to a byte count using decimal units for MB/GB, false if unparsable
func ParseImageSize(input string) (uint64, bool) {
	size, err := humanize.ParseBytes(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return size, true
}

// format byte count in crictl display style, without separating space
// e.g. 117000000 -> "117MB"
func FormatImageSize(size uint64) string {
	return strings.ReplaceAll(humanize.Bytes(size), " ", "")
}
