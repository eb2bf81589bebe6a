package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`^(\d{1,4})(?::(\d{1,2}))?$`)

// FormatTime renders seconds as MM:SS. Minutes are not rolled into hours.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseDuration accepts "MM" (minutes) or "MM:SS" and returns seconds.
func ParseDuration(text string) (int, bool) {
	match := durationRe.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	seconds := 0
	if match[2] != "" {
		seconds, err = strconv.Atoi(match[2])
		if err != nil || seconds > 59 {
			return 0, false
		}
	}
	return minutes*60 + seconds, true
}
