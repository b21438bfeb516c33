package video

import (
	"regexp"
	"strconv"
	"time"
)

// isoDurationPattern matches YouTube's ISO-8601-style durations ("PT14M33S",
// "PT1H2M", "PT45S"). Day components do not occur in practice and are not
// handled.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO-8601 duration string to a time.Duration
// as 3600×H + 60×M + S seconds. Returns 0 for unparseable input.
func ParseISODuration(iso string) time.Duration {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	seconds := 0
	if m[1] != "" {
		h, _ := strconv.Atoi(m[1])
		seconds += h * 3600
	}
	if m[2] != "" {
		min, _ := strconv.Atoi(m[2])
		seconds += min * 60
	}
	if m[3] != "" {
		s, _ := strconv.Atoi(m[3])
		seconds += s
	}

	return time.Duration(seconds) * time.Second
}
