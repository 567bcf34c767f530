package prayer

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock strips the provider's timezone suffix: "05:12 (EET)" -> "05:12".
func ParseClock(raw string) (string, error) {
	clock := strings.TrimSpace(raw)
	if i := strings.IndexByte(clock, ' '); i >= 0 {
		clock = clock[:i]
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid clock %q", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("invalid minute in %q", raw)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// Format12H converts "17:30" -> ("05:30", "PM"). Unparseable input is
// returned unchanged with no period.
func Format12H(t24 string) (string, string) {
	clock, err := ParseClock(t24)
	if err != nil {
		return t24, ""
	}
	h, _ := strconv.Atoi(clock[:2])
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%s", h, clock[3:]), period
}
