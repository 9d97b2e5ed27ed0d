package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The master index carries two date spellings: ISO-ish "2023-06-27" (or just
// "2023-06") and US-style "Jun 27, 2023". Anything else is unparsable and the
// event drops out of the date-derived views only.
var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-(\d{2}))?`)
	usDateRe  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2}),?\s+(\d{4})`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// parseMonth extracts a "YYYY-MM" month key from a raw event date.
func parseMonth(date string) (string, bool) {
	key, ok := parseDateKey(date)
	if !ok {
		return "", false
	}
	return key[:7], true
}

// parseDateKey normalizes a raw event date to a sortable "YYYY-MM-DD" key.
// A month-only ISO date gets day 01.
func parseDateKey(date string) (string, bool) {
	date = strings.TrimSpace(date)
	if m := isoDateRe.FindStringSubmatch(date); m != nil {
		day := m[3]
		if day == "" {
			day = "01"
		}
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], day), true
	}
	if m := usDateRe.FindStringSubmatch(date); m != nil {
		name := strings.ToLower(m[1])
		if len(name) > 3 {
			name = name[:3]
		}
		num, ok := monthNumbers[name]
		if !ok {
			return "", false
		}
		day, err := strconv.Atoi(m[2])
		if err != nil || day < 1 || day > 31 {
			return "", false
		}
		return fmt.Sprintf("%s-%s-%02d", m[3], num, day), true
	}
	return "", false
}
