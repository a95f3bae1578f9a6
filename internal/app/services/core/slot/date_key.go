package slot

import (
	"fmt"
	"medibook-service/internal/pkg/constvars"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateKeyPattern = regexp.MustCompile(constvars.RegexDateKey)

// FormatDateKey renders t as <year>_<monthIndex0based>_<day>, e.g. 10 June 2025 is 2025_5_10.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%d%s%d%s%d", t.Year(), constvars.DateKeySeparator, int(t.Month())-1, constvars.DateKeySeparator, t.Day())
}

// ParseDateKey is the inverse of FormatDateKey. Keys naming a day that does not exist
// in the given month, such as 2025_1_30, are rejected.
func ParseDateKey(dateKey string, location *time.Location) (time.Time, error) {
	if !dateKeyPattern.MatchString(dateKey) {
		return time.Time{}, fmt.Errorf("malformed date key %q", dateKey)
	}
	if location == nil {
		location = time.UTC
	}

	parts := strings.Split(dateKey, constvars.DateKeySeparator)
	year, _ := strconv.Atoi(parts[0])
	monthIndex, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])

	parsed := time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, location)
	if parsed.Day() != day || int(parsed.Month()) != monthIndex+1 {
		return time.Time{}, fmt.Errorf("date key %q names a day that does not exist", dateKey)
	}
	return parsed, nil
}
