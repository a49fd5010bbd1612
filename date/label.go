package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month abbreviations used by quote tables. Portuguese is the native
// format of the tables; English is accepted for tables exported from
// english locale tools. Both share "jan", "mar", "jun", "jul" and "nov".
var monthAbbreviations = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March, "abr": time.April,
	"mai": time.May, "jun": time.June, "jul": time.July, "ago": time.August,
	"set": time.September, "out": time.October, "nov": time.November, "dez": time.December,

	"feb": time.February, "apr": time.April, "may": time.May, "aug": time.August,
	"sep": time.September, "oct": time.October, "dec": time.December,
}

var ptMonths = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// ParseMonth parses a month label and returns the first day of that month.
//
// Accepted labels are "jan/2024" (three-letter month, Portuguese or English,
// case insensitive), "01/2024" and "2024-01".
func ParseMonth(label string) (Date, error) {
	label = strings.TrimSpace(label)
	var monthPart, yearPart string
	if m, y, ok := strings.Cut(label, "/"); ok {
		monthPart, yearPart = m, y
	} else if y, m, ok := strings.Cut(label, "-"); ok {
		monthPart, yearPart = m, y
	} else {
		return Date{}, fmt.Errorf("invalid month label %q want \"jan/2006\", \"01/2006\" or \"2006-01\"", label)
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return Date{}, fmt.Errorf("invalid year in month label %q", label)
	}

	month, ok := monthAbbreviations[strings.ToLower(monthPart)]
	if !ok {
		n, err := strconv.Atoi(monthPart)
		if err != nil || n < 1 || n > 12 {
			return Date{}, fmt.Errorf("invalid month in month label %q", label)
		}
		month = time.Month(n)
	}
	return New(year, month, 1), nil
}

// Label returns the Portuguese "jan/2006" label of the month containing d.
func Label(d Date) string {
	return fmt.Sprintf("%s/%d", ptMonths[d.Month()-1], d.Year())
}
