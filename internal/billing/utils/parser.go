package utils

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the portal's date format (dd/mm/yyyy).
const DateLayout = "02/01/2006"

// ParseDate parses the portal's dd/mm/yyyy dates, falling back to ISO
// yyyy-mm-dd. ok is false for empty or malformed values; callers drop
// those rows instead of treating them as the zero date.
func ParseDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, dateStr); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseCurrency parses a locale-formatted currency string ("R$ 1.234,56"):
// the "R$" symbol is stripped, "." is the thousands separator and "," the
// decimal separator. ok is false for empty or unparseable values so that
// sums exclude them rather than silently counting zero.
func ParseCurrency(valStr string) (float64, bool) {
	cleanStr := strings.TrimSpace(valStr)
	if cleanStr == "" {
		return 0, false
	}
	cleanStr = strings.ReplaceAll(cleanStr, "R$", "")
	cleanStr = strings.ReplaceAll(cleanStr, ".", "")
	cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	cleanStr = strings.TrimSpace(cleanStr)

	val, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// Month is a calendar year+month bucket.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

var monthAbbrevPtBR = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Label renders the bucket as the dashboard's pt-BR axis label, e.g.
// "mar/2025".
func (m Month) Label() string {
	if m.Month < time.January || m.Month > time.December {
		return ""
	}
	return monthAbbrevPtBR[m.Month-1] + "/" + strconv.Itoa(m.Year)
}

// SortMonths orders buckets chronologically; shared by every per-month
// series.
func SortMonths(months []Month) {
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
}

// DaysBetween returns whole days from a to b; both sides are expected to be
// midnight-normalized calendar dates.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Truncate to the calendar date, dropping the time-of-day component.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
