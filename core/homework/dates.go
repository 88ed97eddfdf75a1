package homework

import (
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

const (
	isoLayout = "2006-01-02"
	minYear   = 1
	maxYear   = 9999
)

// ParseDate reads a due date typed as either `YYYY-MM-DD` or `DD/MM/YYYY`.
// It never fails: empty or unparseable input yields an invalid (absent) date.
func ParseDate(s string) null.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.Time{}
	}
	if t, err := time.Parse(isoLayout, s); err == nil {
		return checkYear(t)
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return null.Time{}
	}
	nums := make([]int, 0, 3)
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return null.Time{}
		}
		nums = append(nums, n)
	}
	day, month, year := nums[0], nums[1], nums[2]
	return newDate(year, month, day)
}

// FormatDate renders a due date as `YYYY-MM-DD` ("" when absent).
func FormatDate(d null.Time) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(isoLayout)
}

// DateFrom returns the day of t, at midnight UTC, as a present due date.
func DateFrom(t time.Time) null.Time {
	return null.TimeFrom(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// newDate rejects dates time.Date would normalize (e.g. 31/02 -> 03/03).
func newDate(year, month, day int) null.Time {
	if month < 1 || month > 12 || day < 1 {
		return null.Time{}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return null.Time{}
	}
	return checkYear(t)
}

func checkYear(t time.Time) null.Time {
	if t.Year() < minYear || t.Year() > maxYear {
		return null.Time{}
	}
	return null.TimeFrom(t)
}
