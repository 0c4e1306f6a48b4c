package timeutil

import (
	"errors"
	"strings"
	"time"
)

// CST is China Standard Time (UTC+8), the plant's local zone
var CST *time.Location

func init() {
	var err error
	CST, err = time.LoadLocation("Asia/Shanghai")
	if err != nil {
		// Fallback: create fixed zone if Asia/Shanghai not available
		CST = time.FixedZone("CST", 8*60*60)
	}
}

// Now returns the current time in CST
func Now() time.Time {
	return time.Now().In(CST)
}

// ToCST converts any time to CST
func ToCST(t time.Time) time.Time {
	return t.In(CST)
}

// StartOfDay returns 00:00:00 in CST for the given time
func StartOfDay(t time.Time) time.Time {
	c := t.In(CST)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, CST)
}

// Common layouts
const (
	DateLayout       = "2006-01-02"
	DateTimeLayout   = "2006-01-02 15:04:05"
	BackupLayout     = "20060102_150405"
	CompactDayLayout = "20060102"
)

// issue dates arrive in whatever shape the spreadsheet produced
var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
	"2006.1.2",
	CompactDayLayout,
	DateTimeLayout,
	"2006/01/02 15:04:05",
	"2006/1/2 15:04:05",
}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts the common spreadsheet date shapes and returns a CST date
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, CST); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// NormalizeDate parses value and formats it as yyyy-mm-dd
func NormalizeDate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
