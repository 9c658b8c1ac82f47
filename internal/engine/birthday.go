package engine

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/tartampluch/profile-gallery/internal/config"
)

var (
	// "1993-07-20T09:44:18.674Z" -> century, year, month, day.
	dashedBirthDate = regexp.MustCompile(`^[0-9]{2}([0-9]{2})-([0-9]{2})-([0-9]{2})`)
	// "19930720" -> century, year, month, day.
	basicBirthDate = regexp.MustCompile(`^[0-9]{2}([0-9]{2})([0-9]{2})([0-9]{2})(?:[^0-9]|$)`)
	// "990115" -> year, month, day.
	compactBirthDate = regexp.MustCompile(`^([0-9]{2})([0-9]{2})([0-9]{2})(?:[^0-9]|$)`)
)

// FormatBirthday rewrites a raw birth date into MM/DD/YY for display.
// It is a pure string transform: out-of-range values are kept as they are,
// and input in an unknown layout is returned unchanged.
func FormatBirthday(raw string) string {
	if m := dashedBirthDate.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf(config.FormatBirthdayDisplay, m[2], m[3], m[1])
	}
	if m := basicBirthDate.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf(config.FormatBirthdayDisplay, m[2], m[3], m[1])
	}
	if m := compactBirthDate.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf(config.FormatBirthdayDisplay, m[2], m[3], m[1])
	}
	return raw
}

// ParseBirthDate converts a raw birth date into a calendar date (midnight UTC).
// Unlike FormatBirthday it validates the value, since exports need a real date.
func ParseBirthDate(raw string) (time.Time, error) {
	layouts := []string{
		config.DateFormatRFC3339Milli,
		config.DateFormatRFC3339,
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatCompact,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
