package dao

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, as stored in TIME columns.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// NewTimeOfDay returns the time of day h:m:s.
func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay{Hour: h, Minute: m, Second: s}
}

// TimeOfDayOf drops the date part of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

var timeOfDayLayouts = []string{"15:04:05.999999999", "15:04:05", "15:04"}

// ParseTimeOfDay parses "HH:MM", "HH:MM:SS" or "HH:MM:SS.fraction".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) String() string {
	if t.Nanosecond != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", t.Nanosecond), "0")
		return fmt.Sprintf("%02d:%02d:%02d.%s", t.Hour, t.Minute, t.Second, frac)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Value implements driver.Valuer.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner. Drivers hand TIME values back as text or, with
// time parsing enabled, as a time.Time on the zero date.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case TimeOfDay:
		*t = v
	case time.Time:
		*t = TimeOfDayOf(v)
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	return nil
}
