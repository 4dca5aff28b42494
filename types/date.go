package types

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
)

var timeOfDayLayouts = []string{"15:04", "15:04:05", "15:04:05.999999999"}

// Date is a calendar date without time or zone
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date in yyyy-MM-dd form
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// DateOf returns the date of t in t's location
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In returns midnight of d in loc
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed

	return nil
}

// TimeOfDay is a wall-clock time without date or zone
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// ParseTimeOfDay parses HH:mm, HH:mm:ss or HH:mm:ss with a fractional second
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var err error
	for _, layout := range timeOfDayLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}

	return TimeOfDay{}, err
}

// TimeOfDayOf returns the wall-clock time of t
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

func (t TimeOfDay) String() string {
	if t.Nanosecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%09d", t.Hour, t.Minute, t.Second, t.Nanosecond)
	}

	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(data []byte) error {
	parsed, err := ParseTimeOfDay(string(data))
	if err != nil {
		return err
	}
	*t = parsed

	return nil
}
