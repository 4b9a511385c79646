package shared

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (day-month-year).
const DateLayout = "02-01-2006"

// Date is a calendar day with no time component. All ordering goes through
// the parsed value, never the wire string, so "02-01-2023" correctly sorts
// after "28-12-2022".
type Date struct {
	t time.Time
}

// NewDate builds a Date from its calendar parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a DD-MM-YYYY string into a Date.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDateFormat
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return Date{t: t}, nil
}

// Today returns the current calendar day.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string { return d.t.Format(DateLayout) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

// AddDays returns the date n calendar days later (or earlier for negative n).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Time returns the midnight UTC instant of the day.
func (d Date) Time() time.Time { return d.t }

// Value stores the date as a plain SQL date.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan reads a SQL date back into a Date.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case []byte:
		parsed, err := time.Parse("2006-01-02", string(v))
		if err != nil {
			return fmt.Errorf("failed to scan date: %w", err)
		}
		*d = DateOf(parsed)
		return nil
	case string:
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("failed to scan date: %w", err)
		}
		*d = DateOf(parsed)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
