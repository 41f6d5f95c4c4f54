// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package date provides a calendar-date value type for the catalog.

Due dates, birth dates and renewal dates carry no time-of-day or zone. Modelling
them as [time.Time] invites off-by-one errors around midnight, so every date in the
domain is a [Date]: a UTC midnight instant with day-level comparison helpers.

Wire formats:

  - JSON: "YYYY-MM-DD" (null for the zero value when used through a pointer).
  - SQL: scans from and binds to a PostgreSQL 'date' column.
*/
package date

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Layout is the ISO-8601 calendar date layout used on the wire.
const Layout = "2006-01-02"

// Date is a calendar day.
type Date struct {
	t time.Time
}

// New returns the Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Of truncates t to its calendar day in t's own location.
func Of(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day according to now.
func Today(now func() time.Time) Date {
	return Of(now())
}

// Parse parses a "YYYY-MM-DD" string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("date: invalid value %q: %w", value, err)
	}
	return Date{t: t}, nil
}

// AddDays returns the date n days later (or earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both values denote the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the UTC midnight instant of d.
func (d Date) Time() time.Time { return d.t }

// String formats d as "YYYY-MM-DD".
func (d Date) String() string { return d.t.Format(Layout) }

// # Encoding

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` {
		*d = Date{}
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("date: expected a quoted string, got %s", raw)
	}

	parsed, err := Parse(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements [sql.Scanner] so pgx can hydrate a 'date' column directly.
func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = Of(value)
	case string:
		parsed, err := Parse(value)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
	return nil
}

// Value implements [driver.Valuer].
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t, nil
}
