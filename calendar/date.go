package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateFormat is returned when a string is not a valid YYYY-MM-DD date.
var ErrInvalidDateFormat = errors.New("invalid date format")

// Layout is the only accepted textual form of a Date.
const Layout = "2006-01-02"

const (
	minYear = 1
	maxYear = 9999
)

// Date is a proleptic Gregorian calendar date with no time or location.
//
// The zero value is not a valid date; use IsZero to detect it.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New validates and builds a Date.
func New(year int, month time.Month, day int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, fmt.Errorf("%w: year %d out of range [%d, %d]", ErrInvalidDateFormat, year, minYear, maxYear)
	}
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("%w: month %d out of range [1, 12]", ErrInvalidDateFormat, int(month))
	}
	if n := DaysInMonth(year, month); day < 1 || day > n {
		return Date{}, fmt.Errorf("%w: day %d out of range [1, %d] for %04d-%02d", ErrInvalidDateFormat, day, n, year, int(month))
	}
	return Date{year: year, month: month, day: day}, nil
}

// Parse reads a strict YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	if len(s) != len(Layout) || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD", ErrInvalidDateFormat, s)
	}
	y, ok1 := digits(s[0:4])
	m, ok2 := digits(s[5:7])
	d, ok3 := digits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD", ErrInvalidDateFormat, s)
	}
	date, err := New(y, time.Month(m), d)
	if err != nil {
		return Date{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return date, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// FromTime takes the calendar date of t in its own location.
// It fails with ErrInvalidDateFormat outside years 1 through 9999.
func FromTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return New(y, m, d)
}

// FromJDN converts a Julian Day Number back to a Date.
func FromJDN(jdn int) (Date, error) {
	// Richards' inverse of the Fliegel-Van Flandern transform.
	f := jdn + 1401 + (((4*jdn+274277)/146097)*3)/4 - 38
	e := 4*f + 3
	g := (e % 1461) / 4
	h := 5*g + 2
	day := (h%153)/5 + 1
	month := (h/153+2)%12 + 1
	year := e/1461 - 4716 + (12+2-month)/12
	return New(year, time.Month(month), day)
}

func (d Date) Year() int { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int { return d.day }
func (d Date) IsZero() bool { return d == Date{} }
func (d Date) Weekday() time.Weekday { return time.Weekday((d.JDN() + 1) % 7) }

// JDN returns the Julian Day Number at noon of d.
func (d Date) JDN() int {
	a := (14 - int(d.month)) / 12
	y := d.year + 4800 - a
	m := int(d.month) + 12*a - 3
	return d.day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// AddDays moves d by n calendar days.
func (d Date) AddDays(n int) (Date, error) {
	return FromJDN(d.JDN() + n)
}

// IsEndOfMonth reports whether d is the last calendar day of its month.
func (d Date) IsEndOfMonth() bool {
	return !d.IsZero() && d.day == DaysInMonth(d.year, d.month)
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(int(d.month) - int(o.month))
	default:
		return sign(d.day - o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool { return d == o }

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns b - a in calendar days.
func DaysBetween(a, b Date) int {
	return b.JDN() - a.JDN()
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear is 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
