package daycount

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/fixedincome/calendar"
)

// ErrUnknownConvention is returned when an identifier names no supported convention.
var ErrUnknownConvention = errors.New("unknown day count convention")

// Convention enumerates the supported day count rules.
type Convention int

const (
	invalid Convention = iota
	Act365F
	Act360
	Thirty360US
	ActActISDA
	Act365
	Thirty360E
)

var names = [...]string{
	Act365F:     "ACT/365F",
	Act360:      "ACT/360",
	Thirty360US: "30/360US",
	ActActISDA:  "ACT/ACT ISDA",
	Act365:      "ACT/365",
	Thirty360E:  "30E/360",
}

// byName is built once and only read afterwards.
var byName = func() map[string]Convention {
	m := make(map[string]Convention, len(names)-1)
	for c := Act365F; c < Convention(len(names)); c++ {
		m[names[c]] = c
	}
	return m
}()

// Lookup resolves a canonical identifier such as "ACT/365F". Matching is case-sensitive.
func Lookup(id string) (Convention, error) {
	c, ok := byName[id]
	if !ok {
		return invalid, fmt.Errorf("%w: %q", ErrUnknownConvention, id)
	}
	return c, nil
}

// Conventions lists every supported convention in declaration order.
func Conventions() []Convention {
	out := make([]Convention, 0, len(names)-1)
	for c := Act365F; c < Convention(len(names)); c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is one of the declared conventions.
func (c Convention) Valid() bool {
	return c > invalid && int(c) < len(names)
}

func (c Convention) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Convention(%d)", int(c))
	}
	return names[c]
}

func (c Convention) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownConvention, int(c))
	}
	return []byte(names[c]), nil
}

func (c *Convention) UnmarshalText(b []byte) error {
	parsed, err := Lookup(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// DayCount returns the convention's day count from start to end.
//
// When start is after end the result is the negated count from end to start.
// An invalid convention yields 0.
func (c Convention) DayCount(start, end calendar.Date) int {
	if start.After(end) {
		return -c.DayCount(end, start)
	}
	switch c {
	case Act365F, Act360, Act365, ActActISDA:
		return calendar.DaysBetween(start, end)
	case Thirty360US:
		return thirty360US(start, end)
	case Thirty360E:
		return thirty360E(start, end)
	default:
		return 0
	}
}

// YearFraction returns the elapsed time from start to end in years.
//
// When start is after end the result is the negated fraction from end to start.
// An invalid convention yields 0.
func (c Convention) YearFraction(start, end calendar.Date) float64 {
	if start.After(end) {
		return -c.YearFraction(end, start)
	}
	switch c {
	case Act365F:
		return float64(c.DayCount(start, end)) / 365.0
	case Act360, Thirty360US, Thirty360E:
		return float64(c.DayCount(start, end)) / 360.0
	case Act365:
		return float64(c.DayCount(start, end)) / float64(calendar.DaysInYear(start.Year()))
	case ActActISDA:
		return actActISDA(start, end)
	default:
		return 0
	}
}

// DayCount validates its inputs and dispatches to c.DayCount.
func DayCount(c Convention, start, end calendar.Date) (int, error) {
	if err := check(c, start, end); err != nil {
		return 0, err
	}
	return c.DayCount(start, end), nil
}

// YearFraction validates its inputs and dispatches to c.YearFraction.
func YearFraction(c Convention, start, end calendar.Date) (float64, error) {
	if err := check(c, start, end); err != nil {
		return 0, err
	}
	return c.YearFraction(start, end), nil
}

func check(c Convention, start, end calendar.Date) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownConvention, c)
	}
	if start.IsZero() {
		return fmt.Errorf("start: %w: date is unset", calendar.ErrInvalidDateFormat)
	}
	if end.IsZero() {
		return fmt.Errorf("end: %w: date is unset", calendar.ErrInvalidDateFormat)
	}
	return nil
}

// thirty360US implements the US (NASD) 30/360 rule.
// The end-of-February start adjustment is applied last, so it never moves d2.
func thirty360US(start, end calendar.Date) int {
	d1, d2 := start.Day(), end.Day()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	if start.Month() == time.February && start.IsEndOfMonth() {
		d1 = 30
	}
	return days360(start, end, d1, d2)
}

// thirty360E implements 30E/360 (Eurobond basis): both day numbers are capped at 30.
func thirty360E(start, end calendar.Date) int {
	return days360(start, end, min(start.Day(), 30), min(end.Day(), 30))
}

func days360(start, end calendar.Date, d1, d2 int) int {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
}

// actActISDA splits [start, end) at each 1 January and divides the days
// falling in every calendar year by that year's length.
func actActISDA(start, end calendar.Date) float64 {
	if start.Year() == end.Year() {
		return float64(calendar.DaysBetween(start, end)) / float64(calendar.DaysInYear(start.Year()))
	}

	from := start
	frac := 0.0
	for y := start.Year(); y < end.Year(); y++ {
		next := newYear(y + 1)
		frac += float64(calendar.DaysBetween(from, next)) / float64(calendar.DaysInYear(y))
		from = next
	}
	return frac + float64(calendar.DaysBetween(from, end))/float64(calendar.DaysInYear(end.Year()))
}

func newYear(year int) calendar.Date {
	d, err := calendar.New(year, time.January, 1)
	if err != nil {
		// year lies between two valid dates, so 1 January exists.
		panic(err)
	}
	return d
}
