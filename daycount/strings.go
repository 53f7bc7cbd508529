package daycount

import (
	"fmt"

	"github.com/meenmo/fixedincome/calendar"
)

// YearFractionStrings parses two YYYY-MM-DD dates, looks up id and returns the year fraction.
func YearFractionStrings(start, end, id string) (float64, error) {
	c, s, e, err := resolve(start, end, id)
	if err != nil {
		return 0, err
	}
	return c.YearFraction(s, e), nil
}

// DayCountStrings parses two YYYY-MM-DD dates, looks up id and returns the day count.
func DayCountStrings(start, end, id string) (int, error) {
	c, s, e, err := resolve(start, end, id)
	if err != nil {
		return 0, err
	}
	return c.DayCount(s, e), nil
}

func resolve(start, end, id string) (Convention, calendar.Date, calendar.Date, error) {
	c, err := Lookup(id)
	if err != nil {
		return invalid, calendar.Date{}, calendar.Date{}, fmt.Errorf("convention: %w", err)
	}
	s, err := calendar.Parse(start)
	if err != nil {
		return invalid, calendar.Date{}, calendar.Date{}, fmt.Errorf("start: %w", err)
	}
	e, err := calendar.Parse(end)
	if err != nil {
		return invalid, calendar.Date{}, calendar.Date{}, fmt.Errorf("end: %w", err)
	}
	return c, s, e, nil
}
