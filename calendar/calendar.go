package calendar

import (
	"fmt"
	"time"
)

// Calendar is a holiday set on top of a Saturday/Sunday weekend.
// The zero value has no holidays.
type Calendar struct {
	holidays map[Date]struct{}
}

// NewCalendar builds a Calendar from YYYY-MM-DD holiday strings.
func NewCalendar(holidays []string) (Calendar, error) {
	set := make(map[Date]struct{}, len(holidays))
	for _, h := range holidays {
		d, err := Parse(h)
		if err != nil {
			return Calendar{}, fmt.Errorf("holiday: %w", err)
		}
		set[d] = struct{}{}
	}
	return Calendar{holidays: set}, nil
}

func (c Calendar) isHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

// IsBusinessDay checks weekends and the holiday set.
func (c Calendar) IsBusinessDay(d Date) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !c.isHoliday(d)
}

// Adjust applies Modified Following.
func (c Calendar) Adjust(d Date) (Date, error) {
	adj, err := c.AdjustFollowing(d)
	if err != nil {
		return Date{}, err
	}
	if adj.Month() == d.Month() {
		return adj, nil
	}
	adj = d
	for !c.IsBusinessDay(adj) {
		if adj, err = adj.AddDays(-1); err != nil {
			return Date{}, err
		}
	}
	return adj, nil
}

// AdjustFollowing rolls forward to the next business day (no month preservation).
func (c Calendar) AdjustFollowing(d Date) (Date, error) {
	var err error
	for !c.IsBusinessDay(d) {
		if d, err = d.AddDays(1); err != nil {
			return Date{}, err
		}
	}
	return d, nil
}

// AddBusinessDays advances n business days (n can be negative).
func (c Calendar) AddBusinessDays(d Date, n int) (Date, error) {
	step := 1
	if n < 0 {
		step = -1
	}
	var err error
	for n != 0 {
		if d, err = d.AddDays(step); err != nil {
			return Date{}, err
		}
		if c.IsBusinessDay(d) {
			n -= step
		}
	}
	return d, nil
}
