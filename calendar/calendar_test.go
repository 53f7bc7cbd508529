package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fixedincome/calendar"
)

func TestCalendar_IsBusinessDay(t *testing.T) {
	t.Parallel()

	cal, err := calendar.NewCalendar([]string{"2025-06-20"})
	require.NoError(t, err)

	assert.True(t, cal.IsBusinessDay(calendar.MustParse("2025-06-19")))
	assert.False(t, cal.IsBusinessDay(calendar.MustParse("2025-06-20")))
	assert.False(t, cal.IsBusinessDay(calendar.MustParse("2025-06-21")))
	assert.False(t, cal.IsBusinessDay(calendar.MustParse("2025-06-22")))

	var weekends calendar.Calendar
	assert.True(t, weekends.IsBusinessDay(calendar.MustParse("2025-06-20")))
}

func TestCalendar_AddBusinessDays(t *testing.T) {
	t.Parallel()

	var weekends calendar.Calendar
	thu := calendar.MustParse("2025-06-19")

	got, err := weekends.AddBusinessDays(thu, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-23", got.String())

	got, err = weekends.AddBusinessDays(thu, 0)
	require.NoError(t, err)
	assert.Equal(t, thu, got)

	got, err = weekends.AddBusinessDays(calendar.MustParse("2025-06-23"), -1)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-20", got.String())

	cal, err := calendar.NewCalendar([]string{"2025-06-20"})
	require.NoError(t, err)
	got, err = cal.AddBusinessDays(thu, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-24", got.String())
}

func TestCalendar_Adjust(t *testing.T) {
	t.Parallel()

	var weekends calendar.Calendar

	got, err := weekends.Adjust(calendar.MustParse("2025-06-21"))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-23", got.String())

	// Following would cross into June, so roll back to Friday.
	got, err = weekends.Adjust(calendar.MustParse("2025-05-31"))
	require.NoError(t, err)
	assert.Equal(t, "2025-05-30", got.String())

	got, err = weekends.AdjustFollowing(calendar.MustParse("2025-05-31"))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.String())
}

func TestNewCalendar_Invalid(t *testing.T) {
	t.Parallel()

	_, err := calendar.NewCalendar([]string{"2025-06-31"})
	assert.ErrorIs(t, err, calendar.ErrInvalidDateFormat)
}
