package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfUsesUTCCalendarDate(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2024, time.March, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, day(2024, time.March, 2), DayOf(local))
	assert.Equal(t, day(2024, time.March, 2), DayOf(local.UTC()))
}

func TestDayNextPrevAcrossBoundaries(t *testing.T) {
	assert.Equal(t, day(2024, time.March, 1), day(2024, time.February, 29).Next())
	assert.Equal(t, day(2024, time.February, 29), day(2024, time.March, 1).Prev())
	assert.Equal(t, day(2025, time.January, 1), day(2024, time.December, 31).Next())
}

func TestDayRoundTrip(t *testing.T) {
	d := day(2024, time.July, 4)
	assert.Equal(t, d, DayOf(d.Time()))
	assert.Equal(t, "2024-07-04", d.String())
	assert.True(t, d.Time().Equal(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)))
}
