package streak

import "time"

// A Day is a calendar date in UTC. Streak accounting only ever compares
// Days; wall-clock timestamps stop mattering the moment an event's day is
// resolved. Day is comparable with ==.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf resolves a timestamp to its UTC calendar date.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{Year: u.Year(), Month: u.Month(), Date: u.Day()}
}

// Time returns the Day as UTC midnight, the form the store persists.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC)
}

func (d Day) Next() Day {
	return DayOf(d.Time().AddDate(0, 0, 1))
}

func (d Day) Prev() Day {
	return DayOf(d.Time().AddDate(0, 0, -1))
}

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

// Clock supplies the current Day. The engine never reads time.Now directly
// so tests can pin the calendar.
type Clock interface {
	Today() Day
}

type systemClock struct{}

func (systemClock) Today() Day { return DayOf(time.Now()) }

// FixedClock is a Clock pinned to a single Day.
type FixedClock struct {
	Day Day
}

func (c FixedClock) Today() Day { return c.Day }
