package entity

import "time"

// DateLayout is the wire format for reserved stay dates
const DateLayout = "2006-01-02"

// Reserved stay dates are calendar days. They are stored as midnight UTC so the
// year/month/day never shift with the hotel's timezone.

// CalendarDate drops the clock part of t, keeping t's own year/month/day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalToday is the hotel's current calendar day.
func LocalToday(now time.Time, loc *time.Location) time.Time {
	return CalendarDate(now.In(loc))
}

// AtLocalHour places a calendar date at a wall-clock hour in the hotel's timezone.
func AtLocalHour(date time.Time, hour int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD stay date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(t), nil
}
