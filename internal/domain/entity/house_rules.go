package entity

import "time"

// HouseRules are the hotel's wall-clock rules for arrivals and departures.
type HouseRules struct {
	Location     *time.Location
	CheckInHour  int
	CheckOutHour int
}

func (r HouseRules) CheckInOpensAt(b *Booking) time.Time {
	return b.CheckInOpensAt(r.Location, r.CheckInHour)
}

func (r HouseRules) CheckOutDeadline(b *Booking) time.Time {
	return b.CheckOutDeadline(r.Location, r.CheckOutHour)
}

// ArrivalTooEarly reports an arrival before check-in opens. It is advisory only;
// the entity accepts early arrivals.
func (r HouseRules) ArrivalTooEarly(b *Booking, now time.Time) bool {
	return now.Before(r.CheckInOpensAt(b))
}

// CheckoutDue reports whether an in-house stay has reached its deadline.
func (r HouseRules) CheckoutDue(b *Booking, now time.Time) bool {
	return b.IsActiveStay() && !now.Before(r.CheckOutDeadline(b))
}

// Today is the hotel's current calendar day.
func (r HouseRules) Today(now time.Time) time.Time {
	return LocalToday(now, r.Location)
}
