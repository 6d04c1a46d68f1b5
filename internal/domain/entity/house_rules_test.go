package entity

import (
	"testing"
	"time"
)

func TestHouseRulesDeadlines(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	rules := HouseRules{Location: loc, CheckInHour: 11, CheckOutHour: 11}
	b := &Booking{CheckIn: mustDate(t, "2025-06-01"), CheckOut: mustDate(t, "2025-06-03")}

	opens := rules.CheckInOpensAt(b)
	if want := time.Date(2025, 6, 1, 11, 0, 0, 0, loc); !opens.Equal(want) {
		t.Fatalf("expected check-in to open at %v, got %v", want, opens)
	}

	deadline := rules.CheckOutDeadline(b)
	if want := time.Date(2025, 6, 3, 5, 30, 0, 0, time.UTC); !deadline.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, deadline)
	}

	if !rules.ArrivalTooEarly(b, time.Date(2025, 6, 1, 10, 59, 0, 0, loc)) {
		t.Fatal("10:59 local should be too early")
	}
	if rules.ArrivalTooEarly(b, opens) {
		t.Fatal("arrival exactly at opening should be allowed")
	}
}

func TestHouseRulesCheckoutDue(t *testing.T) {
	loc := time.UTC
	rules := HouseRules{Location: loc, CheckInHour: 11, CheckOutHour: 11}
	b := &Booking{CheckIn: mustDate(t, "2025-06-01"), CheckOut: mustDate(t, "2025-06-03")}

	deadline := time.Date(2025, 6, 3, 11, 0, 0, 0, loc)
	if rules.CheckoutDue(b, deadline) {
		t.Fatal("a guest who never arrived is not due")
	}

	_ = b.RecordArrival(time.Date(2025, 6, 1, 12, 0, 0, 0, loc))
	if rules.CheckoutDue(b, deadline.Add(-time.Second)) {
		t.Fatal("not due before the deadline")
	}
	if !rules.CheckoutDue(b, deadline) {
		t.Fatal("due exactly at the deadline")
	}

	_ = b.RecordDeparture(deadline)
	if rules.CheckoutDue(b, deadline.Add(time.Hour)) {
		t.Fatal("a departed guest is not due")
	}
}

func TestLocalTodayCrossesMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	rules := HouseRules{Location: loc}

	// 20:00 UTC on the 1st is already the 2nd in IST.
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	if got := rules.Today(now).Format(DateLayout); got != "2025-06-02" {
		t.Fatalf("expected 2025-06-02, got %s", got)
	}
	if rules.Today(now).Location() != time.UTC {
		t.Fatal("calendar dates are kept at midnight UTC")
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("01/06/2025"); err == nil {
		t.Fatal("expected an error")
	}
	d := mustDate(t, "2025-02-28")
	if d.Hour() != 0 || d.Location() != time.UTC {
		t.Fatalf("expected midnight UTC, got %v", d)
	}
}
