package service

import (
	"bytes"
	"testing"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func TestFolioRender(t *testing.T) {
	b := sampleBooking()
	b.Name = "Asha Rao-Iyer!"
	b.PaymentStatus = entity.PaymentStatusPaid
	b.PaymentAmount = decimal.NewFromInt(8000)
	b.PaidAmount = decimal.NewFromInt(8000)
	paidAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	b.PaidAt = &paidAt
	b.SpecialRequests = "Extra pillows"
	original := b.CheckOut
	b.OriginalCheckOut = &original
	b.CheckOut = b.CheckOut.AddDate(0, 0, 1)
	b.ExtendedBy = 1

	svc := NewFolioService("Hotel Ortus", entity.HouseRules{Location: time.UTC, CheckInHour: 11, CheckOutHour: 11})
	content, filename, err := svc.Render(b, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if filename != "FOLIO_20250601_Asha_Rao_Iyer.pdf" {
		t.Fatalf("unexpected filename %q", filename)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Fatal("expected PDF output")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]string{
		"Asha Rao":   "Asha_Rao",
		"../../etc":  "etc",
		"":           "guest",
		"José María": "Jos_Mara",
	}
	for in, want := range cases {
		if got := safeFilenamePart(in); got != want {
			t.Errorf("safeFilenamePart(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := formatAmount(decimal.NewFromInt(2500).StringFixed(2)); got != "INR 2500.00" {
		t.Fatalf("unexpected amount %q", got)
	}
}
