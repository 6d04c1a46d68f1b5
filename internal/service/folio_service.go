package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"hotel-ortus/internal/domain/entity"

	"github.com/phpdave11/gofpdf"
)

const folioTimeLayout = "02 Jan 2006 15:04"

// FolioService renders a one-page guest folio: stay summary plus the payment ledger.
type FolioService interface {
	Render(booking *entity.Booking, issuedAt time.Time) ([]byte, string, error)
}

type folioService struct {
	hotelName string
	rules     entity.HouseRules
}

func NewFolioService(hotelName string, rules entity.HouseRules) FolioService {
	return &folioService{
		hotelName: hotelName,
		rules:     rules,
	}
}

func (s *folioService) Render(booking *entity.Booking, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Folio %s", booking.ID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(s.hotelName)+" - GUEST FOLIO")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Folio no : "+booking.ID.String())
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued   : "+issuedAt.In(s.rules.Location).Format(folioTimeLayout))
	pdf.Ln(10)

	s.section(pdf, "Guest")
	s.line(pdf, "Name", booking.Name)
	s.line(pdf, "Email", booking.Email)
	s.line(pdf, "Phone", booking.Phone)
	s.line(pdf, "Guests", fmt.Sprintf("%d", booking.Guests))
	pdf.Ln(4)

	s.section(pdf, "Stay")
	s.line(pdf, "Room", string(booking.RoomType))
	s.line(pdf, "Check-in", s.rules.CheckInOpensAt(booking).Format(folioTimeLayout))
	s.line(pdf, "Check-out", s.rules.CheckOutDeadline(booking).Format(folioTimeLayout))
	if booking.ExtendedBy > 0 && booking.OriginalCheckOut != nil {
		s.line(pdf, "Extended", fmt.Sprintf("%d night(s), originally %s", booking.ExtendedBy, booking.OriginalCheckOut.Format(entity.DateLayout)))
	}
	s.line(pdf, "Arrived", s.formatOptional(booking.ActualCheckIn))
	s.line(pdf, "Departed", s.formatOptional(booking.ActualCheckOut))
	s.line(pdf, "Status", string(booking.Status))
	pdf.Ln(4)

	s.section(pdf, "Charges")
	rate := booking.RoomType.NightlyRate()
	s.line(pdf, "Nightly rate", formatAmount(rate.StringFixed(2)))
	s.line(pdf, "Nights", fmt.Sprintf("%d", booking.Nights()))
	s.line(pdf, "Suggested", formatAmount(booking.SuggestedAmount().StringFixed(2)))
	s.line(pdf, "Amount due", formatAmount(booking.PaymentAmount.StringFixed(2)))
	s.line(pdf, "Paid", formatAmount(booking.PaidAmount.StringFixed(2)))
	s.line(pdf, "Balance", formatAmount(booking.PaymentAmount.Sub(booking.PaidAmount).StringFixed(2)))
	s.line(pdf, "Payment", string(booking.PaymentStatus))
	if booking.PaidAt != nil {
		s.line(pdf, "Paid at", booking.PaidAt.In(s.rules.Location).Format(folioTimeLayout))
	}

	if booking.SpecialRequests != "" {
		pdf.Ln(4)
		s.section(pdf, "Special requests")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, booking.SpecialRequests, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render folio: %w", err)
	}

	filename := fmt.Sprintf("FOLIO_%s_%s.pdf", booking.CheckIn.Format("20060102"), safeFilenamePart(booking.Name))
	return buf.Bytes(), filename, nil
}

func (s *folioService) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
}

func (s *folioService) line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(40, 6, label)
	pdf.Cell(0, 6, value)
	pdf.Ln(6)
}

func (s *folioService) formatOptional(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(s.rules.Location).Format(folioTimeLayout)
}

func formatAmount(v string) string {
	return "INR " + v
}

func safeFilenamePart(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "guest"
	}
	return b.String()
}
