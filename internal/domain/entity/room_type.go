package entity

import "github.com/shopspring/decimal"

// RoomType is the kind of room a guest reserves
type RoomType string

const (
	RoomTypeDeluxe    RoomType = "Deluxe Room"
	RoomTypeExecutive RoomType = "Executive Suite"
	RoomTypeFamily    RoomType = "Family Room"
)

// nightlyRates is reference data only; it suggests a payment amount and never constrains one.
var nightlyRates = map[RoomType]decimal.Decimal{
	RoomTypeDeluxe:    decimal.NewFromInt(2500),
	RoomTypeExecutive: decimal.NewFromInt(4000),
	RoomTypeFamily:    decimal.NewFromInt(5500),
}

var defaultNightlyRate = decimal.NewFromInt(2500)

// RoomTypes returns the bookable room types in display order
func RoomTypes() []RoomType {
	return []RoomType{RoomTypeDeluxe, RoomTypeExecutive, RoomTypeFamily}
}

func (r RoomType) IsValid() bool {
	_, ok := nightlyRates[r]
	return ok
}

// NightlyRate falls back to the deluxe rate for unknown room types.
func (r RoomType) NightlyRate() decimal.Decimal {
	if rate, ok := nightlyRates[r]; ok {
		return rate
	}
	return defaultNightlyRate
}
