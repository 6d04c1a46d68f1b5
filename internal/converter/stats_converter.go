package converter

import (
	"hotel-ortus/internal/delivery/dto"
	"hotel-ortus/internal/service"
)

func BookingStatsToResponse(stats *service.BookingStats) *dto.BookingStatsResponse {
	if stats == nil {
		return nil
	}
	return &dto.BookingStatsResponse{
		Total:     stats.Total,
		Today:     stats.Today,
		Pending:   stats.Pending,
		Confirmed: stats.Confirmed,
		Cancelled: stats.Cancelled,
		Completed: stats.Completed,
	}
}

func PaymentStatsToResponse(stats *service.PaymentStats) *dto.PaymentStatsResponse {
	if stats == nil {
		return nil
	}
	return &dto.PaymentStatsResponse{
		TodayCollection: stats.TodayCollection,
		TotalRevenue:    stats.TotalRevenue,
		Unpaid:          stats.Unpaid,
		Partial:         stats.Partial,
		Paid:            stats.Paid,
		Refunded:        stats.Refunded,
	}
}
