package http

import (
	"net/http"

	"hotel-ortus/internal/delivery/http/handler"
	"hotel-ortus/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	bookingHandler      *handler.BookingHandler
	adminBookingHandler *handler.AdminBookingHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	requestLogger       *middleware.RequestLogger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	adminBookingHandler *handler.AdminBookingHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestLogger *middleware.RequestLogger,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		bookingHandler:      bookingHandler,
		adminBookingHandler: adminBookingHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		requestLogger:       requestLogger,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public website
	api.HandleFunc("/bookings", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	api.HandleFunc("/rooms/rates", r.bookingHandler.GetRoomRates).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", r.authHandler.Register).Methods(http.MethodPost)

	// Booking console; static paths before {id}
	admin.HandleFunc("/bookings", r.adminBookingHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", r.adminBookingHandler.GetBookingStats).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/payment-stats", r.adminBookingHandler.GetPaymentStats).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.adminBookingHandler.GetBooking).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.adminBookingHandler.DeleteBooking).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{id}/folio", r.adminBookingHandler.DownloadFolio).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", r.adminBookingHandler.UpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/payment", r.adminBookingHandler.UpdatePayment).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/check-in", r.adminBookingHandler.CheckIn).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/check-out", r.adminBookingHandler.CheckOut).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/extend", r.adminBookingHandler.ExtendStay).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/archive", r.adminBookingHandler.Archive).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/unarchive", r.adminBookingHandler.Unarchive).Methods(http.MethodPost)

	// Audit trail
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests need a matching route for the middleware to run
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.requestLogger.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
