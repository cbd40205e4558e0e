// Package api is the JSON surface the public site talks to. Responses
// use a {"success": ..., "data": ...} envelope; errors carry a machine
// code next to the human message.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clubhouse-backend/services/booking"
	"clubhouse-backend/services/catalog"
	"clubhouse-backend/services/sync"

	"go.opentelemetry.io/otel"

	"log/slog"
)

var tracer = otel.Tracer("services/api")

// Bookings is the slice of the booking service the handlers need.
type Bookings interface {
	Create(ctx context.Context, req booking.Request) (booking.Booking, error)
	ByID(ctx context.Context, id int64) (booking.Booking, error)
	List(ctx context.Context, limit, offset int64) ([]booking.Booking, int64, error)
	Resend(ctx context.Context, id int64) (bool, error)
}

// Sync is the slice of the sync service the handlers need.
type Sync interface {
	RunFullCycle(ctx context.Context, force bool) (sync.Report, error)
	LastCycle(ctx context.Context) (sync.Report, error)
	History(ctx context.Context, limit int64) ([]sync.Report, error)
}

type Server struct {
	catalog  catalog.Service
	bookings Bookings
	sync     Sync
}

func NewServer(catalogSvc catalog.Service, bookings Bookings, syncSvc Sync) *Server {
	return &Server{catalog: catalogSvc, bookings: bookings, sync: syncSvc}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/locations", s.handleLocations)
	mux.HandleFunc("GET /api/memberships", s.handleMemberships)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSessionByID)

	mux.HandleFunc("POST /api/booking", s.handleCreateBooking)
	mux.HandleFunc("GET /api/booking", s.handleListBookings)
	mux.HandleFunc("GET /api/booking/{id}", s.handleBookingByID)
	mux.HandleFunc("POST /api/booking/{id}/resend", s.handleResendBooking)

	mux.HandleFunc("GET /api/sync/status", s.handleSyncStatus)
	mux.HandleFunc("GET /api/sync/history", s.handleSyncHistory)
	mux.HandleFunc("POST /api/sync/run", s.handleSyncRun)

	return logRequests(mux)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message},
	})
}

// writeFailure maps service errors onto stable HTTP codes.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, booking.ErrNameRequired),
		errors.Is(err, booking.ErrPhoneInvalid),
		errors.Is(err, booking.ErrUnknownSource):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, sync.ErrCycleInProgress):
		writeError(w, http.StatusConflict, "CYCLE_IN_PROGRESS", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
