package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clubhouse-backend/services/booking"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func queryInt(r *http.Request, name string, fallback int64) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:categories")
	defer span.End()

	categories, err := s.catalog.VisibleCategories(ctx)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:locations")
	defer span.End()

	bookableOnly := r.URL.Query().Get("bookable") == "true"
	locations, err := s.catalog.VisibleLocations(ctx, bookableOnly)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) handleMemberships(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:memberships")
	defer span.End()

	memberships, err := s.catalog.VisibleMemberships(ctx)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memberships)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:sessions")
	defer span.End()

	sessions, err := s.catalog.UpcomingSessions(ctx)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:sessionByID")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "session id must be an integer")
		return
	}
	session, err := s.catalog.SessionByID(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:createBooking")
	defer span.End()

	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "request body is not valid json")
		return
	}
	created, err := s.bookings.Create(ctx, req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:listBookings")
	defer span.End()

	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)
	bookings, total, err := s.bookings.List(ctx, limit, offset)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func (s *Server) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:bookingByID")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "booking id must be an integer")
		return
	}
	found, err := s.bookings.ByID(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleResendBooking(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:resendBooking")
	defer span.End()

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "booking id must be an integer")
		return
	}
	sent, err := s.bookings.Resend(ctx, id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": sent})
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:syncStatus")
	defer span.End()

	last, err := s.sync.LastCycle(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no sync cycle has run yet")
		return
	}
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, last)
}

func (s *Server) handleSyncHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:syncHistory")
	defer span.End()

	history, err := s.sync.History(ctx, queryInt(r, "limit", 20))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleSyncRun(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api:syncRun")
	defer span.End()

	force := r.URL.Query().Get("force") == "true"
	report, err := s.sync.RunFullCycle(ctx, force)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
