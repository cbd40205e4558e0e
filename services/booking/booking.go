// Package booking takes booking requests from the public site, keeps a
// record of each one and forwards it to the club manager's chat. A
// dead notification channel never loses a request: it stays stored
// with sent_to_telegram unset and can be resent later.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/booking/db"
	"clubhouse-backend/services/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"log/slog"
)

var tracer = otel.Tracer("services/booking")

const (
	SourceContactForm        = "contact_form"
	SourceSessionBooking     = "session_booking"
	SourceMembershipPurchase = "membership_purchase"
)

var (
	ErrNameRequired  = fmt.Errorf("name is required")
	ErrPhoneInvalid  = fmt.Errorf("phone number is not valid")
	ErrUnknownSource = fmt.Errorf("unknown booking source")
	ErrNotFound      = fmt.Errorf("referenced record not found")
)

// Request is what the site submits.
type Request struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	SessionID    *int64 `json:"session_id,omitempty"`
	MembershipID *int64 `json:"membership_id,omitempty"`
	Message      string `json:"message,omitempty"`
	Source       string `json:"source,omitempty"`
}

type Booking struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	SessionID      *int64    `json:"session_id,omitempty"`
	MembershipID   *int64    `json:"membership_id,omitempty"`
	Message        string    `json:"message,omitempty"`
	Source         string    `json:"source"`
	SentToTelegram bool      `json:"sent_to_telegram"`
	CreatedAt      time.Time `json:"created_at"`
}

// Notifier delivers the formatted request to a human.
type Notifier interface {
	NotifyManager(ctx context.Context, text string) error
}

type Service struct {
	qry      *db.Queries
	catalog  catalog.Service
	notifier Notifier
	now      func() time.Time
}

func NewService(database *sql.DB, notifier Notifier) *Service {
	return &Service{
		qry:      db.New(database),
		catalog:  catalog.NewService(database),
		notifier: notifier,
		now:      timezone.Now,
	}
}

// Create validates and stores a booking request, then tries to deliver
// it. Delivery failure is not a request failure.
func (s *Service) Create(ctx context.Context, req Request) (Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Create")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return Booking{}, ErrNameRequired
	}
	if !IsValidPhone(req.Phone) {
		return Booking{}, ErrPhoneInvalid
	}
	if req.Source == "" {
		req.Source = SourceContactForm
	}
	switch req.Source {
	case SourceContactForm, SourceSessionBooking, SourceMembershipPurchase:
	default:
		return Booking{}, ErrUnknownSource
	}
	span.SetAttributes(attribute.String("source", req.Source))

	// resolve references up front so the site learns about a stale id
	// before anything is stored
	if req.SessionID != nil {
		if _, err := s.catalog.SessionByID(ctx, *req.SessionID); err != nil {
			return Booking{}, refError("session", *req.SessionID, err)
		}
	}
	if req.MembershipID != nil {
		if _, err := s.catalog.MembershipByID(ctx, *req.MembershipID); err != nil {
			return Booking{}, refError("membership", *req.MembershipID, err)
		}
	}

	created := s.now()
	id, err := s.qry.CreateBookingRequest(ctx, db.CreateBookingRequestParams{
		Name:         req.Name,
		Phone:        req.Phone,
		SessionID:    nullableID(req.SessionID),
		MembershipID: nullableID(req.MembershipID),
		Message:      req.Message,
		Source:       req.Source,
		CreatedAt:    created.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		return Booking{}, fmt.Errorf("store booking request: %w", err)
	}

	booking := Booking{
		ID:           id,
		Name:         req.Name,
		Phone:        req.Phone,
		SessionID:    req.SessionID,
		MembershipID: req.MembershipID,
		Message:      req.Message,
		Source:       req.Source,
		CreatedAt:    created,
	}
	booking.SentToTelegram = s.deliver(ctx, booking)

	slog.InfoContext(ctx, "booking request created",
		"id", booking.ID,
		"source", booking.Source,
		"notified", booking.SentToTelegram)
	return booking, nil
}

// Resend re-delivers a stored request, e.g. after the bot was fixed.
func (s *Service) Resend(ctx context.Context, id int64) (bool, error) {
	row, err := s.qry.GetBookingRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return s.deliver(ctx, bookingFromRow(row)), nil
}

func (s *Service) ByID(ctx context.Context, id int64) (Booking, error) {
	row, err := s.qry.GetBookingRequest(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, ErrNotFound
	}
	if err != nil {
		return Booking{}, err
	}
	return bookingFromRow(row), nil
}

func (s *Service) List(ctx context.Context, limit, offset int64) ([]Booking, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.qry.ListBookingRequests(ctx, db.ListBookingRequestsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.qry.CountBookingRequests(ctx)
	if err != nil {
		return nil, 0, err
	}
	bookings := make([]Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, bookingFromRow(row))
	}
	return bookings, total, nil
}

func (s *Service) deliver(ctx context.Context, booking Booking) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.NotifyManager(ctx, s.formatMessage(ctx, booking)); err != nil {
		slog.WarnContext(ctx, "failed to notify manager", "booking", booking.ID, "err", err)
		return false
	}
	if err := s.qry.MarkBookingSent(ctx, booking.ID); err != nil {
		slog.WarnContext(ctx, "failed to mark booking as sent", "booking", booking.ID, "err", err)
	}
	return true
}

func refError(entity string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
	}
	return fmt.Errorf("look up %s %d: %w", entity, id, err)
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func bookingFromRow(row db.BookingRequest) Booking {
	b := Booking{
		ID:             row.ID,
		Name:           row.Name,
		Phone:          row.Phone,
		Message:        row.Message,
		Source:         row.Source,
		SentToTelegram: row.SentToTelegram != 0,
		CreatedAt:      time.Unix(row.CreatedAt, 0).In(timezone.Location),
	}
	if row.SessionID.Valid {
		b.SessionID = &row.SessionID.Int64
	}
	if row.MembershipID.Valid {
		b.MembershipID = &row.MembershipID.Int64
	}
	return b
}
