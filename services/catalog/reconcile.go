package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"log/slog"
)

var tracer = otel.Tracer("services/catalog")

// Stats describes what one reconciliation pass did to the store.
type Stats struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Errors  int `json:"errors"`
}

// Reconciler applies freshly scraped record sets to the store with
// add/update/stale-delete semantics. Each record commits on its own so
// one malformed row cannot block the rest of the batch.
type Reconciler struct {
	qry *db.Queries
	now func() time.Time
}

func NewReconciler(database *sql.DB) *Reconciler {
	return &Reconciler{
		qry: db.New(database),
		now: timezone.Now,
	}
}

func (r *Reconciler) Categories(ctx context.Context, records []Category) Stats {
	ctx, span := tracer.Start(ctx, "reconcile:Categories")
	defer span.End()

	var stats Stats
	for _, rec := range records {
		_, err := r.qry.GetCategory(ctx, rec.ID)
		switch {
		case err == nil:
			err = r.qry.UpdateCategory(ctx, db.UpdateCategoryParams{
				Name:        rec.Name,
				SortOrder:   rec.SortOrder,
				IsVisible:   boolToInt(rec.IsVisible),
				LastUpdated: rec.LastUpdated.Unix(),
				ID:          rec.ID,
			})
			if err == nil {
				stats.Updated++
				continue
			}
		case errors.Is(err, sql.ErrNoRows):
			err = r.qry.CreateCategory(ctx, db.CreateCategoryParams{
				ID:          rec.ID,
				Name:        rec.Name,
				SortOrder:   rec.SortOrder,
				IsVisible:   boolToInt(rec.IsVisible),
				LastUpdated: rec.LastUpdated.Unix(),
			})
			if err == nil {
				stats.Added++
				continue
			}
		}
		stats.Errors++
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to save category", "id", rec.ID, "err", err)
	}

	span.SetAttributes(
		attribute.Int("added", stats.Added),
		attribute.Int("updated", stats.Updated),
		attribute.Int("errors", stats.Errors),
	)
	return stats
}

func (r *Reconciler) Locations(ctx context.Context, records []Location) Stats {
	ctx, span := tracer.Start(ctx, "reconcile:Locations")
	defer span.End()

	var stats Stats
	for _, rec := range records {
		_, err := r.qry.GetLocation(ctx, rec.ID)
		switch {
		case err == nil:
			err = r.qry.UpdateLocation(ctx, db.UpdateLocationParams{
				Name:                rec.Name,
				ShowLocation:        boolToInt(rec.ShowLocation),
				ShowOnBookingScreen: boolToInt(rec.ShowOnBookingScreen),
				Description:         rec.Description,
				SortOrder:           rec.SortOrder,
				LastUpdated:         rec.LastUpdated.Unix(),
				ID:                  rec.ID,
			})
			if err == nil {
				stats.Updated++
				continue
			}
		case errors.Is(err, sql.ErrNoRows):
			err = r.qry.CreateLocation(ctx, db.CreateLocationParams{
				ID:                  rec.ID,
				Name:                rec.Name,
				ShowLocation:        boolToInt(rec.ShowLocation),
				ShowOnBookingScreen: boolToInt(rec.ShowOnBookingScreen),
				Description:         rec.Description,
				SortOrder:           rec.SortOrder,
				LastUpdated:         rec.LastUpdated.Unix(),
			})
			if err == nil {
				stats.Added++
				continue
			}
		}
		stats.Errors++
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to save location", "id", rec.ID, "err", err)
	}

	span.SetAttributes(
		attribute.Int("added", stats.Added),
		attribute.Int("updated", stats.Updated),
		attribute.Int("errors", stats.Errors),
	)
	return stats
}

func (r *Reconciler) Memberships(ctx context.Context, records []Membership) Stats {
	ctx, span := tracer.Start(ctx, "reconcile:Memberships")
	defer span.End()

	var stats Stats
	for _, rec := range records {
		_, err := r.qry.GetMembership(ctx, rec.ID)
		switch {
		case err == nil:
			err = r.qry.UpdateMembership(ctx, db.UpdateMembershipParams{
				Name:         rec.Name,
				Type:         rec.Type,
				Price:        rec.Price,
				SessionCount: rec.SessionCount,
				IsVisible:    boolToInt(rec.IsVisible),
				LastUpdated:  rec.LastUpdated.Unix(),
				ID:           rec.ID,
			})
			if err == nil {
				stats.Updated++
				continue
			}
		case errors.Is(err, sql.ErrNoRows):
			err = r.qry.CreateMembership(ctx, db.CreateMembershipParams{
				ID:           rec.ID,
				Name:         rec.Name,
				Type:         rec.Type,
				Price:        rec.Price,
				SessionCount: rec.SessionCount,
				IsVisible:    boolToInt(rec.IsVisible),
				LastUpdated:  rec.LastUpdated.Unix(),
			})
			if err == nil {
				stats.Added++
				continue
			}
		}
		stats.Errors++
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to save membership", "id", rec.ID, "err", err)
	}

	span.SetAttributes(
		attribute.Int("added", stats.Added),
		attribute.Int("updated", stats.Updated),
		attribute.Int("errors", stats.Errors),
	)
	return stats
}

// WeekStart returns Monday 00:00:00 of the week containing t, in the
// club timezone. This is the stale-session purge boundary.
func WeekStart(t time.Time) time.Time {
	t = t.In(timezone.Location)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the running week
	}
	monday := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, timezone.Location)
}

// Sessions reconciles the scraped session set. When purgeStale is set
// (the weekly run) it first bulk-deletes sessions dated before the
// start of the current week. A session referencing a location or
// category missing from the store is counted as an error and skipped,
// never written.
func (r *Reconciler) Sessions(ctx context.Context, records []Session, purgeStale bool) Stats {
	ctx, span := tracer.Start(ctx, "reconcile:Sessions")
	defer span.End()

	var stats Stats
	if purgeStale {
		boundary := WeekStart(r.now())
		deleted, err := r.qry.DeleteSessionsBefore(ctx, boundary.Unix())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to purge stale sessions")
			slog.ErrorContext(ctx, "failed to purge stale sessions", "err", err)
		} else {
			stats.Deleted = int(deleted)
			slog.InfoContext(ctx, "purged stale sessions",
				"deleted", deleted, "before", boundary)
		}
	}

	for _, rec := range records {
		ok, err := r.referencesExist(ctx, rec)
		if err != nil {
			stats.Errors++
			span.RecordError(err)
			slog.ErrorContext(ctx, "failed to check session references", "id", rec.ID, "err", err)
			continue
		}
		if !ok {
			stats.Errors++
			slog.WarnContext(ctx, "skipping session with dangling reference",
				"id", rec.ID,
				"location_id", rec.LocationID,
				"category_id", rec.CategoryID)
			continue
		}

		_, err = r.qry.GetSession(ctx, rec.ID)
		switch {
		case err == nil:
			err = r.qry.UpdateSession(ctx, db.UpdateSessionParams{
				Datetime:       rec.Datetime.Unix(),
				LocationID:     rec.LocationID,
				CategoryID:     rec.CategoryID,
				Trainers:       rec.Trainers,
				Name:           rec.Name,
				MaxSpots:       rec.MaxSpots,
				AvailableSpots: rec.AvailableSpots,
				Price:          sessionPrice(rec),
				Status:         string(rec.Status),
				LastUpdated:    rec.LastUpdated.Unix(),
				ID:             rec.ID,
			})
			if err == nil {
				stats.Updated++
				continue
			}
		case errors.Is(err, sql.ErrNoRows):
			err = r.qry.CreateSession(ctx, db.CreateSessionParams{
				ID:             rec.ID,
				Datetime:       rec.Datetime.Unix(),
				LocationID:     rec.LocationID,
				CategoryID:     rec.CategoryID,
				Trainers:       rec.Trainers,
				Name:           rec.Name,
				MaxSpots:       rec.MaxSpots,
				AvailableSpots: rec.AvailableSpots,
				Price:          sessionPrice(rec),
				Status:         string(rec.Status),
				LastUpdated:    rec.LastUpdated.Unix(),
			})
			if err == nil {
				stats.Added++
				continue
			}
		}
		stats.Errors++
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to save session", "id", rec.ID, "err", err)
	}

	span.SetAttributes(
		attribute.Int("added", stats.Added),
		attribute.Int("updated", stats.Updated),
		attribute.Int("deleted", stats.Deleted),
		attribute.Int("errors", stats.Errors),
	)
	return stats
}

// the reference check must happen before the write: dangling
// references are enumerated, not inferred from whatever constraint
// error the driver happens to throw.
func (r *Reconciler) referencesExist(ctx context.Context, rec Session) (bool, error) {
	locOk, err := r.qry.LocationExists(ctx, rec.LocationID)
	if err != nil {
		return false, err
	}
	catOk, err := r.qry.CategoryExists(ctx, rec.CategoryID)
	if err != nil {
		return false, err
	}
	return locOk && catOk, nil
}
