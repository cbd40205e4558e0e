package catalog

import (
	"database/sql"
	"time"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog/db"
)

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func unixTime(v int64) time.Time {
	return time.Unix(v, 0).In(timezone.Location)
}

func categoryFromRow(r db.Category) Category {
	return Category{
		ID:          r.ID,
		Name:        r.Name,
		SortOrder:   r.SortOrder,
		IsVisible:   r.IsVisible != 0,
		LastUpdated: unixTime(r.LastUpdated),
	}
}

func locationFromRow(r db.Location) Location {
	return Location{
		ID:                  r.ID,
		Name:                r.Name,
		ShowLocation:        r.ShowLocation != 0,
		ShowOnBookingScreen: r.ShowOnBookingScreen != 0,
		Description:         r.Description,
		SortOrder:           r.SortOrder,
		LastUpdated:         unixTime(r.LastUpdated),
	}
}

func membershipFromRow(r db.Membership) Membership {
	return Membership{
		ID:           r.ID,
		Name:         r.Name,
		Type:         r.Type,
		Price:        r.Price,
		SessionCount: r.SessionCount,
		IsVisible:    r.IsVisible != 0,
		LastUpdated:  unixTime(r.LastUpdated),
	}
}

func sessionFromRow(r db.Session) Session {
	var price *int64
	if r.Price.Valid {
		v := r.Price.Int64
		price = &v
	}
	return Session{
		ID:             r.ID,
		Datetime:       unixTime(r.Datetime),
		LocationID:     r.LocationID,
		CategoryID:     r.CategoryID,
		Trainers:       r.Trainers,
		Name:           r.Name,
		MaxSpots:       r.MaxSpots,
		AvailableSpots: r.AvailableSpots,
		Price:          price,
		Status:         Status(r.Status),
		LastUpdated:    unixTime(r.LastUpdated),
	}
}

func sessionPrice(s Session) sql.NullInt64 {
	if s.Price == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *s.Price, Valid: true}
}
