package catalog

import (
	"context"
	"database/sql"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog/db"
)

// Service is the read side used by the public API.
type Service struct {
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{qry: db.New(database)}
}

func (s Service) VisibleCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.qry.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	var out []Category
	for _, r := range rows {
		if r.IsVisible == 0 {
			continue
		}
		out = append(out, categoryFromRow(r))
	}
	return out, nil
}

// Locations visible anywhere on the site. Set bookableOnly to restrict
// to the stricter booking-screen subset.
func (s Service) VisibleLocations(ctx context.Context, bookableOnly bool) ([]Location, error) {
	rows, err := s.qry.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	var out []Location
	for _, r := range rows {
		if r.ShowLocation == 0 {
			continue
		}
		if bookableOnly && r.ShowOnBookingScreen == 0 {
			continue
		}
		out = append(out, locationFromRow(r))
	}
	return out, nil
}

func (s Service) VisibleMemberships(ctx context.Context) ([]Membership, error) {
	rows, err := s.qry.ListMemberships(ctx)
	if err != nil {
		return nil, err
	}
	var out []Membership
	for _, r := range rows {
		if r.IsVisible == 0 {
			continue
		}
		out = append(out, membershipFromRow(r))
	}
	return out, nil
}

func (s Service) UpcomingSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.qry.ListSessionsAfter(ctx, timezone.Now().Unix())
	if err != nil {
		return nil, err
	}
	var out []Session
	for _, r := range rows {
		if r.Status != string(StatusActive) {
			continue
		}
		out = append(out, sessionFromRow(r))
	}
	return out, nil
}

func (s Service) SessionByID(ctx context.Context, id int64) (Session, error) {
	row, err := s.qry.GetSession(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return sessionFromRow(row), nil
}

func (s Service) LocationByID(ctx context.Context, id int64) (Location, error) {
	row, err := s.qry.GetLocation(ctx, id)
	if err != nil {
		return Location{}, err
	}
	return locationFromRow(row), nil
}

func (s Service) MembershipByID(ctx context.Context, id int64) (Membership, error) {
	row, err := s.qry.GetMembership(ctx, id)
	if err != nil {
		return Membership{}, err
	}
	return membershipFromRow(row), nil
}
