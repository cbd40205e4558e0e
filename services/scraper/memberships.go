package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"

	"go.opentelemetry.io/otel/codes"
)

// Memberships scrapes the membership (abonement) changelist. Price and
// session count are both bare numbers, so they are told apart by
// magnitude: the club has never sold a pass under 100 currency units
// or with 100+ sessions on it.
func (s *Scraper) Memberships(ctx context.Context) ([]catalog.Membership, error) {
	ctx, span := tracer.Start(ctx, "scraper.Memberships")
	defer span.End()

	doc, err := s.console.OpenPage(ctx, membershipsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open memberships page")
		return nil, fmt.Errorf("open memberships page: %w", err)
	}
	table := findResultsTable(doc)
	if table == nil {
		slog.WarnContext(ctx, "no results table on memberships page")
		return nil, nil
	}

	now := timezone.Now()
	var out []catalog.Membership
	for _, r := range parseRows(table) {
		m := catalog.Membership{
			ID:           r.ID,
			Type:         "Обычный абонемент",
			SessionCount: 1,
			LastUpdated:  now,
		}
		names := 0
		iconSet := false
		for _, cl := range r.Cells {
			switch {
			case cl.hasIcon():
				if !iconSet {
					m.IsVisible = iconTrue(cl)
					iconSet = true
				}
			case isNameCell(cl):
				switch names {
				case 0:
					m.Name = cl.Text
				case 1:
					m.Type = cl.Text
				}
				names++
			default:
				v, ok := numericValue(cl)
				if !ok || v <= 0 {
					continue
				}
				if m.Price == 0 && v >= 100 {
					m.Price = v
				} else {
					m.SessionCount = v
				}
			}
		}
		if m.Name == "" {
			m.Name = headerName(r)
		}
		out = append(out, m)
	}
	slog.InfoContext(ctx, "scraped memberships", "count", len(out))
	return out, nil
}
