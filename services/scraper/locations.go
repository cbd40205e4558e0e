package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"

	"go.opentelemetry.io/otel/codes"
)

// Locations scrapes the location changelist. Rows carry two flag
// icons, the first is the general visibility and the second restricts
// the location to the booking screen. A second text cell, when
// present, is a free form description.
func (s *Scraper) Locations(ctx context.Context) ([]catalog.Location, error) {
	ctx, span := tracer.Start(ctx, "scraper.Locations")
	defer span.End()

	doc, err := s.console.OpenPage(ctx, locationsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open locations page")
		return nil, fmt.Errorf("open locations page: %w", err)
	}
	table := findResultsTable(doc)
	if table == nil {
		slog.WarnContext(ctx, "no results table on locations page")
		return nil, nil
	}

	now := timezone.Now()
	var out []catalog.Location
	for _, r := range parseRows(table) {
		l := catalog.Location{ID: r.ID, LastUpdated: now}
		icons, names := 0, 0
		sortSet := false
		for _, cl := range r.Cells {
			switch {
			case cl.hasIcon():
				switch icons {
				case 0:
					l.ShowLocation = iconTrue(cl)
				case 1:
					l.ShowOnBookingScreen = iconTrue(cl)
				}
				icons++
			case isNameCell(cl):
				switch names {
				case 0:
					l.Name = cl.Text
				case 1:
					l.Description = cl.Text
				}
				names++
			default:
				if v, ok := numericValue(cl); ok && !sortSet {
					l.SortOrder = v
					sortSet = true
				}
			}
		}
		if l.Name == "" {
			l.Name = headerName(r)
		}
		out = append(out, l)
	}
	slog.InfoContext(ctx, "scraped locations", "count", len(out))
	return out, nil
}
