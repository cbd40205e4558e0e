package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"

	"go.opentelemetry.io/otel/codes"
)

// Categories scrapes the category changelist. Per row: the first text
// cell is the name, the first numeric cell the sort order, the first
// flag icon the visibility.
func (s *Scraper) Categories(ctx context.Context) ([]catalog.Category, error) {
	ctx, span := tracer.Start(ctx, "scraper.Categories")
	defer span.End()

	doc, err := s.console.OpenPage(ctx, categoriesPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open categories page")
		return nil, fmt.Errorf("open categories page: %w", err)
	}
	table := findResultsTable(doc)
	if table == nil {
		slog.WarnContext(ctx, "no results table on categories page")
		return nil, nil
	}

	now := timezone.Now()
	var out []catalog.Category
	for _, r := range parseRows(table) {
		c := catalog.Category{ID: r.ID, LastUpdated: now}
		sortSet, iconSet := false, false
		for _, cl := range r.Cells {
			switch {
			case cl.hasIcon():
				if !iconSet {
					c.IsVisible = iconTrue(cl)
					iconSet = true
				}
			case isNameCell(cl):
				if c.Name == "" {
					c.Name = cl.Text
				}
			default:
				if v, ok := numericValue(cl); ok && !sortSet {
					c.SortOrder = v
					sortSet = true
				}
			}
		}
		if c.Name == "" {
			c.Name = headerName(r)
		}
		out = append(out, c)
	}
	slog.InfoContext(ctx, "scraped categories", "count", len(out))
	return out, nil
}
