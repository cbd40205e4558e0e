// Package sheets mirrors the scraped catalog into a Google spreadsheet
// the club staff already live in. Each entity gets its own tab, fully
// rewritten on every scrape since the console listing is the complete
// record set anyway.
package sheets

import (
	"context"
	"fmt"

	"clubhouse-backend/services/catalog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"log/slog"
)

var tracer = otel.Tracer("services/sheets")

type Config struct {
	SpreadsheetId string `json:"spreadsheet_id"`
	// service-account key file
	CredentialsFile string `json:"credentials_file"`
}

const (
	tabCategories  = "Categories"
	tabLocations   = "Locations"
	tabMemberships = "Memberships"
	tabSessions    = "Sessions"
)

type Mirror struct {
	svc           *sheets.Service
	spreadsheetId string
}

func NewMirror(ctx context.Context, cfg Config) (*Mirror, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Mirror{svc: svc, spreadsheetId: cfg.SpreadsheetId}, nil
}

func (m *Mirror) writeTab(ctx context.Context, tab string, header []interface{}, rows [][]interface{}) error {
	ctx, span := tracer.Start(ctx, "sheets:writeTab")
	defer span.End()

	_, err := m.svc.Spreadsheets.Values.
		Clear(m.spreadsheetId, tab+"!A:Z", &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "clear tab")
		return fmt.Errorf("clear tab %s: %w", tab, err)
	}

	values := append([][]interface{}{header}, rows...)
	_, err = m.svc.Spreadsheets.Values.
		Update(m.spreadsheetId, tab+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update tab")
		return fmt.Errorf("update tab %s: %w", tab, err)
	}

	slog.InfoContext(ctx, "mirrored tab to spreadsheet", "tab", tab, "rows", len(rows))
	return nil
}

func (m *Mirror) MirrorCategories(ctx context.Context, records []catalog.Category) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.ID, r.Name, r.SortOrder, r.IsVisible})
	}
	return m.writeTab(ctx, tabCategories,
		[]interface{}{"ID", "Name", "Sort order", "Visible"}, rows)
}

func (m *Mirror) MirrorLocations(ctx context.Context, records []catalog.Location) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, r.Name, r.ShowLocation, r.ShowOnBookingScreen, r.Description, r.SortOrder,
		})
	}
	return m.writeTab(ctx, tabLocations,
		[]interface{}{"ID", "Name", "Show", "On booking screen", "Description", "Sort order"}, rows)
}

func (m *Mirror) MirrorMemberships(ctx context.Context, records []catalog.Membership) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID, r.Name, r.Type, r.Price, r.SessionCount, r.IsVisible,
		})
	}
	return m.writeTab(ctx, tabMemberships,
		[]interface{}{"ID", "Name", "Type", "Price", "Sessions", "Visible"}, rows)
}

func (m *Mirror) MirrorSessions(ctx context.Context, records []catalog.Session) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		price := interface{}("")
		if r.Price != nil {
			price = *r.Price
		}
		rows = append(rows, []interface{}{
			r.ID,
			r.Datetime.Format("02.01.2006 15:04"),
			r.Name,
			r.LocationID,
			r.CategoryID,
			r.Trainers,
			r.MaxSpots,
			r.AvailableSpots,
			price,
			string(r.Status),
		})
	}
	return m.writeTab(ctx, tabSessions,
		[]interface{}{
			"ID", "Datetime", "Name", "Location", "Category",
			"Trainers", "Max spots", "Available", "Price", "Status",
		}, rows)
}
