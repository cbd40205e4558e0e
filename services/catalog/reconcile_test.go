package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"clubhouse-backend/lib/testutil"
	"clubhouse-backend/lib/timezone"
	catalogdb "clubhouse-backend/services/catalog/db"

	"github.com/stretchr/testify/require"
)

func setupReconciler(t *testing.T) (*Reconciler, *sql.DB) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:      "catalog",
		DbSchemas: []string{catalogdb.Schema},
	})
	t.Cleanup(cleanup)
	return NewReconciler(result.DB), result.DB
}

func seedReferences(t *testing.T, rec *Reconciler) {
	ctx := context.Background()
	stats := rec.Categories(ctx, []Category{
		{ID: 1, Name: "Training", IsVisible: true, LastUpdated: timezone.Now()},
	})
	require.Zero(t, stats.Errors)
	stats = rec.Locations(ctx, []Location{
		{ID: 1, Name: "Main Hall", ShowLocation: true, LastUpdated: timezone.Now()},
	})
	require.Zero(t, stats.Errors)
}

func TestReconcileCategories(t *testing.T) {
	rec, database := setupReconciler(t)
	ctx := context.Background()
	now := timezone.Now()

	records := []Category{
		{ID: 1, Name: "Training", SortOrder: 5, IsVisible: true, LastUpdated: now},
		{ID: 2, Name: "Advanced", SortOrder: 10, IsVisible: false, LastUpdated: now},
	}
	stats := rec.Categories(ctx, records)
	require.Equal(t, 2, stats.Added)
	require.Zero(t, stats.Updated)
	require.Zero(t, stats.Errors)

	// a second pass with one change updates in place
	records[0].Name = "Basics"
	stats = rec.Categories(ctx, records)
	require.Zero(t, stats.Added)
	require.Equal(t, 2, stats.Updated)

	row, err := catalogdb.New(database).GetCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Basics", row.Name)
}

func TestReconcileSessionsRejectsDanglingReferences(t *testing.T) {
	rec, database := setupReconciler(t)
	seedReferences(t, rec)
	ctx := context.Background()
	now := timezone.Now()

	stats := rec.Sessions(ctx, []Session{
		{ID: 1, Datetime: now, LocationID: 1, CategoryID: 1, Status: StatusActive, LastUpdated: now},
		{ID: 2, Datetime: now, LocationID: 77, CategoryID: 1, Status: StatusActive, LastUpdated: now},
		{ID: 3, Datetime: now, LocationID: 1, CategoryID: 77, Status: StatusActive, LastUpdated: now},
	}, false)
	require.Equal(t, 1, stats.Added)
	require.Equal(t, 2, stats.Errors)

	// the dangling ones were skipped, not partially written
	_, err := NewService(database).SessionByID(ctx, 2)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWeekStart(t *testing.T) {
	// Wednesday 2025-03-12 15:30 -> Monday 2025-03-10 00:00
	wednesday := time.Date(2025, time.March, 12, 15, 30, 0, 0, timezone.Location)
	require.Equal(t,
		time.Date(2025, time.March, 10, 0, 0, 0, 0, timezone.Location),
		WeekStart(wednesday))

	// Sunday still belongs to the running week
	sunday := time.Date(2025, time.March, 16, 23, 59, 0, 0, timezone.Location)
	require.Equal(t,
		time.Date(2025, time.March, 10, 0, 0, 0, 0, timezone.Location),
		WeekStart(sunday))

	// Monday midnight is its own boundary
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, timezone.Location)
	require.Equal(t, monday, WeekStart(monday))
}

func TestReconcileSessionsPurgeBoundary(t *testing.T) {
	rec, database := setupReconciler(t)
	seedReferences(t, rec)
	ctx := context.Background()

	// pin the clock to Wednesday 2025-03-12
	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, timezone.Location)
	rec.now = func() time.Time { return now }

	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, timezone.Location)
	sessions := []Session{
		{ID: 1, Datetime: weekStart.Add(-time.Second), LocationID: 1, CategoryID: 1, Status: StatusActive, LastUpdated: now},
		{ID: 2, Datetime: weekStart, LocationID: 1, CategoryID: 1, Status: StatusActive, LastUpdated: now},
		{ID: 3, Datetime: now.Add(24 * time.Hour), LocationID: 1, CategoryID: 1, Status: StatusActive, LastUpdated: now},
	}
	stats := rec.Sessions(ctx, sessions, false)
	require.Equal(t, 3, stats.Added)

	// the purge removes strictly-before-Monday sessions only
	stats = rec.Sessions(ctx, nil, true)
	require.Equal(t, 1, stats.Deleted)

	svc := NewService(database)
	_, err := svc.SessionByID(ctx, 1)
	require.ErrorIs(t, err, sql.ErrNoRows)
	_, err = svc.SessionByID(ctx, 2)
	require.NoError(t, err)
	_, err = svc.SessionByID(ctx, 3)
	require.NoError(t, err)
}

func TestReconcileMemberships(t *testing.T) {
	rec, database := setupReconciler(t)
	ctx := context.Background()
	now := timezone.Now()

	stats := rec.Memberships(ctx, []Membership{
		{ID: 7, Name: "Абонемент 8", Type: "Обычный абонемент", Price: 5600, SessionCount: 8, IsVisible: true, LastUpdated: now},
	})
	require.Equal(t, 1, stats.Added)

	row, err := catalogdb.New(database).GetMembership(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, int64(5600), row.Price)
	require.Equal(t, int64(8), row.SessionCount)
}
