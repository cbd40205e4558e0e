// Package sync runs the scrape-and-reconcile cycle: every entity is
// scraped from the admin console, reconciled into the store, mirrored
// out, and the outcome is written to an audit trail.
package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"clubhouse-backend/lib/retry"
	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"
	"clubhouse-backend/services/console"
	"clubhouse-backend/services/scraper"
	"clubhouse-backend/services/sync/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"log/slog"
)

var tracer = otel.Tracer("services/sync")

var ErrCycleInProgress = fmt.Errorf("a sync cycle is already running")

const (
	KindRegular = "regular"
	// weekly cycles additionally purge sessions older than the current
	// week
	KindWeekly = "weekly"
)

// Mirror pushes freshly scraped records to an external copy, e.g. a
// spreadsheet. Mirror failures never fail the cycle.
type Mirror interface {
	MirrorCategories(ctx context.Context, records []catalog.Category) error
	MirrorLocations(ctx context.Context, records []catalog.Location) error
	MirrorMemberships(ctx context.Context, records []catalog.Membership) error
	MirrorSessions(ctx context.Context, records []catalog.Session) error
}

// Alerter tells a human that a cycle went wrong.
type Alerter interface {
	SystemAlert(ctx context.Context, message string)
}

// Report is the outcome of one cycle, keyed by entity name.
type Report struct {
	Kind       string                   `json:"kind"`
	StartedAt  time.Time                `json:"started_at"`
	DurationMs int64                    `json:"duration_ms"`
	Success    bool                     `json:"success"`
	Stats      map[string]catalog.Stats `json:"stats"`
	Errors     map[string]string        `json:"errors,omitempty"`
}

type Service struct {
	console *console.Client
	scraper *scraper.Scraper
	rec     *catalog.Reconciler
	qry     *db.Queries
	mirror  Mirror
	alerter Alerter

	// zero values fall back to the retry defaults; tests shrink the
	// delays
	retryOpts retry.Options

	mu      gosync.Mutex
	running bool
}

// New wires a sync service over an opened store and console client.
// mirror and alerter may be nil.
func New(database *sql.DB, client *console.Client, mirror Mirror, alerter Alerter) *Service {
	return &Service{
		console: client,
		scraper: scraper.New(client),
		rec:     catalog.NewReconciler(database),
		qry:     db.New(database),
		mirror:  mirror,
		alerter: alerter,
	}
}

// RunFullCycle scrapes all four entities in dependency order and
// reconciles each into the store. One entity failing does not stop the
// others; every failure lands in the report keyed by entity. Cycles
// never overlap: a second call while one runs returns
// ErrCycleInProgress.
//
// Cycles started on a Friday, or with force set, also purge sessions
// that ended before the current week.
func (s *Service) RunFullCycle(ctx context.Context, force bool) (Report, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return Report{}, ErrCycleInProgress
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, span := tracer.Start(ctx, "sync.RunFullCycle")
	defer span.End()
	defer s.console.Release()

	started := timezone.Now()
	weekly := force || started.Weekday() == time.Friday
	kind := KindRegular
	if weekly {
		kind = KindWeekly
	}
	span.SetAttributes(attribute.String("kind", kind))

	report := Report{
		Kind:      kind,
		StartedAt: started,
		Stats:     map[string]catalog.Stats{},
		Errors:    map[string]string{},
	}

	if recs, err := retry.Do(ctx, s.entityRetry("scrape categories"), s.scraper.Categories); err != nil {
		report.Errors["categories"] = err.Error()
	} else {
		report.Stats["categories"] = s.rec.Categories(ctx, recs)
		if s.mirror != nil {
			if err := s.mirror.MirrorCategories(ctx, recs); err != nil {
				slog.WarnContext(ctx, "mirror categories", "err", err)
			}
		}
	}

	if recs, err := retry.Do(ctx, s.entityRetry("scrape locations"), s.scraper.Locations); err != nil {
		report.Errors["locations"] = err.Error()
	} else {
		report.Stats["locations"] = s.rec.Locations(ctx, recs)
		if s.mirror != nil {
			if err := s.mirror.MirrorLocations(ctx, recs); err != nil {
				slog.WarnContext(ctx, "mirror locations", "err", err)
			}
		}
	}

	if recs, err := retry.Do(ctx, s.entityRetry("scrape memberships"), s.scraper.Memberships); err != nil {
		report.Errors["memberships"] = err.Error()
	} else {
		report.Stats["memberships"] = s.rec.Memberships(ctx, recs)
		if s.mirror != nil {
			if err := s.mirror.MirrorMemberships(ctx, recs); err != nil {
				slog.WarnContext(ctx, "mirror memberships", "err", err)
			}
		}
	}

	if recs, err := retry.Do(ctx, s.entityRetry("scrape sessions"), s.scraper.Sessions); err != nil {
		report.Errors["sessions"] = err.Error()
	} else {
		report.Stats["sessions"] = s.rec.Sessions(ctx, recs, weekly)
		if s.mirror != nil {
			if err := s.mirror.MirrorSessions(ctx, recs); err != nil {
				slog.WarnContext(ctx, "mirror sessions", "err", err)
			}
		}
	}

	report.DurationMs = time.Since(started).Milliseconds()
	report.Success = len(report.Errors) == 0

	// alert before the audit write: a failing audit write must not
	// swallow the alert about the entity errors
	if !report.Success && s.alerter != nil {
		s.alerter.SystemAlert(ctx, alertMessage(report))
	}

	if err := s.recordCycle(ctx, report); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "record cycle")
		return report, fmt.Errorf("record cycle: %w", err)
	}

	slog.InfoContext(ctx, "sync cycle finished",
		"kind", kind,
		"success", report.Success,
		"duration_ms", report.DurationMs,
		"entity_errors", len(report.Errors))
	return report, nil
}

// SetRetryAttempts overrides how many times each entity scrape is
// attempted before it counts as failed. Zero or negative keeps the
// default.
func (s *Service) SetRetryAttempts(n int) {
	s.retryOpts.MaxAttempts = n
}

func (s *Service) entityRetry(name string) retry.Options {
	opts := s.retryOpts
	opts.Name = name
	return opts
}

func alertMessage(report Report) string {
	entities := make([]string, 0, len(report.Errors))
	for entity := range report.Errors {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	var b strings.Builder
	fmt.Fprintf(&b, "sync cycle (%s) failed:", report.Kind)
	for _, entity := range entities {
		fmt.Fprintf(&b, "\n%s: %s", entity, report.Errors[entity])
	}
	return b.String()
}

func (s *Service) recordCycle(ctx context.Context, report Report) error {
	stats, err := json.Marshal(report.Stats)
	if err != nil {
		return err
	}
	errs, err := json.Marshal(report.Errors)
	if err != nil {
		return err
	}
	success := int64(0)
	if report.Success {
		success = 1
	}
	return s.qry.CreateCycleRecord(ctx, db.CreateCycleRecordParams{
		Kind:       report.Kind,
		StartedAt:  report.StartedAt.Unix(),
		DurationMs: report.DurationMs,
		Success:    success,
		Stats:      string(stats),
		Errors:     string(errs),
	})
}

func reportFromRow(row db.CycleHistory) (Report, error) {
	report := Report{
		Kind:       row.Kind,
		StartedAt:  time.Unix(row.StartedAt, 0).In(timezone.Location),
		DurationMs: row.DurationMs,
		Success:    row.Success != 0,
	}
	if err := json.Unmarshal([]byte(row.Stats), &report.Stats); err != nil {
		return Report{}, err
	}
	if err := json.Unmarshal([]byte(row.Errors), &report.Errors); err != nil {
		return Report{}, err
	}
	return report, nil
}

// LastCycle returns the most recent audit record. sql.ErrNoRows when
// no cycle has run yet.
func (s *Service) LastCycle(ctx context.Context) (Report, error) {
	row, err := s.qry.GetLastCycle(ctx)
	if err != nil {
		return Report{}, err
	}
	return reportFromRow(row)
}

func (s *Service) History(ctx context.Context, limit int64) ([]Report, error) {
	rows, err := s.qry.ListCycleHistory(ctx, limit)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, 0, len(rows))
	for _, row := range rows {
		report, err := reportFromRow(row)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
