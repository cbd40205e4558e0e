package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"clubhouse-backend/lib/htmlutil"
	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// maxSessionPages bounds pagination so a console bug cannot spin the
// scraper forever.
const maxSessionPages = 100

// The session header column packs several fields into one string:
//
//	858: 15.03.2025 (Сб) 18:00 Evening Drill 1: Main Hall
var (
	sessionDateRe = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{2,4})\s*\([^)]*\)\s*(\d{1,2}):(\d{2})`)
	sessionLocRe  = regexp.MustCompile(`(\d+):\s*([^:]+)$`)
	sessionNameRe = regexp.MustCompile(`\d{1,2}:\d{2}\s+(.+?)\s+\d+:`)
)

// Sessions scrapes every page of the upcoming-sessions changelist,
// following next links until the paginator runs out.
func (s *Scraper) Sessions(ctx context.Context) ([]catalog.Session, error) {
	ctx, span := tracer.Start(ctx, "scraper.Sessions")
	defer span.End()

	now := timezone.Now()
	var out []catalog.Session
	path := sessionsPath
	for page := 1; ; page++ {
		if page > maxSessionPages {
			slog.WarnContext(ctx, "session pagination hit page ceiling", "pages", maxSessionPages)
			break
		}
		doc, err := s.console.OpenPage(ctx, path)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "open sessions page")
			return nil, fmt.Errorf("open sessions page %d: %w", page, err)
		}
		table := findResultsTable(doc)
		if table == nil {
			if page == 1 {
				slog.WarnContext(ctx, "no results table on sessions page")
			}
			break
		}
		for _, r := range parseRows(table) {
			out = append(out, s.sessionFromRow(ctx, r, now))
		}
		next, ok := nextPagePath(doc, path)
		if !ok {
			break
		}
		path = s.relPath(next)
	}
	slog.InfoContext(ctx, "scraped sessions", "count", len(out))
	return out, nil
}

// nextPagePath returns the path of the next changelist page, if any.
// The last paginator link doubles as a "previous" link on the final
// page, which must not send us backwards.
func nextPagePath(doc *goquery.Document, currentPath string) (string, bool) {
	link := doc.Find("a.next").First()
	if link.Length() == 0 {
		link = doc.Find(".paginator a").Last()
	}
	if link.Length() == 0 {
		return "", false
	}
	text := strings.ToLower(htmlutil.CleanText(link.Text()))
	if text == "" || strings.Contains(text, "prev") || strings.Contains(text, "назад") {
		return "", false
	}
	href := link.AttrOr("href", "")
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "?") {
		base, _, _ := strings.Cut(currentPath, "?")
		return base + href, true
	}
	return href, true
}

func (s *Scraper) sessionFromRow(ctx context.Context, r row, now time.Time) catalog.Session {
	sess := catalog.Session{
		ID:          r.ID,
		LocationID:  1,
		CategoryID:  1,
		MaxSpots:    10,
		Status:      catalog.StatusActive,
		LastUpdated: now,
	}

	if m := sessionDateRe.FindStringSubmatch(r.Header); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		sess.Datetime = time.Date(year, time.Month(month), day, hour, minute, 0, 0, timezone.Location)
	} else {
		// scrape time keeps the row visible until the header parses;
		// a zero stamp would be purged on the next weekly run
		sess.Datetime = now
		slog.WarnContext(ctx, "session header has no datetime", "id", r.ID, "header", r.Header)
	}
	if m := sessionLocRe.FindStringSubmatch(r.Header); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			sess.LocationID = id
		}
	}
	if m := sessionNameRe.FindStringSubmatch(r.Header); m != nil {
		sess.Name = strings.TrimSpace(m[1])
	}

	var small, large []int64
	availSeen := false
	for _, cl := range r.Cells {
		switch {
		case cl.hasIcon():
			if !iconTrue(cl) {
				sess.Status = catalog.StatusCancelled
			}
		case strings.Contains(cl.Href, "/category/"):
			if id, ok := idFromHref(cl.Href); ok {
				sess.CategoryID = id
			}
		case strings.Contains(strings.ToLower(cl.Text), "тренер"):
			sess.Trainers = cl.Text
		default:
			if v, ok := numericValue(cl); ok {
				if v >= 100 {
					large = append(large, v)
				} else {
					small = append(small, v)
				}
			} else if sess.Name == "" && isNameCell(cl) {
				sess.Name = cl.Text
			}
		}
	}
	if len(small) > 0 {
		sess.MaxSpots = small[0]
	}
	if len(small) > 1 {
		sess.AvailableSpots = small[1]
		availSeen = true
	}
	if len(large) > 0 {
		price := large[0]
		sess.Price = &price
	}
	if !availSeen {
		sess.AvailableSpots = s.fetchAvailableSpots(ctx, r.DetailHref)
	}
	return sess
}

// fetchAvailableSpots opens a session's detail page when the listing
// omits the spots column. Failures degrade to zero spots rather than
// failing the whole scrape.
func (s *Scraper) fetchAvailableSpots(ctx context.Context, href string) int64 {
	if href == "" {
		return 0
	}
	doc, err := s.openHref(ctx, href)
	if err != nil {
		slog.WarnContext(ctx, "open session detail page", "href", href, "err", err)
		return 0
	}
	for _, sel := range []string{"#id_available_spots", "input[name=available_spots]"} {
		if input := doc.Find(sel).First(); input.Length() > 0 {
			if v, err := strconv.ParseInt(strings.TrimSpace(input.AttrOr("value", "")), 10, 64); err == nil {
				return v
			}
		}
	}
	if field := doc.Find(".field-available_spots .readonly").First(); field.Length() > 0 {
		if v, err := strconv.ParseInt(htmlutil.CleanText(field.Text()), 10, 64); err == nil {
			return v
		}
	}
	return 0
}
