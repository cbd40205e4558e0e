// Package scraper turns admin-console listing pages into typed catalog
// records. The console renders plain Django-style changelist tables
// whose column order is not stable across deployments, so every field
// is located by content heuristics instead of positional indexing.
package scraper

import (
	"context"
	"strings"

	"clubhouse-backend/services/console"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/scraper")

const (
	categoriesPath  = "/core/category/"
	locationsPath   = "/core/location/"
	membershipsPath = "/core/abon/"
	sessionsPath    = "/core/futureworkout/"
)

type Scraper struct {
	console *console.Client
}

func New(c *console.Client) *Scraper {
	return &Scraper{console: c}
}

// relPath strips the admin-root prefix off hrefs taken from pages. The
// console emits them absolute ("/admin/core/futureworkout/858/change/")
// while OpenPage expects a path relative to the admin root.
func (s *Scraper) relPath(href string) string {
	if p := s.console.BaseUrl.Path; p != "" {
		return strings.TrimPrefix(href, p)
	}
	return href
}

func (s *Scraper) openHref(ctx context.Context, href string) (*goquery.Document, error) {
	return s.console.OpenPage(ctx, s.relPath(href))
}
