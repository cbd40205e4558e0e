package scraper

import (
	"regexp"
	"strconv"

	"clubhouse-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// cell is one <td> of a changelist row with everything the heuristics
// may need to look at.
type cell struct {
	Text   string
	Href   string
	ImgAlt string
	ImgSrc string
}

// row is one record of a changelist table. Header carries the text of
// the <th> column, which for some entities encodes several fields at
// once.
type row struct {
	ID         int64
	DetailHref string
	Header     string
	Cells      []cell
}

var detailIdRe = regexp.MustCompile(`/(\d+)/(?:change/?)?$`)

func idFromHref(href string) (int64, bool) {
	m := detailIdRe.FindStringSubmatch(href)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// findResultsTable locates the changelist table. Console deployments
// differ in markup, so a chain of selectors is tried before falling
// back to the first table that has body rows at all.
func findResultsTable(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"#result_list", "table.results", ".change-list table"} {
		if t := doc.Find(sel).First(); t.Length() > 0 {
			return t
		}
	}
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if t.Find("tbody tr").Length() > 0 {
			found = t
			return false
		}
		return true
	})
	return found
}

// parseRows extracts every data row of the table. Rows without a
// detail link (filter rows, totals) are skipped since without an id
// there is nothing to reconcile against.
func parseRows(table *goquery.Selection) []row {
	var rows []row
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		link := tr.Find("th a").First()
		if link.Length() == 0 {
			link = tr.Find("td a").First()
		}
		href := link.AttrOr("href", "")
		id, ok := idFromHref(href)
		if !ok {
			return
		}
		r := row{
			ID:         id,
			DetailHref: href,
			Header:     htmlutil.CleanText(tr.Find("th").First().Text()),
		}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			img := td.Find("img").First()
			a := td.Find("a").First()
			r.Cells = append(r.Cells, cell{
				Text:   htmlutil.CleanText(td.Text()),
				Href:   a.AttrOr("href", ""),
				ImgAlt: img.AttrOr("alt", ""),
				ImgSrc: img.AttrOr("src", ""),
			})
		})
		rows = append(rows, r)
	})
	return rows
}
