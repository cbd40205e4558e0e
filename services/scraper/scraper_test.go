package scraper

import (
	"context"
	"testing"
	"time"

	"clubhouse-backend/lib/testutil"
	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"
	"clubhouse-backend/services/console"

	"github.com/stretchr/testify/require"
)

func newTestScraper(t *testing.T, pages map[string]string) (*Scraper, *testutil.FakeConsole) {
	fake := testutil.NewFakeConsole("admin", "secret", pages)
	t.Cleanup(fake.Close)

	client, err := console.NewClient(console.Options{
		BaseUrl:  fake.AdminUrl(),
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)
	return New(client), fake
}

func TestIdFromHref(t *testing.T) {
	for href, want := range map[string]int64{
		"/admin/core/category/1/change/": 1,
		"/admin/core/category/42/change": 42,
		"/admin/core/abon/858/":          858,
	} {
		id, ok := idFromHref(href)
		require.True(t, ok, href)
		require.Equal(t, want, id)
	}
	for _, href := range []string{"", "/admin/core/category/", "?o=2"} {
		_, ok := idFromHref(href)
		require.False(t, ok, href)
	}
}

func TestIconTrue(t *testing.T) {
	require.True(t, iconTrue(cell{ImgAlt: "True"}))
	require.True(t, iconTrue(cell{ImgSrc: "/static/admin/img/icon-yes.svg"}))
	require.False(t, iconTrue(cell{ImgAlt: "False", ImgSrc: "/static/admin/img/icon-no.svg"}))
}

func TestNumericValue(t *testing.T) {
	v, ok := numericValue(cell{Text: "1 200 ₽"})
	require.True(t, ok)
	require.Equal(t, int64(1200), v)

	v, ok = numericValue(cell{Text: "8"})
	require.True(t, ok)
	require.Equal(t, int64(8), v)

	_, ok = numericValue(cell{Text: "10 занятий"})
	require.False(t, ok)
	_, ok = numericValue(cell{Text: "-"})
	require.False(t, ok)
	_, ok = numericValue(cell{Text: "8", ImgAlt: "True"})
	require.False(t, ok)
}

func TestIsNameCell(t *testing.T) {
	require.True(t, isNameCell(cell{Text: "Главный зал"}))
	require.False(t, isNameCell(cell{Text: "1200"}))
	require.False(t, isNameCell(cell{Text: "Зал", ImgAlt: "True"}))
}

const categoriesPage = `<html><body><div id="content">
<table id="result_list"><tbody>
<tr><th><a href="/admin/core/category/1/change/">1: Training</a></th>
<td>Training</td><td>5</td>
<td><img alt="True" src="/static/admin/img/icon-yes.svg"></td></tr>
<tr><th><a href="/admin/core/category/2/change/">2: Advanced</a></th>
<td>Advanced</td><td>10</td>
<td><img alt="False" src="/static/admin/img/icon-no.svg"></td></tr>
</tbody></table></div></body></html>`

func TestCategories(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/category/": categoriesPage,
	})

	got, err := s.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, "Training", got[0].Name)
	require.Equal(t, int64(5), got[0].SortOrder)
	require.True(t, got[0].IsVisible)

	require.Equal(t, int64(2), got[1].ID)
	require.False(t, got[1].IsVisible)
}

// markup without #result_list still parses through the fallback chain
func TestCategoriesPlainTable(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/category/": `<html><body><table><tbody>
<tr><th><a href="/admin/core/category/3/change/">3: Kids</a></th>
<td>Kids</td><td><img alt="True" src="x"></td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Kids", got[0].Name)
	require.True(t, got[0].IsVisible)
}

func TestLocations(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/location/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/location/1/change/">1: Main Hall</a></th>
<td>Main Hall</td>
<td><img alt="True" src="icon-yes.svg"></td>
<td><img alt="False" src="icon-no.svg"></td>
<td>Два корта, раздевалки</td>
<td>3</td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	l := got[0]
	require.Equal(t, int64(1), l.ID)
	require.Equal(t, "Main Hall", l.Name)
	require.True(t, l.ShowLocation)
	require.False(t, l.ShowOnBookingScreen)
	require.Equal(t, "Два корта, раздевалки", l.Description)
	require.Equal(t, int64(3), l.SortOrder)
}

func TestMemberships(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/abon/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/abon/7/change/">7: Абонемент 8</a></th>
<td>Абонемент 8</td><td>8</td><td>5 600</td>
<td><img alt="True" src="icon-yes.svg"></td></tr>
<tr><th><a href="/admin/core/abon/8/change/">8: Разовое</a></th>
<td>Разовое</td><td>900</td><td>1</td>
<td><img alt="False" src="icon-no.svg"></td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Memberships(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	// count listed before price
	require.Equal(t, "Абонемент 8", got[0].Name)
	require.Equal(t, int64(5600), got[0].Price)
	require.Equal(t, int64(8), got[0].SessionCount)
	require.True(t, got[0].IsVisible)

	// price listed before count
	require.Equal(t, int64(900), got[1].Price)
	require.Equal(t, int64(1), got[1].SessionCount)
	require.False(t, got[1].IsVisible)
}

func TestSessionsCompositeHeader(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/858/change/">858: 15.03.2025 (Сб) 18:00 Evening Drill 1: Main Hall</a></th>
<td><a href="/admin/core/category/4/change/">Training</a></td>
<td>Тренер: Иванов</td>
<td>12</td><td>7</td><td>1 200</td>
<td><img alt="True" src="icon-yes.svg"></td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)

	sess := got[0]
	require.Equal(t, int64(858), sess.ID)
	require.Equal(t,
		time.Date(2025, time.March, 15, 18, 0, 0, 0, timezone.Location),
		sess.Datetime)
	require.Equal(t, "Evening Drill", sess.Name)
	require.Equal(t, int64(1), sess.LocationID)
	require.Equal(t, int64(4), sess.CategoryID)
	require.Equal(t, "Тренер: Иванов", sess.Trainers)
	require.Equal(t, int64(12), sess.MaxSpots)
	require.Equal(t, int64(7), sess.AvailableSpots)
	require.NotNil(t, sess.Price)
	require.Equal(t, int64(1200), *sess.Price)
	require.Equal(t, catalog.StatusActive, sess.Status)
}

func TestSessionsTwoDigitYearAndCancelled(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/12/change/">12: 01.02.24 (Чт) 09:30 Morning 2: Annex</a></th>
<td>6</td><td>6</td>
<td><img alt="False" src="icon-no.svg"></td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t,
		time.Date(2024, time.February, 1, 9, 30, 0, 0, timezone.Location),
		got[0].Datetime)
	require.Equal(t, int64(2), got[0].LocationID)
	require.Equal(t, catalog.StatusCancelled, got[0].Status)
	require.Nil(t, got[0].Price)
}

func TestSessionsDetailPageSpots(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/33/change/">33: 10.04.2025 (Чт) 20:00 Late 1: Main Hall</a></th>
<td>10</td></tr>
</tbody></table></body></html>`,
		"/admin/core/futureworkout/33/change/": `<html><body><form>
<input id="id_available_spots" name="available_spots" value="4">
</form></body></html>`,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(10), got[0].MaxSpots)
	require.Equal(t, int64(4), got[0].AvailableSpots)
}

func TestSessionsPagination(t *testing.T) {
	page := func(id int, paginator string) string {
		return `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/` + string(rune('0'+id)) + `/change/">` +
			string(rune('0'+id)) + `: 15.03.2025 (Сб) 18:00 Drill 1: Main Hall</a></th>
<td>10</td><td>5</td></tr>
</tbody></table>` + paginator + `</body></html>`
	}

	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/":     page(1, `<p class="paginator"><a class="next" href="?p=2">2</a></p>`),
		"/admin/core/futureworkout/?p=2": page(2, `<p class="paginator"><a href="?p=1">назад</a></p>`),
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(1), got[0].ID)
	require.Equal(t, int64(2), got[1].ID)
}

// a paginator whose next link points back at itself must stop at the
// page ceiling instead of looping forever
func TestSessionsPaginationCeiling(t *testing.T) {
	page := `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/1/change/">1: 15.03.2025 (Сб) 18:00 Drill 1: Main Hall</a></th>
<td>10</td><td>5</td></tr>
</tbody></table>
<p class="paginator"><a class="next" href="?p=2">2</a></p></body></html>`

	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/":     page,
		"/admin/core/futureworkout/?p=2": page,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, maxSessionPages)
}

func TestSessionsNoDatetimeDefaultsToScrapeTime(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/77/change/">77: Drill 1: Main Hall</a></th>
<td>10</td><td>5</td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	// scrape time, not the zero stamp a weekly purge would delete
	require.WithinDuration(t, timezone.Now(), got[0].Datetime, time.Minute)
}

func TestSessionsSinglePage(t *testing.T) {
	s, _ := newTestScraper(t, map[string]string{
		"/admin/core/futureworkout/": `<html><body><table id="result_list"><tbody>
<tr><th><a href="/admin/core/futureworkout/5/change/">5: 15.03.2025 (Сб) 18:00 Drill 1: Main Hall</a></th>
<td>10</td><td>5</td></tr>
</tbody></table></body></html>`,
	})

	got, err := s.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}
