package sheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clubhouse-backend/lib/timezone"
	"clubhouse-backend/services/catalog"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newTestMirror(t *testing.T) (*Mirror, *[]recordedRequest) {
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(server.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return &Mirror{svc: svc, spreadsheetId: "sheet-id"}, &requests
}

func TestMirrorCategories(t *testing.T) {
	mirror, requests := newTestMirror(t)

	err := mirror.MirrorCategories(context.Background(), []catalog.Category{
		{ID: 1, Name: "Training", SortOrder: 5, IsVisible: true},
	})
	require.NoError(t, err)

	// a clear followed by a rewrite
	require.Len(t, *requests, 2)
	require.True(t, strings.HasSuffix((*requests)[0].path, ":clear"), (*requests)[0].path)
	require.Contains(t, (*requests)[0].path, "sheet-id")
	require.Contains(t, (*requests)[0].path, "Categories")

	update := (*requests)[1]
	require.Equal(t, http.MethodPut, update.method)
	require.Contains(t, update.body, "Training")
	require.Contains(t, update.body, `"ID"`)
}

func TestMirrorSessionsFormatsDatetime(t *testing.T) {
	mirror, requests := newTestMirror(t)

	price := int64(1200)
	err := mirror.MirrorSessions(context.Background(), []catalog.Session{
		{
			ID:       858,
			Name:     "Evening Drill",
			Price:    &price,
			Status:   catalog.StatusActive,
			Datetime: time.Date(2025, time.March, 15, 18, 0, 0, 0, timezone.Location),
		},
	})
	require.NoError(t, err)

	require.Len(t, *requests, 2)
	update := (*requests)[1]
	require.Contains(t, update.body, "15.03.2025 18:00")
	require.Contains(t, update.body, "1200")
	require.Contains(t, update.body, "active")
}
