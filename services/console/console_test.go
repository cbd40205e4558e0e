package console

import (
	"context"
	"testing"

	"clubhouse-backend/lib/retry"
	"clubhouse-backend/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestLoginAndReuse(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/console"})
	defer cleanup()

	fake := testutil.NewFakeConsole("admin", "secret", map[string]string{
		"/admin/core/category/": `<html><body><div id="content">categories</div></body></html>`,
	})
	defer fake.Close()

	client, err := NewClient(Options{
		BaseUrl:  fake.AdminUrl(),
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.EnsureSession(ctx))
	require.Equal(t, 1, fake.LoginAttempts())

	// a fresh session gets reused, not renegotiated
	require.NoError(t, client.EnsureSession(ctx))
	require.Equal(t, 1, fake.LoginAttempts())

	doc, err := client.OpenPage(ctx, "/core/category/")
	require.NoError(t, err)
	require.Equal(t, "categories", doc.Find("#content").Text())
}

func TestReauthenticatesOnServerSideExpiry(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/console"})
	defer cleanup()

	fake := testutil.NewFakeConsole("admin", "secret", map[string]string{
		"/admin/core/location/": `<html><body><div id="content">locations</div></body></html>`,
	})
	defer fake.Close()

	client, err := NewClient(Options{
		BaseUrl:  fake.AdminUrl(),
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.EnsureSession(ctx))

	// the server drops the session while our freshness window says
	// it is still fine
	fake.ExpireSessions()

	doc, err := client.OpenPage(ctx, "/core/location/")
	require.NoError(t, err)
	require.Equal(t, "locations", doc.Find("#content").Text())
	require.Equal(t, 2, fake.LoginAttempts())
}

func TestRejectedCredentialsArePermanent(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/console"})
	defer cleanup()

	fake := testutil.NewFakeConsole("admin", "secret", nil)
	defer fake.Close()

	client, err := NewClient(Options{
		BaseUrl:  fake.AdminUrl(),
		Username: "admin",
		Password: "wrong",
	})
	require.NoError(t, err)

	err = client.EnsureSession(context.Background())
	require.ErrorIs(t, err, ErrLoginRejected)
	require.True(t, retry.IsPermanent(err))
}

func TestMissingCredentials(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/console"})
	defer cleanup()

	client, err := NewClient(Options{BaseUrl: "http://127.0.0.1:1"})
	require.NoError(t, err)

	err = client.EnsureSession(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)
	require.True(t, retry.IsPermanent(err))
}

func TestReleaseIsIdempotent(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{Name: "services/console"})
	defer cleanup()

	fake := testutil.NewFakeConsole("admin", "secret", nil)
	defer fake.Close()

	client, err := NewClient(Options{
		BaseUrl:  fake.AdminUrl(),
		Username: "admin",
		Password: "secret",
	})
	require.NoError(t, err)

	require.NoError(t, client.EnsureSession(context.Background()))
	client.Release()
	client.Release()

	// a released client logs in again on next use
	require.NoError(t, client.EnsureSession(context.Background()))
	require.Equal(t, 2, fake.LoginAttempts())
}
