// Package console owns the single authenticated browsing context
// against the club's admin console. The console has no API: everything
// goes through the session-cookie'd HTML admin, so this client logs in
// through the login form and keeps the session warm for the extractors.
package console

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"clubhouse-backend/lib/restyutil"
	"clubhouse-backend/lib/retry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"log/slog"
)

var tracer = otel.Tracer("services/console")

var (
	ErrNoCredentials = fmt.Errorf("console credentials are not configured")
	ErrLoginRejected = fmt.Errorf("console rejected the login form")
)

// re-login after this much time even if the server has not kicked us
const sessionLifetime = 30 * time.Minute

type Options struct {
	// the admin root, e.g. https://club.example.com/admin
	BaseUrl  string
	Username string
	Password string
}

// Client is the one owner of the browsing session. Extractors never
// touch cookies or the transport, only OpenPage.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	opts Options

	mu              sync.Mutex
	authenticatedAt time.Time
}

func NewClient(opts Options) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
		opts:    opts,
	}, nil
}

// the console's login page carries the login form; any authenticated
// page does not. this doubles as the session-expiry probe.
func isLoginPage(doc *goquery.Document) bool {
	if doc.Find("body.login").Length() > 0 {
		return true
	}
	return doc.Find("form input[name=username]").Length() > 0 &&
		doc.Find("form input[name=password]").Length() > 0
}

// EnsureSession makes sure the client holds a session younger than the
// freshness window, logging in again when it does not.
func (c *Client) EnsureSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.authenticatedAt.IsZero() && time.Since(c.authenticatedAt) < sessionLifetime {
		return nil
	}
	return c.login(ctx)
}

// callers must hold c.mu
func (c *Client) login(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:login")
	defer span.End()

	if c.opts.Username == "" || c.opts.Password == "" {
		span.SetStatus(codes.Error, ErrNoCredentials.Error())
		return retry.Permanent(ErrNoCredentials)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/login/")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	if !isLoginPage(doc) {
		// server-side session survived, nothing to submit
		slog.InfoContext(ctx, "console session still valid, skipping login")
		c.authenticatedAt = time.Now()
		return nil
	}

	csrftoken := doc.Find("input[name=csrfmiddlewaretoken]").AttrOr("value", "")
	if csrftoken == "" {
		span.SetStatus(codes.Error, "failed to find csrf token")
		return fmt.Errorf("could not find csrf token on login page")
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetHeader("referer", c.BaseUrl.String()+"/login/").
		SetFormData(map[string]string{
			"csrfmiddlewaretoken": csrftoken,
			"username":            c.opts.Username,
			"password":            c.opts.Password,
			"next":                c.BaseUrl.Path + "/",
		}).
		Post("/login/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	res, err = c.Http.R().
		SetContext(ctx).
		Get("/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to request dashboard after login")
		return err
	}
	doc, err = goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse dashboard html")
		return err
	}

	if isLoginPage(doc) {
		span.SetStatus(codes.Error, ErrLoginRejected.Error())
		return retry.Permanent(ErrLoginRejected)
	}

	c.authenticatedAt = time.Now()
	slog.InfoContext(ctx, "console login succeeded")
	return nil
}

// OpenPage navigates to a console path relative to the admin root and
// returns the parsed document. When the server silently expired the
// session and answered with the login page, it re-authenticates once
// and replays the navigation before giving up.
func (c *Client) OpenPage(ctx context.Context, relPath string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "client:OpenPage")
	defer span.End()

	if err := c.EnsureSession(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ensure session")
		return nil, err
	}

	doc, err := c.get(ctx, relPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, err
	}

	if isLoginPage(doc) {
		slog.WarnContext(ctx, "console session expired server-side, re-authenticating", "path", relPath)
		c.mu.Lock()
		c.authenticatedAt = time.Time{}
		err = c.login(ctx)
		c.mu.Unlock()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "re-authentication failed")
			return nil, err
		}

		doc, err = c.get(ctx, relPath)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch page after re-auth")
			return nil, err
		}
		if isLoginPage(doc) {
			span.SetStatus(codes.Error, ErrLoginRejected.Error())
			return nil, retry.Permanent(ErrLoginRejected)
		}
	}

	return doc, nil
}

func (c *Client) get(ctx context.Context, relPath string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(relPath)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("GET %s: status %d", relPath, res.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// Release drops the session state. Safe to call twice; the next
// EnsureSession starts from scratch.
func (c *Client) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	jar, err := cookiejar.New(nil)
	if err == nil {
		c.Http.SetCookieJar(jar)
	}
	c.authenticatedAt = time.Time{}
	slog.Info("console session released")
}
