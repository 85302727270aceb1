package itest

import (
	"encoding/json"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/ironhouse-gym/gym-admin/internal/adapters/httpapi"
	memclock "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/clock"
	memgymstore "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/gymstore"
	memidempotency "github.com/ironhouse-gym/gym-admin/internal/adapters/memory/idempotency"
	"github.com/ironhouse-gym/gym-admin/internal/app/gym"
	"github.com/ironhouse-gym/gym-admin/internal/app/reports"
)

// csrfKey is a fixed 32-byte key; the itests always run with CSRF protection on.
var csrfKey = []byte("0123456789abcdef0123456789abcdef")

type testServer struct {
	baseURL string
	client  *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memgymstore.NewSeededStore()
	clk := memclock.NewManualClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))
	gymSvc := gym.NewService(store, clk)
	gymSvc.Location = time.UTC

	api, err := httpapi.NewServer(gymSvc, reports.NewService(store), memidempotency.NewStore())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	api.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{CSRFKey: csrfKey})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := srv.Client()
	client.Jar = jar

	return &testServer{baseURL: srv.URL, client: client}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

// page is a fetched HTML page and the URL it was served from after redirects.
type page struct {
	status int
	url    *url.URL
	body   string
}

func (p page) flash(key string) string { return p.url.Query().Get(key) }

var hiddenInput = regexp.MustCompile(`<input type="hidden" name="([^"]+)" value="([^"]*)">`)

// tokens returns the first CSRF token rendered on the page and, for pages with
// entity forms, the first idempotency key.
func (p page) tokens(t *testing.T) url.Values {
	t.Helper()
	out := url.Values{}
	for _, m := range hiddenInput.FindAllStringSubmatch(p.body, -1) {
		name := m[1]
		if name != "gorilla.csrf.Token" && name != "idempotency_key" {
			continue
		}
		if out.Get(name) == "" {
			out.Set(name, html.UnescapeString(m[2]))
		}
	}
	if out.Get("gorilla.csrf.Token") == "" {
		t.Fatalf("page %s is missing the CSRF token", p.url.Path)
	}
	return out
}

func (s *testServer) get(t *testing.T, path string) page {
	t.Helper()
	resp, err := s.client.Get(s.url(path))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readPage(t, resp)
}

// submit posts form merged with tokens and follows the 303 back to a list page.
func (s *testServer) submit(t *testing.T, path string, tokens, form url.Values) page {
	t.Helper()
	body := url.Values{}
	for k, v := range tokens {
		body[k] = v
	}
	for k, v := range form {
		body[k] = v
	}
	resp, err := s.client.PostForm(s.url(path), body)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return readPage(t, resp)
}

func readPage(t *testing.T, resp *http.Response) page {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return page{status: resp.StatusCode, url: resp.Request.URL, body: string(b)}
}

func (s *testServer) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := s.client.Get(s.url(path))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp.StatusCode
}
