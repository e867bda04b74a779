package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/goliatone/go-formgrid/internal/pages"
	"github.com/goliatone/go-formgrid/internal/server"
	"github.com/goliatone/go-formgrid/internal/session"
)

var csrfPattern = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

type browser struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
	token   string
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	return newBrowserWithStore(t, session.New(server.NewState, session.WithMaxSessions(64)))
}

func newBrowserWithStore(t *testing.T, store *session.Store[server.State]) *browser {
	t.Helper()
	srv, err := server.New(
		server.WithAuthenticator(pages.StaticAuthenticator{Email: "user@example.com", Password: "password"}),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		server.WithSessionStore(store),
	)
	gt.NoError(t, err).Required()
	return &browser{t: t, handler: srv}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		b.cookies = cookies
	}
	if m := csrfPattern.FindStringSubmatch(rec.Body.String()); m != nil {
		b.token = m[1]
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	if form.Get("_csrf") == "" {
		form.Set("_csrf", b.token)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func TestShell_Routes(t *testing.T) {
	b := newBrowser(t)

	home := b.get("/")
	gt.Value(t, home.Code).Equal(http.StatusOK)
	gt.String(t, home.Body.String()).Contains("Vibe Coding")
	gt.String(t, home.Body.String()).Contains(`<a href="/" aria-current="page">Home</a>`)
	gt.String(t, home.Body.String()).Contains("--fg-color-primary: #4f46e5;")

	missing := b.get("/users")
	gt.Value(t, missing.Code).Equal(http.StatusNotFound)
	gt.String(t, missing.Body.String()).Contains("Page not found")

	health := b.get("/healthz")
	gt.Value(t, health.Code).Equal(http.StatusOK)
	gt.String(t, health.Body.String()).Contains(`"status":"ok"`)

	css := b.get("/assets/formgrid.css")
	gt.Value(t, css.Code).Equal(http.StatusOK)
	gt.String(t, css.Body.String()).Contains(".fg-grid__table")
}

func TestLogin_Success(t *testing.T) {
	b := newBrowser(t)
	b.get("/login")
	gt.String(t, b.token).NotEqual("").Required()

	res := b.post("/login", url.Values{"email": {"user@example.com"}, "password": {"password"}})
	gt.Value(t, res.Code).Equal(http.StatusSeeOther)
	gt.Value(t, res.Header().Get("Location")).Equal("/login")

	page := b.get("/login")
	gt.String(t, page.Body.String()).Contains(pages.LoginSuccessNotice)
	gt.String(t, page.Body.String()).Contains(`value="user@example.com"`)

	again := b.get("/login")
	gt.String(t, again.Body.String()).NotContains(pages.LoginSuccessNotice)
}

func TestLogin_FailurePersistsUntilNextAttempt(t *testing.T) {
	b := newBrowser(t)
	b.get("/login")

	res := b.post("/login", url.Values{"email": {"user@example.com"}, "password": {"nottheone"}})
	gt.Value(t, res.Code).Equal(http.StatusUnauthorized)
	gt.String(t, res.Body.String()).Contains(pages.LoginFailureMessage)
	gt.String(t, res.Body.String()).NotContains("nottheone")

	gt.String(t, b.get("/login").Body.String()).Contains(pages.LoginFailureMessage)

	res = b.post("/login", url.Values{"email": {"user@example.com"}, "password": {"password"}})
	gt.Value(t, res.Code).Equal(http.StatusSeeOther)
	gt.String(t, b.get("/login").Body.String()).NotContains(pages.LoginFailureMessage)
}

func TestLogin_ValidationErrors(t *testing.T) {
	b := newBrowser(t)
	b.get("/login")

	res := b.post("/login", url.Values{"email": {""}, "password": {""}})
	gt.Value(t, res.Code).Equal(http.StatusUnprocessableEntity)
	gt.String(t, res.Body.String()).Contains("Email is required")
	gt.String(t, res.Body.String()).Contains("Password is required")
	gt.String(t, res.Body.String()).NotContains(pages.LoginFailureMessage)
}

func TestPost_RequiresFormToken(t *testing.T) {
	b := newBrowser(t)
	b.get("/login")

	res := b.post("/login", url.Values{"_csrf": {"forged"}, "email": {"user@example.com"}, "password": {"password"}})
	gt.Value(t, res.Code).Equal(http.StatusForbidden)
}

func TestFormDemo_AgeOutOfRange(t *testing.T) {
	b := newBrowser(t)
	page := b.get("/form-demo")
	gt.Value(t, page.Code).Equal(http.StatusOK)
	gt.String(t, page.Body.String()).Contains(">Save</button>")

	res := b.post("/form-demo", url.Values{"fullName": {"Ada"}, "age": {"150"}})
	gt.Value(t, res.Code).Equal(http.StatusUnprocessableEntity)
	body := res.Body.String()
	gt.String(t, body).Contains(`<p id="fg-age-help" class="fg-error">Invalid value</p>`)
	gt.Value(t, strings.Count(body, `class="fg-error"`)).Equal(1)

	res = b.post("/form-demo", url.Values{"fullName": {"Ada"}, "age": {"36"}})
	gt.Value(t, res.Code).Equal(http.StatusOK)
	gt.String(t, res.Body.String()).Contains(pages.FormDemoNotice)
}

func TestDataGrid_AddEditDelete(t *testing.T) {
	b := newBrowser(t)
	page := b.get("/component-demos/datagrid")
	gt.Value(t, page.Code).Equal(http.StatusOK)
	gt.String(t, page.Body.String()).Contains(`<tr data-row-id="1">`)
	gt.String(t, page.Body.String()).Contains(`<tr data-row-id="2">`)

	res := b.post("/component-demos/datagrid/add", nil)
	gt.Value(t, res.Code).Equal(http.StatusSeeOther)
	gt.Value(t, res.Header().Get("Location")).Equal("/component-demos/datagrid")
	body := b.get("/component-demos/datagrid").Body.String()
	gt.String(t, body).Contains(`<tr data-row-id="3">`)
	gt.String(t, body).Contains("user3@example.com")

	b.post("/component-demos/datagrid/edit", url.Values{"id": {"2"}})
	gt.String(t, b.get("/component-demos/datagrid").Body.String()).Contains("Bob (edited)")

	b.post("/component-demos/datagrid/delete", url.Values{"id": {"1"}})
	body = b.get("/component-demos/datagrid").Body.String()
	gt.String(t, body).NotContains(`data-row-id="1"`)
	gt.String(t, body).NotContains("alice@example.com")

	gt.Value(t, b.post("/component-demos/datagrid/delete", url.Values{"id": {"99"}}).Code).Equal(http.StatusNotFound)
	gt.Value(t, b.post("/component-demos/datagrid/archive", nil).Code).Equal(http.StatusNotFound)
}

func TestDataGrid_SessionsAreIsolated(t *testing.T) {
	first := newBrowser(t)
	first.get("/component-demos/datagrid")
	first.post("/component-demos/datagrid/delete", url.Values{"id": {"1"}})

	second := &browser{t: t, handler: first.handler}
	body := second.get("/component-demos/datagrid").Body.String()
	gt.String(t, body).Contains("alice@example.com")
}

func TestSessions_CreatedOnFirstWrite(t *testing.T) {
	store := session.New(server.NewState, session.WithMaxSessions(4))
	b := newBrowserWithStore(t, store)

	for i := 0; i < 10; i++ {
		crawler := &browser{t: t, handler: b.handler}
		for _, path := range []string{"/", "/login", "/form-demo", "/component-demos/datagrid"} {
			gt.Value(t, crawler.get(path).Code).Equal(http.StatusOK)
		}
	}
	gt.Value(t, store.Len()).Equal(0)

	b.get("/component-demos/datagrid")
	gt.Value(t, b.post("/component-demos/datagrid/add", nil).Code).Equal(http.StatusSeeOther)
	gt.Value(t, store.Len()).Equal(1)

	crawler := &browser{t: t, handler: b.handler}
	crawler.get("/login")
	gt.Value(t, store.Len()).Equal(1)
	gt.String(t, b.get("/component-demos/datagrid").Body.String()).Contains(`<tr data-row-id="3">`)
}
