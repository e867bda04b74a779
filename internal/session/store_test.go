package session_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/goliatone/go-formgrid/internal/session"
)

type counter struct {
	hits int
}

func newCounter() *counter { return &counter{} }

func TestStore_IssuesAndReusesCookie(t *testing.T) {
	store := session.New(newCounter)

	first := httptest.NewRecorder()
	id := store.ID(first, httptest.NewRequest(http.MethodGet, "/", nil))
	gt.String(t, id).NotEqual("")

	cookies := first.Result().Cookies()
	gt.Array(t, cookies).Length(1).Required()
	gt.Value(t, cookies[0].Name).Equal(session.CookieName)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	second := httptest.NewRecorder()
	gt.Value(t, store.ID(second, req)).Equal(id)
	gt.Array(t, second.Result().Cookies()).Length(0)
}

func TestStore_UnknownCookieGetsNewSession(t *testing.T) {
	store := session.New(newCounter)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})

	id := store.ID(httptest.NewRecorder(), req)
	gt.Value(t, id == "forged").Equal(false)
}

func TestStore_UpdateIsolatesSessions(t *testing.T) {
	store := session.New(newCounter)
	a := store.ID(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := store.ID(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(a, func(c *counter) { c.hits++ })
		}()
	}
	wg.Wait()

	var hitsA, hitsB int
	store.Update(a, func(c *counter) { hitsA = c.hits })
	store.Update(b, func(c *counter) { hitsB = c.hits })
	gt.Value(t, hitsA).Equal(50)
	gt.Value(t, hitsB).Equal(0)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := session.New(newCounter, session.WithMaxSessions(2))

	store.Update("a", func(c *counter) { c.hits = 1 })
	store.Update("b", func(c *counter) { c.hits = 2 })
	store.Update("a", func(*counter) {})
	store.Update("c", func(c *counter) { c.hits = 3 })

	gt.Value(t, store.Len()).Equal(2)

	var hits int
	store.Update("a", func(c *counter) { hits = c.hits })
	gt.Value(t, hits).Equal(1)
	store.View("b", func(c *counter) { hits = c.hits })
	gt.Value(t, hits).Equal(0)
}

func TestStore_StateCreatedOnFirstUpdate(t *testing.T) {
	store := session.New(newCounter, session.WithMaxSessions(2))
	for i := 0; i < 10; i++ {
		id := store.ID(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		store.View(id, func(c *counter) { c.hits++ })
	}
	gt.Value(t, store.Len()).Equal(0)

	store.Update("kept", func(c *counter) { c.hits = 7 })
	var hits int
	store.View("kept", func(c *counter) { hits = c.hits })
	gt.Value(t, store.Len()).Equal(1)
	gt.Value(t, hits).Equal(7)
}

func TestStore_Tokens(t *testing.T) {
	store := session.New(newCounter, session.WithSecret([]byte("k")))
	other := session.New(newCounter, session.WithSecret([]byte("other")))

	token := store.Token("a")
	gt.String(t, token).NotEqual("")
	gt.Bool(t, store.ValidToken("a", token)).True()
	gt.Bool(t, store.ValidToken("b", token)).False()
	gt.Bool(t, store.ValidToken("a", "")).False()
	gt.Bool(t, other.ValidToken("a", token)).False()
}

func TestStore_CookieFromAnotherStoreIsReplaced(t *testing.T) {
	issuer := session.New(newCounter)
	rec := httptest.NewRecorder()
	id := issuer.ID(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	gt.Value(t, session.New(newCounter).ID(httptest.NewRecorder(), req) == id).Equal(false)
}
