package guard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"lingo/internal/domain"
	"lingo/internal/guard"
)

type staticSource domain.Session

func (s staticSource) Snapshot() domain.Session { return domain.Session(s) }

var (
	signedIn  = domain.Session{State: domain.StateAuthenticated, Token: "t"}
	signedOut = domain.Session{State: domain.StateUnauthenticated}
	loading   = domain.Session{State: domain.StateUnknown, IsLoading: true}
)

func TestCheck(t *testing.T) {
	assert.Equal(t, guard.Decision{Allow: true}, guard.Check(signedIn))
	assert.Equal(t, guard.Decision{Redirect: domain.RouteLogin}, guard.Check(signedOut))
	assert.Equal(t, guard.Decision{Redirect: domain.RouteLogin}, guard.Check(loading))

	// Authenticated without a token is not a usable session.
	assert.False(t, guard.Check(domain.Session{State: domain.StateAuthenticated}).Allow)
}

func TestHome(t *testing.T) {
	assert.Equal(t, domain.RouteDashboard, guard.Home(signedIn))
	assert.Equal(t, domain.RouteLogin, guard.Home(signedOut))
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	guard.Middleware(staticSource(signedOut))(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	guard.Middleware(staticSource(signedIn))(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCommand(t *testing.T) {
	root := &cobra.Command{Use: "lingo"}
	vocab := guard.Protect(&cobra.Command{Use: "vocab"})
	list := &cobra.Command{Use: "list"}
	login := &cobra.Command{Use: "login"}
	vocab.AddCommand(list)
	root.AddCommand(vocab, login)

	assert.ErrorIs(t, guard.Command(list, staticSource(signedOut)), guard.ErrLoginRequired)
	assert.NoError(t, guard.Command(list, staticSource(signedIn)))
	assert.NoError(t, guard.Command(login, staticSource(signedOut)))
}
